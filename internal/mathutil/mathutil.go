package mathutil

import (
	"math"
	"math/bits"
	"unsafe"
)

const (
	bitsInWord = uint(8 * unsafe.Sizeof(uint64(0)))
)

// BinaryDigits returns the number of significant binary digits in 'value'.
// Zero has no significant digits.
func BinaryDigits(value uint64) int {
	return int(bitsInWord) - bits.LeadingZeros64(value)
}

// HexDigits returns the number of hexadecimal digits needed to hold 'width' bits.
func HexDigits(width uint) int {
	return int((width + 3) / 4)
}

// Mask64 returns a value with the lowest n bits set.
// For n >= 64 all bits are set.
func Mask64(n uint) uint64 {
	if n >= bitsInWord {
		return math.MaxUint64
	}
	return 1<<n - 1
}

// SignBit64 reports whether bit (n-1) of x is set, i.e. whether x is negative
// as an n-bit two's complement number. Always false for n == 0.
func SignBit64(x uint64, n uint) bool {
	if n == 0 || n > bitsInWord {
		return false
	}
	return x>>(n-1)&1 == 1
}

// SignExtend64 decodes the lowest n bits of x as a two's complement number.
//	0b011 -> 3
//	0b000 -> 0
//	0b111 -> -1
//	0b100 -> -4
func SignExtend64(x uint64, n uint) int64 {
	if n == 0 {
		return 0
	}
	x &= Mask64(n)
	if n >= bitsInWord {
		return int64(x)
	}
	sign := uint64(1) << (n - 1)
	return int64(x^sign) - int64(sign)
}
