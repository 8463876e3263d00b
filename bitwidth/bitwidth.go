// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package bitwidth interprets integers at a fixed bit width, the way
// an HDL simulator sees them: unsigned, two's complement signed, and
// as sized hexadecimal and binary literals.
// Values outside of the range of the width are truncated, as the hardware does.
package bitwidth

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	mu "github.com/avdva/bitlogic/internal/mathutil"
)

const (
	// MaxWidth is the largest supported width.
	MaxWidth = 1 << 16
)

var (
	// ErrInvalidWidth is returned for widths that can't be used for a conversion.
	ErrInvalidWidth = errors.New("invalid width")

	one = big.NewInt(1)
)

// Width is a number of bits. All the conversions are done modulo 2^Width.
type Width uint

// NewWidth returns a width for given int.
// Zero is a valid width, it collapses all the values to 0.
func NewWidth(w int) (Width, error) {
	if w < 0 || w > MaxWidth {
		return 0, fmt.Errorf("%w: %d is out of [0, %d]", ErrInvalidWidth, w, MaxWidth)
	}
	return Width(w), nil
}

// ParseWidth parses a decimal width. Unlike NewWidth, it requires the width to be positive.
func ParseWidth(s string) (Width, error) {
	w, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad width %q: %w", s, err)
	}
	if w == 0 {
		return 0, fmt.Errorf("%w: width must be positive", ErrInvalidWidth)
	}
	return NewWidth(w)
}

// MustNewWidth is like NewWidth, but panics on error.
func MustNewWidth(w int) Width {
	width, err := NewWidth(w)
	if err != nil {
		panic(err)
	}
	return width
}

// Mask returns 2^w-1.
func Mask(w Width) *big.Int {
	m := new(big.Int).Lsh(one, uint(w))
	return m.Sub(m, one)
}

// ToUnsigned returns the w lowest bits of v as a non-negative number.
// Negative values wrap around, e.g. ToUnsigned(-4, 12) = 4092.
func ToUnsigned(v *big.Int, w Width) *big.Int {
	// big.Int uses two's complement semantics for bitwise operations on negative numbers.
	return new(big.Int).And(v, Mask(w))
}

// ToSigned returns the w lowest bits of v decoded as a two's complement number.
// The result is in [-2^(w-1), 2^(w-1)).
func ToSigned(v *big.Int, w Width) *big.Int {
	u := ToUnsigned(v, w)
	if w == 0 {
		return u
	}
	sign := new(big.Int).Lsh(one, uint(w)-1)
	u.Xor(u, sign)
	return u.Sub(u, sign)
}

// FormatHex formats v like a sized hex literal, e.g. 12'hFFC.
// The digits are zero-padded to ceil(w/4).
func FormatHex(v *big.Int, w Width) string {
	return fmt.Sprintf("%d'h%0*X", w, mu.HexDigits(uint(w)), ToUnsigned(v, w))
}

// FormatBin formats v like a sized binary literal, e.g. 4'b1100.
// The digits are zero-padded to w.
func FormatBin(v *big.Int, w Width) string {
	return fmt.Sprintf("%d'b%0*b", w, int(w), ToUnsigned(v, w))
}
