// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package nrdiv implements radix-2 non-restoring division of unsigned binary numbers,
// modelling the registers of a hardware divider.
//
// For an n-bit dividend the datapath has three registers:
//	Q - n bits, holds the dividend, and the quotient at the end,
//	M - the divisor,
//	A - n+1 bits, two's complement partial remainder.
// Every iteration shifts (A, Q) left, then subtracts M from A, if A was non-negative,
// or adds it otherwise. The new sign of A gives the next quotient bit.
// A negative final remainder is corrected by one last addition.
package nrdiv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	mu "github.com/avdva/bitlogic/internal/mathutil"
	su "github.com/avdva/bitlogic/internal/strutil"
)

const (
	// MaxWidth is the maximum length of a dividend.
	// A is n+1 bits long, and it has to fit a 64-bit register.
	MaxWidth = 63
)

var (
	// ErrMalformedOperand is returned, if an operand is empty or has non-binary digits.
	ErrMalformedOperand = errors.New("malformed operand")
	// ErrOperandWidthMismatch is returned, if the divisor does not fit the dividend's width.
	ErrOperandWidthMismatch = errors.New("divisor is wider than dividend")
	// ErrDivisionByZero is returned for a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrWidthOverflow is returned, if the dividend is longer than MaxWidth.
	ErrWidthOverflow = errors.New("operand too wide")
)

// Op is an operation applied to A during a step.
type Op int8

const (
	// OpSub is A -= M.
	OpSub Op = iota
	// OpAdd is A += M.
	OpAdd
)

func (o Op) String() string {
	switch o {
	case OpSub:
		return "sub"
	case OpAdd:
		return "add"
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Registers is the state of the divider.
type Registers struct {
	// A is an (N+1)-bit two's complement number.
	A uint64
	Q uint64
	M uint64
	N uint
}

// Acc returns the signed value of A.
func (r Registers) Acc() int64 {
	return mu.SignExtend64(r.A, r.N+1)
}

// ABits returns A as N+1 binary digits.
func (r Registers) ABits() string {
	return fmt.Sprintf("%0*b", r.N+1, r.A)
}

// QBits returns Q as N binary digits.
func (r Registers) QBits() string {
	return fmt.Sprintf("%0*b", r.N, r.Q)
}

func (r Registers) negative() bool {
	return mu.SignBit64(r.A, r.N+1)
}

// shift shifts (A, Q) left by one bit. The MSB of Q goes to the LSB of A.
func (r *Registers) shift() {
	msb := r.Q >> (r.N - 1) & 1
	r.A = (r.A<<1 | msb) & mu.Mask64(r.N+1)
	r.Q = r.Q << 1 & mu.Mask64(r.N)
}

func (r *Registers) apply(op Op) {
	if op == OpAdd {
		r.A += r.M
	} else {
		r.A -= r.M
	}
	r.A &= mu.Mask64(r.N + 1)
}

// Step is the state of the registers after an iteration.
type Step struct {
	Op Op
	Registers
}

// Result is the result of a division.
type Result struct {
	Quotient  uint64
	Remainder uint64
	// Width is the register width, the length of the dividend.
	Width uint
	// Initial is the state of the registers before the first iteration.
	Initial Registers
	// Steps are the states after each of Width iterations.
	Steps []Step
	// Final is the state of the registers at the end, after the correction, if any.
	Final Registers
	// Restored is true, if the final remainder needed a correction.
	Restored bool
}

// QuotientBits returns the quotient as binary digits, without leading zeros.
func (r Result) QuotientBits() string {
	return strconv.FormatUint(r.Quotient, 2)
}

// RemainderBits returns the remainder as binary digits, without leading zeros.
func (r Result) RemainderBits() string {
	return strconv.FormatUint(r.Remainder, 2)
}

// Divide divides two unsigned binary numbers, given as strings of '0' and '1'.
// The length of the dividend sets the width of the registers. The divisor may be
// written with more digits, as long as its value fits that width.
// Results are returned without leading zeros, e.g. Divide("1011", "0011") = ("11", "10").
func Divide(dividend, divisor string) (quotient, remainder string, err error) {
	q, m, n, err := parseOperands(dividend, divisor)
	if err != nil {
		return "", "", err
	}
	res := divide(q, m, n, false)
	return res.QuotientBits(), res.RemainderBits(), nil
}

// DivideTrace is like Divide, but also returns the states of the registers after each iteration.
func DivideTrace(dividend, divisor string) (Result, error) {
	q, m, n, err := parseOperands(dividend, divisor)
	if err != nil {
		return Result{}, err
	}
	return divide(q, m, n, true), nil
}

// DivideUint64 divides the n lowest bits of dividend by divisor.
// n must be in [1, MaxWidth], and divisor must be a non-zero number of at most n bits.
func DivideUint64(dividend, divisor uint64, n uint) (quo, rem uint64, err error) {
	if err := checkWidth(int(n)); err != nil {
		return 0, 0, err
	}
	if err := checkDivisor(divisor, n); err != nil {
		return 0, 0, err
	}
	res := divide(dividend&mu.Mask64(n), divisor, n, false)
	return res.Quotient, res.Remainder, nil
}

func divide(q, m uint64, n uint, trace bool) Result {
	regs := Registers{Q: q, M: m, N: n}
	res := Result{Width: n, Initial: regs}
	if trace {
		res.Steps = make([]Step, 0, n)
	}
	for i := uint(0); i < n; i++ {
		// the sign of A survives the shift in an unbounded register,
		// so it's taken before A loses its top bit.
		op := OpSub
		if regs.negative() {
			op = OpAdd
		}
		regs.shift()
		regs.apply(op)
		if !regs.negative() {
			regs.Q |= 1
		}
		if trace {
			res.Steps = append(res.Steps, Step{Op: op, Registers: regs})
		}
	}
	if regs.negative() {
		regs.apply(OpAdd)
		res.Restored = true
	}
	res.Final = regs
	res.Quotient, res.Remainder = regs.Q, regs.A
	return res
}

func parseOperands(dividend, divisor string) (q, m uint64, n uint, err error) {
	if len(dividend) > MaxWidth {
		return 0, 0, 0, fmt.Errorf("%w: dividend has %d digits, at most %d supported", ErrWidthOverflow, len(dividend), MaxWidth)
	}
	errs := &multierror.Error{ErrorFormat: formatErrors}
	q, err = su.ParseBinary(dividend)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("dividend: %w: %w", ErrMalformedOperand, err))
	}
	m, err = su.ParseBinary(divisor)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("divisor: %w: %w", ErrMalformedOperand, err))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return 0, 0, 0, err
	}
	n = uint(len(dividend))
	if err := checkDivisor(m, n); err != nil {
		return 0, 0, 0, err
	}
	return q, m, n, nil
}

func checkWidth(n int) error {
	if n < 1 || n > MaxWidth {
		return fmt.Errorf("%w: width %d is out of [1, %d]", ErrWidthOverflow, n, MaxWidth)
	}
	return nil
}

func checkDivisor(m uint64, n uint) error {
	if m == 0 {
		return ErrDivisionByZero
	}
	if bits := mu.BinaryDigits(m); bits > int(n) {
		return fmt.Errorf("%w: divisor needs %d bits, dividend has %d", ErrOperandWidthMismatch, bits, n)
	}
	return nil
}

func formatErrors(es []error) string {
	msgs := make([]string, len(es))
	for i, err := range es {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
