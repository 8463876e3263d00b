// Package strutil parses integer literals and binary operands.
package strutil

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

const (
	sizeDelim = '\''
	digitSep  = '_'
)

// ErrSyntax is returned for any malformed literal.
// Errors returned by this package wrap it, and usually carry the position of the offending symbol.
var ErrSyntax = errors.New("invalid syntax")

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

func (pe posError) Unwrap() error {
	return ErrSyntax
}

func addPosErrorOffset(err error, offset int) error {
	var pe *posError
	if !errors.As(err, &pe) { // try to locate error position.
		return err
	}
	pe.pos += offset
	return pe
}

// Pos returns the 1-based position carried by err, if any.
func Pos(err error) (int, bool) {
	var pe *posError
	if !errors.As(err, &pe) {
		return 0, false
	}
	return pe.pos, true
}

// Literal is a parsed integer literal.
type Literal struct {
	Value *big.Int
	// Width is the width of a sized literal, like 12 for 12'hFFC.
	Width uint
	// Sized is true, if the literal had an explicit width.
	Sized bool
}

// ParseInt parses an integer literal. Accepted forms are:
//	-4, 1_000        decimal
//	0xFFC, 0o17, 0b1010 prefixed
//	12'hFFC, 8'b1010_0101, 'd7, -8'sd5 sized (HDL-style) literals.
// Decimal literals with leading zeros are rejected, as they are ambiguous.
func ParseInt(s string) (Literal, error) {
	s, offset, neg := prepareString(s)
	if len(s) == 0 {
		return Literal{}, fmt.Errorf("empty input: %w", ErrSyntax)
	}
	lit, err := doParseInt(s)
	if err != nil {
		// add what we've trimmed before and add +1 to the offset to start indices from 1.
		return Literal{}, fmt.Errorf("parsing failed: %w", addPosErrorOffset(err, offset+1))
	}
	if neg {
		lit.Value.Neg(lit.Value)
	}
	return lit, nil
}

// MustParseInt is like ParseInt, but panics on error.
func MustParseInt(s string) Literal {
	lit, err := ParseInt(s)
	if err != nil {
		panic(err)
	}
	return lit
}

// prepareString cleans the string from spaces and the sign.
// Returns the offset of the first meaningful symbol.
func prepareString(s string) (prepared string, offset int, neg bool) {
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	offset = len(s) - len(trimmed)
	trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '-':
			neg = true
			fallthrough
		case '+':
			trimmed = trimmed[1:]
			offset++
		}
	}
	return trimmed, offset, neg
}

func doParseInt(s string) (Literal, error) {
	if idx := strings.IndexByte(s, sizeDelim); idx >= 0 {
		return parseSized(s, idx)
	}
	base, prefixLen := 10, 0
	if len(s) > 1 && s[0] == '0' {
		if b := baseFromRune(s[1]); b != 0 && b != 10 {
			base, prefixLen = b, 2
		} else {
			return Literal{}, newPosError("leading zeros in decimal literal", 0)
		}
	}
	v, err := parseDigits(s[prefixLen:], base, prefixLen > 0)
	if err != nil {
		return Literal{}, addPosErrorOffset(err, prefixLen)
	}
	return Literal{Value: v}, nil
}

// parseSized parses literals like 12'hFFC. idx is the index of the ' symbol.
func parseSized(s string, idx int) (Literal, error) {
	var lit Literal
	if idx > 0 {
		w, err := strconv.ParseUint(s[:idx], 10, 31)
		if err != nil {
			return lit, newPosError("bad literal width", 0)
		}
		if w == 0 {
			return lit, newPosError("zero literal width", 0)
		}
		lit.Width, lit.Sized = uint(w), true
	}
	pos := idx + 1
	if pos < len(s) && (s[pos] == 's' || s[pos] == 'S') {
		pos++
	}
	if pos >= len(s) {
		return lit, newPosError("missing base", pos)
	}
	base := baseFromRune(s[pos])
	if base == 0 {
		return lit, newPosError(fmt.Sprintf("unknown base '%c'", s[pos]), pos)
	}
	pos++
	v, err := parseDigits(s[pos:], base, false)
	if err != nil {
		return lit, addPosErrorOffset(err, pos)
	}
	lit.Value = v
	return lit, nil
}

func baseFromRune(r byte) int {
	switch r {
	case 'b', 'B':
		return 2
	case 'o', 'O':
		return 8
	case 'd', 'D':
		return 10
	case 'x', 'X', 'h', 'H':
		return 16
	}
	return 0
}

// parseDigits parses digits in the given base. A single '_' is allowed between digits,
// and right after a base prefix, if afterPrefix is set.
func parseDigits(s string, base int, afterPrefix bool) (*big.Int, error) {
	if len(s) == 0 {
		return nil, newPosError("missing digits", 0)
	}
	var builder strings.Builder
	builder.Grow(len(s))
	prevDigit := afterPrefix
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == digitSep {
			if !prevDigit || i == len(s)-1 {
				return nil, newPosError("misplaced '_'", i)
			}
			prevDigit = false
			continue
		}
		if digitValue(c) >= base {
			return nil, newPosError(fmt.Sprintf("invalid digit '%c' for base %d", c, base), i)
		}
		builder.WriteByte(c)
		prevDigit = true
	}
	v, ok := new(big.Int).SetString(builder.String(), base)
	if !ok {
		return nil, fmt.Errorf("bad number %q: %w", s, ErrSyntax)
	}
	return v, nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

// ParseBinary parses a string of '0' and '1' symbols into a number.
// Unlike ParseInt, the string is taken as is: no prefixes, signs, spaces, or separators.
func ParseBinary(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("empty input: %w", ErrSyntax)
	}
	var result uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '0' && c != '1' {
			return 0, newPosError(fmt.Sprintf("invalid binary digit %q", rune(c)), i+1)
		}
		if result>>63 == 1 {
			return 0, newPosError("value out of range", i+1)
		}
		result = result<<1 | uint64(c-'0')
	}
	return result, nil
}
