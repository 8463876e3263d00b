package bitwidth

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	fieldInput    = "input value"
	fieldUnsigned = "unsigned value"
	fieldSigned   = "signed value"
	fieldHex      = "hex value"
	fieldBinary   = "binary value"
	fieldFixed    = "fixed value"
)

var (
	five = big.NewInt(5)
)

// Field is a named line of a report.
type Field struct {
	Name  string
	Value string
}

// Report holds all the views of a value at a given width.
type Report struct {
	Width    Width
	Input    *big.Int
	Unsigned *big.Int
	Signed   *big.Int
	Hex      string
	Binary   string
	// Frac is the number of fractional bits for the fixed-point view.
	// Fixed is set only if Frac > 0.
	Frac  uint
	Fixed *decimal.Decimal
}

// Explain returns a report for v at width w.
// The width must be positive, as the signed view needs a sign bit.
func Explain(v *big.Int, w Width) (Report, error) {
	if w == 0 {
		return Report{}, fmt.Errorf("%w: width must be positive", ErrInvalidWidth)
	}
	return Report{
		Width:    w,
		Input:    new(big.Int).Set(v),
		Unsigned: ToUnsigned(v, w),
		Signed:   ToSigned(v, w),
		Hex:      FormatHex(v, w),
		Binary:   FormatBin(v, w),
	}, nil
}

// ExplainFixed is like Explain, but also interprets the signed value
// as a fixed-point number with frac fractional bits (Q format).
// frac must not exceed w. frac == 0 is the same as Explain.
func ExplainFixed(v *big.Int, w Width, frac uint) (Report, error) {
	r, err := Explain(v, w)
	if err != nil {
		return r, err
	}
	if frac > uint(w) {
		return Report{}, fmt.Errorf("%w: %d fractional bits exceed width %d", ErrInvalidWidth, frac, w)
	}
	if frac > 0 {
		fixed := FixedValue(r.Signed, frac)
		r.Frac, r.Fixed = frac, &fixed
	}
	return r, nil
}

// FixedValue returns s/2^frac as an exact decimal.
func FixedValue(s *big.Int, frac uint) decimal.Decimal {
	// s/2^frac = s*5^frac/10^frac
	m := new(big.Int).Exp(five, big.NewInt(int64(frac)), nil)
	m.Mul(m, s)
	return decimal.NewFromBigInt(m, -int32(frac))
}

// Fields returns report lines in the order they are printed.
func (r Report) Fields() []Field {
	fields := []Field{
		{fieldInput, r.Input.String()},
		{fieldUnsigned, r.Unsigned.String()},
		{fieldSigned, r.Signed.String()},
		{fieldHex, r.Hex},
		{fieldBinary, r.Binary},
	}
	if r.Fixed != nil {
		fields = append(fields, Field{fieldFixed, r.Fixed.String()})
	}
	return fields
}

// WriteTo writes the report as 'name = value' lines.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, f := range r.Fields() {
		n, err := fmt.Fprintf(w, "%s = %s\n", f.Name, f.Value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the text form of the report.
func (r Report) String() string {
	var builder strings.Builder
	r.WriteTo(&builder)
	return builder.String()
}

type jsonReport struct {
	Width    Width            `json:"width"`
	Input    *big.Int         `json:"input"`
	Unsigned *big.Int         `json:"unsigned"`
	Signed   *big.Int         `json:"signed"`
	Hex      string           `json:"hex"`
	Binary   string           `json:"binary"`
	Frac     uint             `json:"frac,omitempty"`
	Fixed    *decimal.Decimal `json:"fixed,omitempty"`
}

// MarshalJSON marshals the report as an object. Numbers are not quoted, except the fixed-point value.
func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonReport(r))
}
