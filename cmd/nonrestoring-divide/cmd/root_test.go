package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/avdva/bitlogic/internal/cmdutil"
)

func execute(args ...string) (string, int) {
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	code := cmdutil.Execute(Cmd, args)
	return out.String(), code
}

func TestDivideCmd(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		args []string
		out  string
	}{
		{nil, "Quotient:  11\nRemainder: 10\n"},
		{[]string{"1011", "0011"}, "Quotient:  11\nRemainder: 10\n"},
		{[]string{"0000", "0001"}, "Quotient:  0\nRemainder: 0\n"},
		{[]string{"1111", "0001"}, "Quotient:  1111\nRemainder: 0\n"},
		{[]string{"-v", "1111", "0001"}, "Quotient:  1111\nRemainder: 0\n"},
		{[]string{"--trace", "1000", "0011"},
			"step  op   A      Q\n" +
				"0     -    00000  1000\n" +
				"1     sub  11110  0000\n" +
				"2     add  11111  0000\n" +
				"3     add  00001  0001\n" +
				"4     sub  11111  0010\n" +
				"fix   add  00010  0010\n" +
				"Quotient:  10\nRemainder: 10\n"},
		{[]string{"1", "1", "-t"},
			"step  op   A   Q\n" +
				"0     -    00  1\n" +
				"1     sub  00  1\n" +
				"Quotient:  1\nRemainder: 0\n"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, code := execute(test.args...)
			a.Equal(0, code)
			a.Equal(test.out, out)
		})
	}
}

func TestDivideCmdEnv(t *testing.T) {
	a := assert.New(t)
	t.Setenv("BITLOGIC_TRACE", "true")
	out, code := execute("1", "1")
	a.Equal(0, code)
	a.Contains(out, "step  op")
}

func TestDivideCmdErrors(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		args  []string
		usage bool
	}{
		{[]string{"1011"}, true},
		{[]string{"1011", "0011", "1"}, true},
		{[]string{"--bad", "1011", "0011"}, true},
		{[]string{"1021", "0011"}, false},
		{[]string{"1011", "0000"}, false},
		{[]string{"0011", "10011"}, false},
		{[]string{"", "1"}, false},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, code := execute(test.args...)
			a.Equal(1, code)
			if test.usage {
				a.Contains(out, "Usage:")
				a.Contains(out, "nonrestoring-divide [<dividend> <divisor>]")
			} else {
				a.Empty(out)
			}
		})
	}
}
