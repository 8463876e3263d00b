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

const reportMinus4 = "input value = -4\n" +
	"unsigned value = 4092\n" +
	"signed value = -4\n" +
	"hex value = 12'hFFC\n" +
	"binary value = 12'b111111111100\n"

func TestExplainCmd(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		args []string
		out  string
	}{
		{[]string{"-4", "12"}, reportMinus4},
		{[]string{"0xFFC", "12"}, "input value = 4092\n" + reportMinus4[len("input value = -4\n"):]},
		{[]string{"12'hFFC"}, "input value = 4092\n" + reportMinus4[len("input value = -4\n"):]},
		{[]string{"-v", "-4", "12"}, reportMinus4},
		{[]string{"-4", "12", "--frac", "2"}, reportMinus4 + "fixed value = -1\n"},
		{[]string{"--format=json", "-4", "12"},
			`{"width":12,"input":-4,"unsigned":4092,"signed":-4,"hex":"12'hFFC","binary":"12'b111111111100"}` + "\n"},
		{[]string{"300", "8"}, "input value = 300\n" +
			"unsigned value = 44\n" +
			"signed value = 44\n" +
			"hex value = 8'h2C\n" +
			"binary value = 8'b00101100\n"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, code := execute(test.args...)
			a.Equal(0, code)
			a.Equal(test.out, out)
		})
	}
}

func TestExplainCmdEnv(t *testing.T) {
	a := assert.New(t)
	t.Setenv("BITLOGIC_FORMAT", "json")
	out, code := execute("-1", "4")
	a.Equal(0, code)
	a.JSONEq(`{"width":4,"input":-1,"unsigned":15,"signed":-1,"hex":"4'hF","binary":"4'b1111"}`, out)

	out, code = execute("--format", "text", "-1", "4")
	a.Equal(0, code)
	a.Contains(out, "unsigned value = 15\n")
}

func TestExplainCmdErrors(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		args  []string
		usage bool
	}{
		{nil, true},
		{[]string{"1", "2", "3"}, true},
		{[]string{"-4"}, true},
		{[]string{"--format", "yaml", "-4", "12"}, true},
		{[]string{"--no-such-flag", "-4", "12"}, true},
		{[]string{"four", "12"}, false},
		{[]string{"-4", "0"}, false},
		{[]string{"-4", "-12"}, false},
		{[]string{"-4", "twelve"}, false},
		{[]string{"--frac", "13", "-4", "12"}, false},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, code := execute(test.args...)
			a.Equal(1, code)
			if test.usage {
				a.Contains(out, "Usage:")
				a.Contains(out, "bitwidth-explain <value> [<width>]")
			} else {
				a.Empty(out)
			}
		})
	}
}
