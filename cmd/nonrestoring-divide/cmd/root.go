package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avdva/bitlogic/internal/cmdutil"
	"github.com/avdva/bitlogic/nrdiv"
)

const (
	flagTrace = "trace"

	// 11 / 3
	defaultDividend = "1011"
	defaultDivisor  = "0011"
)

var cfg *viper.Viper

// Cmd divides two binary numbers with the non-restoring algorithm.
var Cmd = &cobra.Command{
	Use:   "nonrestoring-divide [<dividend> <divisor>]",
	Short: "Divide two binary numbers with radix-2 non-restoring division",
	Long: `Divide two binary numbers with radix-2 non-restoring division.

The length of the dividend sets the register width. The divisor must fit that width.
Without arguments, 1011 is divided by 0011.`,
	Example: "  nonrestoring-divide 1011 0011\n  nonrestoring-divide --trace 1000 0011",
	Args:    checkArgs,
	RunE:    runE,
	PreRun: func(*cobra.Command, []string) {
		cmdutil.InitLogger(cfg.GetBool(cmdutil.FlagVerbose))
	},
}

func init() {
	Cmd.Flags().BoolP(flagTrace, "t", false, "print the registers after each iteration")
	cmdutil.AddVerboseFlag(Cmd.Flags())
	cfg = cmdutil.NewConfig(Cmd.Flags())
}

func checkArgs(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return cmdutil.UsageErrorf("expected <dividend> <divisor>, got %d arguments", len(args))
	}
	return nil
}

func runE(cmd *cobra.Command, args []string) error {
	dividend, divisor := defaultDividend, defaultDivisor
	if len(args) == 2 {
		dividend, divisor = args[0], args[1]
	}
	log.Debug().Str("dividend", dividend).Str("divisor", divisor).Msg("dividing")

	res, err := nrdiv.DivideTrace(dividend, divisor)
	if err != nil {
		return fmt.Errorf("cannot divide %s by %s: %w", dividend, divisor, err)
	}
	log.Debug().
		Uint("width", res.Width).
		Bool("restored", res.Restored).
		Msg("division done")

	out := cmd.OutOrStdout()
	if cfg.GetBool(flagTrace) {
		if err := writeTrace(out, res); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "Quotient:  %s\nRemainder: %s\n", res.QuotientBits(), res.RemainderBits())
	return err
}

func writeTrace(w io.Writer, res nrdiv.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "step\top\tA\tQ")
	fmt.Fprintf(tw, "0\t-\t%s\t%s\n", res.Initial.ABits(), res.Initial.QBits())
	for i, s := range res.Steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, s.Op, s.ABits(), s.QBits())
	}
	if res.Restored {
		fmt.Fprintf(tw, "fix\t%s\t%s\t%s\n", nrdiv.OpAdd, res.Final.ABits(), res.Final.QBits())
	}
	return tw.Flush()
}
