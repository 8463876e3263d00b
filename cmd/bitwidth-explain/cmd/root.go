package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avdva/bitlogic/bitwidth"
	"github.com/avdva/bitlogic/internal/cmdutil"
	su "github.com/avdva/bitlogic/internal/strutil"
)

const (
	flagFormat = "format"
	flagFrac   = "frac"

	formatText = "text"
	formatJSON = "json"
)

var cfg *viper.Viper

// Cmd prints all the views of a value at a given bit width.
var Cmd = &cobra.Command{
	Use:   "bitwidth-explain <value> [<width>]",
	Short: "Show unsigned, signed, hex and binary views of a value at a bit width",
	Long: `Show unsigned, signed, hex and binary views of a value at a bit width.

The value may be decimal, prefixed (0x, 0o, 0b), or a sized literal like 12'hFFC.
Sized literals carry their width, so the width argument can be omitted for them.
Values which do not fit the width are truncated.`,
	Example: "  bitwidth-explain -4 12\n  bitwidth-explain 12'hFFC\n  bitwidth-explain --frac 4 0x7FF 12",
	Args:    checkArgs,
	RunE:    runE,
	PreRun: func(*cobra.Command, []string) {
		cmdutil.InitLogger(cfg.GetBool(cmdutil.FlagVerbose))
	},
}

func init() {
	Cmd.Flags().String(flagFormat, formatText, "output format, text or json")
	Cmd.Flags().UintP(flagFrac, "f", 0, "number of fractional bits to show a fixed-point view of the signed value")
	cmdutil.AddVerboseFlag(Cmd.Flags())
	cfg = cmdutil.NewConfig(Cmd.Flags())
}

func checkArgs(_ *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return cmdutil.UsageErrorf("expected <value> <width>, got %d arguments", len(args))
	}
	return nil
}

func runE(cmd *cobra.Command, args []string) error {
	lit, err := su.ParseInt(args[0])
	if err != nil {
		return fmt.Errorf("bad value %q: %w", args[0], err)
	}
	var width bitwidth.Width
	switch {
	case len(args) == 2:
		width, err = bitwidth.ParseWidth(args[1])
	case lit.Sized:
		width, err = bitwidth.NewWidth(int(lit.Width))
	default:
		return cmdutil.UsageErrorf("width is required for %q", args[0])
	}
	if err != nil {
		return err
	}

	frac := cfg.GetUint(flagFrac)
	log.Debug().
		Str("value", lit.Value.String()).
		Uint("width", uint(width)).
		Uint("frac", frac).
		Msg("explaining value")

	report, err := bitwidth.ExplainFixed(lit.Value, width, frac)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format := cfg.GetString(flagFormat); format {
	case formatText:
		_, err = report.WriteTo(out)
	case formatJSON:
		err = json.NewEncoder(out).Encode(report)
	default:
		err = cmdutil.UsageErrorf("unknown format %q", format)
	}
	return err
}
