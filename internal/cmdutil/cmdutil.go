// Package cmdutil holds the plumbing shared by the command line tools:
// logging, configuration, and argument handling.
package cmdutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of the environment variables, which can be used instead of flags.
	EnvPrefix = "BITLOGIC"

	// FlagVerbose enables debug logging.
	FlagVerbose = "verbose"
)

// ErrUsage is returned for a bad command line. The usage is printed to stdout then.
var ErrUsage = errors.New("bad usage")

// UsageErrorf returns an error wrapping ErrUsage.
func UsageErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// NewConfig returns a viper instance with all the flags of fs bound to it.
// Flag 'some-flag' can also be set with BITLOGIC_SOME_FLAG environment variable.
func NewConfig(fs *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		log.Fatal().Err(err).Msg("could not bind flags")
	}
	return v
}

// AddVerboseFlag adds the --verbose flag to fs.
func AddVerboseFlag(fs *pflag.FlagSet) {
	fs.BoolP(FlagVerbose, "v", false, "log debug messages to stderr")
}

// InitLogger sets up the global logger to write human-readable messages to stderr.
func InitLogger(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Execute runs c with given arguments and returns the exit code.
// Usage errors print the usage to c's output, other errors are logged.
func Execute(c *cobra.Command, args []string) int {
	InitLogger(false)
	c.SilenceErrors, c.SilenceUsage = true, true
	c.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})
	c.SetArgs(SeparatePositionals(c.Flags(), args))
	err := c.Execute()
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrUsage) {
		log.Error().Err(err).Msg("bad arguments")
		_ = c.Usage()
		return 1
	}
	log.Error().Err(err).Msgf("%s failed", c.Name())
	return 1
}

// SeparatePositionals moves positional arguments after a "--" terminator,
// so that negative numbers like -4 are not taken for flags.
func SeparatePositionals(fs *pflag.FlagSet, args []string) []string {
	var flags, positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			positionals = append(positionals, args[i+1:]...)
			i = len(args)
		case arg == "-" || !strings.HasPrefix(arg, "-") || isNegativeNumber(arg):
			positionals = append(positionals, arg)
		default:
			flags = append(flags, arg)
			if takesValue(fs, arg) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	return append(append(flags, "--"), positionals...)
}

func isNegativeNumber(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && (arg[1] >= '0' && arg[1] <= '9' || arg[1] == '\'')
}

// takesValue returns true, if arg is a flag, which takes the next argument as its value.
func takesValue(fs *pflag.FlagSet, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var f *pflag.Flag
	if strings.HasPrefix(arg, "--") {
		f = fs.Lookup(arg[2:])
	} else {
		// for combined shorthands, like -vf, only the last one can take a value.
		f = fs.ShorthandLookup(arg[len(arg)-1:])
	}
	return f != nil && len(f.NoOptDefVal) == 0
}
