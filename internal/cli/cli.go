// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses the command line and the environment settings.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args, os.LookupEnv, os.Stderr)
}

func parseArgs(args []string, lookup config.LookupFunc, output io.Writer) (options.Program, error) {
	var opts options.Program
	if err := config.FromEnvironment(&opts, lookup); err != nil {
		return opts, err
	}

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(output)
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args[1:]); err != nil {
		return opts, &UsageError{flags: flags, output: output, msg: err.Error()}
	}

	positional := flags.Args()
	if len(positional) == 0 {
		return opts, &UsageError{flags: flags, output: output, msg: "missing program file"}
	}
	if err := validateArgs(positional); err != nil {
		err.flags = flags
		err.output = output
		return opts, err
	}
	opts.Input = positional[0]

	if err := validateOptions(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags  *flag.FlagSet
	output io.Writer
	msg    string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	_, _ = fmt.Fprintf(e.output, "usage: retrochip8 [options] <program file>\n\n")
	e.flags.PrintDefaults()
	_, _ = fmt.Fprintf(e.output, "\nenvironment: %s, %s, %s, %s, %s, %s\n",
		config.EnvDisplay, config.EnvScale, config.EnvWebAddr, config.EnvLog, config.EnvTrace, config.EnvMute)
}

// validateArgs checks that exactly one program file is passed as last argument.
func validateArgs(args []string) *UsageError {
	for i, arg := range args {
		if i == 0 {
			continue
		}
		if arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
		return &UsageError{msg: fmt.Sprintf("unexpected argument %s, only one program file is supported", arg)}
	}
	return nil
}

// validateOptions validates option values.
func validateOptions(opts options.Program) error {
	if opts.Frequency <= 0 {
		return fmt.Errorf("invalid frequency %d: must be a positive number of Hz", opts.Frequency)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	const usage = "instruction frequency in Hz"
	flags.IntVar(&opts.Frequency, "f", machine.DefaultFrequency, usage)
	flags.IntVar(&opts.Frequency, "freq", machine.DefaultFrequency, usage)
}
