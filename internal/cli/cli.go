// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/hazardscan/internal/config"
	"github.com/retroenv/hazardscan/internal/options"
)

// ParseFlags parses command line flags and returns program and analysis options
func ParseFlags() (options.Program, options.Analysis, error) {
	var opts options.Program
	flags := newFlagSet(&opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil {
		return opts, options.Analysis{}, &UsageError{flags: flags, msg: err.Error()}
	}
	if opts.List {
		return opts, options.Analysis{}, nil
	}
	if len(args) == 0 && opts.Input == "" && opts.Batch == "" {
		return opts, options.Analysis{}, &UsageError{flags: flags, msg: "no instruction file given"}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Analysis{}, err
	}

	if opts.Input == "" && opts.Batch == "" {
		opts.Input = args[0]
	}

	analysisOpts, err := config.CreateAnalysisOptions(opts)
	if err != nil {
		return opts, options.Analysis{}, err
	}

	return opts, analysisOpts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage information of all flags.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: hazardscan [options] <instruction file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && len(arg) > 1 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to analyze, please pass the file to analyze as last argument", arg),
			}
		}
	}
	return nil
}

// newFlagSet creates the flag set for all options. Usage output is left to
// UsageError.ShowUsage so that it is printed only once.
func newFlagSet(opts *options.Program) *flag.FlagSet {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {}
	readOptionFlags(flags, opts)
	return flags
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input instruction file, - reads from stdin")
	flags.StringVar(&opts.Output, "o", "", "name of the output report file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the report files, for example *.s")
	flags.StringVar(&opts.Kinds, "k", "raw,war,waw", "comma separated hazard kinds to report (raw/war/waw)")
	flags.BoolVar(&opts.Warn, "warn", false, "log instructions with unknown opcodes or missing operands")
	flags.BoolVar(&opts.List, "list", false, "list the supported opcodes and their operand slots")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
