// Package options contains the program options.
package options

import (
	"github.com/retroenv/hazardscan/internal/hazard"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input instruction file, - for stdin"`
	Output string `flag:"o" usage:"output report file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.s)"`
}

// Flags contains behavior options.
type Flags struct {
	Kinds string `flag:"k" usage:"comma separated hazard kinds to report: raw, war, waw" default:"raw,war,waw"`
	Warn  bool   `flag:"warn" usage:"log unknown opcodes and missing operands"`
	List  bool   `flag:"list" usage:"list the supported opcodes and exit"`
	Debug bool   `flag:"debug" usage:"enable debug logging"`
	Quiet bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the hazard scanner.
type Program struct {
	Parameters
	Flags
}

// Analysis defines options to control the analysis of a single program.
type Analysis struct {
	Kinds []hazard.Kind // hazard kinds to report, in report order
	Warn  bool          // log unknown opcodes and missing operand slots
}

// NewAnalysis returns a new options instance with default options.
func NewAnalysis() Analysis {
	return Analysis{
		Kinds: hazard.Kinds(),
	}
}
