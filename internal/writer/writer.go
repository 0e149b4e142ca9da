// Package writer implements the text output of the hazard reports.
package writer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/hazardscan/internal/hazard"
	"github.com/retroenv/hazardscan/internal/opcode"
	"github.com/retroenv/hazardscan/internal/scanner"
)

const separator = "------------------------------------"

// roles contains the verbs describing how the earlier and the later
// instruction of a hazard access the register.
var roles = map[hazard.Kind][2]string{
	hazard.RAW: {"writes to", "reads from"},
	hazard.WAR: {"reads from", "writes to"},
	hazard.WAW: {"writes to", "also writes to"},
}

// Writer writes hazard reports of a scanned program.
type Writer struct {
	scanner *scanner.Scanner
	writer  io.Writer
}

// New creates a new report writer.
func New(s *scanner.Scanner, w io.Writer) *Writer {
	return &Writer{
		scanner: s,
		writer:  w,
	}
}

// Report contains the dependencies of one hazard kind.
type Report struct {
	Kind         hazard.Kind
	Dependencies []hazard.Dependency
}

// Write scans the program for every given hazard kind and writes the reports
// in the given order. The context is checked before every scan.
func (w Writer) Write(ctx context.Context, kinds []hazard.Kind) ([]Report, error) {
	reports := make([]Report, 0, len(kinds))
	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("writing reports interrupted: %w", err)
		}

		deps, err := w.scanner.Scan(kind)
		if err != nil {
			return nil, fmt.Errorf("scanning %s dependencies: %w", kind, err)
		}
		if err := w.WriteReport(kind, deps); err != nil {
			return nil, fmt.Errorf("writing %s report: %w", kind, err)
		}
		reports = append(reports, Report{Kind: kind, Dependencies: deps})
	}
	return reports, nil
}

// WriteReport writes the report of the given dependencies. For an empty
// program the report only states that there is nothing to analyze.
func (w Writer) WriteReport(kind hazard.Kind, deps []hazard.Dependency) error {
	verbs, ok := roles[kind]
	if !ok {
		return fmt.Errorf("%w %d", hazard.ErrUnknownKind, int(kind))
	}

	buf := &strings.Builder{}
	fmt.Fprintf(buf, "--- Identifying %s Dependencies ---\n", kind)

	if w.scanner.Len() == 0 {
		buf.WriteString("No instructions to analyze.\n")
		return w.flush(buf)
	}

	for _, dep := range deps {
		fmt.Fprintf(buf, "%s Dependency Found:\n", dep.Kind)
		fmt.Fprintf(buf, "\tInstruction %d: (%s) %s register %s.\n", dep.Earlier, dep.EarlierText, verbs[0], dep.Register)
		fmt.Fprintf(buf, "\tInstruction %d: (%s) %s register %s.\n", dep.Later, dep.LaterText, verbs[1], dep.Register)
		buf.WriteString(separator + "\n")
	}
	buf.WriteString("--- Analysis Complete ---\n")

	return w.flush(buf)
}

// WriteOpcodes writes the supported opcodes with their operand slots.
func WriteOpcodes(writer io.Writer) error {
	buf := &strings.Builder{}
	for _, name := range opcode.Names() {
		def, _ := opcode.Lookup(name)

		dest := "none"
		if def.WritesRegister() {
			dest = fmt.Sprintf("%d", def.Destination)
		}

		sources := make([]string, 0, len(def.Sources))
		for _, slot := range def.Sources {
			sources = append(sources, fmt.Sprintf("%d", slot))
		}
		if len(sources) == 0 {
			sources = append(sources, "none")
		}

		line := fmt.Sprintf("%-6s destination: %-4s sources: %-5s%s", name, dest, strings.Join(sources, ","), class(name))
		buf.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	if _, err := io.WriteString(writer, buf.String()); err != nil {
		return fmt.Errorf("writing opcode list: %w", err)
	}
	return nil
}

// class returns the annotation of the opcode in the opcode list.
func class(name string) string {
	switch {
	case opcode.BranchInstructions.Contains(name):
		return " branch"
	case opcode.MemoryReadInstructions.Contains(name):
		return " memory read"
	case opcode.MemoryWriteInstructions.Contains(name):
		return " memory write"
	default:
		return ""
	}
}

func (w Writer) flush(buf *strings.Builder) error {
	if _, err := io.WriteString(w.writer, buf.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
