// Package pipeline orchestrates the hazard analysis workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/retroenv/hazardscan/internal/hazard"
	"github.com/retroenv/hazardscan/internal/options"
	"github.com/retroenv/hazardscan/internal/scanner"
	"github.com/retroenv/hazardscan/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Result summarizes the analysis of a program.
type Result struct {
	Instructions int                 // number of analyzed instructions
	Counts       map[hazard.Kind]int // number of dependencies per reported kind
	Registers    []string            // sorted registers involved in any reported dependency
	Unknown      []int               // indexes of instructions with unsupported opcodes
}

// Pipeline orchestrates the complete analysis workflow.
type Pipeline struct {
	logger *log.Logger
}

// New creates a new analysis pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
	}
}

// Execute runs the analysis on the instructions in program order and writes
// the requested reports.
func (p *Pipeline) Execute(ctx context.Context, lines []string, analysisOpts options.Analysis,
	w io.Writer) (*Result, error) {

	s := scanner.New(lines)
	p.logger.Debug("Decoded instructions", log.Int("count", s.Len()))

	result := &Result{
		Instructions: s.Len(),
		Counts:       make(map[hazard.Kind]int, len(analysisOpts.Kinds)),
		Unknown:      s.Unknown(),
	}

	if analysisOpts.Warn {
		p.warnMalformed(s, result.Unknown)
	}

	reports, err := writer.New(s, w).Write(ctx, analysisOpts.Kinds)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	registers := set.New[string]()
	var registerList []string
	for _, report := range reports {
		result.Counts[report.Kind] = len(report.Dependencies)
		for _, dep := range report.Dependencies {
			if !registers.Contains(dep.Register) {
				registers.Add(dep.Register)
				registerList = append(registerList, dep.Register)
			}
		}

		p.logger.Debug("Scanned dependencies",
			log.String("kind", report.Kind.String()),
			log.Int("count", len(report.Dependencies)))
	}

	sort.Strings(registerList)
	result.Registers = registerList
	return result, nil
}

// warnMalformed logs instructions that the permissive decoding silently ignores.
func (p *Pipeline) warnMalformed(s *scanner.Scanner, unknown []int) {
	for _, index := range unknown {
		ins := s.Instruction(index)
		p.logger.Warn("Unknown opcode, instruction is ignored",
			log.Int("index", index),
			log.String("opcode", ins.Opcode()),
			log.String("instruction", ins.Raw))
	}

	for i := range s.Len() {
		ins := s.Instruction(i)
		missing := ins.MissingSlots()
		if len(missing) == 0 {
			continue
		}
		p.logger.Warn("Missing operands, slots are skipped",
			log.Int("index", i),
			log.String("instruction", ins.Raw),
			log.String("slots", fmt.Sprint(missing)))
	}
}
