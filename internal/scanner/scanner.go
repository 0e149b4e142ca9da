// Package scanner detects RAW, WAR and WAW data hazards between the
// instructions of a program.
package scanner

import (
	"fmt"

	"github.com/retroenv/hazardscan/internal/hazard"
	"github.com/retroenv/hazardscan/internal/instruction"
)

// Scanner holds a decoded program and reports the data hazards between its
// instructions. All instructions are decoded once on creation and the scanner
// does not modify its state afterwards, its scan functions can therefore be
// called concurrently from multiple goroutines.
type Scanner struct {
	decoded []decoded
}

// decoded caches the operand roles of an instruction.
type decoded struct {
	instruction.Instruction

	destination    string
	hasDestination bool
	sources        []string
}

// matchFunc returns the registers that cause a hazard between the earlier
// and the later instruction, one entry per reported dependency.
type matchFunc func(earlier, later *decoded) []string

// New returns a scanner for the given instructions in program order. The
// index of every instruction in the reports is its index in lines.
func New(lines []string) *Scanner {
	s := &Scanner{
		decoded: make([]decoded, len(lines)),
	}
	for i, line := range lines {
		ins := instruction.New(line)
		dest, ok := ins.Destination()
		s.decoded[i] = decoded{
			Instruction:    ins,
			destination:    dest,
			hasDestination: ok,
			sources:        ins.Sources(),
		}
	}
	return s
}

// Len returns the number of instructions.
func (s *Scanner) Len() int {
	return len(s.decoded)
}

// Instruction returns the decoded instruction at the given index.
func (s *Scanner) Instruction(index int) instruction.Instruction {
	return s.decoded[index].Instruction
}

// Unknown returns the indexes of all non empty instructions with an opcode
// that is not supported. These instructions never take part in a hazard.
func (s *Scanner) Unknown() []int {
	var unknown []int
	for i, dec := range s.decoded {
		if len(dec.Tokens) > 0 && !dec.Known() {
			unknown = append(unknown, i)
		}
	}
	return unknown
}

// Scan returns the dependencies of the given hazard kind.
func (s *Scanner) Scan(kind hazard.Kind) ([]hazard.Dependency, error) {
	switch kind {
	case hazard.RAW:
		return s.RAW(), nil
	case hazard.WAR:
		return s.WAR(), nil
	case hazard.WAW:
		return s.WAW(), nil
	default:
		return nil, fmt.Errorf("%w %d", hazard.ErrUnknownKind, int(kind))
	}
}

// RAW returns all read after write dependencies: a later instruction reads
// the register that an earlier instruction writes.
func (s *Scanner) RAW() []hazard.Dependency {
	return s.scan(hazard.RAW, func(earlier, later *decoded) []string {
		if !earlier.hasDestination {
			return nil
		}
		var regs []string
		for _, src := range later.sources {
			if src == earlier.destination {
				regs = append(regs, src)
			}
		}
		return regs
	})
}

// WAR returns all write after read dependencies: a later instruction writes
// the register that an earlier instruction reads.
func (s *Scanner) WAR() []hazard.Dependency {
	return s.scan(hazard.WAR, func(earlier, later *decoded) []string {
		if !later.hasDestination {
			return nil
		}
		var regs []string
		for _, src := range earlier.sources {
			if src == later.destination {
				regs = append(regs, src)
			}
		}
		return regs
	})
}

// WAW returns all write after write dependencies: two instructions write
// the same register.
func (s *Scanner) WAW() []hazard.Dependency {
	return s.scan(hazard.WAW, func(earlier, later *decoded) []string {
		if !earlier.hasDestination || !later.hasDestination {
			return nil
		}
		if earlier.destination != later.destination {
			return nil
		}
		return []string{earlier.destination}
	})
}

// scan tests all instruction pairs i < j in program order and returns one
// dependency per matched register, ordered by i, then j, then slot order.
func (s *Scanner) scan(kind hazard.Kind, match matchFunc) []hazard.Dependency {
	var deps []hazard.Dependency
	for i := range s.decoded {
		earlier := &s.decoded[i]
		for j := i + 1; j < len(s.decoded); j++ {
			later := &s.decoded[j]
			for _, reg := range match(earlier, later) {
				deps = append(deps, hazard.Dependency{
					Kind:        kind,
					Earlier:     i,
					Later:       j,
					Register:    reg,
					EarlierText: earlier.Raw,
					LaterText:   later.Raw,
				})
			}
		}
	}
	return deps
}
