// Package instruction decodes textual assembly instructions into their
// destination and source register operands.
package instruction

import (
	"strings"

	"github.com/retroenv/hazardscan/internal/opcode"
)

// isSeparator reports whether r separates tokens. Only ASCII whitespace
// counts as blank, other Unicode spaces stay part of a token.
func isSeparator(r rune) bool {
	switch r {
	case ',', ';', '(', ')', ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// Tokenize splits a raw instruction into its tokens. The delimiters , ; ( )
// separate tokens like ASCII whitespace does, so that "LD R1, 0(R2)" results
// in LD, R1, 0 and R2. Empty input results in no tokens.
func Tokenize(raw string) []string {
	fields := strings.FieldsFunc(raw, isSeparator)
	tokens := make([]string, 0, len(fields))
	return append(tokens, fields...)
}

// Instruction is a decoded instruction line. It is not modified after creation.
type Instruction struct {
	Raw    string   // original text of the instruction
	Tokens []string // tokens, the first one is the opcode
}

// New tokenizes the raw instruction text.
func New(raw string) Instruction {
	return Instruction{
		Raw:    raw,
		Tokens: Tokenize(raw),
	}
}

// Opcode returns the opcode token as written in the source or an empty
// string for an empty instruction.
func (i Instruction) Opcode() string {
	if len(i.Tokens) == 0 {
		return ""
	}
	return i.Tokens[0]
}

// Known returns whether the opcode of the instruction is supported.
func (i Instruction) Known() bool {
	_, ok := i.definition()
	return ok
}

// Destination returns the register written by the instruction. It returns
// false for unknown opcodes, instructions that do not write a register and
// instructions that miss the destination operand.
func (i Instruction) Destination() (string, bool) {
	def, ok := i.definition()
	if !ok || !def.WritesRegister() {
		return "", false
	}
	return i.token(def.Destination)
}

// Sources returns the registers read by the instruction in the declaration
// order of the opcode table. Missing operands are skipped.
func (i Instruction) Sources() []string {
	def, ok := i.definition()
	if !ok {
		return nil
	}

	var sources []string
	for _, slot := range def.Sources {
		if reg, ok := i.token(slot); ok {
			sources = append(sources, reg)
		}
	}
	return sources
}

// MissingSlots returns the operand slots that the opcode table declares but
// that are not present in the instruction, destination slot first.
func (i Instruction) MissingSlots() []int {
	def, ok := i.definition()
	if !ok {
		return nil
	}

	var missing []int
	if def.WritesRegister() {
		if _, ok := i.token(def.Destination); !ok {
			missing = append(missing, def.Destination)
		}
	}
	for _, slot := range def.Sources {
		if _, ok := i.token(slot); !ok {
			missing = append(missing, slot)
		}
	}
	return missing
}

func (i Instruction) definition() (opcode.Definition, bool) {
	if len(i.Tokens) == 0 {
		return opcode.Definition{}, false
	}
	return opcode.Lookup(i.Tokens[0])
}

func (i Instruction) token(slot int) (string, bool) {
	if slot <= 0 || slot >= len(i.Tokens) {
		return "", false
	}
	return i.Tokens[slot], true
}
