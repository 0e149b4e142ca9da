// Package opcode contains the operand role table of the supported instruction set.
package opcode

import (
	"sort"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// NoDestination is the destination slot of instructions that do not write a register.
const NoDestination = 0

// Definition describes which token positions of a tokenized instruction carry
// the destination and the source registers. Positions are 1-based, position 0
// is the opcode itself.
type Definition struct {
	Destination int   // destination slot or NoDestination
	Sources     []int // source slots in declaration order
}

// WritesRegister returns whether the instruction writes a destination register.
func (d Definition) WritesRegister() bool {
	return d.Destination != NoDestination
}

var (
	arithmetic  = Definition{Destination: 1, Sources: []int{2, 3}}
	immediate   = Definition{Destination: 1, Sources: []int{2}}
	load        = Definition{Destination: 1}
	store       = Definition{Destination: NoDestination, Sources: []int{1, 3}}
	branch      = Definition{Destination: NoDestination, Sources: []int{1, 2}}
	definitions = map[string]Definition{
		"ADD":  arithmetic,
		"SUB":  arithmetic,
		"MUL":  arithmetic,
		"DIV":  arithmetic,
		"DADD": arithmetic,
		"DSUB": arithmetic,
		"DMUL": arithmetic,
		"DDIV": arithmetic,
		"SLT":  arithmetic,
		"SGT":  arithmetic,

		"ADDI":  immediate,
		"DADDI": immediate,

		"LD": load,
		"SD": store,

		"BEQ":  branch,
		"BNE":  branch,
		"BLTZ": branch,
		"BGTZ": branch,
		"BGEZ": branch,
		"BLEZ": branch,
	}
)

// BranchInstructions contains all conditional branch instructions. Branches
// only read their operands, jump targets are not resolved.
var BranchInstructions = newSet("BEQ", "BNE", "BLTZ", "BGTZ", "BGEZ", "BLEZ")

// MemoryReadInstructions contains all instructions that read memory.
var MemoryReadInstructions = newSet("LD")

// MemoryWriteInstructions contains all instructions that write memory.
var MemoryWriteInstructions = newSet("SD")

// Lookup returns the operand definition of the given opcode name. The lookup
// is case-insensitive. The returned definition does not share memory with
// the table.
func Lookup(name string) (Definition, bool) {
	def, ok := definitions[strings.ToUpper(name)]
	if !ok {
		return Definition{}, false
	}
	if def.Sources != nil {
		def.Sources = append([]int(nil), def.Sources...)
	}
	return def, true
}

// Names returns all known opcode names in sorted order.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newSet(names ...string) set.Set[string] {
	s := set.New[string]()
	for _, name := range names {
		s.Add(name)
	}
	return s
}
