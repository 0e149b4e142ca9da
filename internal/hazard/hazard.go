// Package hazard defines the data hazard kinds and the dependency records
// that are reported for them.
package hazard

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the kind of a data hazard between two instructions.
type Kind int

// Supported hazard kinds.
const (
	RAW Kind = iota // read after write
	WAR             // write after read
	WAW             // write after write
)

// ErrUnknownKind is returned for hazard kinds that are not supported.
var ErrUnknownKind = errors.New("unknown hazard kind")

var kindNames = map[Kind]string{
	RAW: "RAW",
	WAR: "WAR",
	WAW: "WAW",
}

// Kinds returns all hazard kinds in report order.
func Kinds() []Kind {
	return []Kind{RAW, WAR, WAW}
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return name
}

// ParseKind parses a case-insensitive hazard kind name.
func ParseKind(s string) (Kind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w '%s'", ErrUnknownKind, s)
}

// Dependency is a single detected hazard between an instruction and a
// later instruction in program order.
type Dependency struct {
	Kind     Kind
	Earlier  int    // index of the instruction that comes first in program order
	Later    int    // index of the later instruction
	Register string // register causing the hazard

	EarlierText string
	LaterText   string
}

func (d Dependency) String() string {
	return fmt.Sprintf("%s %s: %d (%s) -> %d (%s)",
		d.Kind, d.Register, d.Earlier, d.EarlierText, d.Later, d.LaterText)
}
