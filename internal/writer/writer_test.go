package writer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/hazardscan/internal/hazard"
	"github.com/retroenv/hazardscan/internal/scanner"
	"github.com/retroenv/retrogolib/assert"
)

func TestWriteReport(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		kind  hazard.Kind
		want  string
	}{
		{
			name:  "raw",
			lines: []string{"ADD R1, R2, R3", "SUB R4, R1, R5"},
			kind:  hazard.RAW,
			want: `--- Identifying RAW Dependencies ---
RAW Dependency Found:
	Instruction 0: (ADD R1, R2, R3) writes to register R1.
	Instruction 1: (SUB R4, R1, R5) reads from register R1.
------------------------------------
--- Analysis Complete ---
`,
		},
		{
			name:  "war",
			lines: []string{"ADD R1, R2, R3", "SUB R2, R4, R5"},
			kind:  hazard.WAR,
			want: `--- Identifying WAR Dependencies ---
WAR Dependency Found:
	Instruction 0: (ADD R1, R2, R3) reads from register R2.
	Instruction 1: (SUB R2, R4, R5) writes to register R2.
------------------------------------
--- Analysis Complete ---
`,
		},
		{
			name:  "waw",
			lines: []string{"ADD R1, R2, R3", "MUL R1, R4, R5"},
			kind:  hazard.WAW,
			want: `--- Identifying WAW Dependencies ---
WAW Dependency Found:
	Instruction 0: (ADD R1, R2, R3) writes to register R1.
	Instruction 1: (MUL R1, R4, R5) also writes to register R1.
------------------------------------
--- Analysis Complete ---
`,
		},
		{
			name:  "no dependencies",
			lines: []string{"ADD R1, R2, R3"},
			kind:  hazard.WAW,
			want: `--- Identifying WAW Dependencies ---
--- Analysis Complete ---
`,
		},
		{
			name:  "no instructions",
			lines: nil,
			kind:  hazard.RAW,
			want: `--- Identifying RAW Dependencies ---
No instructions to analyze.
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scanner.New(tt.lines)
			deps, err := s.Scan(tt.kind)
			assert.NoError(t, err)

			var buf bytes.Buffer
			w := New(s, &buf)
			assert.NoError(t, w.WriteReport(tt.kind, deps))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWrite(t *testing.T) {
	s := scanner.New([]string{
		"LD F0, 0(R1)",
		"DMUL F4, F0, F2",
		"SD F4, 0(R1)",
		"DADDI R1, R1, #-8",
	})

	var first bytes.Buffer
	reports, err := New(s, &first).Write(context.Background(), hazard.Kinds())
	assert.NoError(t, err)
	assert.Len(t, reports, 3)
	assert.Equal(t, hazard.RAW, reports[0].Kind)
	assert.Len(t, reports[0].Dependencies, 2)
	assert.Equal(t, hazard.WAR, reports[1].Kind)
	assert.Len(t, reports[1].Dependencies, 1)
	assert.Equal(t, "R1", reports[1].Dependencies[0].Register)
	assert.Equal(t, hazard.WAW, reports[2].Kind)
	assert.Len(t, reports[2].Dependencies, 0)

	out := first.String()
	rawIndex := strings.Index(out, "Identifying RAW")
	warIndex := strings.Index(out, "Identifying WAR")
	wawIndex := strings.Index(out, "Identifying WAW")
	assert.True(t, rawIndex >= 0 && rawIndex < warIndex && warIndex < wawIndex)
	assert.Equal(t, 3, strings.Count(out, "--- Analysis Complete ---"))

	var second bytes.Buffer
	_, err = New(s, &second).Write(context.Background(), hazard.Kinds())
	assert.NoError(t, err)
	assert.Equal(t, out, second.String())
}

func TestWrite_UnknownKind(t *testing.T) {
	s := scanner.New([]string{"ADD R1, R2, R3"})
	_, err := New(s, &bytes.Buffer{}).Write(context.Background(), []hazard.Kind{hazard.Kind(9)})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, hazard.ErrUnknownKind))
}

func TestWrite_Cancelled(t *testing.T) {
	s := scanner.New([]string{"ADD R1, R2, R3", "SUB R4, R1, R5"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := New(s, &buf).Write(ctx, hazard.Kinds())
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "", buf.String())
}

func TestWriteOpcodes(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteOpcodes(&buf))

	out := buf.String()
	assert.Equal(t, 20, strings.Count(out, "\n"))
	assert.Contains(t, out, "ADD    destination: 1    sources: 2,3\n")
	assert.Contains(t, out, "LD     destination: 1    sources: none  memory read\n")
	assert.Contains(t, out, "BEQ    destination: none sources: 1,2   branch\n")
	assert.Contains(t, out, "SD     destination: none sources: 1,3   memory write\n")
}
