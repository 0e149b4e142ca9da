package cli

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/retroenv/hazardscan/internal/hazard"
	"github.com/retroenv/hazardscan/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantInput string
		wantKinds []hazard.Kind
		wantWarn  bool
	}{
		{
			name:      "default flags",
			args:      []string{"prog", "program.s"},
			wantInput: "program.s",
			wantKinds: []hazard.Kind{hazard.RAW, hazard.WAR, hazard.WAW},
		},
		{
			name:      "selected kinds",
			args:      []string{"prog", "-k", "waw,raw", "program.s"},
			wantInput: "program.s",
			wantKinds: []hazard.Kind{hazard.RAW, hazard.WAW},
		},
		{
			name:      "input flag",
			args:      []string{"prog", "-i", "-", "-warn"},
			wantInput: "-",
			wantKinds: []hazard.Kind{hazard.RAW, hazard.WAR, hazard.WAW},
			wantWarn:  true,
		},
		{
			name:      "stdin positional",
			args:      []string{"prog", "-"},
			wantInput: "-",
			wantKinds: []hazard.Kind{hazard.RAW, hazard.WAR, hazard.WAW},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			opts, analysisOpts, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.wantInput, opts.Input)
			assert.Equal(t, tt.wantKinds, analysisOpts.Kinds)
			assert.Equal(t, tt.wantWarn, analysisOpts.Warn)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantUsage bool
	}{
		{"no file", []string{"prog"}, true},
		{"flag after file", []string{"prog", "program.s", "-q"}, true},
		{"unknown kind", []string{"prog", "-k", "rar", "program.s"}, false},
		{"help", []string{"prog", "-h"}, true},
		{"undefined flag", []string{"prog", "-x", "program.s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, _, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.wantUsage, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_List(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog", "-list"}

	opts, _, err := ParseFlags()
	assert.NoError(t, err)
	assert.True(t, opts.List)
}

func TestNewFlagSet_NoImplicitUsage(t *testing.T) {
	var opts options.Program
	flags := newFlagSet(&opts)

	var buf bytes.Buffer
	flags.SetOutput(&buf)

	err := flags.Parse([]string{"-h"})
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Equal(t, "", buf.String())

	err = flags.Parse([]string{"-undefined"})
	assert.Error(t, err)
	assert.False(t, strings.Contains(buf.String(), "-batch"))
}
