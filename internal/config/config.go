// Package config handles application configuration and setup.
package config

import (
	"fmt"
	"strings"

	"github.com/retroenv/hazardscan/internal/hazard"
	"github.com/retroenv/hazardscan/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateAnalysisOptions creates the analysis options from the program options.
func CreateAnalysisOptions(opts options.Program) (options.Analysis, error) {
	analysis := options.NewAnalysis()
	analysis.Warn = opts.Warn

	if strings.TrimSpace(opts.Kinds) == "" {
		return analysis, nil
	}

	kinds, err := ParseKinds(opts.Kinds)
	if err != nil {
		return options.Analysis{}, err
	}
	analysis.Kinds = kinds
	return analysis, nil
}

// ParseKinds parses a comma separated list of hazard kinds. Duplicates are
// ignored, the reports are always ordered RAW, WAR, WAW.
func ParseKinds(list string) ([]hazard.Kind, error) {
	selected := set.New[hazard.Kind]()
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		kind, err := hazard.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("parsing hazard kinds: %w", err)
		}
		selected.Add(kind)
	}

	var kinds []hazard.Kind
	for _, kind := range hazard.Kinds() {
		if selected.Contains(kind) {
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no hazard kinds selected in '%s'", list)
	}
	return kinds, nil
}
