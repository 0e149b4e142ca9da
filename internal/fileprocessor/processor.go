// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/hazardscan/internal/loader"
	"github.com/retroenv/hazardscan/internal/options"
	"github.com/retroenv/hazardscan/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

const outputExtension = ".hazards.txt"

// ErrNoMatchingFiles is returned when a batch pattern does not match any file.
var ErrNoMatchingFiles = errors.New("no files match the batch pattern")

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, analysisOpts options.Analysis) error {
	lines, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading instructions: %w", err)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	p := pipeline.New(logger)
	result, err := p.Execute(ctx, lines, analysisOpts, writer)
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	counts := make([]string, 0, len(analysisOpts.Kinds))
	for _, kind := range analysisOpts.Kinds {
		counts = append(counts, fmt.Sprintf("%s=%d", kind, result.Counts[kind]))
	}
	logger.Info("Analysis complete",
		log.String("file", opts.Input),
		log.Int("instructions", result.Instructions),
		log.String("hazards", strings.Join(counts, " ")),
		log.String("registers", strings.Join(result.Registers, ",")))

	if len(result.Unknown) > 0 && !analysisOpts.Warn {
		logger.Debug("Instructions with unknown opcodes were ignored", log.Int("count", len(result.Unknown)))
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w '%s'", ErrNoMatchingFiles, opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + outputExtension
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" || opts.Output == loader.Stdin {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("hazardscan", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
