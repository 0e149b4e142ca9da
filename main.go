// Package main implements the main entry point for a data hazard scanner of
// assembly instruction listings.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/hazardscan/internal/cli"
	"github.com/retroenv/hazardscan/internal/config"
	"github.com/retroenv/hazardscan/internal/fileprocessor"
	"github.com/retroenv/hazardscan/internal/writer"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, analysisOpts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	if opts.List {
		if err := writer.WriteOpcodes(os.Stdout); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	fileprocessor.PrintBanner(logger, opts, version, commit, date)
	logger.Debug("Build info", log.String("version", buildinfo.Version(version, commit, date)))

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		if errors.Is(err, fileprocessor.ErrNoMatchingFiles) {
			logger.Warn("Nothing to analyze", log.String("batch", opts.Batch))
			return
		}
		logger.Fatal(err.Error())
	}

	var failed bool
	for _, file := range files {
		opts.Input = file
		if len(files) > 1 {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts, analysisOpts); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logger.Error("Analysis failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
