package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spherical/pdf-splitter/cmd/pdf-splitter/ui"
	"github.com/spherical/pdf-splitter/internal/config"
	"github.com/spherical/pdf-splitter/internal/engine"
	"github.com/spherical/pdf-splitter/internal/observability"
	"github.com/spherical/pdf-splitter/internal/pipeline"
)

func runSplit(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	outputDir := args[1]

	workers, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("worker count must be a number, got %q", args[2])
	}
	if workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", workers)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Workers = workers
	if extractImages {
		cfg.ExtractImages = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := cfg.Observability.LogLevel
	if verbose {
		logLevel = "debug"
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:       logLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "pdf-splitter",
	})

	ui.InitUI(noColor, verbose)
	ui.Section("PDF Splitting")
	ui.Info("Input directory: %s", inputDir)
	ui.Info("Output directory: %s", outputDir)
	ui.Info("Workers: %d", cfg.Workers)
	ui.Newline()

	validator := engine.NewValidator(cfg.Extensions, logger)
	coordinator := pipeline.NewCoordinator(engine.NewFitzEngine(), logger, pipeline.CoordinatorConfig{
		Workers:       cfg.Workers,
		ExtractImages: cfg.ExtractImages,
	})
	driver := pipeline.NewBatchDriver(coordinator, validator, logger)

	spin := ui.NewSpinner("Scanning input directory...")
	spin.Start()
	docs, err := driver.Discover(inputDir)
	spin.Stop()
	if err != nil {
		return err
	}

	// The output directory exists after any run over a valid input,
	// even one that found no documents.
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if len(docs) == 0 {
		ui.Warn("No documents found in %s", inputDir)
		return nil
	}

	bar := ui.NewProgressBar(int64(len(docs)), "Extracting")
	driver.OnDocument = func(processed, total int, result *pipeline.DocumentResult) {
		bar.Set(int64(processed))
	}

	batch, err := driver.Run(context.Background(), inputDir, outputDir)
	bar.Finish()
	if err != nil {
		return err
	}

	ui.Section("Batch Summary")
	ui.Table([]string{"Metric", "Value"}, [][]string{
		{"Run ID", batch.RunID.String()},
		{"Documents found", strconv.Itoa(batch.Documents)},
		{"Documents processed", strconv.Itoa(batch.Processed)},
		{"Documents failed", strconv.Itoa(batch.Failed)},
		{"Pages written", strconv.Itoa(batch.PagesWritten)},
		{"Write errors", strconv.Itoa(batch.WriteErrors)},
		{"Duration", ui.FormatDuration(batch.Duration)},
	})
	ui.Newline()

	if ui.Verbose() && len(batch.Results) > 0 {
		ui.Section("Documents")
		rows := make([][]string, 0, len(batch.Results))
		for _, r := range batch.Results {
			rows = append(rows, []string{
				r.Name,
				strconv.Itoa(r.PageCount),
				strconv.Itoa(r.PagesWritten),
				strconv.Itoa(r.PagesSkipped),
				ui.FormatDuration(r.Duration),
			})
		}
		ui.Table([]string{"Document", "Pages", "Written", "Skipped", "Duration"}, rows)
		ui.Newline()
	}

	if batch.Failed > 0 {
		ui.Errorf("%d document(s) failed to open, see log output", batch.Failed)
	}
	ui.Success("Output written to: %s", outputDir)

	return nil
}
