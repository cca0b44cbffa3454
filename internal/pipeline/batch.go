package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spherical/pdf-splitter/internal/domain"
	"github.com/spherical/pdf-splitter/internal/engine"
)

// BatchDriver enumerates candidate documents in an input directory and runs
// the coordinator once per document, strictly sequentially. Worker count,
// not document count, bounds the number of live goroutines.
type BatchDriver struct {
	coordinator *Coordinator
	validator   *engine.Validator
	logger      zerolog.Logger

	// OnDocument, when set, is invoked after each document completes or
	// fails. Used by the CLI to drive progress display.
	OnDocument func(processed, total int, result *DocumentResult)
}

// BatchResult summarizes a full batch run.
type BatchResult struct {
	RunID         uuid.UUID
	Documents     int
	Processed     int
	Failed        int
	PagesWritten  int
	ImagesWritten int
	WriteErrors   int
	StartedAt     time.Time
	Duration      time.Duration
	Results       []*DocumentResult
}

// NewBatchDriver creates a batch driver over the given coordinator.
func NewBatchDriver(coordinator *Coordinator, validator *engine.Validator, logger zerolog.Logger) *BatchDriver {
	return &BatchDriver{coordinator: coordinator, validator: validator, logger: logger}
}

// Discover returns the candidate documents directly inside inputDir:
// regular files with a recognized extension, in directory order.
// Subdirectories and other files are silently ignored.
func (b *BatchDriver) Discover(inputDir string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, domain.ValidationError(fmt.Sprintf("input directory does not exist: %s", inputDir), err)
	}
	if !info.IsDir() {
		return nil, domain.ValidationError(fmt.Sprintf("input path is not a directory: %s", inputDir), nil)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, domain.IOError(fmt.Sprintf("cannot read input directory: %s", inputDir), err)
	}

	var docs []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !b.validator.HasRecognizedExtension(entry.Name()) {
			continue
		}
		docs = append(docs, filepath.Join(inputDir, entry.Name()))
	}
	return docs, nil
}

// Run processes every candidate document under inputDir into outputDir.
// A document that fails to open is logged and skipped; the batch itself
// still succeeds. Only an unusable input or output directory fails the run.
func (b *BatchDriver) Run(ctx context.Context, inputDir, outputDir string) (*BatchResult, error) {
	batch := &BatchResult{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
	}

	docs, err := b.Discover(inputDir)
	if err != nil {
		return nil, err
	}
	batch.Documents = len(docs)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, domain.IOError(fmt.Sprintf("cannot create output directory: %s", outputDir), err)
	}

	b.logger.Info().
		Str("run_id", batch.RunID.String()).
		Str("input", inputDir).
		Str("output", outputDir).
		Int("documents", batch.Documents).
		Msg("Starting batch run")

	for i, docPath := range docs {
		if err := b.validator.ValidatePath(docPath); err != nil {
			batch.Failed++
			b.logger.Error().
				Err(err).
				Str("document", docPath).
				Msg("Skipping invalid document")
			if b.OnDocument != nil {
				b.OnDocument(i+1, batch.Documents, nil)
			}
			continue
		}

		result, err := b.coordinator.ProcessDocument(ctx, docPath, outputDir)
		if err != nil {
			batch.Failed++
			b.logger.Error().
				Err(err).
				Str("document", docPath).
				Msg("Failed to open document")
			if b.OnDocument != nil {
				b.OnDocument(i+1, batch.Documents, nil)
			}
			continue
		}

		batch.Processed++
		batch.PagesWritten += result.PagesWritten
		batch.ImagesWritten += result.ImagesWritten
		batch.WriteErrors += result.WriteErrors
		batch.Results = append(batch.Results, result)

		if b.OnDocument != nil {
			b.OnDocument(i+1, batch.Documents, result)
		}
	}

	batch.Duration = time.Since(batch.StartedAt)

	b.logger.Info().
		Str("run_id", batch.RunID.String()).
		Int("processed", batch.Processed).
		Int("failed", batch.Failed).
		Int("pages_written", batch.PagesWritten).
		Dur("duration", batch.Duration).
		Msg("Batch run completed")

	return batch, nil
}
