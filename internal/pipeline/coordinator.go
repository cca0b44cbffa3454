package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spherical/pdf-splitter/internal/domain"
	"github.com/spherical/pdf-splitter/internal/engine"
)

// Coordinator runs one document's full pipeline to completion: it claims
// pages across a fixed-size worker pool, feeds a fresh result queue, and
// joins a single writer before returning.
type Coordinator struct {
	engine engine.Engine
	logger zerolog.Logger
	cfg    CoordinatorConfig
}

// CoordinatorConfig holds per-run settings.
type CoordinatorConfig struct {
	Workers       int
	ExtractImages bool
}

// DocumentResult summarizes one document run.
type DocumentResult struct {
	JobID         uuid.UUID
	Name          string
	PageCount     int
	PagesSkipped  int
	PagesWritten  int
	ImagesWritten int
	WriteErrors   int
	StartedAt     time.Time
	Duration      time.Duration
}

// NewCoordinator creates a coordinator extracting through the given engine.
func NewCoordinator(eng engine.Engine, logger zerolog.Logger, cfg CoordinatorConfig) *Coordinator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Coordinator{engine: eng, logger: logger, cfg: cfg}
}

// pageCounter assigns each page index to exactly one worker. One instance
// exists per document run, owned by the coordinator and shared by reference
// with every worker.
type pageCounter struct {
	next atomic.Int64
}

// claim returns the next unclaimed page index.
func (c *pageCounter) claim() int {
	return int(c.next.Add(1) - 1)
}

// ProcessDocument extracts every page of the document at docPath into
// outputRoot and blocks until the writer has drained all results. The
// context is checked at page-claim boundaries; with a background context
// the run always proceeds to completion.
func (c *Coordinator) ProcessDocument(ctx context.Context, docPath, outputRoot string) (*DocumentResult, error) {
	result := &DocumentResult{
		JobID:     uuid.New(),
		Name:      DocumentName(docPath),
		StartedAt: time.Now(),
	}

	doc, err := c.engine.Open(docPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	result.PageCount = doc.PageCount()

	logger := c.logger.With().
		Str("job_id", result.JobID.String()).
		Str("document", result.Name).
		Logger()
	logger.Info().
		Int("pages", result.PageCount).
		Int("workers", c.cfg.Workers).
		Msg("Starting document run")

	queue := NewResultQueue()
	counter := &pageCounter{}
	var skipped atomic.Int64

	var workers sync.WaitGroup
	for i := 0; i < c.cfg.Workers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			c.extractPages(ctx, doc, result.Name, result.PageCount, counter, queue, &skipped, logger)
		}()
	}

	writer := NewWriter(outputRoot, logger)
	statsCh := make(chan WriterStats, 1)
	go func() {
		statsCh <- writer.Run(queue)
	}()

	// The queue is finished only after every producer has stopped, and the
	// run is done only after the writer has drained everything pushed
	// before Finish. Reordering these joins loses or strands results.
	workers.Wait()
	queue.Finish()
	stats := <-statsCh

	result.PagesSkipped = int(skipped.Load())
	result.PagesWritten = stats.PagesWritten
	result.ImagesWritten = stats.ImagesWritten
	result.WriteErrors = stats.WriteErrors
	result.Duration = time.Since(result.StartedAt)

	logger.Info().
		Int("pages_written", result.PagesWritten).
		Int("pages_skipped", result.PagesSkipped).
		Int("write_errors", result.WriteErrors).
		Dur("duration", result.Duration).
		Msg("Document run completed")

	return result, nil
}

// extractPages is the worker loop: claim a page index, extract it, push the
// result, repeat until the counter runs past the page count. A page that
// fails to open contributes no result and never aborts the run.
func (c *Coordinator) extractPages(
	ctx context.Context,
	doc engine.Document,
	docName string,
	pageCount int,
	counter *pageCounter,
	queue *ResultQueue,
	skipped *atomic.Int64,
	logger zerolog.Logger,
) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		index := counter.claim()
		if index >= pageCount {
			return
		}

		page, err := doc.Page(index)
		if err != nil {
			skipped.Add(1)
			logger.Debug().Err(err).Int("page", index).Msg("Skipping unreadable page")
			continue
		}

		result, err := c.extractPage(page, docName, index)
		page.Close()
		if err != nil {
			skipped.Add(1)
			logger.Debug().Err(err).Int("page", index).Msg("Skipping unextractable page")
			continue
		}

		queue.Push(result)
	}
}

func (c *Coordinator) extractPage(page engine.Page, docName string, index int) (domain.PageResult, error) {
	text, err := page.Text()
	if err != nil {
		return domain.PageResult{}, err
	}

	result := domain.PageResult{
		DocName:   docName,
		PageIndex: index,
		Text:      text,
	}

	if c.cfg.ExtractImages {
		images, err := page.Images()
		if err != nil {
			return domain.PageResult{}, err
		}
		for i, img := range images {
			result.Images = append(result.Images, domain.PageImage{Index: i, Image: img})
		}
	}

	return result, nil
}

// DocumentName derives the output namespace for a document: its base
// filename without extension.
func DocumentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
