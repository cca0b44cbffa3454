package pipeline

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/spherical/pdf-splitter/internal/domain"
)

// TextFileName is the per-page text artifact written under each page
// directory.
const TextFileName = "text_layer.txt"

// Writer is the single consumer of a document's result queue. It owns the
// filesystem namespace under its output root for the duration of a run: no
// other goroutine writes there, so no path-level locking is needed.
type Writer struct {
	outputRoot string
	logger     zerolog.Logger
}

// WriterStats summarizes one writer run. Write failures are counted and
// logged, never escalated; a failed page write must not abort the rest of
// the document.
type WriterStats struct {
	PagesWritten  int
	ImagesWritten int
	WriteErrors   int
}

// NewWriter creates a writer materializing results under outputRoot.
func NewWriter(outputRoot string, logger zerolog.Logger) *Writer {
	return &Writer{outputRoot: outputRoot, logger: logger}
}

// Run drains the queue until it reports end, writing every result to disk.
// Intended to run in its own goroutine; the returned stats are valid once
// Run returns.
func (w *Writer) Run(queue *ResultQueue) WriterStats {
	var stats WriterStats
	for {
		result, ok := queue.Pop()
		if !ok {
			return stats
		}
		w.write(result, &stats)
	}
}

func (w *Writer) write(result domain.PageResult, stats *WriterStats) {
	pageDir := filepath.Join(w.outputRoot, result.DocName, strconv.Itoa(result.PageIndex))
	if err := os.MkdirAll(pageDir, 0o755); err != nil {
		stats.WriteErrors++
		w.logger.Error().
			Err(err).
			Str("document", result.DocName).
			Int("page", result.PageIndex).
			Msg("Failed to create page directory")
		return
	}

	textPath := filepath.Join(pageDir, TextFileName)
	if err := os.WriteFile(textPath, []byte(result.Text), 0o644); err != nil {
		stats.WriteErrors++
		w.logger.Error().
			Err(err).
			Str("document", result.DocName).
			Int("page", result.PageIndex).
			Msg("Failed to write text layer")
	} else {
		stats.PagesWritten++
	}

	for _, img := range result.Images {
		if err := w.writeImage(pageDir, img); err != nil {
			stats.WriteErrors++
			w.logger.Error().
				Err(err).
				Str("document", result.DocName).
				Int("page", result.PageIndex).
				Int("image", img.Index).
				Msg("Failed to write page image")
			continue
		}
		stats.ImagesWritten++
	}
}

func (w *Writer) writeImage(pageDir string, img domain.PageImage) error {
	imagePath := filepath.Join(pageDir, fmt.Sprintf("image_%d.png", img.Index))
	file, err := os.Create(imagePath)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img.Image)
}
