package pipeline

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/pdf-splitter/internal/domain"
	"github.com/spherical/pdf-splitter/internal/observability"
)

func runWriter(t *testing.T, root string, results ...domain.PageResult) WriterStats {
	t.Helper()
	q := NewResultQueue()
	for _, r := range results {
		q.Push(r)
	}
	q.Finish()
	return NewWriter(root, observability.Nop()).Run(q)
}

func TestWriter_WritesPageLayout(t *testing.T) {
	root := t.TempDir()

	stats := runWriter(t, root,
		domain.PageResult{DocName: "report", PageIndex: 0, Text: "Hello"},
		domain.PageResult{DocName: "report", PageIndex: 1, Text: "World"},
	)

	assert.Equal(t, 2, stats.PagesWritten)
	assert.Zero(t, stats.WriteErrors)

	data, err := os.ReadFile(filepath.Join(root, "report", "0", TextFileName))
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(data))

	data, err = os.ReadFile(filepath.Join(root, "report", "1", TextFileName))
	require.NoError(t, err)
	assert.Equal(t, "World", string(data))
}

func TestWriter_EmptyTextStillWritesFile(t *testing.T) {
	root := t.TempDir()

	stats := runWriter(t, root, domain.PageResult{DocName: "blank", PageIndex: 0})

	assert.Equal(t, 1, stats.PagesWritten)
	data, err := os.ReadFile(filepath.Join(root, "blank", "0", TextFileName))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriter_OverwritesOnRerun(t *testing.T) {
	root := t.TempDir()

	stats := runWriter(t, root, domain.PageResult{DocName: "doc", PageIndex: 0, Text: "old"})
	require.Zero(t, stats.WriteErrors)

	stats = runWriter(t, root, domain.PageResult{DocName: "doc", PageIndex: 0, Text: "new"})
	assert.Zero(t, stats.WriteErrors, "existing directories must not fail the rerun")

	data, err := os.ReadFile(filepath.Join(root, "doc", "0", TextFileName))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriter_WritesImages(t *testing.T) {
	root := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	stats := runWriter(t, root, domain.PageResult{
		DocName:   "doc",
		PageIndex: 3,
		Text:      "page",
		Images: []domain.PageImage{
			{Index: 0, Image: img},
			{Index: 1, Image: img},
		},
	})

	assert.Equal(t, 2, stats.ImagesWritten)
	assert.FileExists(t, filepath.Join(root, "doc", "3", "image_0.png"))
	assert.FileExists(t, filepath.Join(root, "doc", "3", "image_1.png"))
}

func TestWriter_WriteFailureIsCountedNotFatal(t *testing.T) {
	root := t.TempDir()

	// Occupy the document's namespace with a regular file so directory
	// creation fails for that result.
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken"), []byte("x"), 0o644))

	stats := runWriter(t, root,
		domain.PageResult{DocName: "broken", PageIndex: 0, Text: "lost"},
		domain.PageResult{DocName: "fine", PageIndex: 0, Text: "kept"},
	)

	assert.Equal(t, 1, stats.WriteErrors)
	assert.Equal(t, 1, stats.PagesWritten, "a failed write must not abort the rest")
	assert.FileExists(t, filepath.Join(root, "fine", "0", TextFileName))
}
