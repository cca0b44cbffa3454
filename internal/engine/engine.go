// Package engine abstracts the document rendering backend behind a small
// interface so the pipeline never depends on a concrete PDF library.
package engine

import "image"

// Engine opens documents for page-level extraction.
type Engine interface {
	// Open returns a handle for the document at path, or an error if the
	// document cannot be loaded.
	Open(path string) (Document, error)
}

// Document is an open document handle. Pages are derived views opened on
// demand; the handle itself is read-shared across workers, and Page must be
// safe to call concurrently for distinct indices.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Page opens the page at the given zero-based index.
	Page(index int) (Page, error)

	// Close releases the document handle.
	Close() error
}

// Page is a single page opened for extraction. Callers release it with
// Close immediately after extracting content.
type Page interface {
	// Text returns the page's textual content decoded to UTF-8.
	Text() (string, error)

	// Images renders the page's image content, ordered by local index.
	Images() ([]image.Image, error)

	// Close releases the page resources.
	Close() error
}
