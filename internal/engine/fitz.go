package engine

import (
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"

	"github.com/spherical/pdf-splitter/internal/domain"
)

// FitzEngine opens PDF documents through go-fitz (MuPDF).
type FitzEngine struct{}

// NewFitzEngine creates a go-fitz backed engine.
func NewFitzEngine() *FitzEngine {
	return &FitzEngine{}
}

// Open loads the PDF at path.
func (e *FitzEngine) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, domain.ExtractionError("failed to open document", err)
	}
	return &fitzDocument{doc: doc}, nil
}

// fitzDocument wraps a fitz.Document. MuPDF contexts are not reentrant, so
// all page operations are serialized through one mutex; the pipeline only
// requires that concurrent Page calls for distinct indices are safe, which
// serialization satisfies.
type fitzDocument struct {
	mu  sync.Mutex
	doc *fitz.Document
}

func (d *fitzDocument) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.NumPage()
}

func (d *fitzDocument) Page(index int) (Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= d.doc.NumPage() {
		return nil, domain.ExtractionError("page index out of range", nil)
	}
	return &fitzPage{doc: d, index: index}, nil
}

func (d *fitzDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Close()
}

// fitzPage is a lazy view on one page of a fitzDocument.
type fitzPage struct {
	doc   *fitzDocument
	index int
}

func (p *fitzPage) Text() (string, error) {
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()
	text, err := p.doc.doc.Text(p.index)
	if err != nil {
		return "", domain.ExtractionError("failed to extract page text", err)
	}
	return text, nil
}

func (p *fitzPage) Images() ([]image.Image, error) {
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()
	img, err := p.doc.doc.Image(p.index)
	if err != nil {
		return nil, domain.ExtractionError("failed to render page image", err)
	}
	return []image.Image{img}, nil
}

func (p *fitzPage) Close() error {
	// Pages are views on the shared document; nothing to release.
	return nil
}
