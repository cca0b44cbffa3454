package pipeline

import (
	"errors"
	"image"
	"path/filepath"
	"sync/atomic"

	"github.com/spherical/pdf-splitter/internal/engine"
)

// stubEngine serves in-memory documents keyed by base filename, with
// per-page fault injection.
type stubEngine struct {
	docs map[string]*stubDocument
}

func newStubEngine() *stubEngine {
	return &stubEngine{docs: make(map[string]*stubDocument)}
}

func (e *stubEngine) addDocument(name string, pages ...stubPage) *stubDocument {
	doc := &stubDocument{pages: pages}
	e.docs[name] = doc
	return doc
}

func (e *stubEngine) Open(path string) (engine.Document, error) {
	doc, ok := e.docs[filepath.Base(path)]
	if !ok {
		return nil, errors.New("stub: cannot open document")
	}
	return doc, nil
}

type stubDocument struct {
	pages     []stubPage
	pageOpens atomic.Int64
	closed    atomic.Bool
}

type stubPage struct {
	text    string
	openErr error
	textErr error
}

func (d *stubDocument) PageCount() int {
	return len(d.pages)
}

func (d *stubDocument) Page(index int) (engine.Page, error) {
	d.pageOpens.Add(1)
	if index < 0 || index >= len(d.pages) {
		return nil, errors.New("stub: page index out of range")
	}
	if d.pages[index].openErr != nil {
		return nil, d.pages[index].openErr
	}
	return &stubPageView{page: d.pages[index]}, nil
}

func (d *stubDocument) Close() error {
	d.closed.Store(true)
	return nil
}

type stubPageView struct {
	page stubPage
}

func (p *stubPageView) Text() (string, error) {
	if p.page.textErr != nil {
		return "", p.page.textErr
	}
	return p.page.text, nil
}

func (p *stubPageView) Images() ([]image.Image, error) {
	return []image.Image{image.NewRGBA(image.Rect(0, 0, 1, 1))}, nil
}

func (p *stubPageView) Close() error {
	return nil
}

// textPages builds a document's pages from plain strings.
func textPages(texts ...string) []stubPage {
	pages := make([]stubPage, len(texts))
	for i, t := range texts {
		pages[i] = stubPage{text: t}
	}
	return pages
}
