// Package domain holds the core types shared across the extraction pipeline.
package domain

import "image"

// PageImage is one image extracted from a page, indexed locally within
// that page starting at 0.
type PageImage struct {
	Index int
	Image image.Image
}

// PageResult is the unit of work handed from page extractors to the writer.
// It is created by exactly one worker, transferred through the result queue,
// and consumed exactly once by the writer. No component retains a reference
// after handing it off.
type PageResult struct {
	DocName   string
	PageIndex int
	Text      string
	Images    []PageImage
}
