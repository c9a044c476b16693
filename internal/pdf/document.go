package pdf

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Document wraps one PDF's bytes with lazily computed per-page words.
// A Document is read-only; strategies that modify the PDF work on the
// original bytes and produce new ones.
type Document struct {
	data  []byte
	r     *pdf.Reader
	pages []Page
}

// Open parses PDF bytes into a Document.
func Open(data []byte) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Document{data: data, r: r}, nil
}

// Bytes returns the original document bytes.
func (d *Document) Bytes() []byte {
	return d.data
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.r.NumPage()
}

// Pages segments every page's text runs into positioned words. The
// result is computed once and cached; malformed pages are skipped.
func (d *Document) Pages() []Page {
	if d.pages != nil {
		return d.pages
	}

	n := d.r.NumPage()
	pages := make([]Page, 0, n)
	for i := 1; i <= n; i++ {
		p := d.r.Page(i)
		if p.V.IsNull() {
			continue
		}

		width, height := pageSize(p)
		page := Page{
			Number: i - 1,
			Width:  width,
			Height: height,
			Words:  segmentWords(p.Content().Text),
		}
		pages = append(pages, page)
	}

	d.pages = pages
	return d.pages
}

// Default page dimensions (US Letter, points) used when a page carries
// no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

func pageSize(p pdf.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight

	box := p.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return width, height
	}

	x0 := box.Index(0).Float64()
	y0 := box.Index(1).Float64()
	x1 := box.Index(2).Float64()
	y1 := box.Index(3).Float64()
	if x1 > x0 && y1 > y0 {
		width = x1 - x0
		height = y1 - y0
	}
	return width, height
}
