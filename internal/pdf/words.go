package pdf

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Rect is an axis-aligned rectangle in PDF user space (origin at the
// lower-left corner of the page, units in points).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Inset shrinks the rectangle by the given margin on every side.
func (r Rect) Inset(m float64) Rect {
	return Rect{X0: r.X0 + m, Y0: r.Y0 + m, X1: r.X1 - m, Y1: r.Y1 - m}
}

// Word is one segmented layout token with its bounding box.
type Word struct {
	Text     string
	BBox     Rect
	FontSize float64
}

// Page holds the segmented words of one rendered page.
type Page struct {
	Number int // zero-based
	Width  float64
	Height float64
	Words  []Word
}

// TextInRect concatenates the text of every word whose bounding box
// overlaps the given rectangle, in reading order.
func (p Page) TextInRect(r Rect) string {
	var parts []string
	for _, w := range p.Words {
		if w.BBox.Intersects(r) {
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " ")
}

// lineTolerance is the vertical distance within which two text runs are
// considered part of the same line.
const lineTolerance = 2.0

// segmentWords groups the raw character runs of a page into words.
// Runs sharing a baseline are sorted by X and merged until a horizontal
// gap or an explicit space ends the current word.
func segmentWords(texts []pdf.Text) []Word {
	if len(texts) == 0 {
		return nil
	}

	// Bucket runs into lines by baseline Y.
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if diff := sorted[i].Y - sorted[j].Y; diff > lineTolerance || diff < -lineTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var words []Word
	var cur *wordBuilder

	flush := func() {
		if cur != nil && strings.TrimSpace(cur.text.String()) != "" {
			words = append(words, cur.build())
		}
		cur = nil
	}

	var prev *pdf.Text
	for i := range sorted {
		t := sorted[i]
		if t.S == "" {
			continue
		}

		newLine := prev != nil && (prev.Y-t.Y > lineTolerance || t.Y-prev.Y > lineTolerance)
		gap := prev != nil && !newLine && t.X-(prev.X+prev.W) > wordGap(prev.FontSize)
		if prev == nil || newLine || gap || t.S == " " {
			flush()
		}
		if t.S != " " {
			if cur == nil {
				cur = newWordBuilder(t)
			} else {
				cur.extend(t)
			}
		}
		prev = &sorted[i]
	}
	flush()

	return words
}

// wordGap is the horizontal distance that splits two runs into separate
// words, scaled with the font size.
func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = 12
	}
	return fontSize * 0.3
}

type wordBuilder struct {
	text     strings.Builder
	bbox     Rect
	fontSize float64
}

func newWordBuilder(t pdf.Text) *wordBuilder {
	b := &wordBuilder{fontSize: t.FontSize}
	b.text.WriteString(t.S)
	b.bbox = runBox(t)
	return b
}

func (b *wordBuilder) extend(t pdf.Text) {
	b.text.WriteString(t.S)
	box := runBox(t)
	if box.X0 < b.bbox.X0 {
		b.bbox.X0 = box.X0
	}
	if box.Y0 < b.bbox.Y0 {
		b.bbox.Y0 = box.Y0
	}
	if box.X1 > b.bbox.X1 {
		b.bbox.X1 = box.X1
	}
	if box.Y1 > b.bbox.Y1 {
		b.bbox.Y1 = box.Y1
	}
}

func (b *wordBuilder) build() Word {
	return Word{Text: b.text.String(), BBox: b.bbox, FontSize: b.fontSize}
}

// runBox approximates a run's box using the font size as height, the
// same approximation the extraction layer has always used.
func runBox(t pdf.Text) Rect {
	height := t.FontSize
	if height == 0 {
		height = 12.0
	}
	return Rect{X0: t.X, Y0: t.Y, X1: t.X + t.W, Y1: t.Y + height}
}
