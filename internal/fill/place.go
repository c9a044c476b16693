package fill

import (
	"strings"

	"github.com/docufill/pdf-form-filler/internal/pdf"
)

const (
	// charWidthFactor estimates rendered text width per character as a
	// fraction of the font size (Helvetica average).
	charWidthFactor = 0.6
	// placementAttempts bounds the rightward probing budget.
	placementAttempts = 6
	// phonePlacementStep and defaultPlacementStep are the rightward
	// probe increments per attempt.
	phonePlacementStep   = 5.0
	defaultPlacementStep = 15.0
	// fallbackOffset is the far-right displacement used when no probed
	// point is collision free. Visually degraded but never overlapping
	// the label itself.
	fallbackOffset = 180.0
)

// SafePlacementResolver nudges a candidate insertion point rightward
// until the text to be stamped no longer collides with existing
// rendered content.
type SafePlacementResolver struct{}

// NewSafePlacementResolver creates a resolver.
func NewSafePlacementResolver() *SafePlacementResolver {
	return &SafePlacementResolver{}
}

// Resolve returns an insertion point at or to the right of (x, y)
// whose projected text box contains no existing words. If the attempt
// budget runs out it falls back to a fixed far-right offset rather
// than failing the operation.
func (r *SafePlacementResolver) Resolve(ft FieldType, page pdf.Page, x, y float64, text string, fontSize float64) (float64, float64) {
	step := defaultPlacementStep
	if ft == FieldPhone {
		step = phonePlacementStep
	}

	width := estimateTextWidth(text, fontSize)

	for attempt := 0; attempt < placementAttempts; attempt++ {
		candidateX := x + float64(attempt)*step
		box := pdf.Rect{
			X0: candidateX,
			Y0: y,
			X1: candidateX + width,
			Y1: y + fontSize,
		}
		if strings.TrimSpace(page.TextInRect(box)) == "" {
			return candidateX, y
		}
	}

	return x + fallbackOffset, y
}

// estimateTextWidth approximates the rendered width of a string.
func estimateTextWidth(text string, fontSize float64) float64 {
	return float64(len(text)) * charWidthFactor * fontSize
}
