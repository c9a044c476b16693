package fill

import (
	"github.com/docufill/pdf-form-filler/internal/pdf"
)

// searchWindow is one candidate rectangle to probe for blank space,
// expressed relative to the right edge of a label's bounding box.
type searchWindow struct {
	dx    float64
	width float64
}

// Window ladders, tried in order. Phone fields sit close to their
// labels on most forms, so the ladder starts narrow and near; every
// other type starts further out and grows faster.
var (
	phoneWindows = []searchWindow{
		{dx: 5, width: 80},
		{dx: 10, width: 110},
		{dx: 15, width: 140},
		{dx: 22, width: 170},
		{dx: 30, width: 200},
	}
	defaultWindows = []searchWindow{
		{dx: 50, width: 50},
		{dx: 100, width: 100},
		{dx: 150, width: 150},
		{dx: 200, width: 200},
		{dx: 250, width: 250},
	}
)

const (
	// regionPadding shrinks a winning window before it becomes a
	// placement region.
	regionPadding = 2.0
	// windowBand expands the vertical probe band around the label.
	windowBand = 2.0
	// blankMaxChars is the most extracted text a non-phone window may
	// contain and still count as blank.
	blankMaxChars = 10
	// phoneBlankMaxChars applies after stripping phone punctuation.
	phoneBlankMaxChars = 5
)

// BlankRegionLocator finds a nearby rectangle likely to be writable,
// given a label's box and the page's word layout.
type BlankRegionLocator struct{}

// NewBlankRegionLocator creates a locator.
func NewBlankRegionLocator() *BlankRegionLocator {
	return &BlankRegionLocator{}
}

// Locate probes the type's window ladder immediately to the right of
// the label and returns the first window whose extracted text counts
// as blank. ok is false when no window qualifies: the label yields no
// region and the field is simply not filled.
func (l *BlankRegionLocator) Locate(label LabelCandidate, page pdf.Page) (PlacementRegion, bool) {
	windows := defaultWindows
	if label.Type == FieldPhone {
		windows = phoneWindows
	}

	for _, w := range windows {
		rect := pdf.Rect{
			X0: label.BBox.X1 + w.dx,
			Y0: label.BBox.Y0 - windowBand,
			X1: label.BBox.X1 + w.dx + w.width,
			Y1: label.BBox.Y1 + windowBand,
		}
		if page.Width > 0 && rect.X1 > page.Width {
			rect.X1 = page.Width
		}
		if rect.Width() <= 0 {
			continue
		}

		text := page.TextInRect(rect)
		if !l.isBlank(label.Type, text) {
			continue
		}

		return PlacementRegion{
			Page:  label.Page,
			BBox:  rect.Inset(regionPadding),
			Label: label,
		}, true
	}

	return PlacementRegion{}, false
}

// isBlank decides whether extracted window text is ignorable. Phone
// windows tolerate pre-printed punctuation scaffolding; everything
// else is a plain length check.
func (l *BlankRegionLocator) isBlank(ft FieldType, text string) bool {
	if ft == FieldPhone {
		stripped := stripPhonePunctuation(text)
		if len(stripped) < phoneBlankMaxChars {
			return true
		}
		return len(digitsOnly(stripped)) == 0
	}
	return len(text) < blankMaxChars
}

// stripPhonePunctuation removes the characters pre-printed phone
// scaffolding is made of.
func stripPhonePunctuation(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '(', ')', '-', ' ', '.', '\t':
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
