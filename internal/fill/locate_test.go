package fill

import (
	"testing"

	"github.com/docufill/pdf-form-filler/internal/pdf"
)

func labelAt(ft FieldType, x1 float64) LabelCandidate {
	return LabelCandidate{
		Page:       0,
		BBox:       pdf.Rect{X0: 50, Y0: 700, X1: x1, Y1: 712},
		Text:       string(ft) + ":",
		Type:       ft,
		Confidence: ConfidenceExact,
	}
}

func TestLocateEmptyPage(t *testing.T) {
	l := NewBlankRegionLocator()
	page := pdf.Page{Number: 0, Width: 612, Height: 792}
	label := labelAt(FieldName, 100)

	region, ok := l.Locate(label, page)
	if !ok {
		t.Fatal("Expected a region on an empty page")
	}
	if region.BBox.X0 <= label.BBox.X1 {
		t.Errorf("Expected region right of the label, got X0=%f", region.BBox.X0)
	}
	if region.Page != 0 {
		t.Errorf("Expected region on page 0, got %d", region.Page)
	}
}

func TestLocateSkipsOccupiedWindow(t *testing.T) {
	l := NewBlankRegionLocator()
	// A word sitting in the first window forces the ladder onward.
	page := pdf.Page{
		Number: 0,
		Width:  612,
		Height: 792,
		Words: []pdf.Word{
			{Text: "preprinted", BBox: pdf.Rect{X0: 155, Y0: 700, X1: 195, Y1: 712}},
		},
	}
	label := labelAt(FieldName, 100)

	region, ok := l.Locate(label, page)
	if !ok {
		t.Fatal("Expected a region from a later window")
	}
	if region.BBox.X0 < 200 {
		t.Errorf("Expected the second window (X0 >= 200), got X0=%f", region.BBox.X0)
	}
}

func TestLocatePhonePlaceholderCountsAsBlank(t *testing.T) {
	l := NewBlankRegionLocator()
	// Pre-printed "( ) -" scaffolding inside the window must not block
	// placement.
	page := pdf.Page{
		Number: 0,
		Width:  612,
		Height: 792,
		Words: []pdf.Word{
			{Text: "(", BBox: pdf.Rect{X0: 110, Y0: 700, X1: 114, Y1: 712}},
			{Text: ")", BBox: pdf.Rect{X0: 130, Y0: 700, X1: 134, Y1: 712}},
			{Text: "-", BBox: pdf.Rect{X0: 155, Y0: 700, X1: 159, Y1: 712}},
		},
	}
	label := labelAt(FieldPhone, 100)

	region, ok := l.Locate(label, page)
	if !ok {
		t.Fatal("Expected the placeholder window to count as blank")
	}
	// Phone ladders start tight against the label.
	if region.BBox.X0 > 110 {
		t.Errorf("Expected the first phone window, got X0=%f", region.BBox.X0)
	}
}

func TestLocatePhoneDigitsBlockWindow(t *testing.T) {
	l := NewBlankRegionLocator()
	page := pdf.Page{
		Number: 0,
		Width:  612,
		Height: 792,
		Words: []pdf.Word{
			{Text: "(555)", BBox: pdf.Rect{X0: 110, Y0: 700, X1: 138, Y1: 712}},
			{Text: "123-4567", BBox: pdf.Rect{X0: 142, Y0: 700, X1: 190, Y1: 712}},
		},
	}
	label := labelAt(FieldPhone, 100)

	// Every phone window overlaps the existing number until dx 30; the
	// ladder ends there, so the last window must not start before it.
	region, ok := l.Locate(label, page)
	if ok && region.BBox.X0 < 128 {
		t.Errorf("Expected digit-bearing windows to be rejected, got X0=%f", region.BBox.X0)
	}
}

func TestLocateClampsToPageWidth(t *testing.T) {
	l := NewBlankRegionLocator()
	page := pdf.Page{Number: 0, Width: 612, Height: 792}
	label := labelAt(FieldName, 600)

	region, ok := l.Locate(label, page)
	if ok && region.BBox.X1 > page.Width {
		t.Errorf("Expected region clamped to the page, got X1=%f", region.BBox.X1)
	}
}

func TestIsBlank(t *testing.T) {
	l := NewBlankRegionLocator()

	tests := []struct {
		ft   FieldType
		text string
		want bool
	}{
		{FieldName, "", true},
		{FieldName, "short", true},
		{FieldName, "this is longer text", false},
		{FieldPhone, "( ) -", true},
		{FieldPhone, "(555) 123-4567", false},
	}

	for _, tt := range tests {
		if got := l.isBlank(tt.ft, tt.text); got != tt.want {
			t.Errorf("isBlank(%s, %q) = %v, want %v", tt.ft, tt.text, got, tt.want)
		}
	}
}

func TestStripPhonePunctuation(t *testing.T) {
	if got := stripPhonePunctuation("( )  - ."); got != "" {
		t.Errorf("Expected scaffolding to strip empty, got %q", got)
	}
	if got := stripPhonePunctuation("(555) 123-4567"); got != "5551234567" {
		t.Errorf("Expected digits to survive, got %q", got)
	}
}
