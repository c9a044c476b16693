package fill

import (
	"log"

	"github.com/docufill/pdf-form-filler/internal/pdf"
)

// phoneProbeWidth is the wide look-ahead window used to detect a phone
// number that already follows a phone label, before any region search.
const phoneProbeWidth = 250.0

// TextOverlayStrategy stamps values onto unstructured pages. It scans
// every word token, gates and classifies label candidates, locates a
// blank region per label, and writes the single highest-confidence
// candidate per field type.
type TextOverlayStrategy struct {
	classifier *LabelClassifier
	locator    *BlankRegionLocator
	resolver   *SafePlacementResolver
	mapping    Mapping
	logger     *log.Logger
}

// NewTextOverlayStrategy composes the overlay strategy from its parts.
func NewTextOverlayStrategy(classifier *LabelClassifier, mapping Mapping, logger *log.Logger) *TextOverlayStrategy {
	return &TextOverlayStrategy{
		classifier: classifier,
		locator:    NewBlankRegionLocator(),
		resolver:   NewSafePlacementResolver(),
		mapping:    mapping,
		logger:     logger,
	}
}

type candidatePair struct {
	label  LabelCandidate
	region PlacementRegion
}

// Fill scans the document and stamps formatted values next to the best
// label found for each field type. written is false when nothing was
// stamped.
func (s *TextOverlayStrategy) Fill(doc *pdf.Document, values ValidatedValues) (out []byte, written bool, err error) {
	pages := doc.Pages()

	best := s.collectCandidates(pages, values)
	if len(best) == 0 {
		return nil, false, nil
	}

	stamps := s.buildStamps(pages, best, values)

	out, err = pdf.ApplyStamps(doc.Bytes(), stamps)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// collectCandidates scans every word of every page and keeps, per
// field type, the highest-confidence label that has a writable blank
// region next to it. Ties keep the first encountered.
func (s *TextOverlayStrategy) collectCandidates(pages []pdf.Page, values ValidatedValues) map[FieldType]candidatePair {
	best := make(map[FieldType]candidatePair)

	for _, page := range pages {
		for _, word := range page.Words {
			if !s.classifier.LooksLikeLabel(word, page) {
				continue
			}
			ft, confidence, ok := s.classifier.Classify(word.Text)
			if !ok || !values.Has(ft) {
				continue
			}

			label := LabelCandidate{
				Page:       page.Number,
				BBox:       word.BBox,
				Text:       word.Text,
				Type:       ft,
				Confidence: confidence,
			}

			// Phone labels get a dedicated wide probe first: if a
			// number already follows the label, skip immediately.
			if ft == FieldPhone && s.phoneAlreadyPresent(label, page) {
				continue
			}

			region, ok := s.locator.Locate(label, page)
			if !ok {
				continue
			}
			if AlreadyFilled(ft, page.TextInRect(region.BBox)) {
				continue
			}

			// Highest confidence wins; ties keep the first encountered.
			if cur, exists := best[ft]; !exists || confidence > cur.label.Confidence {
				best[ft] = candidatePair{label: label, region: region}
			}
		}
	}

	return best
}

// buildStamps turns the selected candidates into positioned text
// stamps, resolving each insertion point against existing content.
func (s *TextOverlayStrategy) buildStamps(pages []pdf.Page, best map[FieldType]candidatePair, values ValidatedValues) []pdf.TextStamp {
	var stamps []pdf.TextStamp
	for _, ft := range AllFieldTypes() {
		pair, ok := best[ft]
		if !ok {
			continue
		}

		text := FormatValue(ft, values[ft])
		dx, dy, fontSize := s.mapping.Geometry(ft)
		x := pair.label.BBox.X1 + dx
		y := pair.label.BBox.Y0 + dy

		page := pageByNumber(pages, pair.label.Page)
		x, y = s.resolver.Resolve(ft, page, x, y, text, fontSize)

		stamps = append(stamps, pdf.TextStamp{
			Page:     pair.label.Page,
			X:        x,
			Y:        y,
			Text:     text,
			FontSize: fontSize,
		})
		if s.logger != nil {
			s.logger.Printf("overlay: stamping %s after label %q on page %d", ft, pair.label.Text, pair.label.Page)
		}
	}

	return stamps
}

// phoneAlreadyPresent checks a wide window right of a phone label for
// an existing number, using the same digit and format heuristics as
// the already-filled detector.
func (s *TextOverlayStrategy) phoneAlreadyPresent(label LabelCandidate, page pdf.Page) bool {
	probe := pdf.Rect{
		X0: label.BBox.X1,
		Y0: label.BBox.Y0 - windowBand,
		X1: label.BBox.X1 + phoneProbeWidth,
		Y1: label.BBox.Y1 + windowBand,
	}
	if page.Width > 0 && probe.X1 > page.Width {
		probe.X1 = page.Width
	}
	return AlreadyFilled(FieldPhone, page.TextInRect(probe))
}

func pageByNumber(pages []pdf.Page, number int) pdf.Page {
	for _, p := range pages {
		if p.Number == number {
			return p
		}
	}
	return pdf.Page{Number: number}
}
