// Package highlight marks known phrases on PDF pages with yellow
// highlight annotations. It is deliberately simpler than the fill
// engine: literal case-insensitive phrase search over page words,
// no classification and no placement reasoning.
package highlight

import (
	"log"
	"regexp"
	"strings"

	"github.com/docufill/pdf-form-filler/internal/pdf"
)

// CommonPhrases are the signature and notarization phrases users most
// often ask to have marked.
var CommonPhrases = []string{
	"Signature of Claimant", "Claimant Signature", "Claimant's Signature",
	"Signature of Notary", "Notary Public Signature", "Notary Signature",
	"Notary Public", "Notary", "Notarized", "Notarization",
	"Witness Signature", "Witness", "Witnessed",
	"Authorized Signature", "Authorized Signer", "Authorized Representative",
	"Legal Signature", "Legal Representative", "Legal Guardian",
	"Power of Attorney", "POA", "Attorney Signature",
}

var customSplit = regexp.MustCompile(`[,;\n]`)

// SplitCustomPhrases parses a free-form phrase list separated by
// commas, semicolons, or newlines.
func SplitCustomPhrases(s string) []string {
	var phrases []string
	for _, part := range customSplit.Split(s, -1) {
		if p := strings.TrimSpace(part); p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}

// Highlighter finds literal phrases on pages and draws highlight
// annotations over them.
type Highlighter struct {
	logger *log.Logger
}

// NewHighlighter creates a highlighter; logger may be nil.
func NewHighlighter(logger *log.Logger) *Highlighter {
	return &Highlighter{logger: logger}
}

// HighlightDocument marks every occurrence of every phrase and returns
// the annotated bytes. found is false when no phrase occurs; the input
// bytes are returned unchanged in that case.
func (h *Highlighter) HighlightDocument(data []byte, phrases []string) (out []byte, found bool, err error) {
	doc, err := pdf.Open(data)
	if err != nil {
		return nil, false, err
	}

	regions := make(map[int][]pdf.Rect)
	for _, page := range doc.Pages() {
		for _, phrase := range phrases {
			for _, box := range findPhrase(page, phrase) {
				regions[page.Number] = append(regions[page.Number], box)
			}
		}
	}

	if len(regions) == 0 {
		return data, false, nil
	}

	out, err = pdf.AddHighlights(data, regions, "")
	if err != nil {
		return nil, false, err
	}

	if h.logger != nil {
		total := 0
		for _, rects := range regions {
			total += len(rects)
		}
		h.logger.Printf("highlight: marked %d occurrence(s)", total)
	}
	return out, true, nil
}

// findPhrase returns the bounding box of every occurrence of a phrase
// on one page. Multi-word phrases match consecutive words; each phrase
// token must match the corresponding word case-insensitively, with the
// final token allowed to be a prefix (labels often end in ':').
func findPhrase(page pdf.Page, phrase string) []pdf.Rect {
	tokens := strings.Fields(strings.ToLower(phrase))
	if len(tokens) == 0 {
		return nil
	}

	var boxes []pdf.Rect
	words := page.Words

	for start := 0; start+len(tokens) <= len(words); start++ {
		if !matchesAt(words, start, tokens) {
			continue
		}

		box := words[start].BBox
		for i := 1; i < len(tokens); i++ {
			box = union(box, words[start+i].BBox)
		}
		boxes = append(boxes, box)
	}

	return boxes
}

func matchesAt(words []pdf.Word, start int, tokens []string) bool {
	for i, token := range tokens {
		w := strings.ToLower(strings.TrimRight(words[start+i].Text, ":.,;"))
		if w != token {
			return false
		}
	}
	return true
}

func union(a, b pdf.Rect) pdf.Rect {
	if b.X0 < a.X0 {
		a.X0 = b.X0
	}
	if b.Y0 < a.Y0 {
		a.Y0 = b.Y0
	}
	if b.X1 > a.X1 {
		a.X1 = b.X1
	}
	if b.Y1 > a.Y1 {
		a.Y1 = b.Y1
	}
	return a
}
