package fill

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/docufill/pdf-form-filler/internal/pdf"
)

// Confidence tiers for the label classifier. These are empirically
// tuned scores, not calibrated probabilities; keep them adjustable.
const (
	ConfidenceExact     = 100
	ConfidenceEmail     = 95
	ConfidenceKeyword   = 90
	ConfidenceName      = 85
	MinConfidence       = 80
	MinFuzzyConfidence  = 70
	WeakFuzzyConfidence = 60
)

// Label-likelihood gate scoring (§ heuristics over token shape and
// position). A token must reach gateThreshold to count as a label at
// all, before classification applies.
const (
	gateThreshold      = 70
	gatePunctuation    = 30
	gateKeyword        = 40
	gateTopOfPage      = 15
	gateShortText      = 20
	gateNarrow         = 20
	gateMaxTokenLength = 50
	gateMaxWidthFrac   = 0.30
	gateTopFrac        = 0.30
)

// LabelClassifier maps short layout tokens to field types with a
// 0-100 confidence score. Classification is a pure function of the
// token text; a candidate's type is never reassigned.
type LabelClassifier struct {
	minConfidence int
	keywords      map[FieldType][]string
}

// NewLabelClassifier creates a classifier using the built-in keyword
// tables. Extra label variants (from the patterns config) may be nil.
func NewLabelClassifier(extra map[FieldType][]string) *LabelClassifier {
	keywords := make(map[FieldType][]string, len(typeSpecs))
	for ft, spec := range typeSpecs {
		kws := append([]string(nil), spec.keywords...)
		for _, v := range extra[ft] {
			v = normalizeLabel(v)
			if v != "" && !containsString(kws, v) {
				kws = append(kws, v)
			}
		}
		keywords[ft] = kws
	}
	return &LabelClassifier{
		minConfidence: MinConfidence,
		keywords:      keywords,
	}
}

// Classify returns the field type a token most likely labels and the
// confidence of that call. ok is false when no type reaches the
// classifier's minimum confidence.
func (c *LabelClassifier) Classify(text string) (ft FieldType, confidence int, ok bool) {
	norm := normalizeLabel(text)
	if norm == "" {
		return "", 0, false
	}

	// Exact keyword match wins outright.
	for _, t := range AllFieldTypes() {
		if containsString(c.keywords[t], norm) {
			return t, ConfidenceExact, true
		}
	}

	hasEmail := strings.Contains(norm, "email") || strings.Contains(norm, "e-mail")
	hasAddress := strings.Contains(norm, "address")

	// Email takes precedence over address whenever both appear in one
	// token: address blocks commonly sit right above an email line.
	if hasEmail && hasAddress {
		return FieldEmail, ConfidenceEmail, true
	}

	if hasEmail {
		return FieldEmail, ConfidenceEmail, true
	}
	for _, t := range []FieldType{FieldPhone, FieldSSN, FieldEIN, FieldDOB} {
		for _, sub := range typeSpecs[t].subKeywords {
			if strings.Contains(norm, sub) {
				return t, ConfidenceKeyword, true
			}
		}
	}
	if hasAddress {
		return FieldAddress, ConfidenceKeyword, true
	}
	if strings.Contains(norm, "name") {
		return FieldName, ConfidenceName, true
	}

	// Fuzzy fallback: best similarity ratio against every keyword.
	ft, confidence = c.bestFuzzyMatch(norm)
	return ft, confidence, confidence >= c.minConfidence
}

// bestFuzzyMatch scores the token against all keywords of all types
// and keeps the best (type, ratio) pair.
func (c *LabelClassifier) bestFuzzyMatch(norm string) (FieldType, int) {
	var best FieldType
	bestScore := 0
	for _, t := range AllFieldTypes() {
		for _, kw := range c.keywords[t] {
			if score := similarityRatio(norm, kw); score > bestScore {
				best = t
				bestScore = score
			}
		}
	}
	return best, bestScore
}

// LooksLikeLabel is the gate that filters body-text words out before
// classification: it scores token shape (trailing punctuation, length,
// width) and page position, accepting at gateThreshold.
func (c *LabelClassifier) LooksLikeLabel(w pdf.Word, page pdf.Page) bool {
	return c.labelScore(w, page) >= gateThreshold
}

func (c *LabelClassifier) labelScore(w pdf.Word, page pdf.Page) int {
	score := 0
	text := strings.TrimSpace(w.Text)
	if text == "" {
		return 0
	}

	if strings.HasSuffix(text, ":") || strings.HasSuffix(text, ".") || strings.HasSuffix(text, "?") {
		score += gatePunctuation
	}

	norm := normalizeLabel(text)
	if c.containsDomainKeyword(norm) {
		score += gateKeyword
	}

	if page.Height > 0 && w.BBox.Y0 >= page.Height*(1-gateTopFrac) {
		score += gateTopOfPage
	}

	if len(text) < gateMaxTokenLength {
		score += gateShortText
	}

	if page.Width > 0 && w.BBox.Width() < page.Width*gateMaxWidthFrac {
		score += gateNarrow
	}

	return score
}

func (c *LabelClassifier) containsDomainKeyword(norm string) bool {
	for _, t := range AllFieldTypes() {
		for _, sub := range typeSpecs[t].subKeywords {
			if strings.Contains(norm, sub) {
				return true
			}
		}
		// Full synonyms like "residence" have no substring cue of their
		// own; the configured keyword lists cover them.
		for _, kw := range c.keywords[t] {
			if strings.Contains(norm, kw) {
				return true
			}
		}
	}
	return false
}

// normalizeLabel lowercases a token and strips the trailing separator
// punctuation labels usually carry.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, ":.")
	return strings.TrimSpace(s)
}

// similarityRatio is a 0-100 string similarity score derived from the
// Levenshtein edit distance.
func similarityRatio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(float64(longest-dist) / float64(longest) * 100)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
