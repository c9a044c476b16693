package fill

import "regexp"

// FieldType identifies one logical value the filler knows how to place.
type FieldType string

const (
	FieldName    FieldType = "name"
	FieldEmail   FieldType = "email"
	FieldAddress FieldType = "address"
	FieldPhone   FieldType = "phone"
	FieldEIN     FieldType = "ein"
	FieldDOB     FieldType = "dob"
	FieldSSN     FieldType = "ssn"
)

// AllFieldTypes returns every supported field type in a stable order.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldName,
		FieldEmail,
		FieldAddress,
		FieldPhone,
		FieldEIN,
		FieldDOB,
		FieldSSN,
	}
}

// ParseFieldType maps a string key to a FieldType.
func ParseFieldType(s string) (FieldType, bool) {
	for _, ft := range AllFieldTypes() {
		if string(ft) == s {
			return ft, true
		}
	}
	return "", false
}

// typeSpec holds the per-type data tables: label keyword synonyms, the
// input validation pattern, the already-filled detection pattern, and
// the default write geometry.
type typeSpec struct {
	// keywords are full label synonyms checked for exact match.
	keywords []string
	// subKeywords are substring cues for the fixed-confidence tier.
	subKeywords []string
	// validation accepts or rejects raw caller input. Nil means any
	// non-blank input is acceptable.
	validation *regexp.Regexp
	// detection matches content that already looks like valid data of
	// this type. Nil means length-based heuristics only.
	detection *regexp.Regexp
	// offsetX/offsetY displace the insertion point from the label box.
	offsetX float64
	offsetY float64
	// fontSize is the default stamp size in points.
	fontSize float64
}

var typeSpecs = map[FieldType]typeSpec{
	FieldName: {
		keywords:    []string{"name", "full name", "print name", "applicant name", "claimant name"},
		subKeywords: []string{"name"},
		detection:   regexp.MustCompile(`[A-Za-z]{2,}`),
		offsetX:     10,
		offsetY:     0,
		fontSize:    11,
	},
	FieldEmail: {
		keywords:    []string{"email", "e-mail", "email address", "e-mail address"},
		subKeywords: []string{"email", "e-mail"},
		validation:  regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),
		detection:   regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		offsetX:     10,
		offsetY:     0,
		fontSize:    11,
	},
	FieldAddress: {
		keywords:    []string{"address", "street address", "mailing address", "residence"},
		subKeywords: []string{"address"},
		detection:   regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9 .,#/-]{9,}`),
		offsetX:     10,
		offsetY:     0,
		fontSize:    10,
	},
	FieldPhone: {
		keywords:    []string{"phone", "telephone", "phone number", "telephone number", "mobile", "cell"},
		subKeywords: []string{"phone", "telephone", "tel", "mobile", "cell"},
		validation:  regexp.MustCompile(`^\+?[0-9()./\s-]{7,20}$`),
		offsetX:     5,
		offsetY:     0,
		fontSize:    11,
	},
	FieldEIN: {
		keywords:    []string{"ein", "fein", "employer identification number", "tax id", "tax identification number"},
		subKeywords: []string{"ein", "fein", "tax id"},
		validation:  regexp.MustCompile(`^\d{2}-?\d{7}$`),
		detection:   regexp.MustCompile(`\b\d{2}-\d{7}\b|\b\d{9}\b`),
		offsetX:     10,
		offsetY:     0,
		fontSize:    11,
	},
	FieldDOB: {
		keywords:    []string{"dob", "date of birth", "birth date", "birthdate"},
		subKeywords: []string{"dob", "birth"},
		validation:  regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`),
		detection:   regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		offsetX:     10,
		offsetY:     0,
		fontSize:    11,
	},
	FieldSSN: {
		keywords:    []string{"ssn", "social security number", "social security", "social security no"},
		subKeywords: []string{"ssn", "social"},
		validation:  regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`),
		detection:   regexp.MustCompile(`\b\d{2,3}-\d{2}-\d{3,4}\b|\b\d{9}\b`),
		offsetX:     10,
		offsetY:     0,
		fontSize:    11,
	},
}

// spec returns the data table for a field type.
func (ft FieldType) spec() typeSpec {
	return typeSpecs[ft]
}

// Keywords returns the label synonyms for a field type.
func (ft FieldType) Keywords() []string {
	return append([]string(nil), typeSpecs[ft].keywords...)
}

// DefaultOffsets returns the default insertion displacement from a
// label's bounding box.
func (ft FieldType) DefaultOffsets() (dx, dy float64) {
	s := typeSpecs[ft]
	return s.offsetX, s.offsetY
}

// DefaultFontSize returns the default stamp font size in points.
func (ft FieldType) DefaultFontSize() float64 {
	return typeSpecs[ft].fontSize
}
