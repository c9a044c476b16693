package fill

import "github.com/docufill/pdf-form-filler/internal/pdf"

// LabelCandidate is one word token hypothesized to label a fillable
// field. Candidates are recomputed for every document and never
// persisted; the classified type is fixed at creation.
type LabelCandidate struct {
	Page       int
	BBox       pdf.Rect
	Text       string
	Type       FieldType
	Confidence int
}

// PlacementRegion is a writable page area derived from one label
// candidate. Its lifetime is bound to a single fill attempt.
type PlacementRegion struct {
	Page  int
	BBox  pdf.Rect
	Label LabelCandidate
}

// FillResult is the terminal outcome of one document's pipeline run.
// When Written is false, Data is the original input bytes untouched.
type FillResult struct {
	Data    []byte
	Written bool
}

// FieldMapping carries the per-type configuration the strategies need:
// structured field alias names and the write geometry.
type FieldMapping struct {
	AcroNames []string
	OffsetX   float64
	OffsetY   float64
	FontSize  float64
}

// Mapping is the static FieldType → FieldMapping table, loaded once at
// process start and treated as immutable.
type Mapping map[FieldType]FieldMapping

// DefaultMapping returns a mapping built from the compiled-in type
// tables, with the alias names the original configuration shipped.
func DefaultMapping() Mapping {
	m := make(Mapping, len(typeSpecs))
	for ft, spec := range typeSpecs {
		m[ft] = FieldMapping{
			AcroNames: defaultAcroNames[ft],
			OffsetX:   spec.offsetX,
			OffsetY:   spec.offsetY,
			FontSize:  spec.fontSize,
		}
	}
	return m
}

// defaultAcroNames lists the structured field names commonly declared
// for each logical type across the supported document corpus.
var defaultAcroNames = map[FieldType][]string{
	FieldName:    {"name", "Name", "full_name", "FullName", "applicant_name", "Claimant Name"},
	FieldEmail:   {"email", "Email", "email_address", "EmailAddress", "E-mail"},
	FieldAddress: {"address", "Address", "street_address", "StreetAddress", "mailing_address"},
	FieldPhone:   {"phone", "Phone", "phone_number", "PhoneNumber", "telephone", "Telephone"},
	FieldEIN:     {"ein", "EIN", "employer_id", "EmployerID", "tax_id", "TaxID", "FEIN"},
	FieldDOB:     {"dob", "DOB", "date_of_birth", "DateOfBirth", "birth_date", "BirthDate"},
	FieldSSN:     {"ssn", "SSN", "social_security_number", "SocialSecurityNumber"},
}

// Geometry returns the offsets and font size for a type, falling back
// to the compiled-in defaults when the mapping has no entry.
func (m Mapping) Geometry(ft FieldType) (dx, dy, fontSize float64) {
	if fm, ok := m[ft]; ok {
		size := fm.FontSize
		if size <= 0 {
			size = ft.DefaultFontSize()
		}
		return fm.OffsetX, fm.OffsetY, size
	}
	dx, dy = ft.DefaultOffsets()
	return dx, dy, ft.DefaultFontSize()
}

// Aliases returns the structured field alias names for a type.
func (m Mapping) Aliases(ft FieldType) []string {
	if fm, ok := m[ft]; ok && len(fm.AcroNames) > 0 {
		return fm.AcroNames
	}
	return defaultAcroNames[ft]
}
