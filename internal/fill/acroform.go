package fill

import (
	"log"

	"github.com/docufill/pdf-form-filler/internal/pdf"
)

// AcroFormStrategy fills structured interactive form fields. It only
// succeeds when at least one alias-matched field was actually updated;
// matching fields that already hold valid data are left untouched.
type AcroFormStrategy struct {
	mapping Mapping
	logger  *log.Logger
}

// NewAcroFormStrategy creates the structured-form strategy.
func NewAcroFormStrategy(mapping Mapping, logger *log.Logger) *AcroFormStrategy {
	return &AcroFormStrategy{mapping: mapping, logger: logger}
}

type stagedUpdate struct {
	field pdf.FormField
	value string
}

// Fill attempts a structured fill. written is false when the document
// declares no usable fields, no field name matches any alias, or every
// match is already filled; the caller then falls back to the overlay
// strategy.
func (s *AcroFormStrategy) Fill(data []byte, values ValidatedValues) (out []byte, written bool, err error) {
	fc, err := pdf.OpenForm(data)
	if err != nil {
		return nil, false, err
	}

	fields := fc.Fields()
	if len(fields) == 0 {
		return nil, false, nil
	}

	staged := s.stageUpdates(fields, values)
	if len(staged) == 0 {
		return nil, false, nil
	}

	// Apply all staged updates, then serialize once.
	for _, u := range staged {
		fc.SetValue(u.field, u.value)
	}

	out, err = fc.Write()
	if err != nil {
		return nil, false, err
	}

	if s.logger != nil {
		s.logger.Printf("acroform: updated %d field(s)", len(staged))
	}
	return out, true, nil
}

// stageUpdates matches fields against the per-type alias lists and
// returns the updates worth applying: alias-matched fields that do not
// already hold valid data, with display-canonical values.
func (s *AcroFormStrategy) stageUpdates(fields []pdf.FormField, values ValidatedValues) []stagedUpdate {
	var staged []stagedUpdate
	for _, ft := range AllFieldTypes() {
		value, ok := values[ft]
		if !ok {
			continue
		}
		aliases := s.mapping.Aliases(ft)

		for _, field := range fields {
			if !containsString(aliases, field.Name) {
				continue
			}
			if AlreadyFilled(ft, field.Value) {
				if s.logger != nil {
					s.logger.Printf("acroform: field %q already holds %s data, skipping", field.Name, ft)
				}
				continue
			}
			staged = append(staged, stagedUpdate{field: field, value: FormatValue(ft, value)})
		}
	}
	return staged
}
