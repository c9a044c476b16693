package fill

import (
	"log"
	"strings"
)

// ValidatedValues holds the surviving input values keyed by field type.
// It is built once per run and never mutated afterwards.
type ValidatedValues map[FieldType]string

// ValidateValues normalizes raw caller input and drops entries that are
// blank after trimming or fail their field type's validation pattern.
// Rejections are logged, never surfaced as errors: the run proceeds
// with whatever subset survives.
func ValidateValues(raw map[string]string, logger *log.Logger) ValidatedValues {
	values := make(ValidatedValues, len(raw))

	for key, v := range raw {
		ft, ok := ParseFieldType(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			if logger != nil {
				logger.Printf("validate: unknown field key %q dropped", key)
			}
			continue
		}

		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		if pat := ft.spec().validation; pat != nil && !pat.MatchString(v) {
			if logger != nil {
				logger.Printf("validate: %s value %q failed validation, dropped", ft, v)
			}
			continue
		}

		values[ft] = v
	}

	return values
}

// Has reports whether a validated value exists for the given type.
func (v ValidatedValues) Has(ft FieldType) bool {
	_, ok := v[ft]
	return ok
}
