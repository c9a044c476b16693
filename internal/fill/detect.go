package fill

import (
	"regexp"
	"strings"
)

// phoneFormats is the ordered list of canonical phone renderings that
// count as already filled, checked before the looser digit heuristics.
var phoneFormats = []*regexp.Regexp{
	regexp.MustCompile(`\(\d{3}\)\s?\d{3}-\d{4}`),
	regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
	regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{4}\b`),
	regexp.MustCompile(`\b\d{3}\s\d{3}\s\d{4}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
	regexp.MustCompile(`\+?1[\s.-]?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`),
}

// phonePlaceholder matches pre-printed punctuation scaffolding such as
// "( )   -" that contains no digits at all.
var phonePlaceholder = regexp.MustCompile(`^[()\s.\-_/]*$`)

// AlreadyFilled reports whether existing content already looks like
// valid data of the given type. When it returns true the engine must
// not overwrite the content: running the pipeline twice over a filled
// document leaves it unchanged.
func AlreadyFilled(ft FieldType, content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return false
	}

	switch ft {
	case FieldPhone:
		return phoneAlreadyFilled(content)
	case FieldName:
		return ft.spec().detection.MatchString(content)
	case FieldAddress:
		return len(content) >= 10 && ft.spec().detection.MatchString(content)
	default:
		if pat := ft.spec().detection; pat != nil {
			return pat.MatchString(content)
		}
		return false
	}
}

func phoneAlreadyFilled(content string) bool {
	// Pre-printed "( ) -" scaffolding is not data.
	if phonePlaceholder.MatchString(content) {
		return false
	}

	for _, pat := range phoneFormats {
		if pat.MatchString(content) {
			return true
		}
	}

	// Loose fallback: enough digits to plausibly be a number.
	return len(digitsOnly(content)) >= 7
}
