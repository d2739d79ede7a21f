package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Humanize turns a field key into a sentence-case label:
// "first_name", "first-name" and "firstName" all become "First name".
func Humanize(key string) string {
	var words []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			words = append(words, strings.ToLower(b.String()))
			b.Reset()
		}
	}

	prevLower := false
	for _, r := range key {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
			prevLower = false
		case unicode.IsUpper(r) && prevLower:
			flush()
			b.WriteRune(r)
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	flush()

	if len(words) == 0 {
		return key
	}
	// Casers keep state, so one is built per call.
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ")
}
