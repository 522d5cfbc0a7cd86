package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxStringLength bounds every sanitized string, in runes.
const MaxStringLength = 10000

var markupStripper = strings.NewReplacer("<", "", ">", "")

// SanitizeString removes '<' and '>', trims surrounding whitespace and
// truncates the result to [MaxStringLength] runes.
//
// Stripping runs before trimming, and the right edge is trimmed again after
// truncation, so SanitizeString(SanitizeString(s)) == SanitizeString(s).
func SanitizeString(s string) string {
	s = strings.TrimSpace(markupStripper.Replace(s))
	if utf8.RuneCountInString(s) <= MaxStringLength {
		return s
	}

	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:MaxStringLength]), unicode.IsSpace)
}

// SanitizeValue sanitizes v recursively. Strings are cleaned, maps and
// slices produced by encoding/json are rebuilt with their elements
// sanitized, and every other value is returned unchanged.
func SanitizeValue(v any) any {
	switch value := v.(type) {
	case string:
		return SanitizeString(value)
	case map[string]any:
		return SanitizeMap(value)
	case []any:
		out := make([]any, len(value))
		for i, elem := range value {
			out[i] = SanitizeValue(elem)
		}
		return out
	default:
		return v
	}
}

// SanitizeMap returns a sanitized copy of data. The input is not modified.
func SanitizeMap(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = SanitizeValue(value)
	}
	return out
}
