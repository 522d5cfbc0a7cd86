package validators

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// SanitizeString
// ---------------------------------------------------------------------------

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain string unchanged", input: "hello", want: "hello"},
		{name: "trims whitespace", input: "  hello \n", want: "hello"},
		{name: "strips angle brackets", input: "<script>alert(1)</script>", want: "scriptalert(1)/script"},
		{name: "strips then trims", input: "< hi >", want: "hi"},
		{name: "empty", input: "", want: ""},
		{name: "only brackets", input: "<<>>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeString(tt.input))
		})
	}
}

func TestSanitizeString_TruncatesToMaxLength(t *testing.T) {
	long := strings.Repeat("a", MaxStringLength+500)

	got := SanitizeString(long)

	assert.Equal(t, MaxStringLength, utf8.RuneCountInString(got))
}

func TestSanitizeString_TruncatesByRunes(t *testing.T) {
	long := strings.Repeat("ж", MaxStringLength+1)

	got := SanitizeString(long)

	assert.Equal(t, MaxStringLength, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestSanitizeString_Idempotent(t *testing.T) {
	inputs := []string{
		"  <b>bold</b>  ",
		strings.Repeat("x", MaxStringLength-1) + "   tail",
		strings.Repeat("y", MaxStringLength-2) + " <" + " z",
		"\t\n",
		"ok",
	}

	for _, in := range inputs {
		once := SanitizeString(in)
		twice := SanitizeString(once)
		assert.Equal(t, once, twice)
		assert.NotContains(t, once, "<")
		assert.NotContains(t, once, ">")
		assert.LessOrEqual(t, utf8.RuneCountInString(once), MaxStringLength)
	}
}

// ---------------------------------------------------------------------------
// SanitizeMap / SanitizeValue
// ---------------------------------------------------------------------------

func TestSanitizeMap_Recursive(t *testing.T) {
	input := map[string]any{
		"title": "  <Chair>  ",
		"price": float64(10),
		"used":  true,
		"none":  nil,
		"address": map[string]any{
			"city": " <Pune> ",
			"geo": map[string]any{
				"label": "<home>",
			},
		},
		"tags": []any{" <a> ", float64(1), map[string]any{"k": "<v>"}},
	}

	got := SanitizeMap(input)

	assert.Equal(t, "Chair", got["title"])
	assert.Equal(t, float64(10), got["price"])
	assert.Equal(t, true, got["used"])
	assert.Nil(t, got["none"])

	address, ok := got["address"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Pune", address["city"])
	assert.Equal(t, "home", address["geo"].(map[string]any)["label"])

	tags, ok := got["tags"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a", float64(1), map[string]any{"k": "v"}}, tags)
}

func TestSanitizeMap_DoesNotMutateInput(t *testing.T) {
	nested := map[string]any{"city": " <Pune> "}
	input := map[string]any{"title": " <x> ", "address": nested}

	_ = SanitizeMap(input)

	assert.Equal(t, " <x> ", input["title"])
	assert.Equal(t, " <Pune> ", nested["city"])
}

func TestSanitizeMap_Nil(t *testing.T) {
	assert.Nil(t, SanitizeMap(nil))
}

func TestSanitizeMap_Idempotent(t *testing.T) {
	input := map[string]any{
		"a": "  <x>  ",
		"b": map[string]any{"c": []any{" <d> "}},
	}

	once := SanitizeMap(input)
	twice := SanitizeMap(once)

	assert.Equal(t, once, twice)
}
