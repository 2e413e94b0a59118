package download

import (
	"strings"
	"unicode"
)

// Punctuation allowed to survive in output filenames
const allowedPunctuation = "-_()[].,!&'"

// Characters that are reserved on some filesystem and map to underscore
const reservedCharacters = `:*?"<>|`

// SanitizeTitle turns a human video title into a safe filename base: path
// separators are dropped, other reserved filesystem characters become
// underscores, anything that is not alphanumeric, whitespace or allow-listed
// punctuation is removed, and whitespace runs collapse to single spaces.
// The function is idempotent.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	for _, r := range title {
		switch {
		case r == '/' || r == '\\':
			// dropped entirely
		case strings.ContainsRune(reservedCharacters, r):
			b.WriteRune('_')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune(allowedPunctuation, r):
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
