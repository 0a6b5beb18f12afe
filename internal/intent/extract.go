package intent

import (
	"strings"
	"unicode"
)

// ExtractURL returns the token that starts at the first "http" in text and
// runs to the next whitespace rune or the end of text.
// The token is not validated; anything starting with "http" is accepted.
func ExtractURL(text string) (string, bool) {
	start := strings.Index(text, "http")
	if start == -1 {
		return "", false
	}

	rest := text[start:]
	if end := strings.IndexFunc(rest, unicode.IsSpace); end != -1 {
		rest = rest[:end]
	}

	return strings.TrimSpace(rest), true
}
