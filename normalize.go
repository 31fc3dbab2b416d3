package transposition

import (
	"strings"
	"unicode"
)

// NormalizeMessage prepares plaintext for the grid: every ASCII space is
// removed and the remainder is upper-cased. Other whitespace, digits and
// punctuation are kept as grid content.
//
// Example: "Hello World 42!" -> "HELLOWORLD42!"
func NormalizeMessage(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

// NormalizeKey reduces a raw cipher key to its unique letters, upper-cased,
// in order of first appearance. It performs no length check; see ParseKey.
//
// Example: "Secret-Key" -> "SECRTKY"
func NormalizeKey(raw string) string {
	return string(normalizeKeyRunes(raw))
}

func normalizeKeyRunes(raw string) []rune {
	seen := make(map[rune]struct{}, len(raw))
	letters := make([]rune, 0, len(raw))
	for _, r := range raw {
		if !unicode.IsLetter(r) {
			continue
		}
		upper := unicode.ToUpper(r)
		if _, dup := seen[upper]; dup {
			continue
		}
		seen[upper] = struct{}{}
		letters = append(letters, upper)
	}
	return letters
}
