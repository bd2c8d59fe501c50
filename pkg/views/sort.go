package views

import (
	"strings"
	"unicode"
)

// naturalLess compares strings in a way that treats numbers as numbers rather than characters
// For example: "Koi 2" < "Koi 10" when using naturalLess. Letters compare case-insensitively.
func naturalLess(s1, s2 string) bool {
	a, b := []rune(strings.ToLower(s1)), []rune(strings.ToLower(s2))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		// Skip leading spaces
		for i < len(a) && unicode.IsSpace(a[i]) {
			i++
		}
		for j < len(b) && unicode.IsSpace(b[j]) {
			j++
		}
		if i >= len(a) || j >= len(b) {
			break
		}

		if unicode.IsDigit(a[i]) && unicode.IsDigit(b[j]) {
			si, sj := i, j
			for i < len(a) && unicode.IsDigit(a[i]) {
				i++
			}
			for j < len(b) && unicode.IsDigit(b[j]) {
				j++
			}
			n1 := strings.TrimLeft(string(a[si:i]), "0")
			n2 := strings.TrimLeft(string(b[sj:j]), "0")
			if len(n1) != len(n2) {
				return len(n1) < len(n2)
			}
			if n1 != n2 {
				return n1 < n2
			}
			continue
		}

		if a[i] != b[j] {
			return a[i] < b[j]
		}
		i++
		j++
	}

	// If we've reached the end of one string but not the other
	return len(a)-i < len(b)-j
}
