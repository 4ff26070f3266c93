package a5e

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ordinal formats n as 1st, 2nd, 3rd, 4th, 11th, 21st and so on.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// Capitalize upper-cases the first rune and lower-cases the rest
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// HumanJoin joins items as "a", "a or b", "a, b, or c".
func HumanJoin(items []string, final string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fmt.Sprintf("%s %s %s", items[0], final, items[1])
	}
	return fmt.Sprintf("%s, %s %s", strings.Join(items[:len(items)-1], ", "), final, items[len(items)-1])
}

// Plural formats a count with the singular or plural noun
func Plural(n int, singular, plural string) string {
	if plural == "" {
		plural = singular + "s"
	}
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
