// Package chunk splits long text into display-sized pieces.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// DefaultBreakpoints are tried in order, coarsest first
var DefaultBreakpoints = []string{"\n\n", "\n", ". ", ", ", " "}

// Split breaks text into pieces of at most maxSize runes. It prefers to
// break after the earliest breakpoint in the list that occurs in an
// oversized span and falls back to a hard cut. Adjacent pieces are merged
// greedily while they fit, and separators stay at the end of the piece
// they close, so joining the result yields text again. Text that already
// fits is returned as a single piece. A maxSize below 1 is treated as 1.
func Split(text string, maxSize int, breakpoints ...string) []string {
	if maxSize < 1 {
		maxSize = 1
	}
	if len(breakpoints) == 0 {
		breakpoints = DefaultBreakpoints
	}
	if utf8.RuneCountInString(text) <= maxSize {
		return []string{text}
	}

	return merge(split(text, maxSize, breakpoints), maxSize)
}

func split(text string, maxSize int, breakpoints []string) []string {
	if utf8.RuneCountInString(text) <= maxSize {
		return []string{text}
	}
	if len(breakpoints) == 0 {
		return hardCut(text, maxSize)
	}

	sep, rest := breakpoints[0], breakpoints[1:]
	if sep == "" {
		return split(text, maxSize, rest)
	}
	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		return split(text, maxSize, rest)
	}

	var out []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, split(part, maxSize, rest)...)
	}
	return out
}

func hardCut(text string, maxSize int) []string {
	var out []string
	runes := []rune(text)
	for len(runes) > maxSize {
		out = append(out, string(runes[:maxSize]))
		runes = runes[maxSize:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

func merge(pieces []string, maxSize int) []string {
	var (
		out     []string
		cur     strings.Builder
		curSize int
	)
	for _, p := range pieces {
		size := utf8.RuneCountInString(p)
		if curSize > 0 && curSize+size > maxSize {
			out = append(out, cur.String())
			cur.Reset()
			curSize = 0
		}
		cur.WriteString(p)
		curSize += size
	}
	if curSize > 0 {
		out = append(out, cur.String())
	}
	return out
}
