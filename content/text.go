package content

import (
	"strings"
	"unicode/utf8"
)

const (
	// WordsPerMinute is the assumed reading speed.
	WordsPerMinute = 200
	// ExcerptLength is the maximum excerpt length in runes, before the ellipsis.
	ExcerptLength = 160
)

// ReadingTime returns ceil(words / WordsPerMinute).
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Excerpt returns description when set, otherwise the leading body text,
// whitespace-normalized and cut to max runes on a word boundary.
func Excerpt(description, bodyText string, max int) string {
	src := strings.TrimSpace(description)
	if src == "" {
		src = bodyText
	}
	src = strings.Join(strings.Fields(src), " ")
	if max <= 0 || utf8.RuneCountInString(src) <= max {
		return src
	}
	cut := string([]rune(src)[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:-") + "…"
}
