package tsiface

import (
	"strings"
	"unicode/utf8"
)

// FormatLabel turns a member name into a display label: a space goes before
// every ASCII capital, underscores become spaces, and each word is title
// cased ("createdAt" -> "Created At", "is_active" -> "Is Active").
func FormatLabel(name string) string {
	var spaced strings.Builder
	spaced.Grow(len(name) + 4)
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			spaced.WriteByte(' ')
			spaced.WriteRune(r)
		case r == '_':
			spaced.WriteByte(' ')
		default:
			spaced.WriteRune(r)
		}
	}

	words := strings.Fields(spaced.String())
	for i, word := range words {
		words[i] = titleWord(word)
	}
	return strings.Join(words, " ")
}

func titleWord(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError && size <= 1 {
		return strings.ToLower(word)
	}
	return strings.ToUpper(string(first)) + strings.ToLower(word[size:])
}
