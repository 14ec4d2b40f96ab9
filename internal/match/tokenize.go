package match

import (
	"strings"
	"unicode"
)

// Token is a single word token of a text
type Token struct {
	Term     string
	Position int // Word index, 0-based
	Start    int // Byte offset of the first character
	End      int // Byte offset one past the last character
}

// isWordRune reports whether r belongs to a word: letters, marks, digits and underscore
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// Tokenize splits text into maximal runs of word characters
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, Token{Term: text[start:i], Position: len(tokens), Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Term: text[start:], Position: len(tokens), Start: start, End: len(text)})
	}

	return tokens
}

// terms returns only the token strings of text
func terms(text string) []string {
	tokens := Tokenize(text)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Term
	}
	return out
}

// sameWord compares two tokens case-insensitively
func sameWord(a, b string) bool {
	return strings.EqualFold(a, b)
}
