// Package tokenizer splits text into lowercase word tokens while keeping
// the rune offsets of each token in the original text. Offsets are what
// make highlight spans possible: a token sequence match is mapped back to
// the exact substring it came from.
package tokenizer

import "unicode"

// Token is one word token: lowercased text plus [Start, End) rune offsets
// into the original input.
type Token struct {
	Text  string
	Start int
	End   int
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize converts text into word tokens. A token is a maximal run of
// letters and digits; everything else is a separator. Token text is
// lowercased, offsets index the original text.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0)
	runes := []rune(text)

	start := -1
	var word []rune
	flush := func(end int) {
		if start < 0 {
			return
		}
		tokens = append(tokens, Token{Text: string(word), Start: start, End: end})
		start = -1
		word = word[:0]
	}

	for i, r := range runes {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			word = append(word, unicode.ToLower(r))
		} else {
			flush(i)
		}
	}
	flush(len(runes))

	return tokens
}

// Texts returns just the token strings, in order.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}
