// Package textspan locates literal, case-insensitive, word-boundary
// occurrences of terms inside a text and reports them as rune-offset spans.
//
// A word boundary means the occurrence is neither preceded nor followed by a
// word rune (letter, digit, or underscore). The term itself may contain
// non-word runes: "c++" matches in "knows c++ well" but "c" alone does not
// match inside "c++" or "color". Regexp cannot express this directly (RE2
// has no lookarounds), so matching is a rune scan.
package textspan

import "unicode"

// Span is one occurrence: [Start, End) rune offsets and the literal
// matched substring with original casing.
type Span struct {
	Text  string
	Start int
	End   int
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// FindAll returns every word-boundary occurrence of term in text, in
// start-offset order. Occurrences may touch but not overlap each other;
// scanning resumes after each match. Empty text or term yields nil.
func FindAll(text, term string) []Span {
	if text == "" || term == "" {
		return nil
	}

	runes := []rune(text)
	lower := lowerRunes(text)
	needle := lowerRunes(term)

	var spans []Span
	limit := len(lower) - len(needle)
	for i := 0; i <= limit; i++ {
		if !matchAt(lower, needle, i) {
			continue
		}
		end := i + len(needle)
		if i > 0 && isWordRune(lower[i-1]) {
			continue
		}
		if end < len(lower) && isWordRune(lower[end]) {
			continue
		}
		spans = append(spans, Span{
			Text:  string(runes[i:end]),
			Start: i,
			End:   end,
		})
		i = end - 1
	}
	return spans
}

// Contains reports whether term occurs in text at a word boundary.
func Contains(text, term string) bool {
	if text == "" || term == "" {
		return false
	}

	lower := lowerRunes(text)
	needle := lowerRunes(term)

	limit := len(lower) - len(needle)
	for i := 0; i <= limit; i++ {
		if !matchAt(lower, needle, i) {
			continue
		}
		if i > 0 && isWordRune(lower[i-1]) {
			continue
		}
		if end := i + len(needle); end < len(lower) && isWordRune(lower[end]) {
			continue
		}
		return true
	}
	return false
}

func matchAt(haystack, needle []rune, pos int) bool {
	for j, r := range needle {
		if haystack[pos+j] != r {
			return false
		}
	}
	return true
}

// Clamp forces a span produced by an external source into the bounds of a
// text of runeLen runes. Inverted or fully out-of-range spans collapse to
// an empty span at the nearest valid offset.
func Clamp(start, end, runeLen int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > runeLen {
		start = runeLen
	}
	if end < start {
		end = start
	}
	if end > runeLen {
		end = runeLen
	}
	return start, end
}
