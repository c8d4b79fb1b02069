// Package nlp provides the optional part-of-speech tagging capability used
// by context-term extraction. The capability is explicit: a nil Tagger
// means "absent", and callers degrade to skill-only matching instead of
// failing.
package nlp

// TaggedToken is one token with its Penn Treebank tag and lowercase lemma.
type TaggedToken struct {
	Text  string
	Lemma string
	Tag   string
}

// Tagger tokenizes and part-of-speech tags text.
type Tagger interface {
	Tag(text string) ([]TaggedToken, error)
}

// IsNounLike reports whether tag marks a noun or proper noun (NN, NNS,
// NNP, NNPS).
func IsNounLike(tag string) bool {
	return len(tag) >= 2 && tag[0] == 'N' && tag[1] == 'N'
}

// IsAdjective reports whether tag marks an adjective (JJ, JJR, JJS).
func IsAdjective(tag string) bool {
	return len(tag) >= 2 && tag[0] == 'J' && tag[1] == 'J'
}
