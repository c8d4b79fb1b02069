package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// ProseTagger tags text with prose and lemmatizes alphabetic tokens with
// golem's English dictionary.
type ProseTagger struct {
	lemmatizer *golem.Lemmatizer
}

// NewProseTagger builds the tagger. Construction can fail (dictionary
// load); callers treat a failed construction as capability absent.
func NewProseTagger() (*ProseTagger, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &ProseTagger{lemmatizer: lemmatizer}, nil
}

// Tag implements Tagger.
func (t *ProseTagger) Tag(text string) ([]TaggedToken, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}

	proseTokens := doc.Tokens()
	tokens := make([]TaggedToken, 0, len(proseTokens))
	for _, tok := range proseTokens {
		lower := strings.ToLower(tok.Text)
		lemma := lower
		if isAlphabetic(lower) && t.lemmatizer.InDict(lower) {
			lemma = strings.ToLower(t.lemmatizer.Lemma(lower))
		}
		tokens = append(tokens, TaggedToken{
			Text:  tok.Text,
			Lemma: lemma,
			Tag:   tok.Tag,
		})
	}
	return tokens, nil
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
