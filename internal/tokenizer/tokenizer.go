// Package tokenizer turns raw text into index terms.
// The same Tokenizer must be used for documents and queries so both sides
// agree on what a term is.
package tokenizer

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"

	"github.com/gcbaptista/page-search/config"
)

// Tokenizer normalizes text into terms. It holds no mutable state and is
// safe for concurrent use.
type Tokenizer struct {
	minLength int
	stopWords StopWordFilter
	stem      bool
}

// New creates a Tokenizer. A nil stopWords filters nothing.
func New(minLength int, stopWords StopWordFilter, stem bool) *Tokenizer {
	if stopWords == nil {
		stopWords = noStopWords{}
	}
	return &Tokenizer{
		minLength: minLength,
		stopWords: stopWords,
		stem:      stem,
	}
}

// NewFromSettings creates the Tokenizer described by index settings.
// Nil settings.StopWords selects DefaultStopWords.
func NewFromSettings(settings config.IndexSettings) *Tokenizer {
	words := settings.StopWords
	if words == nil {
		words = DefaultStopWords
	}
	minLength := settings.MinTermLength
	if minLength == 0 {
		minLength = config.DefaultMinTermLength
	}
	return New(minLength, NewStopWordSet(words), settings.Stemming)
}

// Terms returns a lazy sequence of the terms in text. Ranging over it twice
// yields the same terms.
func (t *Tokenizer) Terms(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for field := range strings.FieldsFuncSeq(text, isSeparator) {
			term, ok := t.normalize(field)
			if !ok {
				continue
			}
			if !yield(term) {
				return
			}
		}
	}
}

// Tokenize collects Terms into a slice. It never returns nil.
func (t *Tokenizer) Tokenize(text string) []string {
	terms := make([]string, 0)
	for term := range t.Terms(text) {
		terms = append(terms, term)
	}
	return terms
}

// normalize lowercases a raw field and applies the length, stop-word and
// stemming rules. ok is false when the field does not produce a term.
func (t *Tokenizer) normalize(field string) (string, bool) {
	term := strings.ToLower(strings.TrimFunc(field, unicode.IsPunct))
	if term == "" || utf8.RuneCountInString(term) < t.minLength {
		return "", false
	}
	if t.stopWords.Contains(term) {
		return "", false
	}
	if t.stem {
		// snowball only errors on unknown languages; keep the unstemmed term then.
		if stemmed, err := snowball.Stem(term, "english", true); err == nil && stemmed != "" {
			term = stemmed
		}
	}
	return term, true
}

// isSeparator matches every rune that is neither a letter nor a digit.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
