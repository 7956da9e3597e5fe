package tokenizer

import "strings"

// StopWordFilter decides whether a normalized token is too common to index.
type StopWordFilter interface {
	Contains(term string) bool
}

// StopWordSet is a StopWordFilter backed by a fixed set of words.
type StopWordSet map[string]struct{}

// DefaultStopWords lists common English articles, prepositions, pronouns and
// conjunctions that are never indexed.
var DefaultStopWords = []string{
	"a", "an", "the", "and", "or", "but", "is", "are", "was", "were",
	"in", "on", "at", "to", "for", "with", "by", "about", "against",
	"between", "into", "through", "during", "before", "after", "above",
	"below", "from", "up", "down", "of", "off", "over", "under", "again",
	"further", "then", "once", "here", "there", "when", "where", "why",
	"how", "all", "any", "both", "each", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same", "so",
	"than", "too", "very", "s", "t", "can", "will", "just", "don",
	"should", "now", "he", "she", "it", "they", "we", "you", "i", "me", "my",
}

// NewStopWordSet builds a set for fast lookup. Words are lowercased to
// match normalized tokens.
func NewStopWordSet(words []string) StopWordSet {
	set := make(StopWordSet, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Contains reports whether term is a stop word.
func (s StopWordSet) Contains(term string) bool {
	_, ok := s[term]
	return ok
}

// noStopWords filters nothing.
type noStopWords struct{}

func (noStopWords) Contains(string) bool { return false }
