package search

import (
	"slices"
	"strings"

	"github.com/gcbaptista/page-search/index"
	"github.com/gcbaptista/page-search/internal/tokenizer"
)

// Hit is one ranked document of a query.
type Hit struct {
	DocumentID      string
	Score           int
	TermFrequencies map[string]int // body frequency of each query term
	TitleMatches    []string       // query terms found in the title, sorted
}

// Query runs a conjunctive keyword query against idx. Terms are produced
// by tok, which must be the tokenizer the index was built with. A document
// matches only if it contains every distinct query term; a query with no
// terms, or with a term the index does not know, matches nothing.
//
// Each hit scores the sum of its query-term frequencies plus titleBonus per
// query term present in its title. Hits are ordered by descending score,
// then ascending DocumentID.
func Query(idx *index.Index, tok *tokenizer.Tokenizer, raw string, titleBonus int) []Hit {
	terms := distinctTerms(tok, raw)
	if len(terms) == 0 {
		return []Hit{}
	}

	lists := make([]index.PostingList, len(terms))
	for i, term := range terms {
		list, ok := idx.Lookup(term)
		if !ok {
			return []Hit{}
		}
		lists[i] = list
	}

	matches := Intersect(lists)
	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, scoreMatch(terms, m, titleBonus))
	}
	Rank(hits)
	return hits
}

// Rank sorts hits by descending score, breaking ties by ascending DocumentID.
func Rank(hits []Hit) {
	slices.SortFunc(hits, func(a, b Hit) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.DocumentID, b.DocumentID)
	})
}

func scoreMatch(terms []string, m Match, titleBonus int) Hit {
	hit := Hit{
		DocumentID:      m.DocumentID,
		TermFrequencies: make(map[string]int, len(terms)),
		TitleMatches:    make([]string, 0),
	}
	for i, occ := range m.Occurrences {
		hit.TermFrequencies[terms[i]] = occ.TermFrequency
		hit.Score += occ.TermFrequency
		if occ.InTitle {
			hit.Score += titleBonus
			hit.TitleMatches = append(hit.TitleMatches, terms[i])
		}
	}
	slices.Sort(hit.TitleMatches)
	return hit
}

// distinctTerms tokenizes raw and drops repeated terms, keeping first-seen order.
func distinctTerms(tok *tokenizer.Tokenizer, raw string) []string {
	seen := make(map[string]struct{})
	terms := make([]string, 0)
	for term := range tok.Terms(raw) {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}
