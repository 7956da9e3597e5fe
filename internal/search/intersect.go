package search

import "github.com/gcbaptista/page-search/index"

// Match is a document present in every intersected posting list, with its
// occurrence from each list in the order the lists were given.
type Match struct {
	DocumentID  string
	Occurrences []index.Occurrence
}

// Intersect returns the documents common to all lists. Every list must be
// sorted by DocumentID without duplicates, as frozen posting lists are.
// It walks the lists in a single k-way merge, O(sum of list lengths).
func Intersect(lists []index.PostingList) []Match {
	matches := make([]Match, 0)
	if len(lists) == 0 {
		return matches
	}

	cursors := make([]int, len(lists))
	for {
		// The largest head is the smallest document that could be common.
		target := ""
		for i, list := range lists {
			if cursors[i] >= len(list) {
				return matches
			}
			if id := list[cursors[i]].DocumentID; i == 0 || id > target {
				target = id
			}
		}

		aligned := true
		for i, list := range lists {
			for cursors[i] < len(list) && list[cursors[i]].DocumentID < target {
				cursors[i]++
			}
			if cursors[i] >= len(list) {
				return matches
			}
			if list[cursors[i]].DocumentID != target {
				aligned = false
			}
		}
		if !aligned {
			continue
		}

		occurrences := make([]index.Occurrence, len(lists))
		for i, list := range lists {
			occurrences[i] = list[cursors[i]]
			cursors[i]++
		}
		matches = append(matches, Match{DocumentID: target, Occurrences: occurrences})
	}
}
