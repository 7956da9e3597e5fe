package index

// Slot addresses one posting list inside a PostingStore.
type Slot int32

// NoSlot marks a trie node that does not end a term.
const NoSlot Slot = -1

// Occurrence is one document's contribution to a term's posting list.
type Occurrence struct {
	DocumentID    string // External document identifier, the sort key of a PostingList
	TermFrequency int    // Number of times the term appears in the document body
	InTitle       bool   // True if the term also appears in the document title
}

// PostingList is the ordered sequence of Occurrences for one term.
// Once frozen it is strictly sorted by DocumentID with no duplicates.
type PostingList []Occurrence
