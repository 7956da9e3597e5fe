// Package index holds the read-only search index: a compressed trie that
// maps each term to a slot of a posting store.
package index

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Index pairs a frozen Trie with a frozen PostingStore. It is never
// mutated after construction, so queries may run against it concurrently
// without locking.
type Index struct {
	trie      *Trie
	store     *PostingStore
	documents int
}

// Stats summarizes the size of an index.
type Stats struct {
	Documents int `json:"documents"`  // Documents the index was built from
	Terms     int `json:"terms"`      // Unique terms
	Postings  int `json:"postings"`   // Occurrences across all posting lists
	TrieNodes int `json:"trie_nodes"` // Arena nodes, including the root
}

// New wraps a trie and a store that have both been frozen. It panics if
// either is still mutable or if their sizes disagree.
func New(trie *Trie, store *PostingStore, documents int) *Index {
	if !trie.Frozen() || !store.Frozen() {
		panic("index: New requires a frozen trie and posting store")
	}
	if trie.Len() != store.Len() {
		panic(fmt.Sprintf("index: trie holds %d terms but store holds %d lists", trie.Len(), store.Len()))
	}
	return &Index{trie: trie, store: store, documents: documents}
}

// Empty returns a frozen index with no terms.
func Empty() *Index {
	trie := NewTrie()
	store := NewPostingStore()
	trie.Freeze()
	store.Freeze()
	return New(trie, store, 0)
}

// Lookup resolves term through the trie and returns its posting list.
func (idx *Index) Lookup(term string) (PostingList, bool) {
	slot, ok := idx.trie.Lookup(term)
	if !ok {
		return nil, false
	}
	return idx.store.Get(slot), true
}

// Complete returns up to limit indexed terms starting with prefix.
func (idx *Index) Complete(prefix string, limit int) []string {
	return idx.trie.Complete(prefix, limit)
}

// Trie exposes the frozen trie.
func (idx *Index) Trie() *Trie {
	return idx.trie
}

// Store exposes the frozen posting store.
func (idx *Index) Store() *PostingStore {
	return idx.store
}

// Stats returns size information about the index.
func (idx *Index) Stats() Stats {
	return Stats{
		Documents: idx.documents,
		Terms:     idx.trie.Len(),
		Postings:  idx.store.TotalOccurrences(),
		TrieNodes: idx.trie.NodeCount(),
	}
}

// gobIndexData is the serialized form of an Index: terms in lexicographic
// order with their posting lists. Slot numbers are not persisted; decoding
// re-inserts terms in order, which yields an index answering every lookup
// exactly like the original.
type gobIndexData struct {
	Documents int
	Terms     []string
	Lists     []PostingList
}

// GobEncode implements the gob.GobEncoder interface for Index.
func (idx *Index) GobEncode() ([]byte, error) {
	data := gobIndexData{
		Documents: idx.documents,
		Terms:     make([]string, 0, idx.trie.Len()),
		Lists:     make([]PostingList, 0, idx.trie.Len()),
	}
	idx.trie.Walk(func(term string, slot Slot) bool {
		data.Terms = append(data.Terms, term)
		data.Lists = append(data.Lists, idx.store.Get(slot))
		return true
	})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to gob encode index: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for Index.
func (idx *Index) GobDecode(raw []byte) error {
	var data gobIndexData
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&data); err != nil {
		return fmt.Errorf("failed to gob decode index: %w", err)
	}
	if len(data.Terms) != len(data.Lists) {
		return fmt.Errorf("corrupt index: %d terms but %d posting lists", len(data.Terms), len(data.Lists))
	}

	trie := NewTrie()
	store := NewPostingStore()
	for i, term := range data.Terms {
		if err := validatePostingList(data.Lists[i]); err != nil {
			return fmt.Errorf("corrupt posting list for term '%s': %w", term, err)
		}
		slot := store.AllocateSlot()
		for _, occ := range data.Lists[i] {
			store.Append(slot, occ)
		}
		if err := trie.Insert(term, slot); err != nil {
			return fmt.Errorf("corrupt index: %w", err)
		}
	}
	trie.Freeze()
	store.Freeze()

	idx.trie = trie
	idx.store = store
	idx.documents = data.Documents
	return nil
}

// validatePostingList checks the invariants Freeze would otherwise panic on.
func validatePostingList(list PostingList) error {
	if len(list) == 0 {
		return fmt.Errorf("posting list is empty")
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].DocumentID >= list[i].DocumentID {
			return fmt.Errorf("posting list is not strictly sorted at position %d", i)
		}
	}
	return nil
}
