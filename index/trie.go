package index

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gcbaptista/page-search/internal/errors"
)

const rootNode int32 = 0

// trieNode is one arena entry. Nodes refer to each other by arena index,
// never by pointer.
type trieNode struct {
	label    string  // Edge label from the parent; empty only for the root
	children []int32 // Child node indices, ordered by the first byte of their labels
	slot     Slot    // NoSlot unless a term ends here
}

// Trie is a compressed prefix trie (radix tree) mapping terms to posting
// store slots. Chains of single-child nodes are collapsed into one edge,
// and no two sibling edges start with the same byte, so Lookup follows at
// most one edge per matched run and costs O(len(term)).
//
// A Trie is built by a single writer and then frozen. A frozen Trie is
// read-only and safe for concurrent use.
type Trie struct {
	nodes  []trieNode
	terms  int
	frozen bool
}

// NewTrie creates an empty trie holding only the root.
func NewTrie() *Trie {
	return &Trie{nodes: []trieNode{{slot: NoSlot}}}
}

// Insert binds term to slot. It returns an *errors.InvalidTermError for an
// empty term or a negative slot and an *errors.DuplicateTermError when term
// is already bound. Insert panics on a frozen trie.
func (t *Trie) Insert(term string, slot Slot) error {
	if term == "" {
		return errors.NewInvalidTermError(term, "term must not be empty")
	}
	if slot < 0 {
		return errors.NewInvalidTermError(term, fmt.Sprintf("slot %d is negative", slot))
	}
	if t.frozen {
		panic("index: Insert called on a frozen trie")
	}

	n, rest := rootNode, term
	for rest != "" {
		i, found := t.childIndex(n, rest[0])
		if !found {
			leaf := t.newNode(rest, slot)
			t.insertChild(n, i, leaf)
			t.terms++
			return nil
		}

		c := t.nodes[n].children[i]
		label := t.nodes[c].label
		common := commonPrefixLen(label, rest)
		if common < len(label) {
			// The term diverges inside this edge (or ends inside it): split the
			// edge so a node exists exactly at the divergence point.
			mid := t.newNode(label[:common], NoSlot)
			t.nodes[c].label = label[common:]
			t.nodes[mid].children = []int32{c}
			t.nodes[n].children[i] = mid
			c = mid
		}
		n, rest = c, rest[common:]
	}

	if existing := t.nodes[n].slot; existing != NoSlot {
		return errors.NewDuplicateTermError(term, int32(existing))
	}
	t.nodes[n].slot = slot
	t.terms++
	return nil
}

// Lookup returns the slot bound to term. It reports false when the term
// only partially matches an edge, runs past the trie, or ends on a node
// that no term ends at.
func (t *Trie) Lookup(term string) (Slot, bool) {
	if term == "" {
		return NoSlot, false
	}
	n, rest := rootNode, term
	for rest != "" {
		i, found := t.childIndex(n, rest[0])
		if !found {
			return NoSlot, false
		}
		c := t.nodes[n].children[i]
		label := t.nodes[c].label
		if !strings.HasPrefix(rest, label) {
			return NoSlot, false
		}
		n, rest = c, rest[len(label):]
	}
	slot := t.nodes[n].slot
	return slot, slot != NoSlot
}

// Walk calls fn for every term in byte-wise lexicographic order until fn
// returns false.
func (t *Trie) Walk(fn func(term string, slot Slot) bool) {
	buf := make([]byte, 0, 32)
	t.walk(rootNode, buf, fn)
}

// Complete returns up to limit terms starting with prefix, in lexicographic
// order. A limit <= 0 returns every match.
func (t *Trie) Complete(prefix string, limit int) []string {
	matches := make([]string, 0)

	n, rest := rootNode, prefix
	path := make([]byte, 0, len(prefix)+16)
	for rest != "" {
		i, found := t.childIndex(n, rest[0])
		if !found {
			return matches
		}
		c := t.nodes[n].children[i]
		label := t.nodes[c].label
		switch {
		case strings.HasPrefix(rest, label):
			rest = rest[len(label):]
		case strings.HasPrefix(label, rest):
			// prefix ends inside this edge; every term below c matches
			rest = ""
		default:
			return matches
		}
		path = append(path, label...)
		n = c
	}

	t.walk(n, path, func(term string, _ Slot) bool {
		matches = append(matches, term)
		return limit <= 0 || len(matches) < limit
	})
	return matches
}

// Len returns the number of terms stored.
func (t *Trie) Len() int {
	return t.terms
}

// NodeCount returns the number of arena nodes, including the root.
func (t *Trie) NodeCount() int {
	return len(t.nodes)
}

// Freeze makes the trie read-only.
func (t *Trie) Freeze() {
	t.frozen = true
}

// Frozen reports whether Freeze has been called.
func (t *Trie) Frozen() bool {
	return t.frozen
}

// walk visits n's own term before its children so shorter terms come first.
func (t *Trie) walk(n int32, path []byte, fn func(string, Slot) bool) bool {
	node := &t.nodes[n]
	if node.slot != NoSlot {
		if !fn(string(path), node.slot) {
			return false
		}
	}
	for _, c := range node.children {
		if !t.walk(c, append(path, t.nodes[c].label...), fn) {
			return false
		}
	}
	return true
}

func (t *Trie) newNode(label string, slot Slot) int32 {
	t.nodes = append(t.nodes, trieNode{label: label, slot: slot})
	return int32(len(t.nodes) - 1)
}

// childIndex finds the child of n whose label starts with b. If there is
// none, it returns the position where such a child would be inserted.
func (t *Trie) childIndex(n int32, b byte) (int, bool) {
	children := t.nodes[n].children
	i := sort.Search(len(children), func(i int) bool {
		return t.nodes[children[i]].label[0] >= b
	})
	return i, i < len(children) && t.nodes[children[i]].label[0] == b
}

func (t *Trie) insertChild(n int32, at int, child int32) {
	children := t.nodes[n].children
	children = append(children, 0)
	copy(children[at+1:], children[at:])
	children[at] = child
	t.nodes[n].children = children
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
