package index

import (
	"fmt"
	"slices"
	"strings"
)

// PostingStore is an append-only array of posting lists addressed by Slot.
// It is written by a single builder, then frozen; after Freeze it is
// read-only and may be shared by any number of goroutines.
//
// Misuse (mutation after Freeze, unknown slots, a document listed twice for
// the same term) is a programming error and panics.
type PostingStore struct {
	lists  []PostingList
	frozen bool
}

// NewPostingStore creates an empty, mutable store.
func NewPostingStore() *PostingStore {
	return &PostingStore{lists: make([]PostingList, 0)}
}

// AllocateSlot reserves a new, empty posting list.
func (s *PostingStore) AllocateSlot() Slot {
	s.mustBeMutable("AllocateSlot")
	s.lists = append(s.lists, nil)
	return Slot(len(s.lists) - 1)
}

// Append adds an occurrence to the list at slot. Lists are put in
// DocumentID order by Freeze, so occurrences may arrive in any order.
func (s *PostingStore) Append(slot Slot, occ Occurrence) {
	s.mustBeMutable("Append")
	s.checkSlot(slot)
	s.lists[slot] = append(s.lists[slot], occ)
}

// Get returns the posting list at slot. The result must not be modified.
func (s *PostingStore) Get(slot Slot) PostingList {
	s.checkSlot(slot)
	list := s.lists[slot]
	return list[:len(list):len(list)]
}

// Len returns the number of allocated slots.
func (s *PostingStore) Len() int {
	return len(s.lists)
}

// TotalOccurrences returns the number of occurrences across all lists.
func (s *PostingStore) TotalOccurrences() int {
	total := 0
	for _, list := range s.lists {
		total += len(list)
	}
	return total
}

// Frozen reports whether Freeze has been called.
func (s *PostingStore) Frozen() bool {
	return s.frozen
}

// Freeze sorts every list by DocumentID and makes the store read-only.
// It panics if a list is empty or names the same document twice.
// Calling Freeze again is a no-op.
func (s *PostingStore) Freeze() {
	if s.frozen {
		return
	}
	for slot, list := range s.lists {
		if len(list) == 0 {
			panic(fmt.Sprintf("index: posting list at slot %d is empty", slot))
		}
		slices.SortFunc(list, compareOccurrences)
		for i := 1; i < len(list); i++ {
			if list[i-1].DocumentID == list[i].DocumentID {
				panic(fmt.Sprintf("index: document '%s' appears twice in posting list at slot %d", list[i].DocumentID, slot))
			}
		}
	}
	s.frozen = true
}

func (s *PostingStore) mustBeMutable(op string) {
	if s.frozen {
		panic("index: " + op + " called on a frozen posting store")
	}
}

func (s *PostingStore) checkSlot(slot Slot) {
	if slot < 0 || int(slot) >= len(s.lists) {
		panic(fmt.Sprintf("index: slot %d out of range [0, %d)", slot, len(s.lists)))
	}
}

func compareOccurrences(a, b Occurrence) int {
	return strings.Compare(a.DocumentID, b.DocumentID)
}
