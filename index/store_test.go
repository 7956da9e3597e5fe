package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostingStoreFreezeSorts(t *testing.T) {
	store := NewPostingStore()
	apple := store.AllocateSlot()
	dog := store.AllocateSlot()
	assert.Equal(t, Slot(0), apple)
	assert.Equal(t, Slot(1), dog)

	store.Append(apple, Occurrence{DocumentID: "doc3", TermFrequency: 1})
	store.Append(apple, Occurrence{DocumentID: "doc1", TermFrequency: 2, InTitle: true})
	store.Append(apple, Occurrence{DocumentID: "doc2", TermFrequency: 5})
	store.Append(dog, Occurrence{DocumentID: "doc2", InTitle: true})
	store.Freeze()

	require.True(t, store.Frozen())
	assert.Equal(t, PostingList{
		{DocumentID: "doc1", TermFrequency: 2, InTitle: true},
		{DocumentID: "doc2", TermFrequency: 5},
		{DocumentID: "doc3", TermFrequency: 1},
	}, store.Get(apple))
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 4, store.TotalOccurrences())

	// Freezing twice is harmless.
	assert.NotPanics(t, store.Freeze)
}

func TestPostingStoreContractViolations(t *testing.T) {
	t.Run("append after freeze", func(t *testing.T) {
		store := NewPostingStore()
		slot := store.AllocateSlot()
		store.Append(slot, Occurrence{DocumentID: "a"})
		store.Freeze()

		assert.Panics(t, func() { store.Append(slot, Occurrence{DocumentID: "b"}) })
		assert.Panics(t, func() { store.AllocateSlot() })
		assert.Equal(t, 1, len(store.Get(slot)))
	})

	t.Run("unknown slot", func(t *testing.T) {
		store := NewPostingStore()
		assert.Panics(t, func() { store.Get(0) })
		assert.Panics(t, func() { store.Append(3, Occurrence{DocumentID: "a"}) })
		assert.Panics(t, func() { store.Get(NoSlot) })
	})

	t.Run("duplicate document in one list", func(t *testing.T) {
		store := NewPostingStore()
		slot := store.AllocateSlot()
		store.Append(slot, Occurrence{DocumentID: "a", TermFrequency: 1})
		store.Append(slot, Occurrence{DocumentID: "a", TermFrequency: 2})
		assert.Panics(t, store.Freeze)
	})

	t.Run("empty list", func(t *testing.T) {
		store := NewPostingStore()
		store.AllocateSlot()
		assert.Panics(t, store.Freeze)
	})
}

func TestPostingStoreGetIsCapped(t *testing.T) {
	store := NewPostingStore()
	slot := store.AllocateSlot()
	store.Append(slot, Occurrence{DocumentID: "a"})
	store.Append(slot, Occurrence{DocumentID: "b"})
	store.Freeze()

	list := store.Get(slot)
	_ = append(list, Occurrence{DocumentID: "c"})
	assert.Len(t, store.Get(slot), 2)
	assert.Equal(t, len(list), cap(list))
}
