// Package sequence defines the generic contract satisfied by every Vela
// column: an ordered, append-only, randomly-indexable collection that can be
// serialized to and restored from an ordered list of binary buffers.
//
// Iteration is a derived operation built only on Len and Get, so any type
// implementing the read surface gets it for free, regardless of how the
// elements are actually stored.
package sequence

import "github.com/vela-db/vela/pkg/errors"

// Sequence is the capability set shared by all column-like containers.
// Implementations are not safe for concurrent mutation.
type Sequence[E any] interface {
	// Len returns the number of elements appended so far.
	Len() int
	// Get returns the element at index, or a validation error when the
	// index is out of range. Indexes are never clamped.
	Get(index int) (E, error)
	// Append adds an element at the end. Elements are never removed or
	// mutated afterwards.
	Append(value E)
	// Reset discards all elements and reallocates backing storage sized
	// for capacity elements. Capacity is a hint, not a limit.
	Reset(capacity int)
	// Buffers serializes the sequence into an ordered list of binary
	// buffers. The buffers are tight snapshots: they are trimmed to the
	// logical size and later Appends do not mutate them.
	Buffers() [][]byte
	// Restore is the counterpart of Buffers. It replaces the sequence
	// contents with the elements decoded from the buffers, or returns a
	// data error when the buffers do not match the expected layout.
	Restore(buffers [][]byte) error
}

// Indexed is the read-only subset of Sequence that iteration needs.
type Indexed[E any] interface {
	Len() int
	Get(index int) (E, error)
}

// Iterator is a lazy, single-pass cursor over an Indexed collection. It
// re-reads Len on every Next call, so growth during iteration is observed
// rather than undefined. An iterator is not restartable; start a fresh one
// with NewIterator instead.
type Iterator[E any] struct {
	src    Indexed[E]
	cursor int
	value  E
	err    error
}

// NewIterator returns an iterator positioned before the first element.
func NewIterator[E any](src Indexed[E]) *Iterator[E] {
	return &Iterator[E]{src: src}
}

// Next advances to the next element. It returns false when the collection is
// exhausted or a read failed; check Err to tell the two apart.
func (it *Iterator[E]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.cursor >= it.src.Len() {
		return false
	}
	it.value, it.err = it.src.Get(it.cursor)
	if it.err != nil {
		return false
	}
	it.cursor++
	return true
}

// Value returns the element produced by the last successful Next call.
func (it *Iterator[E]) Value() E {
	return it.value
}

// Err returns the first read error encountered, if any.
func (it *Iterator[E]) Err() error {
	return it.err
}

// Remove always fails: sequences are append-only.
func (it *Iterator[E]) Remove() error {
	return errors.New(errors.ErrorTypeCapability, "remove is not supported on append-only sequences")
}

// Collect drains the iterator into a slice. Mostly useful in tests.
func Collect[E any](it *Iterator[E]) ([]E, error) {
	var out []E
	for it.Next() {
		out = append(out, it.Value())
	}
	return out, it.Err()
}
