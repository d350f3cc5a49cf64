package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-db/vela/pkg/errors"
)

// sliceSeq is a minimal Indexed implementation for exercising the iterator
// without pulling in a concrete column type.
type sliceSeq struct {
	values []int
}

func (s *sliceSeq) Len() int { return len(s.values) }

func (s *sliceSeq) Get(index int) (int, error) {
	if index < 0 || index >= len(s.values) {
		return 0, errors.Newf(errors.ErrorTypeValidation, "index %d out of range [0, %d)", index, len(s.values))
	}
	return s.values[index], nil
}

func TestIterator(t *testing.T) {
	t.Run("yields elements in insertion order", func(t *testing.T) {
		src := &sliceSeq{values: []int{10, 20, 30, 40, 50}}
		got, err := Collect(NewIterator[int](src))
		require.NoError(t, err)
		assert.Equal(t, []int{10, 20, 30, 40, 50}, got)
	})

	t.Run("empty collection", func(t *testing.T) {
		it := NewIterator[int](&sliceSeq{})
		assert.False(t, it.Next())
		assert.NoError(t, it.Err())
	})

	t.Run("observes growth during iteration", func(t *testing.T) {
		src := &sliceSeq{values: []int{1}}
		it := NewIterator[int](src)

		require.True(t, it.Next())
		assert.Equal(t, 1, it.Value())

		// Len is re-read on every Next, so an element appended mid-pass
		// is produced rather than skipped.
		src.values = append(src.values, 2)
		require.True(t, it.Next())
		assert.Equal(t, 2, it.Value())
		assert.False(t, it.Next())
	})

	t.Run("remove is unsupported", func(t *testing.T) {
		it := NewIterator[int](&sliceSeq{values: []int{1}})
		err := it.Remove()
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeCapability))
	})

	t.Run("not restartable", func(t *testing.T) {
		src := &sliceSeq{values: []int{1, 2}}
		it := NewIterator[int](src)
		for it.Next() {
		}
		assert.False(t, it.Next())

		// A fresh iterator starts over.
		got, err := Collect(NewIterator[int](src))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
	})
}
