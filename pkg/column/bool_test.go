package column

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-db/vela/pkg/errors"
)

func TestBoolColumn(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		values := []bool{true, false, true, true, false}
		col := NewBoolColumn(2)
		for _, v := range values {
			col.Append(v)
		}
		require.Equal(t, len(values), col.Len())

		chunks := col.Buffers()
		require.Len(t, chunks, 1)
		assert.Equal(t, []byte{1, 0, 1, 1, 0}, chunks[0])

		restored := NewBoolColumn(0)
		require.NoError(t, restored.Restore(chunks))
		for i, want := range values {
			got, err := restored.Get(i)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("nonzero bytes decode as true", func(t *testing.T) {
		col := NewBoolColumn(0)
		require.NoError(t, col.Restore([][]byte{{0, 1, 0xff, 7}}))
		want := []bool{false, true, true, true}
		for i, w := range want {
			got, err := col.Get(i)
			require.NoError(t, err)
			assert.Equal(t, w, got)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		col := NewBoolColumn(0)
		col.Append(true)
		for _, index := range []int{-1, 1} {
			_, err := col.Get(index)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		}
	})

	t.Run("wrong chunk count", func(t *testing.T) {
		col := NewBoolColumn(0)
		err := col.Restore([][]byte{{1}, {0}})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeData))
	})
}

func TestCompactBoolColumn(t *testing.T) {
	// 129 elements spanning three words.
	pattern := make([]bool, 0, 129)
	for i := 0; i < 43; i++ {
		pattern = append(pattern, true, false, true)
	}

	t.Run("bit packing across word boundaries", func(t *testing.T) {
		col := NewCompactBoolColumn(0)
		for i, v := range pattern {
			col.Append(v)
			require.Equal(t, i+1, col.Len())
		}

		for i, want := range pattern {
			got, err := col.Get(i)
			require.NoError(t, err)
			require.Equal(t, want, got, "bit %d", i)
		}
	})

	t.Run("serialized padding bits are zero", func(t *testing.T) {
		col := NewCompactBoolColumn(0)
		for _, v := range pattern {
			col.Append(v)
		}

		chunks := col.Buffers()
		require.Len(t, chunks, 2)
		require.Len(t, chunks[0], 3*8, "129 elements need exactly 3 words")
		require.Len(t, chunks[1], 8)

		lastWord := binary.NativeEndian.Uint64(chunks[0][16:])
		assert.Zero(t, lastWord>>1, "only bit 128 of the last word may be set")
		assert.Equal(t, uint64(129), binary.NativeEndian.Uint64(chunks[1]))
	})

	t.Run("round trip", func(t *testing.T) {
		col := NewCompactBoolColumn(0)
		for _, v := range pattern {
			col.Append(v)
		}

		restored := NewCompactBoolColumn(0)
		require.NoError(t, restored.Restore(col.Buffers()))
		require.Equal(t, len(pattern), restored.Len())
		for i, want := range pattern {
			got, err := restored.Get(i)
			require.NoError(t, err)
			require.Equal(t, want, got, "bit %d", i)
		}
	})

	t.Run("round trip at word boundaries", func(t *testing.T) {
		for _, n := range []int{0, 1, 63, 64, 65, 128} {
			col := NewCompactBoolColumn(n)
			for i := 0; i < n; i++ {
				col.Append(i%2 == 0)
			}
			restored := NewCompactBoolColumn(0)
			require.NoError(t, restored.Restore(col.Buffers()), "n=%d", n)
			require.Equal(t, n, restored.Len(), "n=%d", n)
			for i := 0; i < n; i++ {
				got, err := restored.Get(i)
				require.NoError(t, err)
				require.Equal(t, i%2 == 0, got, "n=%d bit %d", n, i)
			}
		}
	})

	t.Run("trailing false values survive restore", func(t *testing.T) {
		col := NewCompactBoolColumn(0)
		col.Append(true)
		for i := 0; i < 10; i++ {
			col.Append(false)
		}

		restored := NewCompactBoolColumn(0)
		require.NoError(t, restored.Restore(col.Buffers()))
		assert.Equal(t, 11, restored.Len())
	})

	t.Run("out of range", func(t *testing.T) {
		col := NewCompactBoolColumn(0)
		col.Append(true)
		for _, index := range []int{-1, 1, 64} {
			_, err := col.Get(index)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		}
	})

	t.Run("malformed restore data", func(t *testing.T) {
		count := func(n uint64) []byte {
			b := make([]byte, 8)
			binary.NativeEndian.PutUint64(b, n)
			return b
		}

		cases := []struct {
			name    string
			buffers [][]byte
		}{
			{"wrong chunk count", [][]byte{make([]byte, 8)}},
			{"word chunk not word aligned", [][]byte{make([]byte, 7), count(1)}},
			{"count chunk not a single word", [][]byte{make([]byte, 8), make([]byte, 16)}},
			{"too few words for count", [][]byte{make([]byte, 8), count(65)}},
			{"too many words for count", [][]byte{make([]byte, 16), count(64)}},
			{"nonzero padding bits", [][]byte{count(0xff), count(4)}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				col := NewCompactBoolColumn(0)
				err := col.Restore(tc.buffers)
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrorTypeData))
			})
		}
	})
}

func TestBoolAppendValue(t *testing.T) {
	for _, col := range []Column{NewBoolColumn(0), NewCompactBoolColumn(0)} {
		t.Run(col.Type().String(), func(t *testing.T) {
			require.NoError(t, col.AppendValue(true))
			require.NoError(t, col.AppendValue("true"))
			require.NoError(t, col.AppendValue("no"))
			assert.Equal(t, 3, col.Len())

			v, err := col.Value(2)
			require.NoError(t, err)
			assert.Equal(t, false, v)

			err = col.AppendValue(3.14)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		})
	}
}
