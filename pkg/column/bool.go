package column

import (
	"github.com/vela-db/vela/pkg/errors"
	"github.com/vela-db/vela/pkg/sequence"
)

// BoolColumn stores booleans one byte per element: simple and O(1), at an
// 8x space cost over CompactBoolColumn. Any nonzero byte decodes as true.
type BoolColumn struct {
	values []byte
}

// NewBoolColumn creates an empty byte-backed boolean column sized for
// capacity elements.
func NewBoolColumn(capacity int) *BoolColumn {
	c := &BoolColumn{}
	c.Reset(capacity)
	return c
}

func (c *BoolColumn) Type() ColumnType { return ColumnTypeBool }

func (c *BoolColumn) Len() int { return len(c.values) }

func (c *BoolColumn) Get(index int) (bool, error) {
	if index < 0 || index >= len(c.values) {
		return false, errIndexOutOfRange(index, len(c.values))
	}
	return c.values[index] != 0, nil
}

func (c *BoolColumn) Append(value bool) {
	b := byte(0)
	if value {
		b = 1
	}
	c.values = append(c.values, b)
}

func (c *BoolColumn) Reset(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	c.values = make([]byte, 0, capacity)
}

func (c *BoolColumn) Clear() {
	c.values = c.values[:0]
}

func (c *BoolColumn) Buffers() [][]byte {
	return [][]byte{encodeSlice(c.values)}
}

func (c *BoolColumn) Restore(buffers [][]byte) error {
	if len(buffers) != 1 {
		return errBufferCount(ColumnTypeBool, len(buffers))
	}
	values := make([]byte, len(buffers[0]))
	copy(values, buffers[0])
	c.values = values
	return nil
}

func (c *BoolColumn) MemoryUsage() int64 {
	return int64(cap(c.values))
}

func (c *BoolColumn) Value(index int) (interface{}, error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *BoolColumn) AppendValue(value interface{}) error {
	v, err := coerceBool(ColumnTypeBool, value)
	if err != nil {
		return err
	}
	c.Append(v)
	return nil
}

// Iter returns a fresh single-pass iterator over the column.
func (c *BoolColumn) Iter() *sequence.Iterator[bool] {
	return sequence.NewIterator[bool](c)
}

const wordBits = 64

// CompactBoolColumn stores booleans bit-packed into 64-bit words, bit i%64
// of word i/64. Append only ever sets the bit at the current size, so the
// unused high bits of a partially filled trailing word are always zero; both
// Buffers and Restore rely on that invariant.
type CompactBoolColumn struct {
	words []uint64
	count int
}

// NewCompactBoolColumn creates an empty bit-packed boolean column sized for
// capacity elements.
func NewCompactBoolColumn(capacity int) *CompactBoolColumn {
	c := &CompactBoolColumn{}
	c.Reset(capacity)
	return c
}

func (c *CompactBoolColumn) Type() ColumnType { return ColumnTypeCompactBool }

func (c *CompactBoolColumn) Len() int { return c.count }

func (c *CompactBoolColumn) Get(index int) (bool, error) {
	if index < 0 || index >= c.count {
		return false, errIndexOutOfRange(index, c.count)
	}
	return c.words[index/wordBits]&(1<<uint(index%wordBits)) != 0, nil
}

func (c *CompactBoolColumn) Append(value bool) {
	wordIndex := c.count / wordBits
	if wordIndex == len(c.words) {
		c.words = append(c.words, 0)
	}
	if value {
		c.words[wordIndex] |= 1 << uint(c.count%wordBits)
	}
	c.count++
}

func (c *CompactBoolColumn) Reset(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	c.words = make([]uint64, 0, (capacity+wordBits-1)/wordBits)
	c.count = 0
}

func (c *CompactBoolColumn) Clear() {
	c.words = c.words[:0]
	c.count = 0
}

// Buffers emits two chunks: the word array, trimmed to exactly the words
// covering Len() elements, and a single uint64 holding the logical count.
// The count chunk is what makes the encoding lossless; trailing false bits
// in the last word are otherwise indistinguishable from padding.
func (c *CompactBoolColumn) Buffers() [][]byte {
	return [][]byte{
		encodeSlice(c.words),
		encodeSlice([]uint64{uint64(c.count)}),
	}
}

func (c *CompactBoolColumn) Restore(buffers [][]byte) error {
	if len(buffers) != 2 {
		return errBufferCount(ColumnTypeCompactBool, len(buffers))
	}
	words, err := decodeSlice[uint64](buffers[0])
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "restoring compactbool word chunk")
	}
	countWord, err := decodeSlice[uint64](buffers[1])
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "restoring compactbool count chunk")
	}
	if len(countWord) != 1 {
		return errors.Newf(errors.ErrorTypeData, "compactbool count chunk holds %d words, want 1", len(countWord))
	}
	count := int(countWord[0])
	if count < 0 {
		return errors.Newf(errors.ErrorTypeData, "compactbool count %d overflows int", countWord[0])
	}
	need := (count + wordBits - 1) / wordBits
	if len(words) != need {
		return errors.Newf(errors.ErrorTypeData, "compactbool word chunk holds %d words, %d elements need %d",
			len(words), count, need)
	}
	if rem := count % wordBits; rem != 0 && words[len(words)-1]>>uint(rem) != 0 {
		return errors.New(errors.ErrorTypeData, "compactbool trailing word has nonzero padding bits")
	}
	c.words = words
	c.count = count
	return nil
}

func (c *CompactBoolColumn) MemoryUsage() int64 {
	return int64(cap(c.words)) * 8
}

func (c *CompactBoolColumn) Value(index int) (interface{}, error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *CompactBoolColumn) AppendValue(value interface{}) error {
	v, err := coerceBool(ColumnTypeCompactBool, value)
	if err != nil {
		return err
	}
	c.Append(v)
	return nil
}

// Iter returns a fresh single-pass iterator over the column.
func (c *CompactBoolColumn) Iter() *sequence.Iterator[bool] {
	return sequence.NewIterator[bool](c)
}

func coerceBool(t ColumnType, value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return v == "true" || v == "1" || v == "yes", nil
	default:
		return false, errAppendType(t, value)
	}
}

var (
	_ Column                  = (*BoolColumn)(nil)
	_ Column                  = (*CompactBoolColumn)(nil)
	_ sequence.Sequence[bool] = (*BoolColumn)(nil)
	_ sequence.Sequence[bool] = (*CompactBoolColumn)(nil)
)
