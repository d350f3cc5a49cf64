package column

import (
	"unicode/utf8"

	"github.com/vela-db/vela/pkg/errors"
	"github.com/vela-db/vela/pkg/sequence"
)

// StringColumn stores variable-length UTF-8 text as one concatenated byte
// payload plus an offset array delimiting each element's byte span. The
// offset array always holds Len()+1 entries: offsets[0] is 0 and
// offsets[i+1]-offsets[i] is the byte length of element i.
//
// Total payload is limited to what an int32 offset can address.
type StringColumn struct {
	payload []byte
	offsets []int32
}

// NewStringColumn creates an empty string column. Capacity sizes both the
// payload (in bytes) and the offset array (in elements).
func NewStringColumn(capacity int) *StringColumn {
	c := &StringColumn{}
	c.Reset(capacity)
	return c
}

func (c *StringColumn) Type() ColumnType { return ColumnTypeString }

func (c *StringColumn) Len() int { return len(c.offsets) - 1 }

// Get returns the element at index. A payload span that is not valid UTF-8
// is reported as a data error rather than decoded with replacement
// characters; that can only happen after restoring corrupted buffers.
func (c *StringColumn) Get(index int) (string, error) {
	if index < 0 || index >= c.Len() {
		return "", errIndexOutOfRange(index, c.Len())
	}
	span := c.payload[c.offsets[index]:c.offsets[index+1]]
	if !utf8.Valid(span) {
		return "", errors.Newf(errors.ErrorTypeData, "element %d is not valid UTF-8", index)
	}
	return string(span), nil
}

func (c *StringColumn) Append(value string) {
	c.payload = append(c.payload, value...)
	c.offsets = append(c.offsets, int32(len(c.payload)))
}

func (c *StringColumn) Reset(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	c.payload = make([]byte, 0, capacity)
	c.offsets = make([]int32, 1, capacity+1)
}

func (c *StringColumn) Clear() {
	c.payload = c.payload[:0]
	c.offsets = c.offsets[:1]
}

// Buffers emits two chunks in order: the trimmed payload bytes and the
// trimmed offset array (Len()+1 native-order int32s).
func (c *StringColumn) Buffers() [][]byte {
	payload := make([]byte, len(c.payload))
	copy(payload, c.payload)
	return [][]byte{payload, encodeSlice(c.offsets)}
}

func (c *StringColumn) Restore(buffers [][]byte) error {
	if len(buffers) != 2 {
		return errBufferCount(ColumnTypeString, len(buffers))
	}
	payload := make([]byte, len(buffers[0]))
	copy(payload, buffers[0])
	offsets, err := decodeSlice[int32](buffers[1])
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "restoring string offset chunk")
	}
	if len(offsets) == 0 {
		return errors.New(errors.ErrorTypeData, "string offset chunk is empty, want at least one offset")
	}
	if offsets[0] != 0 {
		return errors.Newf(errors.ErrorTypeData, "string offsets start at %d, want 0", offsets[0])
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return errors.Newf(errors.ErrorTypeData, "string offsets decrease at entry %d", i)
		}
	}
	if int(offsets[len(offsets)-1]) != len(payload) {
		return errors.Newf(errors.ErrorTypeData, "string offsets end at %d, payload holds %d bytes",
			offsets[len(offsets)-1], len(payload))
	}
	c.payload = payload
	c.offsets = offsets
	return nil
}

func (c *StringColumn) MemoryUsage() int64 {
	return int64(cap(c.payload)) + int64(cap(c.offsets))*4
}

func (c *StringColumn) Value(index int) (interface{}, error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *StringColumn) AppendValue(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errAppendType(ColumnTypeString, value)
	}
	c.Append(s)
	return nil
}

// Iter returns a fresh single-pass iterator over the column.
func (c *StringColumn) Iter() *sequence.Iterator[string] {
	return sequence.NewIterator[string](c)
}

var (
	_ Column                    = (*StringColumn)(nil)
	_ sequence.Sequence[string] = (*StringColumn)(nil)
)
