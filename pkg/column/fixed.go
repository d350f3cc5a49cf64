package column

import (
	"math"
	"strconv"
	"unsafe"

	"github.com/vela-db/vela/pkg/errors"
	"github.com/vela-db/vela/pkg/sequence"
)

// fixedElement is the set of element types stored as flat fixed-width arrays.
type fixedElement interface {
	~uint8 | ~int32 | ~int64 | ~float32 | ~float64
}

// fixedColumn is the shared core of all fixed-width columns: a flat slice
// grown geometrically by append, serialized as a single raw native-order
// chunk.
type fixedColumn[T fixedElement] struct {
	values []T
}

func (c *fixedColumn[T]) Len() int { return len(c.values) }

func (c *fixedColumn[T]) Get(index int) (T, error) {
	if index < 0 || index >= len(c.values) {
		var zero T
		return zero, errIndexOutOfRange(index, len(c.values))
	}
	return c.values[index], nil
}

func (c *fixedColumn[T]) Append(value T) {
	c.values = append(c.values, value)
}

func (c *fixedColumn[T]) Reset(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	c.values = make([]T, 0, capacity)
}

func (c *fixedColumn[T]) Clear() {
	c.values = c.values[:0]
}

func (c *fixedColumn[T]) Buffers() [][]byte {
	return [][]byte{encodeSlice(c.values)}
}

func (c *fixedColumn[T]) restore(t ColumnType, buffers [][]byte) error {
	if len(buffers) != 1 {
		return errBufferCount(t, len(buffers))
	}
	values, err := decodeSlice[T](buffers[0])
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "restoring "+t.String()+" column")
	}
	c.values = values
	return nil
}

func (c *fixedColumn[T]) MemoryUsage() int64 {
	var zero T
	return int64(cap(c.values)) * int64(unsafe.Sizeof(zero))
}

// IntColumn stores 32-bit signed integers.
type IntColumn struct {
	fixedColumn[int32]
}

// NewIntColumn creates an empty int column sized for capacity elements.
func NewIntColumn(capacity int) *IntColumn {
	c := &IntColumn{}
	c.Reset(capacity)
	return c
}

func (c *IntColumn) Type() ColumnType { return ColumnTypeInt }

func (c *IntColumn) Restore(buffers [][]byte) error {
	return c.restore(ColumnTypeInt, buffers)
}

func (c *IntColumn) Value(index int) (interface{}, error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *IntColumn) AppendValue(value interface{}) error {
	switch v := value.(type) {
	case int32:
		c.Append(v)
	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return errors.Newf(errors.ErrorTypeValidation, "value %d overflows int32", v)
		}
		c.Append(int32(v))
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return errors.Newf(errors.ErrorTypeValidation, "value %d overflows int32", v)
		}
		c.Append(int32(v))
	case string:
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return errors.Newf(errors.ErrorTypeValidation, "cannot parse %q as int32", v)
		}
		c.Append(int32(parsed))
	default:
		return errAppendType(ColumnTypeInt, value)
	}
	return nil
}

// Iter returns a fresh single-pass iterator over the column.
func (c *IntColumn) Iter() *sequence.Iterator[int32] {
	return sequence.NewIterator[int32](c)
}

// LongColumn stores 64-bit signed integers.
type LongColumn struct {
	fixedColumn[int64]
}

// NewLongColumn creates an empty long column sized for capacity elements.
func NewLongColumn(capacity int) *LongColumn {
	c := &LongColumn{}
	c.Reset(capacity)
	return c
}

func (c *LongColumn) Type() ColumnType { return ColumnTypeLong }

func (c *LongColumn) Restore(buffers [][]byte) error {
	return c.restore(ColumnTypeLong, buffers)
}

func (c *LongColumn) Value(index int) (interface{}, error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *LongColumn) AppendValue(value interface{}) error {
	switch v := value.(type) {
	case int64:
		c.Append(v)
	case int:
		c.Append(int64(v))
	case int32:
		c.Append(int64(v))
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Newf(errors.ErrorTypeValidation, "cannot parse %q as int64", v)
		}
		c.Append(parsed)
	default:
		return errAppendType(ColumnTypeLong, value)
	}
	return nil
}

// Iter returns a fresh single-pass iterator over the column.
func (c *LongColumn) Iter() *sequence.Iterator[int64] {
	return sequence.NewIterator[int64](c)
}

// FloatColumn stores 32-bit floating point values.
type FloatColumn struct {
	fixedColumn[float32]
}

// NewFloatColumn creates an empty float column sized for capacity elements.
func NewFloatColumn(capacity int) *FloatColumn {
	c := &FloatColumn{}
	c.Reset(capacity)
	return c
}

func (c *FloatColumn) Type() ColumnType { return ColumnTypeFloat }

func (c *FloatColumn) Restore(buffers [][]byte) error {
	return c.restore(ColumnTypeFloat, buffers)
}

func (c *FloatColumn) Value(index int) (interface{}, error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *FloatColumn) AppendValue(value interface{}) error {
	switch v := value.(type) {
	case float32:
		c.Append(v)
	case float64:
		c.Append(float32(v))
	case int:
		c.Append(float32(v))
	case string:
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return errors.Newf(errors.ErrorTypeValidation, "cannot parse %q as float32", v)
		}
		c.Append(float32(parsed))
	default:
		return errAppendType(ColumnTypeFloat, value)
	}
	return nil
}

// Iter returns a fresh single-pass iterator over the column.
func (c *FloatColumn) Iter() *sequence.Iterator[float32] {
	return sequence.NewIterator[float32](c)
}

// DoubleColumn stores 64-bit floating point values.
type DoubleColumn struct {
	fixedColumn[float64]
}

// NewDoubleColumn creates an empty double column sized for capacity elements.
func NewDoubleColumn(capacity int) *DoubleColumn {
	c := &DoubleColumn{}
	c.Reset(capacity)
	return c
}

func (c *DoubleColumn) Type() ColumnType { return ColumnTypeDouble }

func (c *DoubleColumn) Restore(buffers [][]byte) error {
	return c.restore(ColumnTypeDouble, buffers)
}

func (c *DoubleColumn) Value(index int) (interface{}, error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *DoubleColumn) AppendValue(value interface{}) error {
	switch v := value.(type) {
	case float64:
		c.Append(v)
	case float32:
		c.Append(float64(v))
	case int:
		c.Append(float64(v))
	case int64:
		c.Append(float64(v))
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Newf(errors.ErrorTypeValidation, "cannot parse %q as float64", v)
		}
		c.Append(parsed)
	default:
		return errAppendType(ColumnTypeDouble, value)
	}
	return nil
}

// Iter returns a fresh single-pass iterator over the column.
func (c *DoubleColumn) Iter() *sequence.Iterator[float64] {
	return sequence.NewIterator[float64](c)
}

// ByteColumn stores raw 8-bit values.
type ByteColumn struct {
	fixedColumn[byte]
}

// NewByteColumn creates an empty byte column sized for capacity elements.
func NewByteColumn(capacity int) *ByteColumn {
	c := &ByteColumn{}
	c.Reset(capacity)
	return c
}

func (c *ByteColumn) Type() ColumnType { return ColumnTypeByte }

func (c *ByteColumn) Restore(buffers [][]byte) error {
	return c.restore(ColumnTypeByte, buffers)
}

func (c *ByteColumn) Value(index int) (interface{}, error) {
	v, err := c.Get(index)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *ByteColumn) AppendValue(value interface{}) error {
	switch v := value.(type) {
	case byte:
		c.Append(v)
	case int:
		if v < 0 || v > math.MaxUint8 {
			return errors.Newf(errors.ErrorTypeValidation, "value %d overflows byte", v)
		}
		c.Append(byte(v))
	case int64:
		if v < 0 || v > math.MaxUint8 {
			return errors.Newf(errors.ErrorTypeValidation, "value %d overflows byte", v)
		}
		c.Append(byte(v))
	case string:
		parsed, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return errors.Newf(errors.ErrorTypeValidation, "cannot parse %q as byte", v)
		}
		c.Append(byte(parsed))
	default:
		return errAppendType(ColumnTypeByte, value)
	}
	return nil
}

// Iter returns a fresh single-pass iterator over the column.
func (c *ByteColumn) Iter() *sequence.Iterator[byte] {
	return sequence.NewIterator[byte](c)
}

var (
	_ Column                     = (*IntColumn)(nil)
	_ Column                     = (*LongColumn)(nil)
	_ Column                     = (*FloatColumn)(nil)
	_ Column                     = (*DoubleColumn)(nil)
	_ Column                     = (*ByteColumn)(nil)
	_ sequence.Sequence[int32]   = (*IntColumn)(nil)
	_ sequence.Sequence[int64]   = (*LongColumn)(nil)
	_ sequence.Sequence[float32] = (*FloatColumn)(nil)
	_ sequence.Sequence[float64] = (*DoubleColumn)(nil)
	_ sequence.Sequence[byte]    = (*ByteColumn)(nil)
)
