package column

import (
	"github.com/vela-db/vela/pkg/errors"
)

// ColumnType identifies one of the closed set of column variants.
type ColumnType int

const (
	ColumnTypeInt ColumnType = iota
	ColumnTypeLong
	ColumnTypeFloat
	ColumnTypeDouble
	ColumnTypeByte
	ColumnTypeBool
	ColumnTypeCompactBool
	ColumnTypeString
)

var columnTypeNames = map[ColumnType]string{
	ColumnTypeInt:         "int",
	ColumnTypeLong:        "long",
	ColumnTypeFloat:       "float",
	ColumnTypeDouble:      "double",
	ColumnTypeByte:        "byte",
	ColumnTypeBool:        "bool",
	ColumnTypeCompactBool: "compactbool",
	ColumnTypeString:      "string",
}

func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseColumnType parses the textual form produced by String.
func ParseColumnType(s string) (ColumnType, error) {
	for t, name := range columnTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.Newf(errors.ErrorTypeValidation, "unknown column type %q", s)
}

// BufferCount returns how many chunks the variant serializes to. String and
// compact boolean columns carry a second index/count chunk; every other
// variant is a single flat array.
func (t ColumnType) BufferCount() int {
	switch t {
	case ColumnTypeString, ColumnTypeCompactBool:
		return 2
	default:
		return 1
	}
}

// Column is the untyped dispatch surface shared by all variants. Every
// concrete column also satisfies sequence.Sequence over its element type;
// use the typed methods when the element type is known statically.
type Column interface {
	// Type returns the variant of this column.
	Type() ColumnType
	// Len returns the number of elements appended so far.
	Len() int
	// Value returns the element at index boxed as interface{}.
	Value(index int) (interface{}, error)
	// AppendValue coerces value to the column's element type and appends
	// it, or returns a validation error when the value does not fit.
	AppendValue(value interface{}) error
	// Reset discards all elements and resizes backing storage for
	// capacity elements. Capacity is a hint, not a limit.
	Reset(capacity int)
	// Clear discards all elements but keeps backing storage for reuse.
	Clear()
	// Buffers serializes the column into its ordered chunk sequence.
	Buffers() [][]byte
	// Restore replaces the column contents from a chunk sequence
	// previously produced by Buffers.
	Restore(buffers [][]byte) error
	// MemoryUsage returns the backing-store footprint in bytes.
	MemoryUsage() int64
}

// NewColumn creates an empty column of the given variant. Capacity is a
// sizing hint for backing storage.
func NewColumn(t ColumnType, capacity int) (Column, error) {
	switch t {
	case ColumnTypeInt:
		return NewIntColumn(capacity), nil
	case ColumnTypeLong:
		return NewLongColumn(capacity), nil
	case ColumnTypeFloat:
		return NewFloatColumn(capacity), nil
	case ColumnTypeDouble:
		return NewDoubleColumn(capacity), nil
	case ColumnTypeByte:
		return NewByteColumn(capacity), nil
	case ColumnTypeBool:
		return NewBoolColumn(capacity), nil
	case ColumnTypeCompactBool:
		return NewCompactBoolColumn(capacity), nil
	case ColumnTypeString:
		return NewStringColumn(capacity), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeValidation, "unknown column type %d", int(t))
	}
}

// RestoreColumn creates a column of the given variant from its serialized
// chunk sequence. The variant must be communicated out-of-band; chunks carry
// no type information.
func RestoreColumn(t ColumnType, buffers [][]byte) (Column, error) {
	col, err := NewColumn(t, 0)
	if err != nil {
		return nil, err
	}
	if err := col.Restore(buffers); err != nil {
		return nil, err
	}
	return col, nil
}

func errIndexOutOfRange(index, length int) error {
	return errors.Newf(errors.ErrorTypeValidation, "index %d out of range [0, %d)", index, length)
}

func errBufferCount(t ColumnType, got int) error {
	return errors.Newf(errors.ErrorTypeData, "%s column restores from exactly %d buffers, got %d",
		t, t.BufferCount(), got)
}

func errAppendType(t ColumnType, value interface{}) error {
	return errors.Newf(errors.ErrorTypeValidation, "cannot append %T to a %s column", value, t)
}
