// Package column implements Vela's typed columnar storage: eight append-only
// column variants with lossless binary chunk encodings.
//
// # Overview
//
// Each variant stores one primitive type in flat backing arrays and
// serializes itself to an ordered sequence of one or two opaque chunks:
//
//   - IntColumn, LongColumn, FloatColumn, DoubleColumn, ByteColumn:
//     fixed-width values, one raw native-order array chunk
//   - BoolColumn: one byte per boolean, one raw chunk
//   - CompactBoolColumn: one bit per boolean packed into 64-bit words,
//     a word chunk plus a count chunk
//   - StringColumn: concatenated UTF-8 payload plus an int32 offset array,
//     two chunks
//
// Columns are append-only: insertion order is the logical order, elements
// are never removed or mutated, and the logical size is independent of
// backing capacity. Backing arrays grow geometrically; Buffers trims to the
// logical size before emitting, so chunks are never over-allocated.
//
// # Chunk Encoding
//
// Chunks carry raw array bytes in the host's native byte order with no
// header, tag, or version. The column type (and with it the chunk count and
// interpretation) must be communicated out-of-band. Two conforming producers
// on hosts with the same byte order emit byte-identical chunks for the same
// sequence of appends, and accept each other's chunks on Restore.
//
// # Usage Example
//
// Typed access:
//
//	col := column.NewStringColumn(64)
//	col.Append("a")
//	col.Append("日本語")
//
//	chunks := col.Buffers()
//
//	restored := column.NewStringColumn(0)
//	_ = restored.Restore(chunks)
//	s, err := restored.Get(1) // "日本語"
//
// Untyped dispatch, when the variant is only known at runtime:
//
//	t, _ := column.ParseColumnType("long")
//	col, _ := column.NewColumn(t, 1024)
//	_ = col.AppendValue(int64(42))
//
// # Errors
//
// Out-of-range access is a validation error, malformed restore data is a
// data error; nothing is clamped, truncated, or padded, and no operation is
// retried. See the errors package for the taxonomy.
package column
