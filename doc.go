// Package vela provides compact, typed, append-only columnar storage with a
// lossless binary chunk encoding.
//
// Vela is the storage and encoding layer beneath a dataset abstraction: a
// family of typed columns that are built incrementally in memory, read by
// index, and serialized to (and restored from) ordered sequences of
// contiguous binary buffers. It deliberately stops there — grouping columns
// into tables, persisting chunks, and transmitting them are the caller's
// business.
//
// # Quick Start
//
// Build a column, serialize it, and restore it:
//
//	import "github.com/vela-db/vela/pkg/column"
//
//	col := column.NewLongColumn(1024)
//	for i := int64(0); i < 1000; i++ {
//	    col.Append(i)
//	}
//
//	chunks := col.Buffers() // snapshot, one chunk for fixed-width columns
//
//	restored := column.NewLongColumn(0)
//	if err := restored.Restore(chunks); err != nil {
//	    // malformed chunk data
//	}
//	v, err := restored.Get(42)
//
// Columns for all primitive types share one generic contract:
//
//	var seq sequence.Sequence[int64] = col
//	it := sequence.NewIterator[int64](col)
//	for it.Next() {
//	    _ = it.Value()
//	}
//
// # Key Packages
//
//	pkg/column   - Typed columns and their binary chunk encodings
//	pkg/sequence - Generic typed-sequence contract and iteration
//	pkg/errors   - Structured error handling
//	pkg/logger   - Structured logging
//	pkg/config   - YAML configuration loading
//	pkg/json     - JSON encoding helpers
//
// # Encoding
//
// Every multi-byte chunk uses the host's native byte order with no embedded
// tag; producer and consumer must agree on it out-of-band, as they must on
// the column type itself. Chunks returned by Buffers are snapshots: appending
// after serialization never mutates previously returned chunks.
//
// # Concurrency
//
// Columns are plain in-memory data structures with no internal
// synchronization. They are not safe for concurrent mutation; concurrent
// reads are safe only while no append is in flight.
package vela
