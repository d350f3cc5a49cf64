package column

import (
	"unsafe"

	"github.com/vela-db/vela/pkg/errors"
)

// element is the set of fixed-width primitives a chunk can carry.
type element interface {
	~uint8 | ~int32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// rawBytes returns a view of s as bytes in the host's native byte order.
// The view aliases s; callers that hand bytes out must copy first.
func rawBytes[T element](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
}

// encodeSlice copies s into a fresh, tightly sized chunk. The result is a
// snapshot: mutating s afterwards does not affect it.
func encodeSlice[T element](s []T) []byte {
	var zero T
	buf := make([]byte, len(s)*int(unsafe.Sizeof(zero)))
	copy(buf, rawBytes(s))
	return buf
}

// decodeSlice interprets chunk as a flat array of T in the host's native
// byte order, copying into freshly allocated storage. A chunk length that is
// not a multiple of the element width is a data error.
func decodeSlice[T element](chunk []byte) ([]T, error) {
	var zero T
	width := int(unsafe.Sizeof(zero))
	if len(chunk)%width != 0 {
		return nil, errors.Newf(errors.ErrorTypeData,
			"chunk length %d is not a multiple of element width %d", len(chunk), width)
	}
	n := len(chunk) / width
	if n == 0 {
		return nil, nil
	}
	out := make([]T, n)
	copy(rawBytes(out), chunk)
	return out, nil
}
