// Package codec implements decode-only binary codecs for the column value
// encoding used by result sets. Each codec converts an opaque encoded byte
// slice into a typed Go value; the encoding direction is intentionally not
// provided. Codecs are stateless values and safe for concurrent use.
package codec

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrNull is returned by scalar codecs handed a nil input. A nil slice
	// stands for an explicitly null or missing column value.
	ErrNull = errors.NewKind("cannot decode %s value: null or missing")

	// ErrDecode is returned when the input bytes are not a valid encoding
	// for the requested type.
	ErrDecode = errors.NewKind("cannot decode %s value: %s")
)

// Type describes a column's decode type without committing to a Go result
// type. Every codec in this package implements it.
type Type interface {
	// TypeName returns the wire-level type name, e.g. "int" or "list<text>".
	TypeName() string
	// ComposeAny decodes data into the codec's natural Go value.
	ComposeAny(data []byte) (any, error)
}

// Codec decodes an encoded byte slice into a value of type T.
type Codec[T any] interface {
	Type
	Compose(data []byte) (T, error)
}
