package codec

import (
	"encoding/binary"
	"fmt"
)

// Collection encodings share one frame: a 4-byte big-endian signed entry
// count, then one length-prefixed value per entry (two per map entry).
// Null elements are not a valid encoding. A zero count decodes to nil, so
// an encoded-empty collection and a missing one read the same.

// ListOf returns a codec for list<elem> producing an ordered slice.
func ListOf[T any](elem Codec[T]) Codec[[]T] {
	return listCodec[T]{elem: elem}
}

// SetOf returns a codec for set<elem> producing a set keyed by element.
func SetOf[T comparable](elem Codec[T]) Codec[map[T]struct{}] {
	return setCodec[T]{elem: elem}
}

// MapOf returns a codec for map<key, value>.
func MapOf[K comparable, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, value: value}
}

type listCodec[T any] struct {
	elem Codec[T]
}

func (c listCodec[T]) TypeName() string { return "list<" + c.elem.TypeName() + ">" }

func (c listCodec[T]) Compose(data []byte) ([]T, error) {
	if data == nil {
		return nil, ErrNull.New(c.TypeName())
	}
	values, err := readFrame(c.TypeName(), data, 1)
	if err != nil || values == nil {
		return nil, err
	}
	out := make([]T, 0, len(values))
	for _, raw := range values {
		v, err := c.elem.Compose(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c listCodec[T]) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type setCodec[T comparable] struct {
	elem Codec[T]
}

func (c setCodec[T]) TypeName() string { return "set<" + c.elem.TypeName() + ">" }

func (c setCodec[T]) Compose(data []byte) (map[T]struct{}, error) {
	if data == nil {
		return nil, ErrNull.New(c.TypeName())
	}
	values, err := readFrame(c.TypeName(), data, 1)
	if err != nil || values == nil {
		return nil, err
	}
	out := make(map[T]struct{}, len(values))
	for _, raw := range values {
		v, err := c.elem.Compose(raw)
		if err != nil {
			return nil, err
		}
		out[v] = struct{}{}
	}
	return out, nil
}

func (c setCodec[T]) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type mapCodec[K comparable, V any] struct {
	key   Codec[K]
	value Codec[V]
}

func (c mapCodec[K, V]) TypeName() string {
	return "map<" + c.key.TypeName() + "," + c.value.TypeName() + ">"
}

func (c mapCodec[K, V]) Compose(data []byte) (map[K]V, error) {
	if data == nil {
		return nil, ErrNull.New(c.TypeName())
	}
	values, err := readFrame(c.TypeName(), data, 2)
	if err != nil || values == nil {
		return nil, err
	}
	out := make(map[K]V, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		k, err := c.key.Compose(values[i])
		if err != nil {
			return nil, err
		}
		v, err := c.value.Compose(values[i+1])
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (c mapCodec[K, V]) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

// readFrame reads the count header and count*per length-prefixed values,
// rejecting trailing bytes. A zero count yields nil.
func readFrame(typeName string, data []byte, per int) ([][]byte, error) {
	n, rest, err := readCount(data)
	if err != nil {
		return nil, ErrDecode.New(typeName, err.Error())
	}
	if n == 0 {
		if len(rest) != 0 {
			return nil, ErrDecode.New(typeName, fmt.Sprintf("%d trailing bytes", len(rest)))
		}
		return nil, nil
	}
	// Every value takes at least its 4-byte length prefix, so a count the
	// buffer cannot possibly hold is malformed. Checking before allocating
	// keeps an untrusted count from sizing the output slice.
	if n > len(rest)/(4*per) {
		return nil, ErrDecode.New(typeName, fmt.Sprintf("entry count %d exceeds remaining %d bytes", n, len(rest)))
	}
	out := make([][]byte, 0, n*per)
	for i := 0; i < n*per; i++ {
		raw, r, err := readValue(rest)
		if err != nil {
			return nil, ErrDecode.New(typeName, err.Error())
		}
		out = append(out, raw)
		rest = r
	}
	if len(rest) != 0 {
		return nil, ErrDecode.New(typeName, fmt.Sprintf("%d trailing bytes", len(rest)))
	}
	return out, nil
}

func readCount(data []byte) (int, []byte, error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("short buffer reading entry count: %d bytes", len(data))
	}
	n := int32(binary.BigEndian.Uint32(data[:4]))
	if n < 0 {
		return 0, nil, fmt.Errorf("negative entry count %d", n)
	}
	return int(n), data[4:], nil
}

func readValue(data []byte) ([]byte, []byte, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("short buffer reading value length: %d bytes", len(data))
	}
	l := int32(binary.BigEndian.Uint32(data[:4]))
	if l < 0 {
		return nil, nil, fmt.Errorf("null element (length %d)", l)
	}
	rest := data[4:]
	if len(rest) < int(l) {
		return nil, nil, fmt.Errorf("value length %d exceeds remaining %d bytes", l, len(rest))
	}
	return rest[:l], rest[l:], nil
}
