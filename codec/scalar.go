package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"net/netip"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scalar codecs. Each one decodes the fixed binary encoding of the
// corresponding CQL-style type.
var (
	UTF8      Codec[string]          = utf8Codec{}
	Boolean   Codec[bool]            = booleanCodec{}
	Int32     Codec[int32]           = int32Codec{}
	Int64     Codec[int64]           = int64Codec{}
	Float32   Codec[float32]         = float32Codec{}
	Float64   Codec[float64]         = float64Codec{}
	Blob      Codec[[]byte]          = blobCodec{}
	Inet      Codec[netip.Addr]      = inetCodec{}
	UUID      Codec[uuid.UUID]       = uuidCodec{}
	TimeUUID  Codec[uuid.UUID]       = timeUUIDCodec{}
	Timestamp Codec[time.Time]       = timestampCodec{}
	Decimal   Codec[decimal.Decimal] = decimalCodec{}
)

type utf8Codec struct{}

func (utf8Codec) TypeName() string { return "text" }

func (c utf8Codec) Compose(data []byte) (string, error) {
	if data == nil {
		return "", ErrNull.New(c.TypeName())
	}
	if !utf8.Valid(data) {
		return "", ErrDecode.New(c.TypeName(), "invalid UTF-8")
	}
	return string(data), nil
}

func (c utf8Codec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type booleanCodec struct{}

func (booleanCodec) TypeName() string { return "boolean" }

func (c booleanCodec) Compose(data []byte) (bool, error) {
	if data == nil {
		return false, ErrNull.New(c.TypeName())
	}
	switch len(data) {
	case 0:
		return false, nil
	case 1:
		return data[0] != 0, nil
	}
	return false, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected 1 byte, got %d", len(data)))
}

func (c booleanCodec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type int32Codec struct{}

func (int32Codec) TypeName() string { return "int" }

func (c int32Codec) Compose(data []byte) (int32, error) {
	if data == nil {
		return 0, ErrNull.New(c.TypeName())
	}
	if len(data) != 4 {
		return 0, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected 4 bytes, got %d", len(data)))
	}
	return int32(binary.BigEndian.Uint32(data)), nil
}

func (c int32Codec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type int64Codec struct{}

func (int64Codec) TypeName() string { return "bigint" }

func (c int64Codec) Compose(data []byte) (int64, error) {
	if data == nil {
		return 0, ErrNull.New(c.TypeName())
	}
	if len(data) != 8 {
		return 0, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected 8 bytes, got %d", len(data)))
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

func (c int64Codec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type float32Codec struct{}

func (float32Codec) TypeName() string { return "float" }

func (c float32Codec) Compose(data []byte) (float32, error) {
	if data == nil {
		return 0, ErrNull.New(c.TypeName())
	}
	if len(data) != 4 {
		return 0, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected 4 bytes, got %d", len(data)))
	}
	return math.Float32frombits(binary.BigEndian.Uint32(data)), nil
}

func (c float32Codec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type float64Codec struct{}

func (float64Codec) TypeName() string { return "double" }

func (c float64Codec) Compose(data []byte) (float64, error) {
	if data == nil {
		return 0, ErrNull.New(c.TypeName())
	}
	if len(data) != 8 {
		return 0, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected 8 bytes, got %d", len(data)))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
}

func (c float64Codec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type blobCodec struct{}

func (blobCodec) TypeName() string { return "blob" }

// Compose returns the encoded bytes verbatim. The caller must treat the
// result as read-only.
func (c blobCodec) Compose(data []byte) ([]byte, error) {
	if data == nil {
		return nil, ErrNull.New(c.TypeName())
	}
	return data, nil
}

func (c blobCodec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type inetCodec struct{}

func (inetCodec) TypeName() string { return "inet" }

func (c inetCodec) Compose(data []byte) (netip.Addr, error) {
	if data == nil {
		return netip.Addr{}, ErrNull.New(c.TypeName())
	}
	if len(data) != 4 && len(data) != 16 {
		return netip.Addr{}, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected 4 or 16 bytes, got %d", len(data)))
	}
	addr, _ := netip.AddrFromSlice(data)
	return addr, nil
}

func (c inetCodec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type uuidCodec struct{}

func (uuidCodec) TypeName() string { return "uuid" }

func (c uuidCodec) Compose(data []byte) (uuid.UUID, error) {
	if data == nil {
		return uuid.Nil, ErrNull.New(c.TypeName())
	}
	u, err := uuid.FromBytes(data)
	if err != nil {
		return uuid.Nil, ErrDecode.New(c.TypeName(), err.Error())
	}
	return u, nil
}

func (c uuidCodec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type timeUUIDCodec struct{}

func (timeUUIDCodec) TypeName() string { return "timeuuid" }

func (c timeUUIDCodec) Compose(data []byte) (uuid.UUID, error) {
	if data == nil {
		return uuid.Nil, ErrNull.New(c.TypeName())
	}
	u, err := uuid.FromBytes(data)
	if err != nil {
		return uuid.Nil, ErrDecode.New(c.TypeName(), err.Error())
	}
	if u.Version() != 1 {
		return uuid.Nil, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected version 1, got version %d", u.Version()))
	}
	return u, nil
}

func (c timeUUIDCodec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type timestampCodec struct{}

func (timestampCodec) TypeName() string { return "timestamp" }

// Compose decodes an 8-byte big-endian count of milliseconds since the Unix
// epoch. The result is in UTC.
func (c timestampCodec) Compose(data []byte) (time.Time, error) {
	if data == nil {
		return time.Time{}, ErrNull.New(c.TypeName())
	}
	if len(data) != 8 {
		return time.Time{}, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected 8 bytes, got %d", len(data)))
	}
	ms := int64(binary.BigEndian.Uint64(data))
	return time.UnixMilli(ms).UTC(), nil
}

func (c timestampCodec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }

type decimalCodec struct{}

func (decimalCodec) TypeName() string { return "decimal" }

// Compose decodes a 4-byte big-endian scale followed by a big-endian
// two's-complement unscaled integer.
func (c decimalCodec) Compose(data []byte) (decimal.Decimal, error) {
	if data == nil {
		return decimal.Decimal{}, ErrNull.New(c.TypeName())
	}
	if len(data) < 5 {
		return decimal.Decimal{}, ErrDecode.New(c.TypeName(), fmt.Sprintf("expected at least 5 bytes, got %d", len(data)))
	}
	scale := int32(binary.BigEndian.Uint32(data[:4]))
	unscaled := new(big.Int).SetBytes(data[4:])
	if data[4]&0x80 != 0 {
		unscaled.Sub(unscaled, new(big.Int).Lsh(big.NewInt(1), uint(len(data)-4)*8))
	}
	return decimal.NewFromBigInt(unscaled, -scale), nil
}

func (c decimalCodec) ComposeAny(data []byte) (any, error) { return c.Compose(data) }
