package resultset

import (
	"encoding/hex"
	"net/netip"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-data-exporter/resultset/codec"
)

// Row is one immutable record of a result set: a mapping from column name
// to encoded value (nil = explicit null), plus the column descriptors of
// the originating batch when there are any.
//
// The scalar getters hand the stored bytes straight to the named codec, so
// a null or missing column fails with codec.ErrNull; guard with Has first.
// The collection getters (GetSet, GetList, GetMap) instead treat null and
// missing uniformly as "no value" and return nil without error. The
// asymmetry is deliberate and part of the contract.
type Row struct {
	data    map[string][]byte
	columns []ColumnSpec
}

func newRowFromValues(columns []ColumnSpec, values [][]byte) Row {
	data := make(map[string][]byte, len(columns))
	for i, c := range columns {
		data[c.Name] = values[i]
	}
	return Row{data: data, columns: columns}
}

func newRowFromMap(m map[string][]byte) Row {
	data := make(map[string][]byte, len(m))
	for name, value := range m {
		data[name] = value
	}
	return Row{data: data}
}

// Has reports whether column is present with a non-null value. A column
// that is absent and one that is present but null are indistinguishable
// here.
func (r Row) Has(column string) bool {
	// A key lookup is not enough: present columns may hold null values.
	return r.data[column] != nil
}

// Columns returns the descriptor list attached at construction, in batch
// order. Rows built from an independent map have none.
func (r Row) Columns() []ColumnSpec {
	return r.columns
}

// GetBytes returns the encoded value verbatim, nil when the column is null
// or missing. It never fails and performs no decoding. The result must be
// treated as read-only.
func (r Row) GetBytes(column string) []byte {
	return r.data[column]
}

func (r Row) GetString(column string) (string, error) {
	return codec.UTF8.Compose(r.data[column])
}

func (r Row) GetBoolean(column string) (bool, error) {
	return codec.Boolean.Compose(r.data[column])
}

func (r Row) GetInt(column string) (int32, error) {
	return codec.Int32.Compose(r.data[column])
}

func (r Row) GetLong(column string) (int64, error) {
	return codec.Int64.Compose(r.data[column])
}

func (r Row) GetFloat(column string) (float32, error) {
	return codec.Float32.Compose(r.data[column])
}

func (r Row) GetDouble(column string) (float64, error) {
	return codec.Float64.Compose(r.data[column])
}

func (r Row) GetInetAddress(column string) (netip.Addr, error) {
	return codec.Inet.Compose(r.data[column])
}

func (r Row) GetUUID(column string) (uuid.UUID, error) {
	return codec.UUID.Compose(r.data[column])
}

func (r Row) GetTimeUUID(column string) (uuid.UUID, error) {
	return codec.TimeUUID.Compose(r.data[column])
}

func (r Row) GetTimestamp(column string) (time.Time, error) {
	return codec.Timestamp.Compose(r.data[column])
}

func (r Row) GetDecimal(column string) (decimal.Decimal, error) {
	return codec.Decimal.Compose(r.data[column])
}

// GetSet decodes column as a set of elem values. A null or missing column
// yields nil with no error, exactly like an encoded-empty set.
//
// Collection getters are package-level functions because Go methods cannot
// take type parameters.
func GetSet[T comparable](r Row, column string, elem codec.Codec[T]) (map[T]struct{}, error) {
	raw := r.data[column]
	if raw == nil {
		return nil, nil
	}
	return codec.SetOf(elem).Compose(raw)
}

// GetList decodes column as an ordered list of elem values. A null or
// missing column yields nil with no error.
func GetList[T any](r Row, column string, elem codec.Codec[T]) ([]T, error) {
	raw := r.data[column]
	if raw == nil {
		return nil, nil
	}
	return codec.ListOf(elem).Compose(raw)
}

// GetMap decodes column as a key→value mapping. A null or missing column
// yields nil with no error.
func GetMap[K comparable, V any](r Row, column string, key codec.Codec[K], value codec.Codec[V]) (map[K]V, error) {
	raw := r.data[column]
	if raw == nil {
		return nil, nil
	}
	return codec.MapOf(key, value).Compose(raw)
}

// String renders the row's raw contents for debugging, columns sorted by
// name, values in hex.
func (r Row) String() string {
	names := make([]string, 0, len(r.data))
	for name := range r.data {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("Row{")
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		if v := r.data[name]; v == nil {
			b.WriteString("null")
		} else {
			b.WriteString("0x")
			b.WriteString(hex.EncodeToString(v))
		}
	}
	b.WriteString("}")
	return b.String()
}
