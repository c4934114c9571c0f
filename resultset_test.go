package resultset

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/go-data-exporter/resultset/codec"
)

func be32(v int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))
	return b
}

func collection(values ...[]byte) []byte {
	out := be32(int32(len(values)))
	for _, v := range values {
		out = append(out, be32(int32(len(v)))...)
		out = append(out, v...)
	}
	return out
}

func testBatch() ResultSet {
	columns := []ColumnSpec{
		{Name: "id", Type: codec.Int32},
		{Name: "name", Type: codec.UTF8},
	}
	return FromBatch(columns, [][][]byte{
		{be32(1), []byte("alice")},
		{be32(2), []byte("bob")},
		{be32(3), nil},
	})
}

func TestFromBatchSize(t *testing.T) {
	rs := testBatch()
	if rs.Size() != 3 {
		t.Errorf("Size() = %d, want 3", rs.Size())
	}
	if rs.IsEmpty() {
		t.Error("IsEmpty() should be false")
	}

	empty := FromBatch(nil, nil)
	if empty.Size() != 0 || !empty.IsEmpty() {
		t.Error("batch with no rows should be empty")
	}
}

func TestFromBatchIterate(t *testing.T) {
	rs := testBatch()
	var ids []int32
	for row := range rs.Rows() {
		id, err := row.GetInt("id")
		if err != nil {
			t.Fatalf("GetInt failed: %v", err)
		}
		ids = append(ids, id)
	}
	if len(ids) != 3 {
		t.Fatalf("iterated %d rows, want 3", len(ids))
	}
	for i, id := range ids {
		if id != int32(i+1) {
			t.Errorf("row %d: id = %d, want %d (original order)", i, id, i+1)
		}
	}
}

func TestIterateRestartable(t *testing.T) {
	for name, rs := range map[string]ResultSet{
		"batch": testBatch(),
		"maps": FromMaps([]map[string][]byte{
			{"k": []byte("v1")},
			{"k": []byte("v2")},
		}),
	} {
		first := []string{}
		for row := range rs.Rows() {
			first = append(first, row.String())
		}
		second := []string{}
		for row := range rs.Rows() {
			second = append(second, row.String())
		}
		if len(first) != rs.Size() || len(second) != rs.Size() {
			t.Fatalf("%s: traversals yielded %d and %d rows, want %d", name, len(first), len(second), rs.Size())
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("%s: row %d differs between traversals: %s vs %s", name, i, first[i], second[i])
			}
		}
	}
}

func TestIterateEarlyBreak(t *testing.T) {
	rs := testBatch()
	n := 0
	for range rs.Rows() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("broke after %d rows, want 1", n)
	}
	// The collection is untouched; a fresh traversal still sees everything.
	n = 0
	for range rs.Rows() {
		n++
	}
	if n != 3 {
		t.Errorf("second traversal yielded %d rows, want 3", n)
	}
}

func TestOne(t *testing.T) {
	_, err := testBatch().One()
	if !ErrOneRow.Is(err) {
		t.Fatalf("One() on 3 rows: want ErrOneRow, got %v", err)
	}
	if !strings.Contains(err.Error(), "3 found") {
		t.Errorf("error should report the actual count, got %q", err.Error())
	}

	_, err = FromMaps(nil).One()
	if !ErrOneRow.Is(err) {
		t.Errorf("One() on 0 rows: want ErrOneRow, got %v", err)
	}

	single := FromMaps([]map[string][]byte{{"x": []byte("y")}})
	row, err := single.One()
	if err != nil {
		t.Fatalf("One() on 1 row failed: %v", err)
	}
	for iterated := range single.Rows() {
		if row.String() != iterated.String() {
			t.Errorf("One() = %s, iterate yielded %s", row, iterated)
		}
	}
}

func TestRowFromBatch(t *testing.T) {
	columns := []ColumnSpec{
		{Name: "a", Type: codec.Int32},
		{Name: "b", Type: codec.UTF8},
	}
	rs := FromBatch(columns, [][][]byte{{be32(5), nil}})
	row, err := rs.One()
	if err != nil {
		t.Fatalf("One failed: %v", err)
	}

	if !row.Has("a") {
		t.Error(`Has("a") should be true`)
	}
	if row.Has("b") {
		t.Error(`Has("b") should be false for a present-but-null column`)
	}
	if row.Has("c") {
		t.Error(`Has("c") should be false for an absent column`)
	}

	v, err := row.GetInt("a")
	if err != nil {
		t.Fatalf("GetInt failed: %v", err)
	}
	if v != 5 {
		t.Errorf(`GetInt("a") = %d, want 5`, v)
	}

	cols := row.Columns()
	if len(cols) != 2 || cols[0].Name != "a" || cols[1].Name != "b" {
		t.Errorf("Columns() = %v, want [a b] in order", cols)
	}
}

func TestRowFromMap(t *testing.T) {
	rs := FromMaps([]map[string][]byte{{"x": nil}})
	row, err := rs.One()
	if err != nil {
		t.Fatalf("One failed: %v", err)
	}

	if row.Has("x") {
		t.Error(`Has("x") should be false for a null value`)
	}
	if len(row.Columns()) != 0 {
		t.Errorf("map-built rows carry no descriptors, got %v", row.Columns())
	}

	set, err := GetSet(row, "x", codec.UTF8)
	if err != nil {
		t.Fatalf("GetSet on a null column should not fail: %v", err)
	}
	if set != nil {
		t.Errorf("GetSet on a null column = %v, want nil", set)
	}

	if raw := row.GetBytes("x"); raw != nil {
		t.Errorf("GetBytes on a null column = %v, want nil", raw)
	}
}

func TestScalarGetterOnMissing(t *testing.T) {
	rs := FromMaps([]map[string][]byte{{"x": nil}})
	row, _ := rs.One()

	// Scalar getters delegate null handling to the codec, which refuses.
	if _, err := row.GetString("x"); !codec.ErrNull.Is(err) {
		t.Errorf("GetString on null: want codec.ErrNull, got %v", err)
	}
	if _, err := row.GetLong("absent"); !codec.ErrNull.Is(err) {
		t.Errorf("GetLong on absent: want codec.ErrNull, got %v", err)
	}
}

func TestGetBytesVerbatim(t *testing.T) {
	raw := []byte{0x00, 0x01, 0x02}
	rs := FromMaps([]map[string][]byte{{"b": raw}})
	row, _ := rs.One()
	if got := row.GetBytes("b"); !bytes.Equal(got, raw) {
		t.Errorf("GetBytes = %x, want %x", got, raw)
	}
}

func TestCollectionGetters(t *testing.T) {
	rs := FromMaps([]map[string][]byte{{
		"l": collection(be32(10), be32(20)),
		"s": collection([]byte("a"), []byte("b")),
		"m": collection([]byte("k"), be32(1)),
	}})
	row, _ := rs.One()

	l, err := GetList(row, "l", codec.Int32)
	if err != nil {
		t.Fatalf("GetList failed: %v", err)
	}
	if len(l) != 2 || l[0] != 10 || l[1] != 20 {
		t.Errorf("GetList = %v, want [10 20]", l)
	}

	s, err := GetSet(row, "s", codec.UTF8)
	if err != nil {
		t.Fatalf("GetSet failed: %v", err)
	}
	if len(s) != 2 {
		t.Errorf("GetSet = %v, want {a b}", s)
	}

	m, err := GetMap(row, "m", codec.UTF8, codec.Int32)
	if err != nil {
		t.Fatalf("GetMap failed: %v", err)
	}
	if len(m) != 1 || m["k"] != 1 {
		t.Errorf("GetMap = %v, want map[k:1]", m)
	}
}

func TestGetMapEmptyVsAbsent(t *testing.T) {
	rs := FromMaps([]map[string][]byte{{"m": collection()}})
	row, _ := rs.One()

	encoded, err := GetMap(row, "m", codec.UTF8, codec.Int32)
	if err != nil {
		t.Fatalf("GetMap on encoded-empty map failed: %v", err)
	}
	absent, err := GetMap(row, "gone", codec.UTF8, codec.Int32)
	if err != nil {
		t.Fatalf("GetMap on absent column failed: %v", err)
	}

	// Both paths are one observable state: a nil (hence empty) map.
	if encoded != nil || absent != nil {
		t.Errorf("encoded-empty = %v, absent = %v, want nil for both", encoded, absent)
	}
	if len(encoded) != 0 || len(absent) != 0 {
		t.Error("both results should read as empty")
	}
}

func TestMalformedScalar(t *testing.T) {
	rs := FromMaps([]map[string][]byte{{"n": []byte{1, 2, 3}}})
	row, _ := rs.One()
	v, err := row.GetInt("n")
	if !codec.ErrDecode.Is(err) {
		t.Fatalf("GetInt on 3 bytes: want codec.ErrDecode, got %v", err)
	}
	if v != 0 {
		t.Errorf("failed decode should not return a value, got %d", v)
	}
}

func TestZeroValueResultSet(t *testing.T) {
	var rs ResultSet
	if rs.Size() != 0 || !rs.IsEmpty() {
		t.Error("zero-value ResultSet should be empty")
	}
	if _, err := rs.One(); !ErrOneRow.Is(err) {
		t.Errorf("One() on zero value: want ErrOneRow, got %v", err)
	}
	for range rs.Rows() {
		t.Fatal("zero-value ResultSet should yield no rows")
	}
}

func TestRowString(t *testing.T) {
	rs := FromMaps([]map[string][]byte{{"b": {0xab}, "a": nil}})
	row, _ := rs.One()
	if got := row.String(); got != "Row{a: null, b: 0xab}" {
		t.Errorf("String() = %q", got)
	}
}

func TestColumnSpecString(t *testing.T) {
	c := ColumnSpec{Name: "id", Type: codec.Int32}
	if c.String() != "id int" {
		t.Errorf("String() = %q, want %q", c.String(), "id int")
	}
	if (ColumnSpec{Name: "x"}).String() != "x" {
		t.Error("ColumnSpec without a type should print its name only")
	}
}
