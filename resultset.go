// Package resultset provides a uniform, read-only view over tabular query
// results from two structurally different sources: a structured batch whose
// rows share one list of column descriptors, and a hand-assembled list of
// independent per-row value maps with no shared schema. Both are exposed
// through the same ResultSet type, so callers iterate rows and decode
// column values without knowing where the result came from.
//
// Everything in this package is immutable after construction; concurrent
// reads need no synchronization.
package resultset

import (
	"iter"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrOneRow is returned by One when the result does not hold exactly one
// row; the message carries the actual row count.
var ErrOneRow = errors.NewKind("one row required, %d found")

// rowSource is the variant-specific part of a result set: how many rows
// there are and how to materialize one. Everything else is shared.
type rowSource interface {
	size() int
	row(i int) Row
}

// ResultSet is an immutable sequence of rows. The zero value is an empty
// result set.
type ResultSet struct {
	src rowSource
}

// FromBatch builds a ResultSet over a structured batch: one descriptor list
// shared by every row, and per-row value lists positionally aligned with
// it. Every value row must have exactly len(columns) entries; a nil value
// stands for an explicit null.
func FromBatch(columns []ColumnSpec, rows [][][]byte) ResultSet {
	return ResultSet{src: &batchSource{columns: columns, rows: rows}}
}

// FromMaps builds a ResultSet over independent name→value maps, one per
// row. Rows built this way carry no column descriptors and different rows
// may have different column sets.
func FromMaps(rows []map[string][]byte) ResultSet {
	return ResultSet{src: &mapSource{rows: rows}}
}

// Size returns the number of rows. It is fixed at construction.
func (rs ResultSet) Size() int {
	if rs.src == nil {
		return 0
	}
	return rs.src.size()
}

// IsEmpty reports whether the result holds no rows.
func (rs ResultSet) IsEmpty() bool {
	return rs.Size() == 0
}

// One returns the single row of the result, or ErrOneRow when the row
// count is not exactly 1.
func (rs ResultSet) One() (Row, error) {
	if n := rs.Size(); n != 1 {
		return Row{}, ErrOneRow.New(n)
	}
	return rs.src.row(0), nil
}

// Rows returns a lazy sequence over the result's rows in their original
// order. Each call yields an independent traversal starting at row 0, so
// ranging over the same result set twice is safe and produces identical
// rows. Rows are materialized on demand.
func (rs ResultSet) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i := 0; i < rs.Size(); i++ {
			if !yield(rs.src.row(i)) {
				return
			}
		}
	}
}

type batchSource struct {
	columns []ColumnSpec
	rows    [][][]byte
}

func (s *batchSource) size() int {
	return len(s.rows)
}

func (s *batchSource) row(i int) Row {
	return newRowFromValues(s.columns, s.rows[i])
}

type mapSource struct {
	rows []map[string][]byte
}

func (s *mapSource) size() int {
	return len(s.rows)
}

func (s *mapSource) row(i int) Row {
	return newRowFromMap(s.rows[i])
}
