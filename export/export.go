// Package export renders result sets for humans and downstream tools.
// Cells are decoded through each row's column descriptors, so only rows
// built from a structured batch (which carry descriptors) can be rendered.
package export

import (
	"io"
	"os"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/go-data-exporter/resultset"
)

// ErrNoColumns is returned when a row carries no column descriptors and
// therefore cannot be decoded for rendering.
var ErrNoColumns = errors.NewKind("row %d carries no column descriptors")

// Writer renders all rows of a result set to w in one output format.
type Writer interface {
	Write(rs resultset.ResultSet, w io.Writer) error
}

// WriteFile renders rs to the named file, creating or truncating it.
func WriteFile(rs resultset.ResultSet, format Writer, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := format.Write(rs, f); err != nil {
		return err
	}
	return f.Close()
}

// decodeRow decodes every cell of row through its column's type. Null
// cells decode to nil. rowID is 1-based and only used in errors.
func decodeRow(row resultset.Row, rowID int) (map[string]any, error) {
	cols := row.Columns()
	if len(cols) == 0 {
		return nil, ErrNoColumns.New(rowID)
	}
	obj := make(map[string]any, len(cols))
	for _, col := range cols {
		raw := row.GetBytes(col.Name)
		if raw == nil || col.Type == nil {
			obj[col.Name] = nil
			continue
		}
		v, err := col.Type.ComposeAny(raw)
		if err != nil {
			return nil, err
		}
		obj[col.Name] = v
	}
	return obj, nil
}
