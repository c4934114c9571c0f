package resultset

import "github.com/go-data-exporter/resultset/codec"

// ColumnSpec identifies one column of a structured batch: its name and the
// type its encoded values decode as.
type ColumnSpec struct {
	Name string
	Type codec.Type
}

func (c ColumnSpec) String() string {
	if c.Type == nil {
		return c.Name
	}
	return c.Name + " " + c.Type.TypeName()
}
