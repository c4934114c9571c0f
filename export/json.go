package export

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/go-data-exporter/resultset"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONOption configures the JSON writer.
type JSONOption func(*jsonWriter)

type jsonWriter struct {
	newlineDelimited bool
	limit            int
}

// JSON returns a Writer producing a JSON array of objects, one object per
// row, keyed by column name. Null columns encode as JSON null.
func JSON(opts ...JSONOption) Writer {
	w := &jsonWriter{limit: -1}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithNewlineDelimited switches the output to one JSON object per line
// with no surrounding array.
func WithNewlineDelimited(v bool) JSONOption {
	return func(w *jsonWriter) {
		w.newlineDelimited = v
	}
}

// WithLimit caps the number of rows written. Negative means no limit.
func WithLimit(limit int) JSONOption {
	return func(w *jsonWriter) {
		w.limit = limit
	}
}

func (c *jsonWriter) Write(rs resultset.ResultSet, w io.Writer) error {
	if c.limit == 0 {
		return nil
	}
	rowID := 1
	wrote := false
	defer func() {
		if !c.newlineDelimited && wrote {
			w.Write([]byte("\n]\n"))
		}
	}()
	for row := range rs.Rows() {
		obj, err := decodeRow(row, rowID)
		if err != nil {
			return err
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		if c.newlineDelimited {
			w.Write(data)
			w.Write([]byte("\n"))
		} else {
			if !wrote {
				w.Write([]byte("["))
			} else {
				w.Write([]byte(","))
			}
			w.Write([]byte("\n"))
			w.Write(data)
		}
		wrote = true
		if c.limit >= 0 && rowID >= c.limit {
			return nil
		}
		rowID++
	}
	return nil
}
