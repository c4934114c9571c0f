package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-data-exporter/resultset"
)

// CSVOption configures the CSV writer.
type CSVOption func(*csvWriter)

type csvWriter struct {
	delimiter   rune
	useCRLF     bool
	writeHeader bool
	nullValue   string
}

// CSV returns a Writer producing one CSV record per row, preceded by a
// header of column names. Column order follows the batch descriptor list.
// Descriptors are read off the first row, so an empty result set produces
// empty output, header included.
func CSV(opts ...CSVOption) Writer {
	w := &csvWriter{
		delimiter:   ',',
		writeHeader: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithDelimiter sets the field delimiter.
func WithDelimiter(d rune) CSVOption {
	return func(w *csvWriter) {
		w.delimiter = d
	}
}

// WithCRLF makes records end in \r\n instead of \n.
func WithCRLF(v bool) CSVOption {
	return func(w *csvWriter) {
		w.useCRLF = v
	}
}

// WithoutHeader suppresses the header record.
func WithoutHeader() CSVOption {
	return func(w *csvWriter) {
		w.writeHeader = false
	}
}

// WithNullValue sets the string written for null cells. Default is empty.
func WithNullValue(s string) CSVOption {
	return func(w *csvWriter) {
		w.nullValue = s
	}
}

func (c *csvWriter) Write(rs resultset.ResultSet, w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = c.delimiter
	cw.UseCRLF = c.useCRLF
	rowID := 1
	for row := range rs.Rows() {
		cols := row.Columns()
		if len(cols) == 0 {
			return ErrNoColumns.New(rowID)
		}
		if rowID == 1 && c.writeHeader {
			header := make([]string, 0, len(cols))
			for _, col := range cols {
				header = append(header, col.Name)
			}
			if err := cw.Write(header); err != nil {
				return fmt.Errorf("failed to write header: %w", err)
			}
		}
		obj, err := decodeRow(row, rowID)
		if err != nil {
			return err
		}
		record := make([]string, 0, len(cols))
		for _, col := range cols {
			v := obj[col.Name]
			if v == nil {
				record = append(record, c.nullValue)
				continue
			}
			record = append(record, toString(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
		rowID++
	}
	cw.Flush()
	return cw.Error()
}
