package report

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Serialise encodes a table as comma separated UTF-8 text: one header row followed by
// the data rows in table order. The output for a given table is always identical.
func Serialise(table *Table) (string, error) {
	if table == nil {
		return "", fmt.Errorf("missing table")
	}

	var b strings.Builder

	w := csv.NewWriter(&b)
	w.Comma = ','
	w.UseCRLF = false

	if len(table.Header) > 0 {
		if err := w.Write(table.Header); err != nil {
			return "", err
		}
	}

	for i, row := range table.Rows {
		if len(row) != len(table.Header) {
			return "", fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(table.Header))
		}

		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return b.String(), nil
}
