package normalise

import (
	"bytes"
	"strings"

	"github.com/reports2sheets/reports2sheets/report"
)

var bom = []byte{0xef, 0xbb, 0xbf}

// tsv assigns the cells of a headerless tab separated report to the report columns
// by position. Cells are split on tabs only: quotes are part of the cell value.
func tsv(spec report.Spec, data []byte) ([][]string, error) {
	text := string(bytes.TrimPrefix(data, bom))

	rows := [][]string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		record := strings.Split(line, "\t")
		row := len(rows) + 1
		if len(record) != len(spec.Columns) {
			return nil, &report.SchemaMismatchError{
				Report:   spec.Kind,
				Row:      row,
				Expected: len(spec.Columns),
				Actual:   len(record),
			}
		}

		cells := make([]string, len(spec.Columns))
		for i, c := range spec.Columns {
			cells[i] = record[c.Index]
		}

		normalised, err := apply(spec, row, cells)
		if err != nil {
			return nil, err
		}

		rows = append(rows, normalised)
	}

	return rows, nil
}
