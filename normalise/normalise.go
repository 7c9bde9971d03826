// Package normalise converts the raw responses of the reporting APIs into tables
// with a fixed column order and consistent number and date formatting.
package normalise

import (
	"fmt"

	"github.com/reports2sheets/reports2sheets/report"
)

// Normalise converts a raw payload into a table whose columns match the report column
// schema exactly. A payload with no data rows yields an empty (header only) table.
func Normalise(spec report.Spec, payload *report.Payload) (*report.Table, error) {
	if payload == nil {
		return nil, fmt.Errorf("%v: missing payload", spec.Kind)
	}

	if payload.Format != 0 && payload.Format != spec.Format {
		return nil, fmt.Errorf("%v: payload format %v does not match report format %v", spec.Kind, payload.Format, spec.Format)
	}

	var rows [][]string
	var err error

	switch spec.Format {
	case report.TabNoHeader:
		rows, err = tsv(spec, payload.Data)

	case report.NestedJSON:
		rows, err = nested(spec, payload.Data)

	case report.FlatJSON:
		rows, err = flat(spec, payload.Data)

	default:
		return nil, fmt.Errorf("%v: unsupported report format %v", spec.Kind, spec.Format)
	}

	if err != nil {
		return nil, err
	}

	return &report.Table{
		Header: spec.Header(),
		Rows:   rows,
	}, nil
}

// apply transforms the raw cells of one row, already in column order.
func apply(spec report.Spec, row int, cells []string) ([]string, error) {
	record := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		v, err := transform(c.Type, cells[i])
		if err != nil {
			return nil, &report.ParseError{
				Report: spec.Kind,
				Row:    row,
				Column: c.Name,
				Value:  cells[i],
				Err:    err,
			}
		}

		record[i] = v
	}

	return record, nil
}
