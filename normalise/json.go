package normalise

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/reports2sheets/reports2sheets/report"
)

// nested flattens a list of records each holding a list of entries into one row per
// entry, copying the 'outer' columns from the enclosing record. A missing record list
// is a valid 'no data' response.
func nested(spec report.Spec, data []byte) ([][]string, error) {
	root, err := decode(data)
	if err != nil {
		return nil, &report.ParseError{Report: spec.Kind, Err: err}
	}

	list, ok := lookup(root, spec.Nesting.Records)
	if !ok || list == nil {
		return [][]string{}, nil
	}

	records, ok := list.([]any)
	if !ok {
		return nil, &report.ParseError{Report: spec.Kind, Err: fmt.Errorf("'%s' is not a list", spec.Nesting.Records)}
	}

	rows := [][]string{}
	for i, r := range records {
		record, ok := r.(map[string]any)
		if !ok {
			return nil, &report.ParseError{Report: spec.Kind, Err: fmt.Errorf("record %d in '%s' is not an object", i+1, spec.Nesting.Records)}
		}

		var entries []any
		switch v := record[spec.Nesting.Entries].(type) {
		case nil:
		case []any:
			entries = v
		default:
			return nil, &report.ParseError{Report: spec.Kind, Err: fmt.Errorf("record %d: '%s' is not a list", i+1, spec.Nesting.Entries)}
		}

		for j, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				return nil, &report.ParseError{Report: spec.Kind, Err: fmt.Errorf("record %d: entry %d is not an object", i+1, j+1)}
			}

			cells := make([]string, len(spec.Columns))
			for k, c := range spec.Columns {
				if c.Outer {
					cells[k] = stringify(record[c.Field])
				} else {
					cells[k] = stringify(entry[c.Field])
				}
			}

			row, err := apply(spec, len(rows)+1, cells)
			if err != nil {
				return nil, err
			}

			rows = append(rows, row)
		}
	}

	return rows, nil
}

// flat maps a JSON list of objects to rows by member name. Missing members are
// empty cells and members not in the column schema are ignored.
func flat(spec report.Spec, data []byte) ([][]string, error) {
	root, err := decode(data)
	if err != nil {
		return nil, &report.ParseError{Report: spec.Kind, Err: err}
	}

	if root == nil {
		return [][]string{}, nil
	}

	objects, ok := root.([]any)
	if !ok {
		return nil, &report.ParseError{Report: spec.Kind, Err: fmt.Errorf("expected a JSON list")}
	}

	rows := [][]string{}
	for i, o := range objects {
		object, ok := o.(map[string]any)
		if !ok {
			return nil, &report.ParseError{Report: spec.Kind, Err: fmt.Errorf("item %d is not an object", i+1)}
		}

		cells := make([]string, len(spec.Columns))
		for k, c := range spec.Columns {
			cells[k] = stringify(object[c.Field])
		}

		row, err := apply(spec, i+1, cells)
		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func decode(data []byte) (any, error) {
	var v any

	d := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, bom)))
	d.UseNumber()

	if err := d.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON (%w)", err)
	}

	return v, nil
}

// lookup follows a dotted path through nested JSON objects.
func lookup(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}

	for _, key := range strings.Split(path, ".") {
		object, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}

		if v, ok = object[key]; !ok {
			return nil, false
		}
	}

	return v, true
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""

	case string:
		return value

	case json.Number:
		return value.String()

	case bool:
		return strconv.FormatBool(value)

	default:
		if b, err := json.Marshal(value); err == nil {
			return string(b)
		}

		return fmt.Sprintf("%v", value)
	}
}
