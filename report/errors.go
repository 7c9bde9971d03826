package report

import (
	"fmt"
)

// SchemaMismatchError indicates that a row in the upstream report does not have the
// number of columns declared for the report, i.e. the upstream format has changed.
type SchemaMismatchError struct {
	Report   Kind
	Row      int
	Expected int
	Actual   int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%v: row %d has %d columns, expected %d", e.Report, e.Row, e.Actual, e.Expected)
}

// ParseError identifies a cell that could not be normalised. Row is 1-based and
// counts data rows only.
type ParseError struct {
	Report Kind
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%v: row %d, column '%s': invalid value '%s' (%v)", e.Report, e.Row, e.Column, e.Value, e.Err)
	}

	return fmt.Sprintf("%v: %v", e.Report, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
