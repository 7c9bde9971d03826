package report

import (
	"fmt"
	"strings"
)

// Kind identifies a report. Dispatch on report type is always by Kind, never by
// inspecting the request path.
type Kind int

const (
	Opportunities Kind = iota + 1
	Projects
	SalesOrders
	Revenues
	Utilization
	TimeBalance
	Engagement
	Tickets
)

var kinds = map[Kind]string{
	Opportunities: "opportunities",
	Projects:      "projects",
	SalesOrders:   "salesorders",
	Revenues:      "revenues",
	Utilization:   "utilization",
	TimeBalance:   "timebalance",
	Engagement:    "engagement",
	Tickets:       "tickets",
}

func (k Kind) String() string {
	if s, ok := kinds[k]; ok {
		return s
	}

	return fmt.Sprintf("report-%d", int(k))
}

// ParseKind returns the Kind for a report identifier e.g. 'utilization'.
func ParseKind(s string) (Kind, error) {
	id := strings.ToLower(strings.TrimSpace(s))
	for k, v := range kinds {
		if v == id {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown report '%s'", s)
}

type Source int

const (
	PlanMill Source = iota + 1
	OfficeVibe
	Freshdesk
)

func (s Source) String() string {
	switch s {
	case PlanMill:
		return "planmill"
	case OfficeVibe:
		return "officevibe"
	case Freshdesk:
		return "freshdesk"
	default:
		return fmt.Sprintf("source-%d", int(s))
	}
}

// Format is the shape of a raw report payload.
type Format int

const (
	TabNoHeader Format = iota + 1
	NestedJSON
	FlatJSON
)

func (f Format) String() string {
	switch f {
	case TabNoHeader:
		return "tab_no_header"
	case NestedJSON:
		return "nested_json"
	case FlatJSON:
		return "flat_json"
	default:
		return fmt.Sprintf("format-%d", int(f))
	}
}

// Accept returns the HTTP content type requested for the format. PlanMill answers
// 'text/csv' with tab-delimited text.
func (f Format) Accept() string {
	if f == TabNoHeader {
		return "text/csv"
	}

	return "application/json"
}

type Type int

const (
	String Type = iota
	Decimal
	Percent
	Day
	Month
)

func (t Type) String() string {
	switch t {
	case Decimal:
		return "decimal"
	case Percent:
		return "percent"
	case Day:
		return "date:day"
	case Month:
		return "date:month"
	default:
		return "string"
	}
}

// Column describes one output column. Index is the position in a tab separated row,
// Field the JSON member name for the JSON formats. Outer marks a nested JSON column
// copied from the enclosing record rather than from the metric entry.
type Column struct {
	Name  string
	Type  Type
	Index int
	Field string
	Outer bool
}

// Nesting locates the rows of a nested JSON payload: Records is the dotted path to the
// list of outer records and Entries the member of each record holding the inner list.
type Nesting struct {
	Records string
	Entries string
}

// Spec is the static description of a single report.
type Spec struct {
	Kind    Kind
	Source  Source
	Format  Format
	Path    string
	Nesting Nesting
	Columns []Column
}

func (s Spec) ID() string {
	return s.Kind.String()
}

// Header returns the column names in output order.
func (s Spec) Header() []string {
	header := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		header[i] = c.Name
	}

	return header
}

// Payload is the raw response for one report.
type Payload struct {
	Format      Format
	ContentType string
	Data        []byte
}

// Table is a normalised report. Every row has exactly one cell per header column.
type Table struct {
	Header []string
	Rows   [][]string
}
