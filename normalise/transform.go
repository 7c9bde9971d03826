package normalise

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reports2sheets/reports2sheets/report"
)

// Layouts accepted for date cells, most specific first. Day-first for dotted dates,
// month-first for slashed dates.
var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
	time.RFC3339,
	"20060102",
	"02.01.2006",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"2.1.2006",
	"2.1.2006 15:04",
	"01/02/2006",
	"1/2/2006",
}

var monthLayouts = []string{
	"2006-01",
	"2006/01",
	"200601",
	"01/2006",
	"1/2006",
	"01.2006",
	"1.2006",
}

func transform(t report.Type, v string) (string, error) {
	switch t {
	case report.Decimal:
		return toDecimal(v, false)

	case report.Percent:
		return toDecimal(v, true)

	case report.Day:
		return toDate(v, "20060102", layouts)

	case report.Month:
		return toDate(v, "200601", append(append([]string{}, layouts...), monthLayouts...))

	default:
		return v, nil
	}
}

// toDecimal rewrites a locale formatted number to use '.' as the decimal separator.
// Digit grouping spaces are dropped and, for percentages, the trailing '%'. Exponent
// notation is not a valid cell value.
func toDecimal(v string, percent bool) (string, error) {
	s := clean(v)
	if s == "" {
		return "", nil
	}

	s = strings.ReplaceAll(s, ",", ".")
	if percent {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		case '\u2212':
			return '-'
		default:
			return r
		}
	}, s)

	if strings.ContainsAny(s, "eE") {
		return "", fmt.Errorf("not a decimal number")
	}

	if _, err := decimal.NewFromString(s); err != nil {
		return "", fmt.Errorf("not a decimal number")
	}

	return s, nil
}

func toDate(v string, format string, layouts []string) (string, error) {
	s := clean(v)
	if s == "" {
		return "", nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(format), nil
		}
	}

	return "", fmt.Errorf("unrecognised date format")
}

// clean trims the typed (decimal and date) cells. String cells are kept verbatim.
func clean(v string) string {
	return strings.TrimSpace(v)
}
