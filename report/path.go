package report

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// Params holds the values substituted into a request path template.
type Params struct {
	Year      string
	Today     string
	MonthEnds []string
	Groups    []string
}

// NewParams derives the request parameters for a run on the given date.
func NewParams(now time.Time, groups []string) Params {
	year := now.Year()
	ends := make([]string, 12)
	for m := 1; m <= 12; m++ {
		ends[m-1] = time.Date(year, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}

	return Params{
		Year:      fmt.Sprintf("%04d", year),
		Today:     now.Format("2006-01-02"),
		MonthEnds: ends,
		Groups:    append([]string(nil), groups...),
	}
}

// Render expands the report request path for the supplied parameters.
func (s Spec) Render(p Params) (string, error) {
	t, err := template.New(s.ID()).Option("missingkey=error").Parse(s.Path)
	if err != nil {
		return "", fmt.Errorf("invalid request path for %v (%w)", s.Kind, err)
	}

	var b bytes.Buffer
	if err := t.Execute(&b, p); err != nil {
		return "", fmt.Errorf("error rendering request path for %v (%w)", s.Kind, err)
	}

	return b.String(), nil
}
