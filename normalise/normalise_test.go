package normalise

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/reports2sheets/reports2sheets/report"
)

func registered(t *testing.T, k report.Kind) report.Spec {
	t.Helper()

	spec, err := report.Lookup(k)
	if err != nil {
		t.Fatalf("Unexpected error looking up %v (%v)", k, err)
	}

	return spec
}

func TestNormaliseUtilization(t *testing.T) {
	expected := [][]string{
		{"Jane Doe", "20240115", "160.0", "150.5", "120.0", "30.5", "75.3", "4.0"},
		{"John Doe", "20240115", "80.0", "0.0", "0.0", "0.0", "0", ""},
	}

	payload := report.Payload{
		Format: report.TabNoHeader,
		Data: []byte("Jane Doe\t2024-01-15\t160,0\t150,5\t120,0\t30,5\t75,3 %\t4,0\n" +
			"John Doe\t2024-01-15\t80,0\t0,0\t0,0\t0,0\t0 %\t\n"),
	}

	table, err := Normalise(registered(t, report.Utilization), &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %q\n   got:      %q", expected, table.Rows)
	}

	if table.Header[1] != "Period" || table.Header[6] != "Actual utilization" {
		t.Errorf("Incorrect header %q", table.Header)
	}
}

func TestNormaliseRevenues(t *testing.T) {
	expected := [][]string{
		{"202401", "20240131", "Acme Oy", "Webshop", "Development", "SO-1001 / 1", "Consulting", "Jane Doe", "Fixed price", "1200.50", "10000.00", "9500.25", "9500.25", "INV-42", "20240205"},
		{"202402", "20240229", "Acme Oy", "Webshop", "Support", "SO-1001 / 2", "Support", "Jane Doe", "Hourly", "95.00", "", "", "", "", ""},
	}

	payload := report.Payload{
		Format: report.TabNoHeader,
		Data: []byte("\xef\xbb\xbf" +
			"2024-01\t2024-01-31\tAcme Oy\tWebshop\tDevelopment\tSO-1001 / 1\tConsulting\tJane Doe\tFixed price\t1 200,50\t10 000,00\t9 500,25\t9 500,25\tINV-42\t2024-02-05\r\n" +
			"2024-02-01\t29.02.2024\tAcme Oy\tWebshop\tSupport\tSO-1001 / 2\tSupport\tJane Doe\tHourly\t95,00\t\t\t\t\t\r\n" +
			"\r\n"),
	}

	table, err := Normalise(registered(t, report.Revenues), &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %q\n   got:      %q", expected, table.Rows)
	}
}

func TestNormaliseTimeBalance(t *testing.T) {
	expected := [][]string{
		{"Ops", "Jane Doe", "20240101", "20240331", "-2.5", "3.75", "0", "40", "480.0", "476.25", "12.0"},
	}

	payload := report.Payload{
		Data: []byte("Ops\tJane Doe\t2024-01-01T00:00:00.000+0200\t2024-03-31T00:00:00.000+0200\t−2,5\t3,75\t0\t40\t480,0\t476,25\t12,0\n"),
	}

	table, err := Normalise(registered(t, report.TimeBalance), &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %q\n   got:      %q", expected, table.Rows)
	}
}

func TestNormaliseTSVWithSchemaMismatch(t *testing.T) {
	payload := report.Payload{
		Format: report.TabNoHeader,
		Data: []byte("Jane Doe\t2024-01-15\t160,0\t150,5\t120,0\t30,5\t75,3 %\t4,0\n" +
			"John Doe\t2024-01-15\t160,0\t150,5\t120,0\t30,5\t75,3 %\n"),
	}

	_, err := Normalise(registered(t, report.Utilization), &payload)

	var mismatch *report.SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected SchemaMismatchError, got %v", err)
	}

	if mismatch.Row != 2 || mismatch.Expected != 8 || mismatch.Actual != 7 {
		t.Errorf("Incorrect schema mismatch details %+v", mismatch)
	}
}

func TestNormaliseTSVWithInvalidValues(t *testing.T) {
	tests := []struct {
		row    string
		column string
	}{
		{"Jane Doe\t2024-01-15\tlots\t150,5\t120,0\t30,5\t75,3 %\t4,0", "Actual capacity"},
		{"Jane Doe\t15th January\t160,0\t150,5\t120,0\t30,5\t75,3 %\t4,0", "Period"},
		{"Jane Doe\t2024-01-15\t160,0\t150,5\t120,0\t30,5\t75,3 %%\t4,0", "Actual utilization"},
	}

	for _, test := range tests {
		payload := report.Payload{
			Data: []byte("John Doe\t2024-01-15\t160,0\t150,5\t120,0\t30,5\t75,3 %\t4,0\n" + test.row + "\n"),
		}

		_, err := Normalise(registered(t, report.Utilization), &payload)

		var perr *report.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Expected ParseError for %q, got %v", test.row, err)
		}

		if perr.Row != 2 || perr.Column != test.column {
			t.Errorf("Incorrect parse error location - expected row:2 column:%s, got row:%d column:%s", test.column, perr.Row, perr.Column)
		}
	}
}

func TestNormaliseEmptyTSV(t *testing.T) {
	for _, data := range []string{"", "\n", "\r\n\r\n"} {
		table, err := Normalise(registered(t, report.TimeBalance), &report.Payload{Data: []byte(data)})
		if err != nil {
			t.Fatalf("Unexpected error returned from Normalise (%v)", err)
		}

		if len(table.Rows) != 0 {
			t.Errorf("Expected empty table, got %v rows", len(table.Rows))
		}

		if len(table.Header) != 11 {
			t.Errorf("Expected 11 header columns, got %v", len(table.Header))
		}
	}
}

func TestNormaliseEngagement(t *testing.T) {
	expected := [][]string{
		{"engagement", "7.5", "20240131"},
		{"happiness", "8.1", "20240131"},
		{"wellness", "6.9", "20240131"},
	}

	payload := report.Payload{
		Format: report.NestedJSON,
		Data: []byte(`{
		  "data": {
		    "weeklyReports": [
		      { "date": "2024-01-31T00:00:00Z",
		        "metricsValues": [
		          { "id": "engagement", "value": 7.5 },
		          { "id": "happiness",  "value": 8.1 },
		          { "id": "wellness",   "value": 6.9, "delta": 0.2 }
		        ]
		      }
		    ]
		  }
		}`),
	}

	table, err := Normalise(registered(t, report.Engagement), &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %q\n   got:      %q", expected, table.Rows)
	}
}

func TestNormaliseEngagementWithMultiplePeriods(t *testing.T) {
	expected := [][]string{
		{"engagement", "7.5", "20240131"},
		{"engagement", "7.9", "20240229"},
		{"happiness", "", "20240229"},
	}

	payload := report.Payload{
		Data: []byte(`{"data":{"weeklyReports":[
		   {"date":"2024-01-31","metricsValues":[{"id":"engagement","value":7.5}]},
		   {"date":"2024-02-15"},
		   {"date":"2024-02-29","metricsValues":[{"id":"engagement","value":7.9},{"id":"happiness","value":null}]}
		]}}`),
	}

	table, err := Normalise(registered(t, report.Engagement), &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %q\n   got:      %q", expected, table.Rows)
	}
}

func TestNormaliseEngagementWithNoData(t *testing.T) {
	payloads := []string{
		`{}`,
		`{"data":{}}`,
		`{"data":null}`,
		`{"data":{"weeklyReports":null}}`,
		`{"data":{"weeklyReports":[]}}`,
	}

	for _, p := range payloads {
		table, err := Normalise(registered(t, report.Engagement), &report.Payload{Data: []byte(p)})
		if err != nil {
			t.Fatalf("Unexpected error returned from Normalise for %s (%v)", p, err)
		}

		if len(table.Rows) != 0 {
			t.Errorf("Expected empty table for %s, got %v rows", p, len(table.Rows))
		}
	}
}

func TestNormaliseEngagementWithInvalidPayload(t *testing.T) {
	payloads := []string{
		`{"data":`,
		`{"data":{"weeklyReports":{}}}`,
		`{"data":{"weeklyReports":[42]}}`,
		`{"data":{"weeklyReports":[{"date":"2024-01-31","metricsValues":"none"}]}}`,
		`{"data":{"weeklyReports":[{"date":"yesterday","metricsValues":[{"id":"engagement","value":7.5}]}]}}`,
	}

	for _, p := range payloads {
		_, err := Normalise(registered(t, report.Engagement), &report.Payload{Data: []byte(p)})

		var perr *report.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Expected ParseError for %s, got %v", p, err)
		}
	}
}

func TestNormaliseFlatJSON(t *testing.T) {
	spec := report.Spec{
		Kind:   report.Tickets,
		Format: report.FlatJSON,
		Columns: []report.Column{
			{Name: "id", Field: "id"},
			{Name: "subject", Field: "subject"},
			{Name: "status", Field: "status"},
			{Name: "spam", Field: "spam"},
			{Name: "tags", Field: "tags"},
			{Name: "responder_id", Field: "responder_id"},
			{Name: "custom_fields", Field: "custom_fields"},
		},
	}

	expected := [][]string{
		{"101", "Printer on fire", "2", "false", `["hardware","urgent"]`, "", `{"cf_floor":3,"cf_site":"HQ"}`},
		{"102", "", "4", "true", "[]", "7001", ""},
	}

	payload := report.Payload{
		Format: report.FlatJSON,
		Data: []byte(`[
		  {"status":2,"subject":"Printer on fire","id":101,"spam":false,"tags":["hardware","urgent"],"responder_id":null,
		   "custom_fields":{"cf_site":"HQ","cf_floor":3},"description":"ignored"},
		  {"id":102,"status":4,"spam":true,"tags":[],"responder_id":7001}
		]`),
	}

	table, err := Normalise(spec, &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if !reflect.DeepEqual(table.Header, []string{"id", "subject", "status", "spam", "tags", "responder_id", "custom_fields"}) {
		t.Errorf("Incorrect header %q", table.Header)
	}

	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %q\n   got:      %q", expected, table.Rows)
	}
}

func TestNormaliseFlatJSONWithLargeNumbers(t *testing.T) {
	spec := report.Spec{
		Kind:    report.Opportunities,
		Format:  report.FlatJSON,
		Columns: []report.Column{{Name: "id", Field: "id"}, {Name: "expectedValue", Field: "expectedValue"}},
	}

	payload := report.Payload{Data: []byte(`[{"id":9007199254740993,"expectedValue":12500.50}]`)}

	table, err := Normalise(spec, &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if expected := []string{"9007199254740993", "12500.50"}; !reflect.DeepEqual(table.Rows[0], expected) {
		t.Errorf("Incorrect row - expected:%q, got:%q", expected, table.Rows[0])
	}
}

func TestNormaliseFlatJSONWithNoData(t *testing.T) {
	for _, p := range []string{`[]`, `null`} {
		table, err := Normalise(registered(t, report.Tickets), &report.Payload{Data: []byte(p)})
		if err != nil {
			t.Fatalf("Unexpected error returned from Normalise for %s (%v)", p, err)
		}

		if len(table.Rows) != 0 {
			t.Errorf("Expected empty table for %s, got %v rows", p, len(table.Rows))
		}
	}
}

func TestNormaliseFlatJSONWithInvalidPayload(t *testing.T) {
	for _, p := range []string{`{"id":1}`, `[1,2,3]`, `[{"id":1}`, ``} {
		_, err := Normalise(registered(t, report.Tickets), &report.Payload{Data: []byte(p)})

		var perr *report.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Expected ParseError for %q, got %v", p, err)
		}
	}
}

func TestNormaliseWithMismatchedFormat(t *testing.T) {
	payload := report.Payload{Format: report.FlatJSON, Data: []byte(`[]`)}

	if _, err := Normalise(registered(t, report.Utilization), &payload); err == nil {
		t.Errorf("Expected error for mismatched payload format, got %v", err)
	}
}

func TestNormaliseIsIdempotent(t *testing.T) {
	payload := report.Payload{
		Data: []byte("Jane Doe\t2024-01-15\t160,0\t150,5\t120,0\t30,5\t75,3 %\t4,0\n"),
	}

	original := append([]byte(nil), payload.Data...)
	spec := registered(t, report.Utilization)

	first, err := Normalise(spec, &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	second, err := Normalise(spec, &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalise is not idempotent\n   first:  %v\n   second: %v", first, second)
	}

	if string(payload.Data) != string(original) {
		t.Errorf("Normalise modified the payload")
	}
}

func TestNormalisedCellFormats(t *testing.T) {
	day := regexp.MustCompile(`^\d{8}$`)
	month := regexp.MustCompile(`^\d{6}$`)

	payloads := map[report.Kind]string{
		report.Utilization: "Jane Doe\t2024-01-15\t160,0\t150,5\t120,0\t30,5\t75,3 %\t4,0\n" +
			"John Doe\t02.01.2024\t1 160,0\t0,5\t1,0\t3,5\t100 %\t0,0\n",
		report.Revenues: "2024-01\t2024-01-31\tAcme\tWeb\tDev\tSO-1\tConsulting\tJane\tFixed\t1 200,50\t10,00\t9,25\t9,25\tINV-1\t2024-02-05\n",
		report.TimeBalance: "Ops\tJane\t2024-01-01\t2024-03-31\t-2,5\t3,75\t0\t40\t480,0\t476,25\t12,0\n",
		report.Engagement:  `{"data":{"weeklyReports":[{"date":"2024-01-31","metricsValues":[{"id":"engagement","value":7.5}]}]}}`,
	}

	for k, p := range payloads {
		spec := registered(t, k)
		table, err := Normalise(spec, &report.Payload{Data: []byte(p)})
		if err != nil {
			t.Fatalf("%v: unexpected error returned from Normalise (%v)", k, err)
		}

		for r, row := range table.Rows {
			if len(row) != len(spec.Columns) {
				t.Fatalf("%v: row %d has %d cells, expected %d", k, r+1, len(row), len(spec.Columns))
			}

			for i, c := range spec.Columns {
				v := row[i]
				switch c.Type {
				case report.Decimal:
					if strings.Contains(v, ",") {
						t.Errorf("%v: decimal cell '%s' contains ','", k, v)
					}

				case report.Percent:
					if strings.ContainsAny(v, ",%") {
						t.Errorf("%v: percent cell '%s' contains ',' or '%%'", k, v)
					}

				case report.Day:
					if !day.MatchString(v) {
						t.Errorf("%v: date cell '%s' is not YYYYMMDD", k, v)
					}

				case report.Month:
					if !month.MatchString(v) {
						t.Errorf("%v: month cell '%s' is not YYYYMM", k, v)
					}
				}
			}
		}
	}
}

func TestNormaliseTSVWithQuotedCells(t *testing.T) {
	expected := [][]string{
		{`"Jane" Doe`, "20240115", "160.0", "150.5", "120.0", "30.5", "75.3", "4.0"},
		{`John "JD" Doe`, "20240115", "80.0", "0.0", "0.0", "0.0", "0", ""},
	}

	payload := report.Payload{
		Format: report.TabNoHeader,
		Data: []byte(`"Jane" Doe` + "\t2024-01-15\t160,0\t150,5\t120,0\t30,5\t75,3 %\t4,0\n" +
			`John "JD" Doe` + "\t2024-01-15\t80,0\t0,0\t0,0\t0,0\t0 %\t\n"),
	}

	table, err := Normalise(registered(t, report.Utilization), &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if !reflect.DeepEqual(table.Rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %q\n   got:      %q", expected, table.Rows)
	}
}

func TestNormaliseKeepsStringCellsVerbatim(t *testing.T) {
	payload := report.Payload{
		Format: report.TabNoHeader,
		Data:   []byte(" Jane Doe \t 2024-01-15 \t 160,0 \t150,5\t120,0\t30,5\t75,3 %\t4,0\n"),
	}

	table, err := Normalise(registered(t, report.Utilization), &payload)
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if row := table.Rows[0]; row[0] != " Jane Doe " || row[1] != "20240115" || row[2] != "160.0" {
		t.Errorf("Incorrect cells %q", row)
	}

	spec := report.Spec{
		Kind:    report.Tickets,
		Format:  report.FlatJSON,
		Columns: []report.Column{{Name: "subject", Field: "subject"}},
	}

	flat, err := Normalise(spec, &report.Payload{Format: report.FlatJSON, Data: []byte(`[{"subject":"  Printer on fire "}]`)})
	if err != nil {
		t.Fatalf("Unexpected error returned from Normalise (%v)", err)
	}

	if v := flat.Rows[0][0]; v != "  Printer on fire " {
		t.Errorf("Incorrect string cell %q", v)
	}
}

func TestTransformDateTimesWithoutSeconds(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"2024-01-15 00:00", "20240115"},
		{"2024-01-15T00:00", "20240115"},
		{"15.01.2024 00:00", "20240115"},
		{"15.01.2024 08:30:00", "20240115"},
		{"5.1.2024 08:30", "20240105"},
	}

	for _, test := range tests {
		v, err := transform(report.Day, test.value)
		if err != nil {
			t.Errorf("Unexpected error transforming '%v' (%v)", test.value, err)
		} else if v != test.expected {
			t.Errorf("Incorrect date for '%v' - expected:%v, got:%v", test.value, test.expected, v)
		}
	}

	if v, err := transform(report.Month, "2024-01-15 00:00"); err != nil || v != "202401" {
		t.Errorf("Incorrect month '%v' (%v)", v, err)
	}
}

func TestTransformRejectsExponents(t *testing.T) {
	for _, v := range []string{"1e3", "1,5E2", "2e-1 %"} {
		if _, err := transform(report.Decimal, v); err == nil {
			t.Errorf("Expected error for decimal '%v'", v)
		}

		if _, err := transform(report.Percent, v); err == nil {
			t.Errorf("Expected error for percent '%v'", v)
		}
	}
}
