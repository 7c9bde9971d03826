package report

import (
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
)

func TestSerialise(t *testing.T) {
	expected := `Person,Period,Actual capacity,Actual utilization
Jane Doe,20240115,160.0,75.3
"Doe, John",20240115,150.5,
`

	table := Table{
		Header: []string{"Person", "Period", "Actual capacity", "Actual utilization"},
		Rows: [][]string{
			{"Jane Doe", "20240115", "160.0", "75.3"},
			{"Doe, John", "20240115", "150.5", ""},
		},
	}

	s, err := Serialise(&table)
	if err != nil {
		t.Fatalf("Unexpected error returned from Serialise (%v)", err)
	}

	if s != expected {
		t.Errorf("Incorrect CSV\n   expected: %s\n   got:      %s\n", expected, s)
	}
}

func TestSerialiseWithEmbeddedNewlinesAndQuotes(t *testing.T) {
	expected := "id,subject\n" +
		"1,\"Printer \"\"jammed\"\"\"\n" +
		"2,\"line one\nline two\"\n"

	table := Table{
		Header: []string{"id", "subject"},
		Rows: [][]string{
			{"1", `Printer "jammed"`},
			{"2", "line one\nline two"},
		},
	}

	s, err := Serialise(&table)
	if err != nil {
		t.Fatalf("Unexpected error returned from Serialise (%v)", err)
	}

	if s != expected {
		t.Errorf("Incorrect CSV\n   expected: %q\n   got:      %q\n", expected, s)
	}
}

func TestSerialiseWithNoRows(t *testing.T) {
	expected := "id,value,date\n"

	s, err := Serialise(&Table{Header: []string{"id", "value", "date"}})
	if err != nil {
		t.Fatalf("Unexpected error returned from Serialise (%v)", err)
	}

	if s != expected {
		t.Errorf("Incorrect CSV\n   expected: %q\n   got:      %q\n", expected, s)
	}
}

func TestSerialiseWithRaggedRow(t *testing.T) {
	table := Table{
		Header: []string{"id", "value"},
		Rows:   [][]string{{"1"}},
	}

	if _, err := Serialise(&table); err == nil {
		t.Errorf("Expected error serialising ragged table, got %v", err)
	}
}

func TestSerialiseIsStable(t *testing.T) {
	table := Table{
		Header: []string{"Team", "Person", "Balance"},
		Rows: [][]string{
			{"Ops", "Jane Doe", "-3.5"},
			{"Dev", "John Doe", "12.25"},
		},
	}

	first, err := Serialise(&table)
	if err != nil {
		t.Fatalf("Unexpected error returned from Serialise (%v)", err)
	}

	for i := 0; i < 5; i++ {
		if next, _ := Serialise(&table); next != first {
			t.Fatalf("Serialise is not stable\n   first: %q\n   next:  %q\n", first, next)
		}
	}
}

func TestSerialiseRoundTrip(t *testing.T) {
	tables := []Table{
		{
			Header: []string{"Year/Month", "Customer", "à price"},
			Rows: [][]string{
				{"202401", "Åbo Oy, Finland", "1200.50"},
				{"202402", "Multi\nline", ""},
				{"202403", `"quoted"`, "0.5"},
			},
		},
		{
			Header: []string{"id", "subject"},
			Rows:   [][]string{},
		},
	}

	for _, table := range tables {
		s, err := Serialise(&table)
		if err != nil {
			t.Fatalf("Unexpected error returned from Serialise (%v)", err)
		}

		records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
		if err != nil {
			t.Fatalf("Error parsing serialised CSV (%v)", err)
		}

		expected := append([][]string{table.Header}, table.Rows...)
		if !reflect.DeepEqual(records, expected) {
			t.Errorf("Round trip mismatch\n   expected: %q\n   got:      %q\n", expected, records)
		}
	}
}
