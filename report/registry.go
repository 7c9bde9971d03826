package report

import (
	"fmt"
)

const planmillRevenues = "reports/Revenues%20summary%20by%20month" +
	"?param1=-1&param2=-1&param3={{.Year}}" +
	"&param4={{.Year}}-01-01T00%3A00%3A00.000%2B0200" +
	"&param5={{.Year}}-12-31T00%3A00%3A00.000%2B0200" +
	"&param6=-1&param7=-1&param8=-1&param9=-1&param10=-1&param11=-1&param12=-1&param13=-1" +
	"&rowcount=3000"

const planmillUtilization = "reports/Actual%20billable%20utilization%20rate%20analysis%20by%20person" +
	"?param1=23&param3=-1&exportType=detailed&rowcount=3000"

const planmillTimeBalance = "reports/Time%20balance%20by%20person" +
	"?param3={{.Today}}T00%3A00%3A00.000%2B0200&exportType=detailed&rowcount=3000"

const officevibeEngagement = "engagement" +
	"?{{range $i, $d := .MonthEnds}}{{if $i}}&{{end}}dates={{$d}}{{end}}" +
	"{{range .Groups}}&groupNames={{urlquery .}}{{end}}"

var registry = []Spec{
	{
		Kind:   Opportunities,
		Source: PlanMill,
		Format: FlatJSON,
		Path:   "opportunities?rowcount=3000",
		Columns: fields(
			"id", "name", "account", "accountName", "salesPerson", "status", "probability",
			"expectedValue", "currency", "expectedOrderDate", "created", "modified"),
	},
	{
		Kind:   Projects,
		Source: PlanMill,
		Format: FlatJSON,
		Path:   "projects?rowcount=3000",
		Columns: fields(
			"id", "name", "number", "customer", "customerName", "projectManager", "status",
			"type", "start", "finish", "created", "modified"),
	},
	{
		Kind:   SalesOrders,
		Source: PlanMill,
		Format: FlatJSON,
		Path:   "salesorders?rowcount=3000",
		Columns: fields(
			"id", "number", "name", "account", "accountName", "project", "status",
			"totalAmount", "currency", "orderDate", "created", "modified"),
	},
	{
		Kind:   Revenues,
		Source: PlanMill,
		Format: TabNoHeader,
		Path:   planmillRevenues,
		Columns: positional(
			column("Year/Month", Month),
			column("Date", Day),
			column("Customer", String),
			column("Project", String),
			column("Revenue item", String),
			column("Sales order / item", String),
			column("Product", String),
			column("Project manager", String),
			column("Billing rule", String),
			column("à price", Decimal),
			column("Forecast", Decimal),
			column("Actual", Decimal),
			column("Invoiced", Decimal),
			column("Invoice number", String),
			column("Invoice date", Day),
		),
	},
	{
		Kind:   Utilization,
		Source: PlanMill,
		Format: TabNoHeader,
		Path:   planmillUtilization,
		Columns: positional(
			column("Person", String),
			column("Period", Day),
			column("Actual capacity", Decimal),
			column("Reported", Decimal),
			column("Billable", Decimal),
			column("Non-billable", Decimal),
			column("Actual utilization", Percent),
			column("Absences", Decimal),
		),
	},
	{
		Kind:   TimeBalance,
		Source: PlanMill,
		Format: TabNoHeader,
		Path:   planmillTimeBalance,
		Columns: positional(
			column("Team", String),
			column("Person", String),
			column("Start", Day),
			column("Finish", Day),
			column("Last month", Decimal),
			column("Balance", Decimal),
			column("Balance adjust", Decimal),
			column("Balance maximum", Decimal),
			column("Capacity", Decimal),
			column("Normal time", Decimal),
			column("Overtime & on-call", Decimal),
		),
	},
	{
		Kind:   Engagement,
		Source: OfficeVibe,
		Format: NestedJSON,
		Path:   officevibeEngagement,
		Nesting: Nesting{
			Records: "data.weeklyReports",
			Entries: "metricsValues",
		},
		Columns: []Column{
			{Name: "id", Type: String, Field: "id"},
			{Name: "value", Type: Decimal, Field: "value"},
			{Name: "date", Type: Day, Field: "date", Outer: true},
		},
	},
	{
		Kind:   Tickets,
		Source: Freshdesk,
		Format: FlatJSON,
		Path:   "tickets",
		Columns: fields(
			"id", "subject", "status", "priority", "source", "type", "requester_id",
			"responder_id", "group_id", "company_id", "created_at", "updated_at", "due_by",
			"fr_due_by", "tags"),
	},
}

// DefaultRunOrder is the order of the worksheets in the reporting spreadsheet.
var DefaultRunOrder = []Kind{
	Opportunities,
	Projects,
	SalesOrders,
	Revenues,
	Utilization,
	TimeBalance,
	Engagement,
	Tickets,
}

// Lookup returns a copy of the registered Spec for a report.
func Lookup(k Kind) (Spec, error) {
	for _, spec := range registry {
		if spec.Kind == k {
			spec.Columns = append([]Column(nil), spec.Columns...)
			return spec, nil
		}
	}

	return Spec{}, fmt.Errorf("no report registered for '%v'", k)
}

// Specs resolves an ordered list of report identifiers to the corresponding Specs,
// preserving the order.
func Specs(ids []string) ([]Spec, error) {
	specs := []Spec{}
	seen := map[Kind]bool{}

	for _, id := range ids {
		k, err := ParseKind(id)
		if err != nil {
			return nil, err
		}

		if seen[k] {
			return nil, fmt.Errorf("duplicate report '%v' in run list", k)
		}

		spec, err := Lookup(k)
		if err != nil {
			return nil, err
		}

		seen[k] = true
		specs = append(specs, spec)
	}

	return specs, nil
}

// All returns the registered Specs in the default run order.
func All() []Spec {
	specs := []Spec{}
	for _, k := range DefaultRunOrder {
		if spec, err := Lookup(k); err == nil {
			specs = append(specs, spec)
		}
	}

	return specs
}

func column(name string, t Type) Column {
	return Column{Name: name, Type: t}
}

func positional(columns ...Column) []Column {
	for i := range columns {
		columns[i].Index = i
	}

	return columns
}

func fields(names ...string) []Column {
	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name, Type: String, Field: name}
	}

	return columns
}
