package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reports2sheets/reports2sheets/report"
)

var ReportsCmd = Reports{
	columns: false,
}

type Reports struct {
	columns bool
}

func (c *Reports) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("reports", flag.ExitOnError)

	flagset.BoolVar(&c.columns, "columns", c.columns, "Lists the columns of each report")

	return flagset
}

func (c *Reports) Execute(args ...any) error {
	list(os.Stdout, report.All(), c.columns)

	return nil
}

func list(w io.Writer, specs []report.Spec, columns bool) {
	for i, spec := range specs {
		fmt.Fprintf(w, "%d  %-13s %-10s %-13s %s\n", i+1, spec.ID(), spec.Source, spec.Format, spec.Path)

		if columns {
			for _, col := range spec.Columns {
				fmt.Fprintf(w, "       %-24s %s\n", col.Name, col.Type)
			}
		}
	}
}

func (c *Reports) Name() string {
	return "reports"
}

func (c *Reports) Description() string {
	return "Lists the available reports in the default run order"
}

func (c *Reports) Usage() string {
	return "[--columns]"
}

func (c *Reports) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s reports [--columns]\n", APP)
	fmt.Println()
	fmt.Println("  Lists the available reports in the default run order, with the source API, payload")
	fmt.Println("  format and request path of each report.")
	fmt.Println()

	helpOptions(c.FlagSet())

	fmt.Println()
	fmt.Println("  Valid report IDs:")
	ids := []string{}
	for _, spec := range report.All() {
		ids = append(ids, spec.ID())
	}
	fmt.Printf("    %s\n", strings.Join(ids, ", "))
	fmt.Println()
}
