package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/reports2sheets/reports2sheets/pipeline"
	"github.com/reports2sheets/reports2sheets/publish"
	"github.com/reports2sheets/reports2sheets/report"
	"github.com/reports2sheets/reports2sheets/source"
)

var ExportCmd = Export{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},
	workbook: "",
}

type Export struct {
	command
	workbook string
}

func (c *Export) FlagSet() *flag.FlagSet {
	flagset := c.flagset("export")

	flagset.StringVar(&c.workbook, "workbook", c.workbook, "Excel workbook file (.xlsx). Defaults to the configured workbook")

	return flagset
}

func (c *Export) Execute(args ...any) error {
	options := args[0].(*Options)

	conf, specs, err := c.load(options)
	if err != nil {
		return err
	}

	workbook := c.workbook
	if strings.TrimSpace(workbook) == "" {
		workbook = conf.Run.Workbook
	}

	if strings.TrimSpace(workbook) == "" {
		return fmt.Errorf("--workbook is a required option")
	}

	if c.debug {
		debugf("Workbook %s", workbook)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	fetcher := source.NewFetcher(client, endpoints(conf, client), report.NewParams(time.Now(), conf.OfficeVibe.Groups), c.debug)
	publisher := publish.NewWorkbookPublisher(workbook, c.debug)

	if err := pipeline.New(fetcher, publisher, c.debug).Run(context.Background(), specs); err != nil {
		return err
	}

	infof("Exported %v reports to %v", len(specs), workbook)

	return nil
}

func (c *Export) Name() string {
	return "export"
}

func (c *Export) Description() string {
	return "Fetches the configured reports and writes them to an Excel workbook"
}

func (c *Export) Usage() string {
	return "[--reports <list>] --workbook <file>"
}

func (c *Export) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] export [options] --workbook <file>\n", APP)
	fmt.Println()
	fmt.Println("  Fetches each report in the run list and writes it to the worksheet at the same")
	fmt.Println("  position in an Excel workbook. A new workbook is created with one worksheet per")
	fmt.Println("  report if the file does not exist.")
	fmt.Println()

	helpOptions(c.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s export --workbook reports.xlsx\n", APP)
	fmt.Printf("    %s export --reports revenues,timebalance --workbook finance.xlsx\n", APP)
	fmt.Println()
}
