package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/reports2sheets/reports2sheets/pipeline"
	"github.com/reports2sheets/reports2sheets/publish"
	"github.com/reports2sheets/reports2sheets/report"
	"github.com/reports2sheets/reports2sheets/source"
)

var RunCmd = Run{
	command: command{
		workdir: DEFAULT_WORKDIR,
	},
	clear:  false,
	dryrun: false,
}

type Run struct {
	command
	clear  bool
	dryrun bool
}

func (c *Run) FlagSet() *flag.FlagSet {
	flagset := c.flagset("run")

	flagset.BoolVar(&c.clear, "clear", c.clear, "Clears each worksheet before pasting the new report")
	flagset.BoolVar(&c.dryrun, "dry-run", c.dryrun, "Fetches and normalises the reports but does not update the spreadsheet")

	return flagset
}

func (c *Run) Execute(args ...any) error {
	options := args[0].(*Options)

	conf, specs, err := c.load(options)
	if err != nil {
		return err
	}

	spreadsheet, err := conf.SpreadsheetID()
	if err != nil {
		return err
	}

	clear := c.clear || conf.Run.Clear

	if c.debug {
		debugf("Spreadsheet - ID:%s  clear:%v  dry-run:%v", spreadsheet, clear, c.dryrun)
	}

	ctx := context.Background()
	google, err := newSheetsService(ctx, credentials(conf), c.tokens(conf))
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	fetcher := source.NewFetcher(client, endpoints(conf, client), report.NewParams(time.Now(), conf.OfficeVibe.Groups), c.debug)
	publisher := publish.NewSheetPublisher(publish.NewGoogleSheets(google), spreadsheet, clear, c.dryrun, c.debug)

	if err := pipeline.New(fetcher, publisher, c.debug).Run(ctx, specs); err != nil {
		return err
	}

	if c.dryrun {
		infof("Dry run - spreadsheet %v not updated", spreadsheet)
	} else {
		infof("Updated %v worksheets in spreadsheet %v", len(specs), spreadsheet)
	}

	return nil
}

func (c *Run) Name() string {
	return "run"
}

func (c *Run) Description() string {
	return "Fetches the configured reports and pastes them into the Google Sheets spreadsheet"
}

func (c *Run) Usage() string {
	return "[--reports <list>] [--clear] [--dry-run]"
}

func (c *Run) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] run [options]\n", APP)
	fmt.Println()
	fmt.Println("  Fetches each report in the run list from its source API, normalises it to CSV and")
	fmt.Println("  pastes it into the worksheet at the same position in the spreadsheet. The spreadsheet")
	fmt.Println("  is only updated if every report is fetched and normalised successfully.")
	fmt.Println()

	helpOptions(c.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s run\n", APP)
	fmt.Printf("    %s --config reports2sheets.yaml run --reports projects,utilization --clear\n", APP)
	fmt.Println()
}
