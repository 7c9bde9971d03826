package publish

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// WorkbookPublisher writes the reports to a local Excel workbook. An existing workbook
// is updated positionally, in the same way as a Google Sheets spreadsheet. Otherwise a
// new workbook is created with one worksheet per report.
type WorkbookPublisher struct {
	path  string
	debug bool
}

func NewWorkbookPublisher(path string, debug bool) *WorkbookPublisher {
	return &WorkbookPublisher{
		path:  path,
		debug: debug,
	}
}

func (p *WorkbookPublisher) Publish(ctx context.Context, reports []Report) error {
	if len(reports) == 0 {
		infof("No reports to publish")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	f, names, err := p.open(reports)
	if err != nil {
		return err
	}

	defer f.Close()

	for i, r := range reports {
		sheet := names[i]

		records, err := csv.NewReader(strings.NewReader(r.CSV)).ReadAll()
		if err != nil {
			return fmt.Errorf("%s: invalid CSV (%w)", r.ID, err)
		}

		if p.debug {
			debugf("%-13s -> worksheet %d '%s' (%d rows)", r.ID, i, sheet, len(records))
		}

		for row, record := range records {
			cell, err := excelize.CoordinatesToCellName(1, row+1)
			if err != nil {
				return err
			}

			values := make([]any, len(record))
			for j, v := range record {
				values[j] = v
				if row > 0 {
					values[j] = value(v)
				}
			}

			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("%s: error writing row %d (%w)", r.ID, row+1, err)
			}
		}
	}

	if err := f.SaveAs(p.path); err != nil {
		return fmt.Errorf("Error saving workbook %s (%w)", p.path, err)
	}

	infof("Published %d reports to workbook %s", len(reports), p.path)

	return nil
}

func (p *WorkbookPublisher) open(reports []Report) (*excelize.File, []string, error) {
	if _, err := os.Stat(p.path); errors.Is(err, os.ErrNotExist) {
		f := excelize.NewFile()
		names := []string{}

		for i, r := range reports {
			if i == 0 {
				if err := f.SetSheetName(f.GetSheetName(0), r.ID); err != nil {
					f.Close()
					return nil, nil, err
				}
			} else if _, err := f.NewSheet(r.ID); err != nil {
				f.Close()
				return nil, nil, err
			}

			names = append(names, r.ID)
		}

		return f, names, nil
	} else if err != nil {
		return nil, nil, err
	}

	f, err := excelize.OpenFile(p.path)
	if err != nil {
		return nil, nil, err
	}

	names := f.GetSheetList()
	if len(names) < len(reports) {
		f.Close()
		return nil, nil, &TargetResolutionError{
			Spreadsheet: p.path,
			Sheets:      len(names),
			Reports:     len(reports),
		}
	}

	return f, names[:len(reports)], nil
}

// value converts a plain decimal cell to a number, as a Google Sheets paste does.
// Everything else is written as text.
func value(v string) any {
	if v == "" || strings.ContainsAny(v, "eE") {
		return v
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return v
	}

	f, _ := d.Float64()

	return f
}
