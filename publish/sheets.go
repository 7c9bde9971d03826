package publish

import (
	"context"
	"fmt"
	"sort"

	"google.golang.org/api/sheets/v4"
)

// Spreadsheets is the subset of the Google Sheets API used to publish reports.
type Spreadsheets interface {
	Sheets(ctx context.Context, spreadsheet string) ([]*sheets.SheetProperties, error)
	BatchUpdate(ctx context.Context, spreadsheet string, rq *sheets.BatchUpdateSpreadsheetRequest) error
}

type google struct {
	service *sheets.Service
}

// NewGoogleSheets wraps a Google Sheets API client.
func NewGoogleSheets(service *sheets.Service) Spreadsheets {
	return &google{
		service: service,
	}
}

func (g *google) Sheets(ctx context.Context, spreadsheet string) ([]*sheets.SheetProperties, error) {
	response, err := g.service.Spreadsheets.Get(spreadsheet).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch spreadsheet (%w)", err)
	}

	properties := []*sheets.SheetProperties{}
	for _, sheet := range response.Sheets {
		if sheet != nil && sheet.Properties != nil {
			properties = append(properties, sheet.Properties)
		}
	}

	return properties, nil
}

func (g *google) BatchUpdate(ctx context.Context, spreadsheet string, rq *sheets.BatchUpdateSpreadsheetRequest) error {
	if _, err := g.service.Spreadsheets.BatchUpdate(spreadsheet, rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("Error updating spreadsheet (%w)", err)
	}

	return nil
}

// SheetPublisher pastes each report into the worksheet at the same position and
// submits all the reports for a run as a single batch update.
type SheetPublisher struct {
	service     Spreadsheets
	spreadsheet string
	clear       bool
	dryrun      bool
	debug       bool
}

func NewSheetPublisher(service Spreadsheets, spreadsheet string, clear, dryrun, debug bool) *SheetPublisher {
	return &SheetPublisher{
		service:     service,
		spreadsheet: spreadsheet,
		clear:       clear,
		dryrun:      dryrun,
		debug:       debug,
	}
}

func (p *SheetPublisher) Publish(ctx context.Context, reports []Report) error {
	if len(reports) == 0 {
		infof("No reports to publish")
		return nil
	}

	properties, err := p.service.Sheets(ctx, p.spreadsheet)
	if err != nil {
		return err
	}

	sort.SliceStable(properties, func(i, j int) bool { return properties[i].Index < properties[j].Index })

	if len(properties) < len(reports) {
		return &TargetResolutionError{
			Spreadsheet: p.spreadsheet,
			Sheets:      len(properties),
			Reports:     len(reports),
		}
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{},
	}

	for i, r := range reports {
		sheet := properties[i]

		if p.debug {
			debugf("%-13s -> worksheet %d '%s' (sheet ID %d, %d bytes)", r.ID, i, sheet.Title, sheet.SheetId, len(r.CSV))
		}

		if p.clear {
			rq.Requests = append(rq.Requests, clearSheet(sheet.SheetId))
		}

		rq.Requests = append(rq.Requests, paste(sheet.SheetId, r.CSV))
	}

	if p.dryrun {
		infof("Dry run: skipped batch update of %d requests to spreadsheet %s", len(rq.Requests), p.spreadsheet)
		return nil
	}

	if err := p.service.BatchUpdate(ctx, p.spreadsheet, &rq); err != nil {
		return err
	}

	infof("Published %d reports to spreadsheet %s", len(reports), p.spreadsheet)

	return nil
}

// paste builds an overwrite-paste at A1. The zero valued fields are force sent
// because the first worksheet of a spreadsheet usually has sheet ID 0.
func paste(sheetID int64, csv string) *sheets.Request {
	return &sheets.Request{
		PasteData: &sheets.PasteDataRequest{
			Coordinate: &sheets.GridCoordinate{
				SheetId:         sheetID,
				RowIndex:        0,
				ColumnIndex:     0,
				ForceSendFields: []string{"SheetId", "RowIndex", "ColumnIndex"},
			},
			Data:      csv,
			Type:      "PASTE_NORMAL",
			Delimiter: ",",
		},
	}
}

func clearSheet(sheetID int64) *sheets.Request {
	return &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Range: &sheets.GridRange{
				SheetId:         sheetID,
				ForceSendFields: []string{"SheetId"},
			},
			Fields: "userEnteredValue",
		},
	}
}
