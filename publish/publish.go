// Package publish writes serialised reports to the worksheets of a spreadsheet.
//
// Reports are bound to worksheets by position: the n-th report is written to the n-th
// worksheet. Each report overwrites its worksheet from the top left cell. Cells outside
// the extent of the new data are not cleared unless the publisher is configured to
// clear the worksheet first.
package publish

import (
	"fmt"
	"log"
)

// Report is one serialised report, in run order.
type Report struct {
	ID  string
	CSV string
}

// TargetResolutionError indicates that the spreadsheet has fewer worksheets than there
// are reports to publish.
type TargetResolutionError struct {
	Spreadsheet string
	Sheets      int
	Reports     int
}

func (e *TargetResolutionError) Error() string {
	return fmt.Sprintf("spreadsheet %s has %d worksheets, %d reports require a worksheet each", e.Spreadsheet, e.Sheets, e.Reports)
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}
