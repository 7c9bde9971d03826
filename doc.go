/*
Package reports2sheets copies business reports from PlanMill, OfficeVibe and Freshdesk into a Google Sheets spreadsheet.

reports2sheets can be used from the command line but is really intended to be run from a cron job to refresh a
reporting spreadsheet. Each report is fetched, normalised to CSV and pasted into the worksheet at the same position
in the spreadsheet as the report in the run list.

reports2sheets supports the following commands:

  - run, to fetch the reports and paste them into the Google Sheets spreadsheet
  - export, to fetch the reports and write them to an Excel workbook
  - reports, to list the available reports
  - authorise, to authorise application access to the Google Sheets spreadsheet
  - version, to display the current version
*/
package reports2sheets
