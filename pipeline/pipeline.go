// Package pipeline runs the fetch, normalise and serialise steps for an ordered list
// of reports and publishes the results in a single step at the end of the run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/reports2sheets/reports2sheets/normalise"
	"github.com/reports2sheets/reports2sheets/publish"
	"github.com/reports2sheets/reports2sheets/report"
)

type Fetcher interface {
	Fetch(ctx context.Context, spec report.Spec) (*report.Payload, error)
}

type Publisher interface {
	Publish(ctx context.Context, reports []publish.Report) error
}

// ReportError identifies the report for which a run failed.
type ReportError struct {
	Report string
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report '%s' failed (%v)", e.Report, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

type Pipeline struct {
	fetcher   Fetcher
	publisher Publisher
	debug     bool
}

func New(fetcher Fetcher, publisher Publisher, debug bool) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		publisher: publisher,
		debug:     debug,
	}
}

// Run processes the reports strictly in order, one at a time. Nothing is published
// unless every report was fetched, normalised and serialised successfully.
func (p *Pipeline) Run(ctx context.Context, specs []report.Spec) error {
	id := uuid.New().String()
	start := time.Now()

	infof(id, "starting run for %d reports", len(specs))

	reports := make([]publish.Report, 0, len(specs))
	for _, spec := range specs {
		csv, err := p.process(ctx, id, spec)
		if err != nil {
			warnf(id, "%v", err)
			return &ReportError{Report: spec.ID(), Err: err}
		}

		reports = append(reports, publish.Report{
			ID:  spec.ID(),
			CSV: csv,
		})
	}

	if err := p.publisher.Publish(ctx, reports); err != nil {
		warnf(id, "publish failed (%v)", err)
		return err
	}

	infof(id, "completed run in %v", time.Since(start).Round(time.Millisecond))

	return nil
}

func (p *Pipeline) process(ctx context.Context, id string, spec report.Spec) (string, error) {
	payload, err := p.fetcher.Fetch(ctx, spec)
	if err != nil {
		return "", err
	}

	table, err := normalise.Normalise(spec, payload)
	if err != nil {
		return "", err
	}

	csv, err := report.Serialise(table)
	if err != nil {
		return "", err
	}

	if p.debug {
		debugf(id, "%-13s %d rows, %d bytes", spec.ID(), len(table.Rows), len(csv))
	} else {
		infof(id, "%-13s %d rows", spec.ID(), len(table.Rows))
	}

	return csv, nil
}

func debugf(id string, format string, args ...any) {
	log.Printf("%-5s [%s] %s", "DEBUG", id, fmt.Sprintf(format, args...))
}

func infof(id string, format string, args ...any) {
	log.Printf("%-5s [%s] %s", "INFO", id, fmt.Sprintf(format, args...))
}

func warnf(id string, format string, args ...any) {
	log.Printf("%-5s [%s] %s", "ERROR", id, fmt.Sprintf(format, args...))
}
