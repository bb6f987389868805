// Package batch runs many questionnaires through the recommendation pipeline with
// a bounded worker pool and writes one JSON line per questionnaire.
package batch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shpitdev/air-assist/internal/recommend"
)

// Status values for Row.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RowError is the serialized form of a *recommend.Error.
type RowError struct {
	Kind    recommend.Kind `json:"kind"`
	Message string         `json:"message"`
	Detail  string         `json:"detail,omitempty"`
}

// Row is one output line. Line is the 1-based position of the questionnaire in the input.
type Row struct {
	Line       int               `json:"line"`
	Answers    recommend.Answers `json:"answers"`
	Status     string            `json:"status"`
	DurationMS int64             `json:"durationMs"`
	Set        *recommend.Set    `json:"recommendations,omitempty"`
	Error      *RowError         `json:"error,omitempty"`
}

// Runner is the part of recommend.Pipeline the batch needs.
type Runner interface {
	Run(ctx context.Context, answers recommend.Answers) (recommend.Set, error)
}

type outcome struct {
	set      recommend.Set
	duration time.Duration
}

// Run processes all questionnaires and returns rows in input order. onRow, if set,
// sees each row as soon as it completes.
//
// In partial-output mode pipeline failures are recorded on their rows. In fail-fast
// mode the first failure aborts the run and is returned.
func Run(ctx context.Context, runner Runner, items []recommend.Answers, opts Options, onRow func(Row) error) ([]Row, error) {
	log := zap.L().With(zap.Int("items", len(items)), zap.Int("workers", opts.withDefaults().Workers))
	start := time.Now()

	process := func(ctx context.Context, a recommend.Answers) (outcome, error) {
		t := time.Now()
		set, err := runner.Run(ctx, a)
		return outcome{set: set, duration: time.Since(t)}, err
	}

	var cb func(Result[recommend.Answers, outcome]) error
	if onRow != nil {
		cb = func(r Result[recommend.Answers, outcome]) error {
			return onRow(toRow(r))
		}
	}

	results, err := ProcessAllWithCallback(ctx, items, process, cb, opts)
	if err != nil {
		log.Warn("batch: aborted", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return nil, err
	}

	rows := make([]Row, len(results))
	failed := 0
	for i, r := range results {
		rows[i] = toRow(r)
		if r.Err != nil {
			failed++
		}
	}
	log.Info("batch: done",
		zap.Duration("duration", time.Since(start)),
		zap.Int("succeeded", len(rows)-failed),
		zap.Int("failed", failed),
	)
	return rows, nil
}

func toRow(r Result[recommend.Answers, outcome]) Row {
	row := Row{
		Line:       r.Index + 1,
		Answers:    r.Input,
		DurationMS: r.Output.duration.Milliseconds(),
	}
	if r.Err == nil {
		set := r.Output.set
		row.Status = StatusOK
		row.Set = &set
		return row
	}

	row.Status = StatusError
	var perr *recommend.Error
	if errors.As(r.Err, &perr) {
		row.Error = &RowError{Kind: perr.Kind, Message: perr.Message, Detail: perr.Detail}
	} else {
		// Cancellation or pacing failures never reached the pipeline.
		row.Error = &RowError{Kind: recommend.KindTransport, Message: recommend.MessageTransport, Detail: r.Err.Error()}
	}
	return row
}
