package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/PivtoranisV/event-manager/internal/domain"
	"github.com/PivtoranisV/event-manager/internal/observability"
)

// Source yields roster records one at a time and returns io.EOF when done.
type Source interface {
	Next() (domain.AttendeeRecord, error)
}

// Transformer converts a roster record into a processed attendee.
type Transformer interface {
	Transform(ctx context.Context, rec domain.AttendeeRecord) (domain.Attendee, error)
}

// Renderer turns an attendee into letter content.
type Renderer interface {
	RenderAttendee(a domain.Attendee) (string, error)
}

// Sink persists a rendered letter under the attendee id.
type Sink interface {
	Save(id, content string) (string, error)
}

// Options controls per-run behavior.
type Options struct {
	// AbortOnParseFailure ends the run at the first unparsable registration time
	// instead of skipping the row.
	AbortOnParseFailure bool
	// TrackWeekday adds the peak weekday to the final statistics.
	TrackWeekday bool
}

// RunSummary reports what a completed run did.
type RunSummary struct {
	RowsRead       int
	LettersWritten int
	RowsSkipped    int
	Fallbacks      int
	Files          []string
	Peaks          domain.PeakStatistics
	HasPeaks       bool
	Duration       time.Duration
}

// ParseFailureError is returned by Run when the abort policy stops the run.
type ParseFailureError struct {
	Record domain.AttendeeRecord
	Err    error
}

func (e *ParseFailureError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Record.Line, e.Record.FirstName, e.Err)
}

func (e *ParseFailureError) Unwrap() error { return e.Err }

// Pipeline drives a single pass over the roster.
type Pipeline struct {
	source      Source
	transformer Transformer
	renderer    Renderer
	sink        Sink
	logger      *slog.Logger
	metrics     *observability.Metrics
	opts        Options
	ready       atomic.Bool

	rowsRead       atomic.Int64
	lettersWritten atomic.Int64
	rowsSkipped    atomic.Int64
	done           atomic.Bool
}

// Progress is a point-in-time view of a run, served on the status endpoint.
type Progress struct {
	RowsRead       int64 `json:"rows_read"`
	LettersWritten int64 `json:"letters_written"`
	RowsSkipped    int64 `json:"rows_skipped"`
	Done           bool  `json:"done"`
}

// New creates a Pipeline with the given stages and observability.
func New(s Source, t Transformer, r Renderer, k Sink, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		source:      s,
		transformer: t,
		renderer:    r,
		sink:        k,
		logger:      logger,
		metrics:     metrics,
		opts:        opts,
	}
}

// CheckReadiness returns nil once the run has processed at least one row,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any rows yet")
	}
	return nil
}

// Status returns the current Progress.
func (p *Pipeline) Status() any {
	return Progress{
		RowsRead:       p.rowsRead.Load(),
		LettersWritten: p.lettersWritten.Load(),
		RowsSkipped:    p.rowsSkipped.Load(),
		Done:           p.done.Load(),
	}
}

// Run reads every roster row, writes one letter per row with a valid
// registration time, and logs the peak registration statistics. It stops
// between rows when ctx is cancelled and returns the context error.
func (p *Pipeline) Run(ctx context.Context) (RunSummary, error) {
	start := clock.Now()
	p.logger.Info("pipeline started",
		"abort_on_parse_failure", p.opts.AbortOnParseFailure,
		"track_weekday", p.opts.TrackWeekday,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)
	defer p.done.Store(true)

	var summary RunSummary
	agg := domain.NewAggregator(p.opts.TrackWeekday)

	for {
		if err := ctx.Err(); err != nil {
			p.logger.Info("pipeline stopping", "reason", err, "rows_read", summary.RowsRead)
			summary.Duration = clock.Since(start)
			return summary, err
		}

		rec, err := p.source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.Duration = clock.Since(start)
			return summary, err
		}
		summary.RowsRead++
		p.rowsRead.Add(1)
		p.metrics.RowsRead.Inc()

		if err := p.processRow(ctx, rec, agg, &summary); err != nil {
			summary.Duration = clock.Since(start)
			return summary, err
		}
		p.ready.Store(true)
	}

	summary.Peaks, summary.HasPeaks = agg.Peaks()
	if summary.HasPeaks {
		p.logger.Info(summary.Peaks.String(),
			"samples", summary.Peaks.Samples,
			"hour_count", summary.Peaks.HourCount,
		)
	} else {
		p.logger.Info("No valid registrations; peak statistics unavailable.")
	}

	summary.Duration = clock.Since(start)
	p.metrics.RunDuration.Observe(summary.Duration.Seconds())
	p.logger.Debug("run complete",
		"rows_read", summary.RowsRead,
		"letters_written", summary.LettersWritten,
		"rows_skipped", summary.RowsSkipped,
		"duration", summary.Duration,
	)
	return summary, nil
}

// processRow handles one record. It returns an error only for failures that
// end the run.
func (p *Pipeline) processRow(ctx context.Context, rec domain.AttendeeRecord, agg *domain.Aggregator, summary *RunSummary) error {
	a, err := p.transformer.Transform(ctx, rec)
	if err != nil {
		if p.opts.AbortOnParseFailure {
			return &ParseFailureError{Record: rec, Err: err}
		}
		p.logger.Warn(fmt.Sprintf("Error parsing registration time for %s: %v", rec.FirstName, err),
			"id", rec.ID,
			"line", rec.Line,
		)
		p.metrics.RowsSkipped.WithLabelValues("invalid_time").Inc()
		summary.RowsSkipped++
		p.rowsSkipped.Add(1)
		return nil
	}

	if !a.Legislators.Found() {
		p.metrics.LookupFallbacks.WithLabelValues(string(a.Legislators.Fallback.Reason)).Inc()
		summary.Fallbacks++
	}

	agg.Add(a.Registration)

	content, err := p.renderer.RenderAttendee(a)
	if err != nil {
		return fmt.Errorf("attendee %s: %w", rec.ID, err)
	}
	path, err := p.sink.Save(rec.ID, content)
	if err != nil {
		return err
	}
	summary.LettersWritten++
	p.lettersWritten.Add(1)
	summary.Files = append(summary.Files, path)
	p.metrics.LettersWritten.Inc()

	p.logger.Info(domain.SummaryLine(a), "id", rec.ID, "file", path)
	return nil
}
