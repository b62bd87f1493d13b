// Package query validates request parameters and answers observation,
// statistics and outlier queries against the published dataset snapshot.
package query

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/dataset"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/db"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/ingest"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/stats"
)

const (
	DefaultLimit = 100
	MaxLimit     = db.MaxLimit
)

// SnapshotSource yields the currently published dataset, if any.
type SnapshotSource interface {
	Snapshot() (*dataset.Snapshot, bool)
}

// Options tunes pagination.
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// Engine answers queries. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	source       SnapshotSource
	logger       *slog.Logger
	validate     *validator.Validate
	defaultLimit int
	maxLimit     int
}

// NewEngine builds an Engine over source.
func NewEngine(source SnapshotSource, logger *slog.Logger, opts Options) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxLimit <= 0 || opts.MaxLimit > MaxLimit {
		opts.MaxLimit = MaxLimit
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	opts.DefaultLimit = min(opts.DefaultLimit, opts.MaxLimit)
	return &Engine{
		source:       source,
		logger:       logger.With(slog.String("component", "query_engine")),
		validate:     validator.New(),
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
	}
}

// guard converts a panic inside op into an opaque internal error.
func (e *Engine) guard(op string, err **Error) {
	if r := recover(); r != nil {
		e.logger.Error("query failed", slog.String("op", op), slog.Any("panic", r))
		*err = &Error{
			Kind:    KindInternal,
			Message: fmt.Sprintf("Internal server error during %s.", op),
			Err:     fmt.Errorf("panic: %v", r),
		}
	}
}

func asError(err error) *Error {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr
	}
	return &Error{Kind: KindInternal, Message: "Internal server error.", Err: err}
}

func (e *Engine) snapshot() (*dataset.Snapshot, *Error) {
	snap, ok := e.source.Snapshot()
	if !ok || !snap.Ready() {
		return nil, errUnavailable
	}
	return snap, nil
}

// Observations returns the filtered page together with the total match count.
func (e *Engine) Observations(p Params) (page models.ObservationPage, qerr *Error) {
	defer e.guard("database query", &qerr)

	f, err := ParseFilter(p)
	if err != nil {
		return page, asError(err)
	}
	skip, limit, err := parsePage(p, e.defaultLimit, e.maxLimit)
	if err != nil {
		return page, asError(err)
	}
	snap, qerr := e.snapshot()
	if qerr != nil {
		return page, qerr
	}
	return models.ObservationPage{
		Count: snap.Store.Count(f),
		Items: snap.Store.Query(f, skip, limit),
	}, nil
}

// Stats summarises every measured field over the whole cleaned dataset.
func (e *Engine) Stats() (out models.Stats, qerr *Error) {
	defer e.guard("statistics calculation", &qerr)

	snap, qerr := e.snapshot()
	if qerr != nil {
		return nil, qerr
	}
	out = make(models.Stats, len(models.MeasuredFields))
	for _, f := range models.MeasuredFields {
		out[f.String()] = Summarize(snap.Store.Values(f))
	}
	return out, nil
}

// Summarize computes count, mean, extremes and quartiles, skipping NaN.
// An empty input yields a zero count and nil statistics.
func Summarize(values []float64) models.FieldStats {
	clean := finite(values)
	if len(clean) == 0 {
		return models.FieldStats{}
	}
	sorted := stats.Sorted(clean)
	ptr := func(v float64) *float64 { return &v }
	return models.FieldStats{
		Count: len(sorted),
		Mean:  ptr(stats.Mean(sorted)),
		Min:   ptr(sorted[0]),
		Max:   ptr(sorted[len(sorted)-1]),
		P25:   ptr(stats.Quantile(sorted, 0.25)),
		P50:   ptr(stats.Quantile(sorted, 0.5)),
		P75:   ptr(stats.Quantile(sorted, 0.75)),
	}
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// BuildReport is the cleaning report together with the build time.
type BuildReport struct {
	ingest.Report
	BuiltAt time.Time `json:"built_at"`
}

// Report returns the cleaning report of the published snapshot.
func (e *Engine) Report() (r BuildReport, qerr *Error) {
	defer e.guard("report", &qerr)

	snap, ok := e.source.Snapshot()
	if !ok {
		return r, errUnavailable
	}
	return BuildReport{Report: snap.Report, BuiltAt: snap.BuiltAt}, nil
}
