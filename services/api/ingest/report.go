package ingest

import (
	"fmt"
	"io"
	"log/slog"
)

// Report summarizes one dataset build. RowsLoaded counts rows after
// concatenation; IncompleteDropped and OutliersRemoved are kept apart so the
// two drops are never conflated.
type Report struct {
	FilesLoaded       int     `json:"files_loaded"`
	FilesSkipped      int     `json:"files_skipped"`
	RowsLoaded        int     `json:"rows_loaded"`
	IncompleteDropped int     `json:"incomplete_dropped"`
	RowsBeforeClean   int     `json:"rows_before_clean"`
	OutliersRemoved   int     `json:"outliers_removed"`
	RowsRemaining     int     `json:"rows_remaining"`
	ZThreshold        float64 `json:"z_threshold"`
}

// NewReport combines loader and cleaner counters.
func NewReport(load LoadResult, clean CleanResult, threshold float64) Report {
	return Report{
		FilesLoaded:       load.FilesLoaded,
		FilesSkipped:      load.FilesSkipped,
		RowsLoaded:        load.RowsLoaded,
		IncompleteDropped: load.IncompleteDropped,
		RowsBeforeClean:   clean.Before,
		OutliersRemoved:   clean.Removed,
		RowsRemaining:     clean.Remaining,
		ZThreshold:        threshold,
	}
}

// LogValue renders the report as a slog group.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("files_loaded", r.FilesLoaded),
		slog.Int("files_skipped", r.FilesSkipped),
		slog.Int("rows_loaded", r.RowsLoaded),
		slog.Int("incomplete_dropped", r.IncompleteDropped),
		slog.Int("rows_before_clean", r.RowsBeforeClean),
		slog.Int("outliers_removed", r.OutliersRemoved),
		slog.Int("rows_remaining", r.RowsRemaining),
		slog.Float64("z_threshold", r.ZThreshold),
	)
}

// WriteText prints the human-readable cleaning report.
func (r Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, `--- Data Cleaning Report (z-score > %.1f) ---
Sources loaded / skipped:            %d / %d
Rows after concatenation:            %d
Rows dropped for missing fields:     %d
Rows entering outlier pass:          %d
Rows removed as statistical outliers: %d
Rows remaining after cleaning:       %d
`, r.ZThreshold, r.FilesLoaded, r.FilesSkipped, r.RowsLoaded, r.IncompleteDropped,
		r.RowsBeforeClean, r.OutliersRemoved, r.RowsRemaining)
	return err
}
