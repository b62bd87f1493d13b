package query

import (
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/dataset"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/db"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/ingest"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
)

var base = time.Date(2021, 10, 21, 8, 0, 0, 0, time.UTC)

func obsAt(minute int, temp float64) models.Observation {
	return models.Observation{
		Timestamp:   models.NewTimestamp(base.Add(time.Duration(minute) * time.Minute)),
		Latitude:    25.9,
		Longitude:   -80.1,
		Temperature: temp,
		Salinity:    35,
		ODO:         6,
	}
}

func series(temps ...float64) []models.Observation {
	out := make([]models.Observation, len(temps))
	for i, v := range temps {
		out[i] = obsAt(i, v)
	}
	return out
}

func newTestEngine(obs []models.Observation) *Engine {
	snap := &dataset.Snapshot{Store: db.New(obs), Report: ingest.Report{RowsRemaining: len(obs)}, BuiltAt: base}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(dataset.NewStatic(snap), logger, Options{})
}

type panicSource struct{}

func (panicSource) Snapshot() (*dataset.Snapshot, bool) { panic("boom") }

func TestObservationsSkipPastEndKeepsCount(t *testing.T) {
	e := newTestEngine(series(1, 2, 3, 4, 5))
	page, err := e.Observations(Params{"skip": "50"})
	require.Nil(t, err)
	assert.Equal(t, 5, page.Count)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestObservationsFilterAndPage(t *testing.T) {
	e := newTestEngine(series(10, 20, 30, 40, 50, 60))
	page, err := e.Observations(Params{
		"min_temp": "20",
		"max_temp": "50",
		"skip":     "1",
		"limit":    "2",
	})
	require.Nil(t, err)
	assert.Equal(t, 4, page.Count)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 30.0, page.Items[0].Temperature)
	assert.Equal(t, 40.0, page.Items[1].Temperature)

	page, err = e.Observations(Params{"start": "2021-10-21T08:04:00Z"})
	require.Nil(t, err)
	assert.Equal(t, 2, page.Count)
}

func TestObservationsDefaultAndCappedLimit(t *testing.T) {
	temps := make([]float64, 1200)
	for i := range temps {
		temps[i] = float64(i)
	}
	e := newTestEngine(series(temps...))

	page, err := e.Observations(Params{})
	require.Nil(t, err)
	assert.Equal(t, 1200, page.Count)
	assert.Len(t, page.Items, DefaultLimit)

	page, err = e.Observations(Params{"limit": strconv.Itoa(5000)})
	require.Nil(t, err)
	assert.Len(t, page.Items, MaxLimit)
}

func TestValidationPrecedesAvailability(t *testing.T) {
	e := NewEngine(dataset.NewProvider(dataset.Pipeline{}, nil, nil), nil, Options{})

	_, err := e.Observations(Params{"limit": "x"})
	require.NotNil(t, err)
	assert.Equal(t, KindValidation, err.Kind)

	_, err = e.Observations(Params{})
	require.NotNil(t, err)
	assert.Equal(t, KindUnavailable, err.Kind)
	assert.False(t, err.ClientError())

	_, err = e.Stats()
	require.NotNil(t, err)
	assert.Equal(t, KindUnavailable, err.Kind)

	_, err = e.Report()
	require.NotNil(t, err)
	assert.Equal(t, KindUnavailable, err.Kind)
}

func TestEmptySnapshotIsUnavailable(t *testing.T) {
	e := newTestEngine(nil)
	_, err := e.Outliers(Params{"field": "odo"})
	require.NotNil(t, err)
	assert.Equal(t, KindUnavailable, err.Kind)

	r, err := e.Report()
	require.Nil(t, err)
	assert.Equal(t, 0, r.RowsRemaining)
	assert.Equal(t, base, r.BuiltAt)
}

func TestPanicBecomesInternalError(t *testing.T) {
	e := NewEngine(panicSource{}, slog.New(slog.NewTextHandler(io.Discard, nil)), Options{})
	_, err := e.Stats()
	require.NotNil(t, err)
	assert.Equal(t, KindInternal, err.Kind)
	assert.Equal(t, "Internal server error during statistics calculation.", err.Message)
	assert.NotContains(t, err.Message, "boom")
}

func TestStats(t *testing.T) {
	e := newTestEngine(series(1, 2, 3, 4, 100))
	st, err := e.Stats()
	require.Nil(t, err)
	require.Len(t, st, 3)

	temp := st["temperature"]
	assert.Equal(t, 5, temp.Count)
	assert.Equal(t, 22.0, *temp.Mean)
	assert.Equal(t, 1.0, *temp.Min)
	assert.Equal(t, 100.0, *temp.Max)
	assert.Equal(t, 2.0, *temp.P25)
	assert.Equal(t, 3.0, *temp.P50)
	assert.Equal(t, 4.0, *temp.P75)

	assert.Equal(t, 35.0, *st["salinity"].P50)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	assert.Equal(t, 0, got.Count)
	assert.Nil(t, got.Mean)
	assert.Nil(t, got.Min)
	assert.Nil(t, got.Max)
	assert.Nil(t, got.P25)
	assert.Nil(t, got.P50)
	assert.Nil(t, got.P75)
}
