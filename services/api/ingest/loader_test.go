package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeWorkbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	aliases, err := NewAliasTable(nil)
	require.NoError(t, err)
	return NewLoader(aliases, discardLogger(), 2)
}

func TestLoaderConcatenatesAndSorts(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "2021-dec16.csv", `Date m/d/y,Time hh:mm:ss,Latitude,Longitude,Temp C,Sal ppt,ODO mg/L
12/16/2021,10:00:02,25.9,-80.1,21.0,35.0,6.0
12/16/2021,10:00:00,25.9,-80.1,21.5,35.1,6.1
12/16/2021,,25.9,-80.1,21.5,35.1,6.1
`)
	b := writeFile(t, dir, "2021-oct21.csv", "timestamp;latitude;longitude;temperature;salinity;odo\n"+
		"2021-10-21T08:00:00;25.8;-80.2;27.0;34.0;;\n"+
		"2021-10-21T08:00:01;25.8;-80.2;27.1;34.1;5.5\n")
	missing := filepath.Join(dir, "2022-nov16.csv")

	sources := []Source{OpenSource(a, ""), OpenSource(missing, ""), OpenSource(b, "")}
	res, err := newTestLoader(t).Load(context.Background(), sources)
	require.NoError(t, err)

	assert.Equal(t, 2, res.FilesLoaded)
	assert.Equal(t, 1, res.FilesSkipped)
	assert.Equal(t, 5, res.RowsLoaded)
	assert.Equal(t, 2, res.IncompleteDropped)
	require.Len(t, res.Observations, 3)

	got := make([]string, len(res.Observations))
	for i, o := range res.Observations {
		got[i] = o.Timestamp.String()
	}
	assert.Equal(t, []string{
		"2021-10-21T08:00:01",
		"2021-12-16T10:00:00",
		"2021-12-16T10:00:02",
	}, got)
}

func TestLoaderStableForEqualTimestamps(t *testing.T) {
	dir := t.TempDir()
	header := "timestamp,latitude,longitude,temperature,salinity,odo\n"
	a := writeFile(t, dir, "a.csv", header+"2022-10-07T10:00:00,1,1,10,30,5\n2022-10-07T10:00:00,1,1,11,30,5\n")
	b := writeFile(t, dir, "b.csv", header+"2022-10-07T10:00:00,1,1,12,30,5\n")

	loader := newTestLoader(t)
	first, err := loader.Load(context.Background(), []Source{OpenSource(a, ""), OpenSource(b, "")})
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), []Source{OpenSource(a, ""), OpenSource(b, "")})
	require.NoError(t, err)

	require.Len(t, first.Observations, 3)
	assert.Equal(t, 10.0, first.Observations[0].Temperature)
	assert.Equal(t, 11.0, first.Observations[1].Temperature)
	assert.Equal(t, 12.0, first.Observations[2].Temperature)
	assert.Equal(t, first.Observations, second.Observations)
}

func TestLoaderReadsWorkbooks(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "2022-oct7.xlsx", [][]any{
		{"Date and Time", "Latitude", "Longitude", "Temperature", "Salinity (ppt)", "Dissolved Oxygen"},
		{"2022-10-07 11:15:00", "25.7", "-80.3", "29.4", "36.2", "4.9"},
		{"2022-10-07 11:14:00", "25.7", "-80.3", "29.3", "36.1", "4.8"},
	})

	res, err := newTestLoader(t).Load(context.Background(), []Source{OpenSource(path, "")})
	require.NoError(t, err)
	require.Len(t, res.Observations, 2)
	assert.Equal(t, "2022-10-07T11:14:00", res.Observations[0].Timestamp.String())
	assert.Equal(t, 4.8, res.Observations[0].ODO)
}

func TestLoaderSkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "broken.xlsx", "this is not a zip archive")
	good := writeFile(t, dir, "good.csv", "timestamp,latitude,longitude,temperature,salinity,odo\n2022-10-07T10:00:00,1,1,10,30,5\n")

	res, err := newTestLoader(t).Load(context.Background(), []Source{OpenSource(bad, ""), OpenSource(good, "")})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesSkipped)
	assert.Len(t, res.Observations, 1)
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestLoader(t).Load(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', sniffDelimiter("a,b,c\n1,2,3"))
	assert.Equal(t, ';', sniffDelimiter("a;b;c\n1;2;3"))
	assert.Equal(t, '\t', sniffDelimiter("a\tb\tc"))
}
