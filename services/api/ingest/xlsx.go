package ingest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads the first row of a worksheet as the header. Sheet
// defaults to the first sheet of the workbook.
type XLSXSource struct {
	Path  string
	Sheet string
}

func (s *XLSXSource) Name() string { return filepath.Base(s.Path) }

func (s *XLSXSource) ReadTable(_ context.Context) (Table, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{Name: s.Name()}, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Table{Name: s.Name()}, nil
	}
	return Table{Name: s.Name(), Header: rows[0], Records: rows[1:]}, nil
}
