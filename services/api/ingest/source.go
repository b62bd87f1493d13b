package ingest

import (
	"context"
	"path/filepath"
	"strings"
)

// Source yields one raw table. Implementations must be safe to call from a
// goroutine of their own.
type Source interface {
	Name() string
	ReadTable(ctx context.Context) (Table, error)
}

// OpenSource picks a file reader by extension: .xlsx workbooks go through
// excelize, everything else is read as delimited text.
func OpenSource(path, sheet string) Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return &XLSXSource{Path: path, Sheet: sheet}
	default:
		return &CSVSource{Path: path}
	}
}
