package ingest

import (
	"log/slog"
	"strings"
)

// Table is one raw tabular source: a header row and its records.
type Table struct {
	Name    string
	Header  []string
	Records [][]string
}

var numericColumns = []Column{
	ColumnLatitude,
	ColumnLongitude,
	ColumnTemperature,
	ColumnSalinity,
	ColumnODO,
}

// Normalizer projects raw tables onto the canonical schema.
type Normalizer struct {
	aliases *AliasTable
	logger  *slog.Logger
}

// NewNormalizer returns a Normalizer resolving headers through aliases.
func NewNormalizer(aliases *AliasTable, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{aliases: aliases, logger: logger}
}

// Normalize maps headers, reconciles date/time columns and coerces values.
// Headers that resolve to no column are dropped. When two headers resolve to
// the same column, the first one wins and the later one is dropped.
func (n *Normalizer) Normalize(t Table) []Row {
	index := make(map[Column]int)
	for i, header := range t.Header {
		col, ok := n.aliases.Lookup(header)
		if !ok {
			continue
		}
		if prev, dup := index[col]; dup {
			n.logger.Warn("skipping conflicting column",
				slog.String("source", t.Name),
				slog.String("column", header),
				slog.String("canonical", col.String()),
				slog.String("kept", t.Header[prev]),
			)
			continue
		}
		index[col] = i
	}

	dateIdx, hasDate := index[ColumnDate]
	timeIdx, hasTime := index[ColumnTime]
	tsIdx, hasTS := index[ColumnTimestamp]

	rows := make([]Row, 0, len(t.Records))
	for _, rec := range t.Records {
		var row Row
		switch {
		case hasDate && hasTime:
			date, clock := strings.TrimSpace(cell(rec, dateIdx)), strings.TrimSpace(cell(rec, timeIdx))
			if date == "" || clock == "" {
				break
			}
			if ts, ok := ParseTimestamp(date + " " + clock); ok {
				row.Timestamp = &ts
			}
		case hasTS:
			if ts, ok := ParseTimestamp(cell(rec, tsIdx)); ok {
				row.Timestamp = &ts
			}
		}
		for _, col := range numericColumns {
			if i, ok := index[col]; ok {
				row.setNumeric(col, ParseNumber(cell(rec, i)))
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
