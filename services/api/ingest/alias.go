package ingest

import (
	"fmt"
	"strings"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
)

// Column is the role a raw header plays once aliases are resolved. Besides
// the canonical fields, a file may carry separate date and time columns.
type Column int

const (
	ColumnTimestamp Column = iota + 1
	ColumnLatitude
	ColumnLongitude
	ColumnTemperature
	ColumnSalinity
	ColumnODO
	ColumnDate
	ColumnTime
)

var columnNames = map[string]Column{
	"timestamp":   ColumnTimestamp,
	"latitude":    ColumnLatitude,
	"longitude":   ColumnLongitude,
	"temperature": ColumnTemperature,
	"salinity":    ColumnSalinity,
	"odo":         ColumnODO,
	"date":        ColumnDate,
	"time":        ColumnTime,
}

var columnFields = map[Column]models.Field{
	ColumnTimestamp:   models.FieldTimestamp,
	ColumnLatitude:    models.FieldLatitude,
	ColumnLongitude:   models.FieldLongitude,
	ColumnTemperature: models.FieldTemperature,
	ColumnSalinity:    models.FieldSalinity,
	ColumnODO:         models.FieldODO,
}

// Field returns the canonical field backed by c; date and time parts have none.
func (c Column) Field() (models.Field, bool) {
	f, ok := columnFields[c]
	return f, ok
}

func (c Column) String() string {
	for name, col := range columnNames {
		if col == c {
			return name
		}
	}
	return "unknown"
}

// DefaultAliases maps the header variants seen across the survey logs.
var DefaultAliases = map[string]Column{
	"timestamp":     ColumnTimestamp,
	"date and time": ColumnTimestamp,
	"datetime":      ColumnTimestamp,

	"date":          ColumnDate,
	"date m/d/y":    ColumnDate,
	"time":          ColumnTime,
	"time hh:mm:ss": ColumnTime,

	"latitude":  ColumnLatitude,
	"lat":       ColumnLatitude,
	"longitude": ColumnLongitude,
	"long":      ColumnLongitude,
	"lon":       ColumnLongitude,

	"temperature": ColumnTemperature,
	"temp c":      ColumnTemperature,
	"temp (c)":    ColumnTemperature,

	"salinity":       ColumnSalinity,
	"sal ppt":        ColumnSalinity,
	"salinity (ppt)": ColumnSalinity,

	"odo":              ColumnODO,
	"odo mg/l":         ColumnODO,
	"d.o.":             ColumnODO,
	"dissolved oxygen": ColumnODO,
}

// AliasTable resolves raw headers to columns. Unknown headers fail closed.
type AliasTable struct {
	aliases map[string]Column
}

// NewAliasTable builds a table from DefaultAliases plus extra entries of the
// form raw header -> canonical column name.
func NewAliasTable(extra map[string]string) (*AliasTable, error) {
	aliases := make(map[string]Column, len(DefaultAliases)+len(extra))
	for k, v := range DefaultAliases {
		aliases[k] = v
	}
	for raw, target := range extra {
		col, ok := columnNames[normalizeHeader(target)]
		if !ok {
			return nil, fmt.Errorf("alias %q: unknown column %q", raw, target)
		}
		aliases[normalizeHeader(raw)] = col
	}
	return &AliasTable{aliases: aliases}, nil
}

// Lookup resolves a raw header after lowercasing and trimming it.
func (t *AliasTable) Lookup(header string) (Column, bool) {
	col, ok := t.aliases[normalizeHeader(header)]
	return col, ok
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}
