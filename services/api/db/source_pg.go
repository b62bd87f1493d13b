package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/ingest"
)

// DefaultSourceQuery selects raw observation rows; column names go through
// the same alias table as file headers.
const DefaultSourceQuery = `SELECT * FROM raw_observations`

// PGSource reads raw observation rows from Postgres as one table.
type PGSource struct {
	pool  *pgxpool.Pool
	query string
}

// NewPGSource creates a PGSource backed by a pgx pool.
func NewPGSource(ctx context.Context, databaseURL, query string) (*PGSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if query == "" {
		query = DefaultSourceQuery
	}
	return &PGSource{pool: pool, query: query}, nil
}

// Close releases the pool resources.
func (s *PGSource) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PGSource) Name() string { return "postgres" }

// ReadTable runs the source query and renders every value as text.
func (s *PGSource) ReadTable(ctx context.Context) (ingest.Table, error) {
	rows, err := s.pool.Query(ctx, s.query)
	if err != nil {
		return ingest.Table{}, fmt.Errorf("query raw observations: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, 0, len(fields))
	oids := make([]uint32, 0, len(fields))
	for _, fd := range fields {
		header = append(header, fd.Name)
		oids = append(oids, fd.DataTypeOID)
	}

	values := make([][]any, 0)
	for rows.Next() {
		v, err := rows.Values()
		if err != nil {
			return ingest.Table{}, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return ingest.Table{}, err
	}
	return tableFromValues(s.Name(), header, oids, values), nil
}

// tableFromValues renders rows as text. oids holds the column type OIDs so
// SQL date columns keep their date-only form for the date+time combine.
func tableFromValues(name string, header []string, oids []uint32, values [][]any) ingest.Table {
	t := ingest.Table{Name: name, Header: header, Records: make([][]string, 0, len(values))}
	for _, row := range values {
		rec := make([]string, len(row))
		for i, v := range row {
			var oid uint32
			if i < len(oids) {
				oid = oids[i]
			}
			rec[i] = formatValue(v, oid)
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

func formatValue(v any, oid uint32) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		if oid == pgtype.DateOID {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02T15:04:05.999999999")
	case pgtype.Time:
		if !val.Valid {
			return ""
		}
		return time.Time{}.Add(time.Duration(val.Microseconds) * time.Microsecond).Format("15:04:05.999999")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
