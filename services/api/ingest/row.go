package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
)

// Row is a normalized record before the required-field check. A nil field
// means the source value was missing or could not be coerced.
type Row struct {
	Timestamp   *models.Timestamp
	Latitude    *float64
	Longitude   *float64
	Temperature *float64
	Salinity    *float64
	ODO         *float64
}

// Observation returns the complete observation, or false when any required
// field is missing.
func (r Row) Observation() (models.Observation, bool) {
	if r.Timestamp == nil || r.Latitude == nil || r.Longitude == nil ||
		r.Temperature == nil || r.Salinity == nil || r.ODO == nil {
		return models.Observation{}, false
	}
	return models.Observation{
		Timestamp:   *r.Timestamp,
		Latitude:    *r.Latitude,
		Longitude:   *r.Longitude,
		Temperature: *r.Temperature,
		Salinity:    *r.Salinity,
		ODO:         *r.ODO,
	}, true
}

func (r *Row) setNumeric(col Column, v *float64) {
	switch col {
	case ColumnLatitude:
		r.Latitude = v
	case ColumnLongitude:
		r.Longitude = v
	case ColumnTemperature:
		r.Temperature = v
	case ColumnSalinity:
		r.Salinity = v
	case ColumnODO:
		r.ODO = v
	}
}

// ParseNumber coerces a raw cell; non-numeric, NaN and infinite values are nil.
func ParseNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
