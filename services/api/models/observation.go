package models

import (
	"encoding/json"
	"time"
)

const (
	isoLayout      = "2006-01-02T15:04:05"
	isoMicroLayout = "2006-01-02T15:04:05.000000"
)

// Timestamp is a timezone-naive instant truncated to microsecond precision.
// The wall clock is kept in UTC so comparisons never depend on a location.
type Timestamp struct {
	time.Time
}

// NewTimestamp drops any location from t, keeping its wall clock.
func NewTimestamp(t time.Time) Timestamp {
	naive := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return Timestamp{naive.Truncate(time.Microsecond)}
}

// String renders the ISO-8601 form, with six fractional digits only when
// the instant has a sub-second part.
func (t Timestamp) String() string {
	if t.Nanosecond() == 0 {
		return t.Format(isoLayout)
	}
	return t.Format(isoMicroLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Observation is one cleaned water-quality sample.
type Observation struct {
	Timestamp   Timestamp `json:"timestamp"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Temperature float64   `json:"temperature"`
	Salinity    float64   `json:"salinity"`
	ODO         float64   `json:"odo"`
}

// Value returns the numeric value of f. The timestamp is not numeric.
func (o Observation) Value(f Field) (float64, bool) {
	switch f {
	case FieldLatitude:
		return o.Latitude, true
	case FieldLongitude:
		return o.Longitude, true
	case FieldTemperature:
		return o.Temperature, true
	case FieldSalinity:
		return o.Salinity, true
	case FieldODO:
		return o.ODO, true
	}
	return 0, false
}
