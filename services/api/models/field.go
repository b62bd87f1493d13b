package models

import "strings"

// Field enumerates the canonical observation attributes.
type Field int

const (
	FieldTimestamp Field = iota
	FieldLatitude
	FieldLongitude
	FieldTemperature
	FieldSalinity
	FieldODO
)

var fieldNames = map[Field]string{
	FieldTimestamp:   "timestamp",
	FieldLatitude:    "latitude",
	FieldLongitude:   "longitude",
	FieldTemperature: "temperature",
	FieldSalinity:    "salinity",
	FieldODO:         "odo",
}

// RequiredFields lists every field a stored Observation must carry.
var RequiredFields = []Field{
	FieldTimestamp,
	FieldLatitude,
	FieldLongitude,
	FieldTemperature,
	FieldSalinity,
	FieldODO,
}

// MeasuredFields are the water-quality readings that take part in cleaning,
// statistics and outlier detection.
var MeasuredFields = []Field{FieldTemperature, FieldSalinity, FieldODO}

func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

// ParseField resolves a canonical field name (case-insensitive).
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}
