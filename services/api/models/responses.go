package models

// ObservationPage is the paginated observations payload. Count is the total
// number of matches, independent of skip and limit.
type ObservationPage struct {
	Count int           `json:"count"`
	Items []Observation `json:"items"`
}

// FieldStats summarises one measured field. Every statistic is null when
// the field has no values.
type FieldStats struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	P25   *float64 `json:"25%"`
	P50   *float64 `json:"50%"`
	P75   *float64 `json:"75%"`
}

// Stats maps a measured field name to its summary.
type Stats map[string]FieldStats

// OutlierResult lists the rows flagged by an outlier query.
type OutlierResult struct {
	Outliers []Observation `json:"outliers"`
	Count    int           `json:"count"`
}
