package models

// Range is an inclusive numeric bound; a nil side imposes no constraint.
type Range struct {
	Min *float64
	Max *float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// IsZero reports whether the range is unbounded on both sides.
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Filter is a conjunction of range predicates over an Observation.
type Filter struct {
	Start       *Timestamp
	End         *Timestamp
	Temperature Range
	Salinity    Range
	ODO         Range
}

// Match reports whether o satisfies every predicate of the filter.
func (f Filter) Match(o Observation) bool {
	if f.Start != nil && o.Timestamp.Before(f.Start.Time) {
		return false
	}
	if f.End != nil && o.Timestamp.After(f.End.Time) {
		return false
	}
	return f.Temperature.Contains(o.Temperature) &&
		f.Salinity.Contains(o.Salinity) &&
		f.ODO.Contains(o.ODO)
}
