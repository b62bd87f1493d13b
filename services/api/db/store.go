package db

import (
	"sort"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
)

// MaxLimit caps the page size of Query regardless of the caller's request.
const MaxLimit = 1000

// Store holds the cleaned observations in ascending timestamp order. It has
// no mutating methods; every accessor returns a fresh slice, so a Store is
// safe for concurrent readers without locking.
type Store struct {
	rows []models.Observation
}

// New builds a Store from obs. The input is copied and stably sorted by
// timestamp, so later changes to obs are not visible.
func New(obs []models.Observation) *Store {
	rows := make([]models.Observation, len(obs))
	copy(rows, obs)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp.Time)
	})
	return &Store{rows: rows}
}

// Len returns the number of stored observations.
func (s *Store) Len() int {
	return len(s.rows)
}

// window narrows the scan to the index range allowed by the timestamp
// bounds of f using binary search.
func (s *Store) window(f models.Filter) (lo, hi int) {
	lo, hi = 0, len(s.rows)
	if f.Start != nil {
		start := f.Start.Time
		lo = sort.Search(len(s.rows), func(i int) bool {
			return !s.rows[i].Timestamp.Before(start)
		})
	}
	if f.End != nil {
		end := f.End.Time
		hi = sort.Search(len(s.rows), func(i int) bool {
			return s.rows[i].Timestamp.After(end)
		})
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Count returns the number of observations matching f.
func (s *Store) Count(f models.Filter) int {
	lo, hi := s.window(f)
	n := 0
	for _, o := range s.rows[lo:hi] {
		if f.Match(o) {
			n++
		}
	}
	return n
}

// Query returns matches of f in timestamp order after skipping skip of them,
// at most limit (capped at MaxLimit). A skip past the end yields an empty
// slice.
func (s *Store) Query(f models.Filter, skip, limit int) []models.Observation {
	if skip < 0 {
		skip = 0
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if limit <= 0 {
		return []models.Observation{}
	}

	lo, hi := s.window(f)
	out := make([]models.Observation, 0, min(limit, hi-lo))
	for _, o := range s.rows[lo:hi] {
		if !f.Match(o) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, o)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Values returns the values of a numeric field in storage order.
func (s *Store) Values(field models.Field) []float64 {
	out := make([]float64, 0, len(s.rows))
	for _, o := range s.rows {
		if v, ok := o.Value(field); ok {
			out = append(out, v)
		}
	}
	return out
}

// All returns a copy of every stored observation.
func (s *Store) All() []models.Observation {
	out := make([]models.Observation, len(s.rows))
	copy(out, s.rows)
	return out
}

// Head returns up to the first n observations.
func (s *Store) Head(n int) []models.Observation {
	if n > len(s.rows) {
		n = len(s.rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([]models.Observation, n)
	copy(out, s.rows[:n])
	return out
}
