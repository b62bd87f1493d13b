package ingest

import (
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/models"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/stats"
)

// DefaultZThreshold is the load-time deviation limit.
const DefaultZThreshold = 3.0

// CleanResult holds the rows that survived the z-score pass.
type CleanResult struct {
	Observations []models.Observation
	Before       int
	Removed      int
	Remaining    int
}

// Clean drops every observation whose z-score in any measured field exceeds
// threshold. Mean and standard deviation are taken over the whole input;
// a zero deviation yields z=0. Input order is preserved.
func Clean(obs []models.Observation, threshold float64) CleanResult {
	type moments struct{ mean, std float64 }
	m := make(map[models.Field]moments, len(models.MeasuredFields))
	for _, f := range models.MeasuredFields {
		values := make([]float64, len(obs))
		for i, o := range obs {
			values[i], _ = o.Value(f)
		}
		mean := stats.Mean(values)
		m[f] = moments{mean: mean, std: stats.StdDev(values, mean)}
	}

	kept := make([]models.Observation, 0, len(obs))
	for _, o := range obs {
		outlier := false
		for _, f := range models.MeasuredFields {
			v, _ := o.Value(f)
			if stats.ZScore(v, m[f].mean, m[f].std) > threshold {
				outlier = true
				break
			}
		}
		if !outlier {
			kept = append(kept, o)
		}
	}

	return CleanResult{
		Observations: kept,
		Before:       len(obs),
		Removed:      len(obs) - len(kept),
		Remaining:    len(kept),
	}
}
