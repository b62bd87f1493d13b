package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantileLinear(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 100}
	assert.Equal(t, 2.0, Quantile(sorted, 0.25))
	assert.Equal(t, 3.0, Quantile(sorted, 0.5))
	assert.Equal(t, 4.0, Quantile(sorted, 0.75))

	even := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, Quantile(even, 0.25), 1e-12)
	assert.InDelta(t, 2.5, Quantile(even, 0.5), 1e-12)
	assert.InDelta(t, 3.25, Quantile(even, 0.75), 1e-12)

	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.75))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestStdDevSample(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	m := Mean(xs)
	assert.Equal(t, 5.0, m)
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev(xs, m), 1e-12)
	assert.Equal(t, 0.0, StdDev([]float64{3}, 3))
}

func TestZScoreZeroStd(t *testing.T) {
	assert.Equal(t, 0.0, ZScore(10, 5, 0))
	assert.Equal(t, 2.0, ZScore(1, 5, 2))
}

func TestSortedDoesNotMutate(t *testing.T) {
	xs := []float64{3, 1, 2}
	got := Sorted(xs)
	assert.Equal(t, []float64{1, 2, 3}, got)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}
