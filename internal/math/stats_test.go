package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Push(t *testing.T) {

	l := 1001

	type test struct {
		transform func(i int) float64
		avg       float64
		count     int
		stDev     float64
		variance  float64
	}

	tests := map[string]test{
		"monotonically-increasing-+": {
			transform: func(i int) float64 {
				return float64(i)
			},
			avg:      float64(l / 2),
			count:    l,
			stDev:    289,
			variance: 83500,
		},
		"monotonically-increasing-0": {
			transform: func(i int) float64 {
				return float64(-1*l/2) + float64(i)
			},
			avg:   0,
			count: l,
			// NOTE : these are the same as the one above
			stDev:    289,
			variance: 83500,
		},
		"constant": {
			transform: func(i int) float64 {
				return 0.1
			},
			avg:      0.1,
			count:    l,
			stDev:    0,
			variance: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewStats()
			for i := 0; i < l; i++ {
				s.Push(tt.transform(i))
			}
			assert.InDelta(t, tt.avg, s.Avg(), 1e-9)
			assert.Equal(t, tt.count, s.Count())
			assert.Equal(t, tt.stDev, math.Round(s.StDev()))
			assert.Equal(t, tt.variance, math.Round(s.Variance()))
		})
	}

}

func TestStats_ConstantIsExact(t *testing.T) {
	// the zero variance policy relies on an exact zero, not a rounding residue
	s := Of([]float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1})
	assert.Equal(t, 0.0, s.StDev())
	assert.Equal(t, 0.1, s.Avg())
}

func TestStats_Empty(t *testing.T) {
	s := NewStats()
	assert.Equal(t, 0, s.Count())
	assert.True(t, math.IsNaN(s.StDev()))
}

func TestStats_Population(t *testing.T) {
	s := Of([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.0, s.StDev(), 1e-12)
	assert.InDelta(t, 32.0, s.SumOfSquares(), 1e-12)
}

func TestRSquared(t *testing.T) {

	type test struct {
		y, predicted []float64
		r2           float64
	}

	tests := map[string]test{
		"perfect": {
			y:         []float64{1, 2, 3, 4},
			predicted: []float64{1, 2, 3, 4},
			r2:        1,
		},
		"mean-only": {
			y:         []float64{1, 2, 3, 4},
			predicted: []float64{2.5, 2.5, 2.5, 2.5},
			r2:        0,
		},
		"partial": {
			y:         []float64{1, 2, 3, 4},
			predicted: []float64{1, 2, 3, 5},
			r2:        0.8,
		},
		"constant-exact": {
			y:         []float64{5, 5, 5},
			predicted: []float64{5, 5, 5 + 1e-14},
			r2:        1,
		},
		"constant-off": {
			y:         []float64{5, 5, 5},
			predicted: []float64{5, 5, 6},
			r2:        0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.r2, RSquared(tt.y, tt.predicted), 1e-12)
		})
	}
}
