package math

import "math"

// Stats is a set of statistical properties of a set of numbers.
type Stats struct {
	count          int
	mean, dSquared float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{}
}

// Push adds another element to the set.
func (s *Stats) Push(v float64) {
	s.count++
	diff := (v - s.mean) / float64(s.count)
	mean := s.mean + diff
	squaredDiff := (v - mean) * (v - s.mean)
	s.dSquared += squaredDiff
	s.mean = mean
}

// Avg returns the average value of the set.
func (s Stats) Avg() float64 {
	return s.mean
}

// Count returns the number of elements.
func (s Stats) Count() int {
	return s.count
}

// SumOfSquares is the sum of squared deviations from the mean.
func (s Stats) SumOfSquares() float64 {
	return s.dSquared
}

// Variance is the population variance of the set.
// NOTE : an empty set has an undefined (NaN) variance.
func (s Stats) Variance() float64 {
	return s.dSquared / float64(s.count)
}

// StDev is the population standard deviation of the set.
func (s Stats) StDev() float64 {
	return math.Sqrt(s.Variance())
}

// Of collects the stats of the given values.
func Of(values []float64) *Stats {
	s := NewStats()
	for _, v := range values {
		s.Push(v)
	}
	return s
}

// zeroResidual is the residual magnitude, relative to the target scale,
// below which a fit of a constant target counts as exact.
const zeroResidual = 1e-9

// RSquared computes the coefficient of determination of the predictions against y.
// A constant y has no variance to explain, the score is then 1 for an exact fit and 0 otherwise.
func RSquared(y, predicted []float64) float64 {
	s := Of(y)
	var ssRes float64
	for i := range y {
		d := y[i] - predicted[i]
		ssRes += d * d
	}
	ssTot := s.SumOfSquares()
	if ssTot == 0 {
		scale := zeroResidual * math.Max(1, math.Abs(s.Avg()))
		if ssRes <= float64(len(y))*scale*scale {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}
