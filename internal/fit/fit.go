// Package fit fits pointing offset polynomials after rejecting outliers by z-score.
package fit

import (
	"fmt"
	"math"

	coinmath "github.com/drakos74/offset-model/internal/math"
	"github.com/rs/zerolog/log"
)

// DefaultZThreshold is the z-score at which a sample is rejected.
const DefaultZThreshold = 3.0

// Policy names the outlier rejection rule a fit was produced with.
type Policy string

const (
	// RejectByZScore drops samples with |y - mean| / std >= threshold.
	RejectByZScore Policy = "z-score"
	// KeepAllOnZeroVariance keeps every sample when y has no spread,
	// there is nothing to measure a deviation against.
	KeepAllOnZeroVariance Policy = "keep-all-zero-variance"
)

// Samples pairs the commanded angles with the observed offsets.
type Samples struct {
	X []float64
	Y []float64
}

// Len returns the number of samples.
func (s Samples) Len() int {
	return len(s.X)
}

// Fit fits the samples, see Fit.
func (s Samples) Fit(degree int, opts ...Option) (Result, error) {
	return Fit(s.X, s.Y, degree, opts...)
}

// Result is the outcome of a fit.
type Result struct {
	// Coefficients in ascending powers of x, len = Degree+1.
	Coefficients []float64
	Degree       int
	RSquared     float64
	// Retained is aligned with the input samples, true for the points the polynomial was fitted to.
	Retained []bool

	Mean       float64
	StdDev     float64
	ZThreshold float64
	Policy     Policy
}

// Count returns the number of retained samples.
func (r Result) Count() int {
	c := 0
	for _, ok := range r.Retained {
		if ok {
			c++
		}
	}
	return c
}

// Rejected returns the number of samples left out of the fit.
func (r Result) Rejected() int {
	return len(r.Retained) - r.Count()
}

// Evaluate evaluates the fitted polynomial at x.
func (r Result) Evaluate(x float64) float64 {
	return coinmath.Horner(r.Coefficients, x)
}

// Select returns the values whose retention flag equals keep.
func (r Result) Select(values []float64, keep bool) []float64 {
	out := make([]float64, 0, len(values))
	for i, v := range values {
		if i < len(r.Retained) && r.Retained[i] == keep {
			out = append(out, v)
		}
	}
	return out
}

type options struct {
	z float64
}

// Option configures a fit.
type Option func(*options)

// WithZThreshold sets the rejection threshold, math.Inf(1) disables rejection.
func WithZThreshold(z float64) Option {
	return func(o *options) {
		o.z = z
	}
}

// Fit rejects outliers of y by z-score and fits a polynomial of the given degree
// to the remaining points.
// Pairs with a non-finite x or y are never retained.
func Fit(x, y []float64, degree int, opts ...Option) (Result, error) {
	o := options{z: DefaultZThreshold}
	for _, opt := range opts {
		opt(&o)
	}

	if len(x) != len(y) {
		return Result{}, invalid("sample length mismatch: x=%d y=%d", len(x), len(y))
	}
	if len(x) == 0 {
		return Result{}, invalid("no samples")
	}
	if degree < 0 {
		return Result{}, invalid("negative degree %d", degree)
	}
	if math.IsNaN(o.z) || o.z <= 0 {
		return Result{}, invalid("z threshold must be positive, got %v", o.z)
	}

	finite := make([]bool, len(x))
	stats := coinmath.NewStats()
	for i := range x {
		if isFinite(x[i]) && isFinite(y[i]) {
			finite[i] = true
			stats.Push(y[i])
		}
	}
	if stats.Count() == 0 {
		return Result{}, invalid("no finite samples among %d", len(x))
	}

	result := Result{
		Degree:     degree,
		Mean:       stats.Avg(),
		StdDev:     stats.StDev(),
		ZThreshold: o.z,
		Retained:   make([]bool, len(x)),
	}

	if result.StdDev == 0 || math.IsNaN(result.StdDev) {
		result.Policy = KeepAllOnZeroVariance
		copy(result.Retained, finite)
	} else {
		result.Policy = RejectByZScore
		for i := range y {
			if finite[i] {
				z := math.Abs(y[i]-result.Mean) / result.StdDev
				result.Retained[i] = z < o.z
			}
		}
	}

	xx := result.Select(x, true)
	yy := result.Select(y, true)

	required := degree + 1
	if len(xx) < required {
		return Result{}, &InsufficientDataError{Retained: len(xx), Required: required}
	}
	if d := distinct(xx); d < required {
		return Result{}, &InsufficientDataError{Retained: d, Required: required, Distinct: true}
	}

	c, err := coinmath.Fit(xx, yy, degree)
	if err != nil {
		return Result{}, fmt.Errorf("could not fit degree %d polynomial: %w", degree, err)
	}
	result.Coefficients = c
	result.RSquared = coinmath.RSquared(yy, coinmath.Eval(c, xx))

	log.Debug().
		Int("samples", len(x)).
		Int("retained", len(xx)).
		Int("degree", degree).
		Str("policy", string(result.Policy)).
		Float64("mean", result.Mean).
		Float64("std", result.StdDev).
		Float64("r2", result.RSquared).
		Msg("fitted polynomial")

	return result, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func distinct(xx []float64) int {
	seen := make(map[float64]struct{}, len(xx))
	for _, x := range xx {
		seen[x] = struct{}{}
	}
	return len(seen)
}
