// Package model holds the persisted offset models and the store that saves and loads them.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/offset-model/internal/fit"
	coinmath "github.com/drakos74/offset-model/internal/math"
	"github.com/google/uuid"
)

// Version is the record layout written by Store.Save.
const Version = 1

// Model is the persisted form of a fitted offset polynomial.
type Model struct {
	Version      int       `json:"version"`
	ID           string    `json:"id"`
	Axis         Axis      `json:"axis"`
	Degree       int       `json:"degree"`
	Coefficients []float64 `json:"coefficients"`
	RSquared     float64   `json:"r_squared"`
	Retained     int       `json:"retained"`
	Total        int       `json:"total"`
	FittedAt     time.Time `json:"fitted_at"`
}

// New creates the record for a fit result.
func New(axis Axis, r fit.Result, now time.Time) Model {
	return Model{
		Version:      Version,
		ID:           uuid.New().String(),
		Axis:         axis,
		Degree:       r.Degree,
		Coefficients: append([]float64(nil), r.Coefficients...),
		RSquared:     r.RSquared,
		Retained:     r.Count(),
		Total:        len(r.Retained),
		FittedAt:     now.UTC(),
	}
}

// Evaluate returns the predicted offset at the query angle.
// There is no check against the fitted range, extrapolated values are returned as is.
func (m Model) Evaluate(q float64) float64 {
	return coinmath.Horner(m.Coefficients, q)
}

// Validate checks the record is usable for evaluation.
func (m Model) Validate() error {
	if m.Version != Version {
		return fmt.Errorf("unsupported version %d", m.Version)
	}
	if _, ok := Axes[string(m.Axis)]; !ok {
		return fmt.Errorf("unknown axis '%s'", m.Axis)
	}
	if m.Degree < 0 {
		return fmt.Errorf("negative degree %d", m.Degree)
	}
	if len(m.Coefficients) != m.Degree+1 {
		return fmt.Errorf("degree %d needs %d coefficients, found %d", m.Degree, m.Degree+1, len(m.Coefficients))
	}
	for i, c := range m.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("non-finite coefficient c%d = %v", i, c)
		}
	}
	return nil
}

// String renders the polynomial in ascending powers of x.
func (m Model) String() string {
	return coinmath.FormatPolynomial(m.Coefficients, "x")
}
