// Package report renders the fit diagnostics for humans.
package report

import (
	"fmt"
	"strings"

	"github.com/drakos74/offset-model/internal/fit"
	coinmath "github.com/drakos74/offset-model/internal/math"
	"github.com/drakos74/offset-model/internal/model"
	"github.com/drakos74/offset-model/internal/storage/file"
)

// DefaultOutput is the summary file written next to the working directory.
const DefaultOutput = "fit_results.txt"

// Section renders the diagnostics of one axis.
func Section(axis model.Axis, r fit.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Model: %s\n", axis.Describe()))
	sb.WriteString(coinmath.FormatPolynomial(r.Coefficients, "x"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("R² = %.4f\n", r.RSquared))
	return sb.String()
}

// Summarize renders the azimuth and elevation diagnostics, separated by a blank line.
func Summarize(az, el fit.Result) string {
	return Section(model.Azimuth, az) + "\n" + Section(model.Elevation, el)
}

// Write replaces the summary at path atomically.
func Write(path string, summary string) error {
	if err := file.WriteAtomic(path, []byte(summary)); err != nil {
		return fmt.Errorf("could not write summary: %w", err)
	}
	return nil
}
