package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/offset-model/internal/fit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	az := fit.Result{Coefficients: []float64{1, 0.002}, Degree: 1, RSquared: 0.987654}
	el := fit.Result{Coefficients: []float64{-0.5, 0.01, -0.0001}, Degree: 2, RSquared: 1}

	expected := "Model: offset_az = f(azimuth)\n" +
		"1.0 + 0.002·x\n" +
		"R² = 0.9877\n" +
		"\n" +
		"Model: offset_el = f(elevation)\n" +
		"-0.5 + 0.01·x - 0.0001·x²\n" +
		"R² = 1.0000\n"

	assert.Equal(t, expected, Summarize(az, el))
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultOutput)
	require.NoError(t, Write(path, "R² = 1.0000\n"))

	bb, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "R² = 1.0000\n", string(bb))

	// a second run replaces the summary and leaves nothing else behind
	require.NoError(t, Write(path, "R² = 0.5000\n"))
	bb, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "R² = 0.5000\n", string(bb))
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.Error(t, Write(filepath.Join(t.TempDir(), "missing", "out.txt"), "x"))
}
