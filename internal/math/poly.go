package math

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Fit fits the given series of x and y into a polynomial function of the given degree
// out put is a vector with the coefficients of the corresponding powers of x
// c[0] + c[1]x + c[2]x^2 + c[3]x^3 + ...
//
// The abscissa is mapped onto [-1, 1] before solving and the solution is converted back,
// so the returned coefficients apply to the raw x values.
func Fit(x, y []float64, degree int) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("series length mismatch: x=%d y=%d", len(x), len(y))
	}
	if degree < 0 {
		return nil, fmt.Errorf("negative degree: %d", degree)
	}
	if len(x) < degree+1 {
		return nil, fmt.Errorf("need at least %d points for degree %d, got %d", degree+1, degree, len(x))
	}

	off, scl := domain(x)
	u := make([]float64, len(x))
	for i := range x {
		u[i] = (x[i] - off) / scl
	}

	a := vandermonde(u, degree)
	b := mat.NewVecDense(len(y), append([]float64(nil), y...))
	c := mat.NewVecDense(degree+1, nil)

	qr := new(mat.QR)
	qr.Factorize(a)

	if err := qr.SolveVecTo(c, false, b); err != nil {
		return nil, fmt.Errorf("could not solve least squares: %w", err)
	}

	cc := make([]float64, c.Len())
	for i := 0; i < c.Len(); i++ {
		cc[i] = c.AtVec(i)
	}
	return convert(cc, off, scl), nil
}

// Horner evaluates the polynomial with ascending coefficients c at x.
func Horner(c []float64, x float64) float64 {
	var v float64
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}

// Eval evaluates the polynomial at every x.
func Eval(c []float64, xx []float64) []float64 {
	yy := make([]float64, len(xx))
	for i, x := range xx {
		yy[i] = Horner(c, x)
	}
	return yy
}

func vandermonde(a []float64, degree int) *mat.Dense {
	x := mat.NewDense(len(a), degree+1, nil)
	for i := range a {
		for j, p := 0, 1.; j <= degree; j, p = j+1, p*a[i] {
			x.Set(i, j, p)
		}
	}
	return x
}

// domain returns the offset and scale that map x onto [-1, 1].
func domain(x []float64) (off, scl float64) {
	lo, hi := floats.Min(x), floats.Max(x)
	off = (hi + lo) / 2
	scl = (hi - lo) / 2
	if scl == 0 {
		scl = 1
	}
	return off, scl
}

// convert expands sum c[k]*((x-off)/scl)^k into plain powers of x.
func convert(c []float64, off, scl float64) []float64 {
	out := make([]float64, len(c))
	for k, ck := range c {
		f := ck / math.Pow(scl, float64(k))
		for j := 0; j <= k; j++ {
			out[j] += f * binomial(k, j) * math.Pow(-off, float64(k-j))
		}
	}
	return out
}

func binomial(n, k int) float64 {
	b := 1.0
	for i := 1; i <= k; i++ {
		b = b * float64(n-k+i) / float64(i)
	}
	return b
}

var superscript = strings.NewReplacer(
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
)

// FormatPolynomial renders the coefficients in ascending powers of the given variable
// e.g. 1.0 + 0.002·x - 0.0001·x²
func FormatPolynomial(c []float64, variable string) string {
	if len(c) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, v := range c {
		switch {
		case i == 0:
			sb.WriteString(formatCoefficient(v))
		case math.Signbit(v):
			sb.WriteString(" - ")
			sb.WriteString(formatCoefficient(-v))
		default:
			sb.WriteString(" + ")
			sb.WriteString(formatCoefficient(v))
		}
		if i > 0 {
			sb.WriteString("·")
			sb.WriteString(variable)
		}
		if i > 1 {
			sb.WriteString(superscript.Replace(strconv.Itoa(i)))
		}
	}
	return sb.String()
}

func formatCoefficient(f float64) string {
	s := strconv.FormatFloat(f, 'g', 8, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
