package regress

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// shapiroWilk computes the Shapiro-Wilk W statistic and p-value using
// Royston's AS R94 approximation, valid for 3 <= n <= 5000.
func shapiroWilk(sample []float64) (w, p float64, err error) {
	n := len(sample)
	if n < 3 {
		return 0, 0, errors.New("shapiro-wilk needs at least 3 observations")
	}
	if n > 5000 {
		return 0, 0, errors.New("shapiro-wilk is unreliable above 5000 observations")
	}

	x := append([]float64(nil), sample...)
	sort.Float64s(x)
	if x[n-1]-x[0] <= 0 {
		return 0, 0, errors.New("shapiro-wilk undefined for a constant sample")
	}

	// Expected normal order statistics (Blom approximation).
	m := make([]float64, n)
	var ssq float64
	for i := 0; i < n; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssq += m[i] * m[i]
	}

	a := make([]float64, n)
	rsn := 1 / math.Sqrt(float64(n))
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		a[2] = -a[0]
	} else {
		an := poly([]float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}, rsn) + m[n-1]/math.Sqrt(ssq)
		a[n-1] = an
		a[0] = -an
		if n > 5 {
			an1 := poly([]float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}, rsn) + m[n-2]/math.Sqrt(ssq)
			a[n-2] = an1
			a[1] = -an1
			phi := (ssq - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
			for i := 2; i < n-2; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
		} else {
			phi := (ssq - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
		}
	}

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	var num, den float64
	for i := 0; i < n; i++ {
		num += a[i] * x[i]
		den += (x[i] - mean) * (x[i] - mean)
	}
	if den <= 0 {
		return 0, 0, errors.New("shapiro-wilk undefined for a constant sample")
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	if n == 3 {
		p = 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		p = math.Max(0, math.Min(1, p))
		return w, p, nil
	}

	lnW := math.Log(1 - w)
	nf := float64(n)
	var z float64
	if n <= 11 {
		gamma := poly([]float64{-2.273, 0.459}, nf)
		if gamma-lnW <= 0 {
			return w, 0, nil
		}
		ws := -math.Log(gamma - lnW)
		mu := poly([]float64{0.5440, -0.39978, 0.025054, -0.0006714}, nf)
		sigma := math.Exp(poly([]float64{1.3822, -0.77857, 0.062767, -0.0020322}, nf))
		z = (ws - mu) / sigma
	} else {
		u := math.Log(nf)
		mu := poly([]float64{-1.5861, -0.31082, -0.083751, 0.0038915}, u)
		sigma := math.Exp(poly([]float64{-0.4803, -0.082676, 0.0030302}, u))
		z = (lnW - mu) / sigma
	}
	p = 1 - distuv.UnitNormal.CDF(z)
	return w, p, nil
}

// poly evaluates a polynomial with ascending coefficients at x.
func poly(coeffs []float64, x float64) float64 {
	var acc, pow float64
	pow = 1
	for _, c := range coeffs {
		acc += c * pow
		pow *= x
	}
	return acc
}
