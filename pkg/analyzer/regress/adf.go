package regress

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MacKinnon (1994) approximate asymptotic p-value surface for the
// constant-only Dickey-Fuller regression.
var (
	adfTauStar = -1.61
	adfTauMin  = -18.83
	adfTauMax  = 2.74
	adfSmallP  = []float64{2.1659, 1.4412, 0.038269}
	adfLargeP  = []float64{1.7339, 0.93202, -0.012745, -0.010368}
)

// adfTest runs an augmented Dickey-Fuller unit-root test with a constant
// term, choosing the lag order by AIC up to the Schwert rule-of-thumb cap.
func adfTest(series []float64) (stat, pvalue float64, err error) {
	n := len(series)
	if n < 8 {
		return 0, 0, errors.New("adf needs at least 8 observations")
	}

	maxLag := int(math.Floor(12 * math.Pow(float64(n)/100, 0.25)))
	if limit := n/2 - 3; maxLag > limit {
		maxLag = limit
	}
	if maxLag < 0 {
		maxLag = 0
	}

	diffs := make([]float64, n-1)
	for i := range diffs {
		diffs[i] = series[i+1] - series[i]
	}

	// Pick the lag order on a common sample so the AICs are comparable.
	bestLag, bestAIC := 0, math.Inf(1)
	for k := 0; k <= maxLag; k++ {
		m, ferr := fitADF(series, diffs, k, maxLag)
		if ferr != nil {
			continue
		}
		if m.aic < bestAIC {
			bestAIC = m.aic
			bestLag = k
		}
	}

	m, ferr := fitADF(series, diffs, bestLag, bestLag)
	if ferr != nil {
		return 0, 0, ferr
	}
	stat = m.tStat[1]
	if math.IsNaN(stat) {
		return 0, 0, errors.New("adf statistic undefined")
	}
	return stat, mackinnonP(stat), nil
}

// fitADF regresses the first difference on the lagged level plus k lagged
// differences, using observations from startLag onward.
func fitADF(series, diffs []float64, k, startLag int) (*olsModel, error) {
	nobs := len(diffs) - startLag
	if nobs < k+4 {
		return nil, errors.New("adf sample too short for the requested lag")
	}
	y := make([]float64, nobs)
	xs := make([][]float64, k+1)
	for j := range xs {
		xs[j] = make([]float64, nobs)
	}
	for i := 0; i < nobs; i++ {
		t := startLag + i
		y[i] = diffs[t]
		xs[0][i] = series[t]
		for j := 1; j <= k; j++ {
			xs[j][i] = diffs[t-j]
		}
	}
	return fitOLS(y, xs)
}

// mackinnonP maps a Dickey-Fuller t-statistic to its approximate p-value.
func mackinnonP(stat float64) float64 {
	switch {
	case stat > adfTauMax:
		return 1
	case stat < adfTauMin:
		return 0
	case stat <= adfTauStar:
		return distuv.UnitNormal.CDF(poly(adfSmallP, stat))
	default:
		return distuv.UnitNormal.CDF(poly(adfLargeP, stat))
	}
}
