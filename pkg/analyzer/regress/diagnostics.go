package regress

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/statlines/windup/pkg/models"
)

// runDiagnostics builds the assumption-test battery. Any test that cannot
// be computed is left out of the report rather than failing the fit.
func runDiagnostics(m *olsModel, xCols []string, xs [][]float64) Diagnostics {
	d := Diagnostics{
		VIF: []VIFEntry{},
		ADF: []ADFEntry{},
	}

	if w, p, err := shapiroWilk(m.resid); err == nil {
		status := statusFail
		switch {
		case p > 0.05:
			status = statusOK
		case p > 0.01:
			status = statusWarn
		}
		d.ShapiroWilk = &ShapiroWilk{
			WStat:  models.Safe(round(w, 4)),
			PValue: models.Safe(round(p, 4)),
			Status: status,
		}
	}

	if lm, p, err := breuschPagan(m, xs); err == nil {
		status := statusOK
		if p < 0.05 {
			status = statusFail
		}
		d.BreuschPagan = &BreuschPagan{
			LMStat: models.Safe(round(lm, 4)),
			PValue: models.Safe(round(p, 4)),
			Status: status,
		}
	} else {
		d.BreuschPagan = &BreuschPagan{Status: statusWarn}
	}

	dw := durbinWatson(m.resid)
	if !math.IsNaN(dw) {
		status := statusWarn
		if dw > 1.5 && dw < 2.5 {
			status = statusOK
		}
		d.DurbinWatson = &DurbinWatson{DWStat: round(dw, 3), Status: status}
	}

	if len(xs) > 1 {
		for j, name := range xCols {
			v, err := vif(xs, j)
			if err != nil || math.IsInf(v, 0) {
				continue
			}
			status := statusOK
			switch {
			case v >= 10:
				status = statusFail
			case v >= 5:
				status = statusWarn
			}
			d.VIF = append(d.VIF, VIFEntry{Variable: name, VIF: round(v, 2), Status: status})
		}
	}

	for j, name := range xCols {
		if len(xs[j]) < 8 {
			continue
		}
		stat, p, err := adfTest(xs[j])
		if err != nil {
			continue
		}
		status := statusWarn
		if p < 0.05 {
			status = statusOK
		}
		d.ADF = append(d.ADF, ADFEntry{
			Variable: name,
			ADFStat:  models.Safe(round(stat, 3)),
			PValue:   models.Safe(round(p, 4)),
			Status:   status,
		})
	}

	return d
}

// breuschPagan runs the LM test of squared residuals on the predictors.
func breuschPagan(m *olsModel, xs [][]float64) (lm, pvalue float64, err error) {
	sq := make([]float64, m.n)
	for i, e := range m.resid {
		sq[i] = e * e
	}
	aux, ferr := fitOLS(sq, xs)
	if ferr != nil {
		return 0, 0, ferr
	}
	if math.IsNaN(aux.r2) {
		return 0, 0, errSingular
	}
	lm = float64(m.n) * aux.r2
	chi := distuv.ChiSquared{K: float64(len(xs))}
	return lm, 1 - chi.CDF(lm), nil
}

// durbinWatson is the first-order autocorrelation statistic.
func durbinWatson(resid []float64) float64 {
	var num, den float64
	for i, e := range resid {
		den += e * e
		if i > 0 {
			d := e - resid[i-1]
			num += d * d
		}
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// vif regresses predictor j on the remaining predictors and converts the
// resulting R-squared into a variance inflation factor.
func vif(xs [][]float64, j int) (float64, error) {
	others := make([][]float64, 0, len(xs)-1)
	for k, col := range xs {
		if k != j {
			others = append(others, col)
		}
	}
	m, err := fitOLS(xs[j], others)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(m.r2) || m.r2 >= 1 {
		return math.Inf(1), nil
	}
	return 1 / (1 - m.r2), nil
}

// round truncates v to the given number of decimal places.
func round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
