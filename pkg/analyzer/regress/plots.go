package regress

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/statlines/windup/pkg/models"
)

// buildPlotData assembles every chart-ready series from the fitted model.
func buildPlotData(m *olsModel, dates []string) PlotData {
	pd := PlotData{
		GameDates: dates,
		Fitted:    roundSlice(m.fitted, 4),
		Residuals: roundSlice(m.resid, 4),
	}

	theo, sample := qqPoints(m.resid)
	pd.QQTheoretical = roundSlice(theo, 4)
	pd.QQSample = roundSlice(sample, 4)

	pd.SqrtAbsStdResid = roundSlice(scaleLocation(m.resid), 4)

	if cooks := cooksDistance(m); cooks != nil {
		pd.CooksDistance = roundSlice(cooks, 5)
		pd.CooksThreshold = round(4/float64(m.n), 4)
	} else {
		pd.CooksDistance = []float64{}
	}

	return pd
}

// qqPoints pairs sorted residuals with normal quantiles at the Filliben
// order-statistic medians.
func qqPoints(resid []float64) (theoretical, sample []float64) {
	n := len(resid)
	sample = append([]float64(nil), resid...)
	sort.Float64s(sample)
	theoretical = make([]float64, n)
	for i := 0; i < n; i++ {
		var u float64
		switch i {
		case n - 1:
			u = math.Pow(0.5, 1/float64(n))
		case 0:
			u = 1 - math.Pow(0.5, 1/float64(n))
		default:
			u = (float64(i+1) - 0.3175) / (float64(n) + 0.365)
		}
		theoretical[i] = distuv.UnitNormal.Quantile(u)
	}
	return theoretical, sample
}

// scaleLocation returns sqrt(|standardized residual|) in observation order.
func scaleLocation(resid []float64) []float64 {
	sd := stat.StdDev(resid, nil)
	if sd == 0 || math.IsNaN(sd) {
		sd = 1
	}
	out := make([]float64, len(resid))
	for i, e := range resid {
		out[i] = math.Sqrt(math.Abs(e / sd))
	}
	return out
}

// cooksDistance computes per-observation influence from the hat diagonal.
// Returns nil when a leverage value makes the formula blow up.
func cooksDistance(m *olsModel) []float64 {
	if m.sigma2 <= 0 {
		return nil
	}
	h := m.leverage()
	k := float64(m.p + 1)
	out := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		denom := 1 - h[i]
		if denom <= 0 {
			return nil
		}
		out[i] = m.resid[i] * m.resid[i] / (k * m.sigma2) * h[i] / (denom * denom)
	}
	return out
}

// correlationMatrix builds the pairwise predictor correlation table. A pair
// with no defined correlation (a constant column) is null.
func correlationMatrix(xCols []string, xs [][]float64) Correlation {
	one := 1.0
	c := Correlation{Labels: xCols, Values: make([][]*float64, len(xs))}
	for i := range xs {
		c.Values[i] = make([]*float64, len(xs))
		for j := range xs {
			if i == j {
				c.Values[i][j] = &one
				continue
			}
			r := stat.Correlation(xs[i], xs[j], nil)
			c.Values[i][j] = models.Safe(round(r, 3))
		}
	}
	return c
}

func roundSlice(vals []float64, places int) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = round(v, places)
	}
	return out
}
