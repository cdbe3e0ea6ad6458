// Package regress fits ordinary least squares models over per-game feature
// tables and reports coefficient inference, assumption diagnostics and
// plot-ready series.
package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/statlines/windup/pkg/frame"
	"github.com/statlines/windup/pkg/models"
)

const minRequired = 5

// Run fits the response column on the predictor columns after applying the
// requested per-predictor lag transforms. Rows with any missing value are
// dropped before fitting.
func Run(f *frame.Frame, yCol string, xCols []string, lags map[string]Lag) (*Result, error) {
	if len(xCols) == 0 {
		return nil, fmt.Errorf("no predictor columns selected")
	}
	if !f.HasColumn(yCol) {
		return nil, fmt.Errorf("unknown response column %q", yCol)
	}
	for _, c := range xCols {
		if !f.HasColumn(c) {
			return nil, fmt.Errorf("unknown predictor column %q", c)
		}
	}

	dates := f.Dates()
	y := f.Column(yCol)
	raw := make([][]float64, len(xCols))
	for j, c := range xCols {
		raw[j] = applyLag(f.Column(c), lags[c])
	}

	keep := make([]int, 0, len(dates))
	for i := range dates {
		if math.IsNaN(y[i]) {
			continue
		}
		ok := true
		for _, col := range raw {
			if math.IsNaN(col[i]) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}

	required := len(xCols) + 2
	if required < minRequired {
		required = minRequired
	}
	if len(keep) < required {
		return nil, insufficientData(f, yCol, xCols, lags, len(keep), required)
	}

	keptDates := make([]string, len(keep))
	keptY := make([]float64, len(keep))
	keptX := make([][]float64, len(xCols))
	for j := range keptX {
		keptX[j] = make([]float64, len(keep))
	}
	for i, idx := range keep {
		keptDates[i] = dates[idx]
		keptY[i] = y[idx]
		for j := range keptX {
			keptX[j][i] = raw[j][idx]
		}
	}

	m, err := fitOLS(keptY, keptX)
	if err != nil {
		return nil, fmt.Errorf("fitting model: %w", err)
	}

	res := &Result{
		ModelSummary: ModelSummary{
			RSquared:      safeRound(m.r2, 4),
			AdjRSquared:   safeRound(m.adjR2, 4),
			FStat:         safeRound(m.fStat, 3),
			FPValue:       safeRound(m.fPVal, 4),
			AIC:           safeRound(m.aic, 2),
			NObservations: m.n,
		},
		Coefficients:      coefficients(m, xCols),
		Diagnostics:       runDiagnostics(m, xCols, keptX),
		PlotData:          buildPlotData(m, keptDates),
		CorrelationMatrix: correlationMatrix(xCols, keptX),
	}
	return res, nil
}

// applyLag transforms a date-ordered series according to the lag config.
func applyLag(vals []float64, lag Lag) []float64 {
	switch lag.Type {
	case LagPoint:
		if lag.N <= 0 {
			return vals
		}
		out := make([]float64, len(vals))
		for i := range out {
			if i < lag.N {
				out[i] = math.NaN()
			} else {
				out[i] = vals[i-lag.N]
			}
		}
		return out
	case LagRolling:
		if lag.N <= 0 {
			return vals
		}
		out := make([]float64, len(vals))
		for i := range out {
			lo := i - lag.N
			if lo < 0 {
				lo = 0
			}
			window := make([]float64, 0, lag.N)
			for _, v := range vals[lo:i] {
				if !math.IsNaN(v) {
					window = append(window, v)
				}
			}
			if len(window) == 0 {
				out[i] = math.NaN()
			} else {
				out[i] = stat.Mean(window, nil)
			}
		}
		return out
	default:
		return vals
	}
}

func coefficients(m *olsModel, xCols []string) []Coefficient {
	names := append([]string{"Intercept"}, xCols...)
	out := make([]Coefficient, len(names))
	for j, name := range names {
		out[j] = Coefficient{
			Variable: name,
			Coef:     safeRound(m.beta[j], 4),
			StdErr:   safeRound(m.stdErr[j], 4),
			TStat:    safeRound(m.tStat[j], 3),
			PValue:   safeRound(m.pValue[j], 4),
			CILow:    safeRound(m.ciLow[j], 4),
			CIHigh:   safeRound(m.ciHigh[j], 4),
		}
		if !math.IsNaN(m.pValue[j]) {
			out[j].Sig = sigMarker(m.pValue[j])
		}
	}
	return out
}

func insufficientData(f *frame.Frame, yCol string, xCols []string, lags map[string]Lag, rows, required int) error {
	e := &InsufficientDataError{
		Rows:     rows,
		Required: required,
		Games:    f.NumRows(),
	}
	for _, c := range append([]string{yCol}, xCols...) {
		if frac := f.MissingFraction(c); frac > 0.5 {
			e.Sparse = append(e.Sparse, SparseColumn{Name: c, MissingPct: round(frac*100, 0)})
		}
	}
	for _, lag := range lags {
		if lag.Type != LagNone && lag.N > e.MaxLag {
			e.MaxLag = lag.N
		}
	}
	return e
}

func safeRound(v float64, places int) *float64 {
	if math.IsInf(v, 0) {
		return nil
	}
	return models.Safe(round(v, places))
}
