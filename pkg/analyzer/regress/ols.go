package regress

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var errSingular = errors.New("design matrix is singular")

// olsModel is a fitted least-squares model with the pieces the diagnostics
// need: the design matrix, the inverse normal matrix and the residuals.
type olsModel struct {
	n int // observations
	p int // predictors, excluding the intercept

	beta   []float64
	stdErr []float64
	tStat  []float64
	pValue []float64
	ciLow  []float64
	ciHigh []float64

	fitted []float64
	resid  []float64

	rss    float64
	sigma2 float64

	r2     float64
	adjR2  float64
	fStat  float64
	fPVal  float64
	aic    float64

	design *mat.Dense
	invXtX *mat.Dense
}

// fitOLS fits y on the predictor columns with an intercept. Every series
// must be the same length and free of NaN.
func fitOLS(y []float64, xs [][]float64) (*olsModel, error) {
	n := len(y)
	p := len(xs)
	if n == 0 || p == 0 {
		return nil, errors.New("empty design")
	}
	dof := n - p - 1
	if dof < 1 {
		return nil, errors.New("not enough observations for the requested predictors")
	}

	design := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		for j, col := range xs {
			design.Set(i, j+1, col[i])
		}
	}
	yv := mat.NewVecDense(n, append([]float64(nil), y...))

	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, errSingular
	}

	var xty mat.VecDense
	xty.MulVec(design.T(), yv)
	var betaVec mat.VecDense
	betaVec.MulVec(&inv, &xty)

	m := &olsModel{n: n, p: p, design: design, invXtX: &inv}
	m.beta = make([]float64, p+1)
	for j := range m.beta {
		m.beta[j] = betaVec.AtVec(j)
	}

	m.fitted = make([]float64, n)
	m.resid = make([]float64, n)
	var fittedVec mat.VecDense
	fittedVec.MulVec(design, &betaVec)
	var mean float64
	for i := 0; i < n; i++ {
		m.fitted[i] = fittedVec.AtVec(i)
		m.resid[i] = y[i] - m.fitted[i]
		m.rss += m.resid[i] * m.resid[i]
		mean += y[i]
	}
	mean /= float64(n)
	var tss float64
	for i := 0; i < n; i++ {
		d := y[i] - mean
		tss += d * d
	}

	m.sigma2 = m.rss / float64(dof)
	if tss > 0 {
		m.r2 = 1 - m.rss/tss
	} else {
		m.r2 = math.NaN()
	}
	m.adjR2 = 1 - (1-m.r2)*float64(n-1)/float64(dof)

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dof)}
	tcrit := tdist.Quantile(0.975)
	m.stdErr = make([]float64, p+1)
	m.tStat = make([]float64, p+1)
	m.pValue = make([]float64, p+1)
	m.ciLow = make([]float64, p+1)
	m.ciHigh = make([]float64, p+1)
	for j := 0; j <= p; j++ {
		se := math.Sqrt(m.sigma2 * inv.At(j, j))
		m.stdErr[j] = se
		if se > 0 {
			m.tStat[j] = m.beta[j] / se
		} else {
			m.tStat[j] = math.NaN()
		}
		m.pValue[j] = 2 * (1 - tdist.CDF(math.Abs(m.tStat[j])))
		m.ciLow[j] = m.beta[j] - tcrit*se
		m.ciHigh[j] = m.beta[j] + tcrit*se
	}

	if !math.IsNaN(m.r2) && m.r2 < 1 {
		m.fStat = (m.r2 / float64(p)) / ((1 - m.r2) / float64(dof))
		fdist := distuv.F{D1: float64(p), D2: float64(dof)}
		m.fPVal = 1 - fdist.CDF(m.fStat)
	} else {
		m.fStat = math.NaN()
		m.fPVal = math.NaN()
	}

	if m.rss > 0 {
		nf := float64(n)
		m.aic = nf*(math.Log(2*math.Pi)+math.Log(m.rss/nf)+1) + 2*float64(p+1)
	} else {
		m.aic = math.Inf(-1)
	}

	return m, nil
}

// leverage returns the hat-matrix diagonal.
func (m *olsModel) leverage() []float64 {
	h := make([]float64, m.n)
	k := m.p + 1
	for i := 0; i < m.n; i++ {
		row := make([]float64, k)
		for j := 0; j < k; j++ {
			row[j] = m.design.At(i, j)
		}
		var acc float64
		for a := 0; a < k; a++ {
			for b := 0; b < k; b++ {
				acc += row[a] * m.invXtX.At(a, b) * row[b]
			}
		}
		h[i] = acc
	}
	return h
}
