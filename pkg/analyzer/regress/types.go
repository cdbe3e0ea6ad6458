package regress

// LagType selects the transform applied to a predictor before fitting.
type LagType string

const (
	// LagNone keeps the raw same-game value.
	LagNone LagType = "none"
	// LagPoint uses the value from N games prior.
	LagPoint LagType = "point"
	// LagRolling uses the mean of the last N games, ending one game before
	// the target.
	LagRolling LagType = "rolling"
)

// Lag configures one predictor's transform.
type Lag struct {
	Type LagType `json:"type"`
	N    int     `json:"n"`
}

// ModelSummary holds the whole-model fit statistics.
type ModelSummary struct {
	RSquared      *float64 `json:"r_squared"`
	AdjRSquared   *float64 `json:"adj_r_squared"`
	FStat         *float64 `json:"f_stat"`
	FPValue       *float64 `json:"f_pvalue"`
	AIC           *float64 `json:"aic"`
	NObservations int      `json:"n_observations"`
}

// Coefficient is one fitted term with its inference statistics.
type Coefficient struct {
	Variable string   `json:"variable"`
	Coef     *float64 `json:"coef"`
	StdErr   *float64 `json:"std_err"`
	TStat    *float64 `json:"t_stat"`
	PValue   *float64 `json:"p_value"`
	CILow    *float64 `json:"ci_low"`
	CIHigh   *float64 `json:"ci_high"`
	Sig      string   `json:"sig"`
}

// ShapiroWilk is the residual-normality test entry.
type ShapiroWilk struct {
	WStat  *float64 `json:"w_stat"`
	PValue *float64 `json:"p_value"`
	Status string   `json:"status"`
}

// BreuschPagan is the heteroscedasticity test entry.
type BreuschPagan struct {
	LMStat *float64 `json:"lm_stat"`
	PValue *float64 `json:"p_value"`
	Status string   `json:"status"`
}

// DurbinWatson is the residual-autocorrelation entry.
type DurbinWatson struct {
	DWStat float64 `json:"dw_stat"`
	Status string  `json:"status"`
}

// VIFEntry is one predictor's variance inflation factor.
type VIFEntry struct {
	Variable string  `json:"variable"`
	VIF      float64 `json:"vif"`
	Status   string  `json:"status"`
}

// ADFEntry is one predictor's stationarity test.
type ADFEntry struct {
	Variable string   `json:"variable"`
	ADFStat  *float64 `json:"adf_stat"`
	PValue   *float64 `json:"p_value"`
	Status   string   `json:"status"`
}

// Diagnostics is the assumption-test battery. Entries that fail numerically
// are omitted rather than aborting the report.
type Diagnostics struct {
	ShapiroWilk  *ShapiroWilk  `json:"shapiro_wilk,omitempty"`
	BreuschPagan *BreuschPagan `json:"breusch_pagan,omitempty"`
	DurbinWatson *DurbinWatson `json:"durbin_watson,omitempty"`
	VIF          []VIFEntry    `json:"vif"`
	ADF          []ADFEntry    `json:"adf"`
}

// PlotData holds every plot-ready series for the client.
type PlotData struct {
	GameDates       []string  `json:"game_dates"`
	Fitted          []float64 `json:"fitted"`
	Residuals       []float64 `json:"residuals"`
	QQTheoretical   []float64 `json:"qq_theoretical"`
	QQSample        []float64 `json:"qq_sample"`
	SqrtAbsStdResid []float64 `json:"sqrt_abs_std_resid"`
	CooksDistance   []float64 `json:"cooks_distance"`
	CooksThreshold  float64   `json:"cooks_threshold"`
}

// Correlation is the predictor correlation matrix. Undefined pairs
// (a constant column) are null, not zero.
type Correlation struct {
	Labels []string     `json:"labels"`
	Values [][]*float64 `json:"values"`
}

// Result is the full regression report, self-contained with no references
// back into the season dataset.
type Result struct {
	ModelSummary      ModelSummary  `json:"model_summary"`
	Coefficients      []Coefficient `json:"coefficients"`
	Diagnostics       Diagnostics   `json:"diagnostics"`
	PlotData          PlotData      `json:"plot_data"`
	CorrelationMatrix Correlation   `json:"correlation_matrix"`
}

const (
	statusOK   = "ok"
	statusWarn = "warn"
	statusFail = "fail"
)

// sigMarker returns the conventional significance stars for a p-value.
func sigMarker(p float64) string {
	switch {
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	case p < 0.10:
		return "."
	default:
		return ""
	}
}
