package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/analyzer/features"
	"github.com/statlines/windup/pkg/analyzer/regress"
	"github.com/statlines/windup/pkg/config"
)

// modelSpecSchema validates the --spec file before it reaches the engine.
const modelSpecSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["y", "x"],
  "properties": {
    "y": {"type": "string", "minLength": 1},
    "x": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["col"],
        "properties": {
          "col": {"type": "string", "minLength": 1},
          "lag": {
            "type": "object",
            "required": ["type"],
            "properties": {
              "type": {"enum": ["none", "point", "rolling"]},
              "n": {"type": "integer", "minimum": 0}
            },
            "additionalProperties": false
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

type modelSpec struct {
	Y string `json:"y"`
	X []struct {
		Col string       `json:"col"`
		Lag *regress.Lag `json:"lag"`
	} `json:"x"`
}

func regressCmd() *cli.Command {
	return &cli.Command{
		Name:      "regress",
		Aliases:   []string{"reg"},
		Usage:     "Fit an OLS model over the per-game feature table",
		ArgsUsage: "<season.csv>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "y",
				Usage: "Response column (see windup features for names)",
			},
			&cli.StringFlag{
				Name:  "x",
				Usage: "Comma-separated predictor columns",
			},
			&cli.StringFlag{
				Name:  "lag-type",
				Usage: "Lag applied to every predictor: none, point, rolling",
			},
			&cli.IntFlag{
				Name:  "lag-n",
				Usage: "Lag length in games",
			},
			&cli.StringFlag{
				Name:  "spec",
				Usage: "JSON model spec file with per-predictor lags",
			},
		},
		Action: runRegressCmd,
	}
}

func runRegressCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	season, err := loadSeason(c, cfg)
	if err != nil {
		return err
	}

	yCol, xCols, lags, err := resolveModelSpec(c, cfg)
	if err != nil {
		return err
	}

	f, _ := features.Build(season)
	result, err := regress.Run(f, yCol, xCols, lags)
	if err != nil {
		var insufficient *regress.InsufficientDataError
		if errors.As(err, &insufficient) {
			color.Yellow("Not enough data to fit the model:")
			fmt.Printf("  %s\n", insufficient.Error())
			return cli.Exit("", 1)
		}
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(result)
	}
	return renderRegression(formatter, yCol, result)
}

// resolveModelSpec builds the model definition from --spec or the flat flags.
func resolveModelSpec(c *cli.Context, cfg *config.Config) (string, []string, map[string]regress.Lag, error) {
	if path := c.String("spec"); path != "" {
		return loadModelSpec(path)
	}

	yCol := c.String("y")
	if yCol == "" {
		return "", nil, nil, fmt.Errorf("either --spec or --y is required")
	}
	xCols := splitList(c.String("x"))
	if len(xCols) == 0 {
		return "", nil, nil, fmt.Errorf("at least one predictor is required (--x velo,whiff_pct)")
	}

	lagType := cfg.Regression.LagType
	if c.IsSet("lag-type") {
		lagType = c.String("lag-type")
	}
	lagN := cfg.Regression.LagN
	if c.IsSet("lag-n") {
		lagN = c.Int("lag-n")
	}
	switch regress.LagType(lagType) {
	case regress.LagNone, regress.LagPoint, regress.LagRolling:
	default:
		return "", nil, nil, fmt.Errorf("--lag-type must be none, point or rolling, got %q", lagType)
	}

	lags := make(map[string]regress.Lag, len(xCols))
	for _, col := range xCols {
		lags[col] = regress.Lag{Type: regress.LagType(lagType), N: lagN}
	}
	return yCol, xCols, lags, nil
}

func loadModelSpec(path string) (string, []string, map[string]regress.Lag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("reading model spec: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(modelSpecSchema))
	if err != nil {
		return "", nil, nil, err
	}
	if err := compiler.AddResource("model-spec.json", schemaDoc); err != nil {
		return "", nil, nil, err
	}
	schema, err := compiler.Compile("model-spec.json")
	if err != nil {
		return "", nil, nil, err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return "", nil, nil, fmt.Errorf("model spec %s is not valid JSON: %w", path, err)
	}
	if err := schema.Validate(instance); err != nil {
		return "", nil, nil, fmt.Errorf("model spec %s is invalid: %w", path, err)
	}

	var spec modelSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return "", nil, nil, err
	}

	xCols := make([]string, 0, len(spec.X))
	lags := make(map[string]regress.Lag, len(spec.X))
	for _, x := range spec.X {
		xCols = append(xCols, x.Col)
		if x.Lag != nil {
			lags[x.Col] = *x.Lag
		}
	}
	return spec.Y, xCols, lags, nil
}

func renderRegression(formatter *output.Formatter, yCol string, result *regress.Result) error {
	summary := result.ModelSummary
	sec := &output.Section{
		Title: fmt.Sprintf("OLS: %s", yCol),
		Content: fmt.Sprintf(
			"R² %s  adj %s  F %s (p %s)  AIC %s  n=%d",
			formatValue("%.4f", summary.RSquared),
			formatValue("%.4f", summary.AdjRSquared),
			formatValue("%.3f", summary.FStat),
			formatValue("%.4f", summary.FPValue),
			formatValue("%.2f", summary.AIC),
			summary.NObservations,
		),
		Data: result,
	}
	if err := formatter.Output(sec); err != nil {
		return err
	}

	var coefRows [][]string
	for _, co := range result.Coefficients {
		coefRows = append(coefRows, []string{
			co.Variable,
			formatValue("%.4f", co.Coef),
			formatValue("%.4f", co.StdErr),
			formatValue("%.3f", co.TStat),
			formatValue("%.4f", co.PValue),
			fmt.Sprintf("[%s, %s]", formatValue("%.4f", co.CILow), formatValue("%.4f", co.CIHigh)),
			co.Sig,
		})
	}
	coefTable := output.NewTable(
		"Coefficients",
		[]string{"Variable", "Coef", "Std Err", "t", "P>|t|", "95% CI", ""},
		coefRows,
		nil,
		result.Coefficients,
	)
	if err := formatter.Output(coefTable); err != nil {
		return err
	}

	var diagRows [][]string
	d := result.Diagnostics
	if d.ShapiroWilk != nil {
		diagRows = append(diagRows, []string{
			"Shapiro-Wilk (normality)",
			formatValue("%.4f", d.ShapiroWilk.WStat),
			formatValue("%.4f", d.ShapiroWilk.PValue),
			statusCell(formatter, d.ShapiroWilk.Status),
		})
	}
	if d.BreuschPagan != nil {
		diagRows = append(diagRows, []string{
			"Breusch-Pagan (heteroscedasticity)",
			formatValue("%.4f", d.BreuschPagan.LMStat),
			formatValue("%.4f", d.BreuschPagan.PValue),
			statusCell(formatter, d.BreuschPagan.Status),
		})
	}
	if d.DurbinWatson != nil {
		diagRows = append(diagRows, []string{
			"Durbin-Watson (autocorrelation)",
			fmt.Sprintf("%.3f", d.DurbinWatson.DWStat),
			"-",
			statusCell(formatter, d.DurbinWatson.Status),
		})
	}
	for _, v := range d.VIF {
		diagRows = append(diagRows, []string{
			fmt.Sprintf("VIF %s", v.Variable),
			fmt.Sprintf("%.2f", v.VIF),
			"-",
			statusCell(formatter, v.Status),
		})
	}
	for _, a := range d.ADF {
		diagRows = append(diagRows, []string{
			fmt.Sprintf("ADF %s (stationarity)", a.Variable),
			formatValue("%.3f", a.ADFStat),
			formatValue("%.4f", a.PValue),
			statusCell(formatter, a.Status),
		})
	}
	diagTable := output.NewTable(
		"Diagnostics",
		[]string{"Test", "Stat", "P-Value", "Status"},
		diagRows,
		nil,
		result.Diagnostics,
	)
	if err := formatter.Output(diagTable); err != nil {
		return err
	}

	corr := result.CorrelationMatrix
	if len(corr.Labels) > 1 {
		var corrRows [][]string
		for i, label := range corr.Labels {
			row := make([]string, 0, len(corr.Labels)+1)
			row = append(row, label)
			for j := range corr.Labels {
				row = append(row, formatValue("%.3f", corr.Values[i][j]))
			}
			corrRows = append(corrRows, row)
		}
		headers := append([]string{""}, corr.Labels...)
		corrTable := output.NewTable("Predictor Correlations", headers, corrRows, nil, corr)
		if err := formatter.Output(corrTable); err != nil {
			return err
		}
	}

	return nil
}

func statusCell(formatter *output.Formatter, status string) string {
	if formatter.Colored() {
		return output.StatusColor(status, status)
	}
	return status
}
