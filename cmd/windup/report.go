package main

import (
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/internal/progress"
	"github.com/statlines/windup/pkg/analyzer/compare"
	"github.com/statlines/windup/pkg/analyzer/features"
	"github.com/statlines/windup/pkg/analyzer/outcome"
	"github.com/statlines/windup/pkg/analyzer/series"
	"github.com/statlines/windup/pkg/analyzer/signal"
	"github.com/statlines/windup/pkg/analyzer/trendtable"
	"github.com/statlines/windup/pkg/models"
)

func reportCmd() *cli.Command {
	flags := append(trendFlags(),
		&cli.StringFlag{
			Name:    "metrics",
			Aliases: []string{"m"},
			Usage:   "Comma-separated metric keys",
		},
		&cli.StringFlag{
			Name:    "pitch-types",
			Aliases: []string{"p"},
			Usage:   "Comma-separated pitch type codes",
		},
		&cli.IntFlag{
			Name:  "signal-window",
			Usage: "Recent window in days for signals and the trend table",
		},
	)
	return &cli.Command{
		Name:      "report",
		Aliases:   []string{"rep"},
		Usage:     "Run every analyzer and emit one combined report",
		ArgsUsage: "<season.csv>",
		Flags:     flags,
		Action:    runReportCmd,
	}
}

type fullReport struct {
	TargetDate      string                    `json:"target_date"`
	KPI             compare.KPI               `json:"kpi"`
	Comparison      []compare.Row             `json:"comparison"`
	PitchUsageToday []compare.Usage           `json:"pitch_usage_today"`
	PitchUsageTrend []compare.Usage           `json:"pitch_usage_trend"`
	DayOutcomes     outcome.Stats             `json:"day_outcomes"`
	TrendOutcomes   outcome.Stats             `json:"trend_outcomes"`
	PerGameOutcomes []outcome.GameStats       `json:"per_game_outcomes"`
	TimeSeries      map[string][]series.Point `json:"time_series"`
	Signals         *signal.Report            `json:"signals"`
	TrendTable      *trendtable.Table         `json:"trend_table"`
	FeatureColumns  []features.Column         `json:"feature_columns"`
}

func runReportCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	season, err := loadSeason(c, cfg)
	if err != nil {
		return err
	}
	target, err := targetDate(c, season)
	if err != nil {
		return err
	}
	trend, err := trendBaseline(c, cfg, season, target)
	if err != nil {
		return err
	}

	signalWindow := cfg.Signals.WindowDays
	if c.IsSet("signal-window") {
		signalWindow = c.Int("signal-window")
	}

	day := models.FilterDate(season, target)
	metrics := metricsFlag(c, cfg)
	pitchTypes := pitchTypesFlag(c, cfg, season)
	dayFilt := models.FilterPitchTypes(day, pitchTypes)
	trendFilt := models.FilterPitchTypes(trend, pitchTypes)

	const numAnalyzers = 6
	tracker := progress.NewTracker("Running analyzers", numAnalyzers)

	result := fullReport{TargetDate: target.Format("2006-01-02")}

	start := time.Now()
	wg := conc.NewWaitGroup()

	wg.Go(func() {
		defer tracker.Tick()
		result.KPI = compare.Summarize(dayFilt, trendFilt)
		result.Comparison = compare.Compare(dayFilt, trendFilt, metrics, pitchTypes)
		result.PitchUsageToday = compare.PitchUsage(dayFilt)
		result.PitchUsageTrend = compare.PitchUsage(trendFilt)
	})

	wg.Go(func() {
		defer tracker.Tick()
		result.DayOutcomes = outcome.Aggregate(day)
		result.TrendOutcomes = outcome.Aggregate(trend)
	})

	wg.Go(func() {
		defer tracker.Tick()
		result.PerGameOutcomes = outcome.ByGame(season)
	})

	wg.Go(func() {
		defer tracker.Tick()
		result.TimeSeries = series.Build(season, metrics, pitchTypes)
	})

	wg.Go(func() {
		defer tracker.Tick()
		result.Signals = signal.Detect(season, signalWindow)
	})

	wg.Go(func() {
		defer tracker.Tick()
		result.TrendTable = trendtable.Build(season, signalWindow)
		_, cols := features.Build(season)
		result.FeatureColumns = cols
	})

	wg.Wait()
	tracker.FinishSuccess()

	if c.Bool("verbose") {
		fmt.Printf("Report built in %s\n", time.Since(start).Round(time.Millisecond))
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&output.Report{
		Title: fmt.Sprintf("Pitcher Report: %s", result.TargetDate),
		Sections: []output.Renderable{
			reportSummarySection(&result),
		},
		Data: result,
	})
}

func reportSummarySection(r *fullReport) *output.Section {
	content := fmt.Sprintf(
		"Pitches: %d (trend %d)  Pitch Types: %d  Batters Faced: %d",
		r.KPI.PitchesToday, r.KPI.PitchesTrend, r.KPI.PitchTypesToday, r.KPI.BattersFaced,
	)
	sec := &output.Section{
		Title:   "Summary",
		Content: content,
	}
	if r.Signals != nil {
		var flags []string
		if r.Signals.Breakout {
			flags = append(flags, "breakout")
		}
		if r.Signals.Divergence {
			flags = append(flags, "divergence")
		}
		if r.Signals.PitchMixShift {
			flags = append(flags, "pitch mix shift")
		}
		flagText := "none"
		if len(flags) > 0 {
			flagText = fmt.Sprintf("%v", flags)
		}
		sec.Sections = append(sec.Sections, output.Section{
			Title:   "Signals",
			Content: fmt.Sprintf("Flags: %s (window %dd)", flagText, r.Signals.WindowDays),
		})
	}
	return sec
}
