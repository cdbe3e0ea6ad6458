package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/analyzer/compare"
	"github.com/statlines/windup/pkg/models"
)

func trendFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "date",
			Aliases: []string{"d"},
			Usage:   "Target game date (YYYY-MM-DD), defaults to the latest game",
		},
		&cli.StringFlag{
			Name:  "trend",
			Usage: "Trend baseline: rolling or season",
		},
		&cli.IntFlag{
			Name:    "window",
			Aliases: []string{"w"},
			Usage:   "Rolling window size in days",
		},
		&cli.StringFlag{
			Name:  "trend-file",
			Usage: "Reference season export for --trend=season",
		},
	}
}

func compareCmd() *cli.Command {
	flags := append(trendFlags(),
		&cli.StringFlag{
			Name:    "metrics",
			Aliases: []string{"m"},
			Usage:   "Comma-separated metric keys (release_speed, pfx_z, ...)",
		},
		&cli.StringFlag{
			Name:    "pitch-types",
			Aliases: []string{"p"},
			Usage:   "Comma-separated pitch type codes (FF,SL,...)",
		},
	)
	return &cli.Command{
		Name:      "compare",
		Aliases:   []string{"cmp"},
		Usage:     "Compare a game's pitch metrics against the trend baseline",
		ArgsUsage: "<season.csv>",
		Flags:     flags,
		Action:    runCompareCmd,
	}
}

type compareResult struct {
	TargetDate      string          `json:"target_date"`
	KPI             compare.KPI     `json:"kpi"`
	Comparison      []compare.Row   `json:"comparison"`
	PitchUsageToday []compare.Usage `json:"pitch_usage_today"`
	PitchUsageTrend []compare.Usage `json:"pitch_usage_trend"`
}

func runCompareCmd(c *cli.Context) error {
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

	day := models.FilterDate(season, target)
	if len(day) == 0 {
		color.Yellow("No pitches on %s (use windup dates to list game dates)", target.Format("2006-01-02"))
		return nil
	}
	trend, err := trendBaseline(c, cfg, season, target)
	if err != nil {
		return err
	}

	metrics := metricsFlag(c, cfg)
	pitchTypes := pitchTypesFlag(c, cfg, day)

	dayFilt := models.FilterPitchTypes(day, pitchTypes)
	trendFilt := models.FilterPitchTypes(trend, pitchTypes)

	result := compareResult{
		TargetDate:      target.Format("2006-01-02"),
		KPI:             compare.Summarize(dayFilt, trendFilt),
		Comparison:      compare.Compare(dayFilt, trendFilt, metrics, pitchTypes),
		PitchUsageToday: compare.PitchUsage(dayFilt),
		PitchUsageTrend: compare.PitchUsage(trendFilt),
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, row := range result.Comparison {
		deltaStr := formatSigned(row.Fmt, row.Delta)
		if formatter.Colored() && row.Delta != nil {
			direction := "up"
			if *row.Delta < 0 {
				direction = "down"
			}
			deltaStr = output.TrendColor(direction, row.HigherIsBetter, deltaStr)
		}
		rows = append(rows, []string{
			row.PitchLabel,
			row.MetricLabel,
			formatValue(row.Fmt, row.DayVal),
			formatValue(row.Fmt, row.TrendVal),
			deltaStr,
			formatSigned("%.1f%%", row.DeltaPct),
			fmt.Sprintf("%d/%d", row.NToday, row.NTrend),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Pitch Metrics vs Trend (%s)", result.TargetDate),
		[]string{"Pitch", "Metric", "Day", "Trend", "Delta", "Delta %", "N (day/trend)"},
		rows,
		[]string{
			fmt.Sprintf("Pitches: %d", result.KPI.PitchesToday),
			fmt.Sprintf("Trend Pitches: %d", result.KPI.PitchesTrend),
			fmt.Sprintf("Pitch Types: %d", result.KPI.PitchTypesToday),
			fmt.Sprintf("Batters Faced: %d", result.KPI.BattersFaced),
			"", "", "",
		},
		result,
	)

	return formatter.Output(table)
}
