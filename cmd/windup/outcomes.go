package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/analyzer/compare"
	"github.com/statlines/windup/pkg/analyzer/outcome"
	"github.com/statlines/windup/pkg/catalog"
	"github.com/statlines/windup/pkg/models"
)

func outcomesCmd() *cli.Command {
	return &cli.Command{
		Name:      "outcomes",
		Aliases:   []string{"out"},
		Usage:     "Summarize outcome rate stats for a game against the trend baseline",
		ArgsUsage: "<season.csv>",
		Flags:     trendFlags(),
		Action:    runOutcomesCmd,
	}
}

type outcomesResult struct {
	TargetDate      string              `json:"target_date"`
	DayOutcomes     outcome.Stats       `json:"day_outcomes"`
	TrendOutcomes   outcome.Stats       `json:"trend_outcomes"`
	PerGameOutcomes []outcome.GameStats `json:"per_game_outcomes"`
	PitchUsageToday []compare.Usage     `json:"pitch_usage_today"`
	PitchUsageTrend []compare.Usage     `json:"pitch_usage_trend"`
}

func runOutcomesCmd(c *cli.Context) error {
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

	result := outcomesResult{
		TargetDate:      target.Format("2006-01-02"),
		DayOutcomes:     outcome.Aggregate(day),
		TrendOutcomes:   outcome.Aggregate(trend),
		PerGameOutcomes: outcome.ByGame(season),
		PitchUsageToday: compare.PitchUsage(day),
		PitchUsageTrend: compare.PitchUsage(trend),
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, key := range catalog.OutcomeKeys() {
		entry, _ := catalog.Outcome(key)
		dayVal := result.DayOutcomes.Get(key)
		trendVal := result.TrendOutcomes.Get(key)

		var delta *float64
		if dayVal != nil && trendVal != nil {
			d := *dayVal - *trendVal
			delta = &d
		}
		deltaStr := formatSigned(entry.Fmt, delta)
		if formatter.Colored() && delta != nil {
			direction := "up"
			if *delta < 0 {
				direction = "down"
			}
			deltaStr = output.TrendColor(direction, entry.HigherIsBetter, deltaStr)
		}

		rows = append(rows, []string{
			entry.Label,
			formatValue(entry.Fmt, dayVal),
			formatValue(entry.Fmt, trendVal),
			deltaStr,
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Outcomes vs Trend (%s)", result.TargetDate),
		[]string{"Outcome", "Day", "Trend", "Delta"},
		rows,
		nil,
		result,
	)

	return formatter.Output(table)
}
