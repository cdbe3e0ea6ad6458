package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/analyzer/trendtable"
)

func tableCmd() *cli.Command {
	return &cli.Command{
		Name:      "table",
		Aliases:   []string{"tbl"},
		Usage:     "Season vs rolling-window view of every stat in the catalog",
		ArgsUsage: "<season.csv>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Rolling window size in days",
			},
			&cli.StringFlag{
				Name:  "group",
				Usage: "Show only one stat group (stuff, movement, mechanics, discipline, contact, results)",
			},
		},
		Action: runTableCmd,
	}
}

func runTableCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	season, err := loadSeason(c, cfg)
	if err != nil {
		return err
	}

	window := cfg.Signals.WindowDays
	if c.IsSet("window") {
		window = c.Int("window")
	}
	if window <= 0 {
		return fmt.Errorf("--window must be positive, got %d", window)
	}
	group := c.String("group")

	t := trendtable.Build(season, window)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, row := range t.Rows {
		if group != "" && row.Group != group {
			continue
		}
		deltaStr := formatSigned(row.Fmt, row.Delta)
		if formatter.Colored() && row.Delta != nil {
			direction := "up"
			if *row.Delta < 0 {
				direction = "down"
			}
			deltaStr = output.TrendColor(direction, row.HigherIsBetter, deltaStr)
		}
		rows = append(rows, []string{
			row.Group,
			row.Label,
			formatValue(row.Fmt, row.Season),
			formatValue(row.Fmt, row.Rolling),
			deltaStr,
			formatSigned("%.1f%%", row.DeltaPct),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Trend Table (season %s to %s, window %dd)",
			t.Season.FirstDate, t.Season.LastDate, t.WindowDays),
		[]string{"Group", "Stat", "Season", fmt.Sprintf("Last %dd", t.WindowDays), "Delta", "Delta %"},
		rows,
		[]string{
			fmt.Sprintf("Season Games: %d", t.Season.Games),
			fmt.Sprintf("Window Games: %d", t.Rolling.Games),
			"", "", "", "",
		},
		t,
	)

	return formatter.Output(table)
}
