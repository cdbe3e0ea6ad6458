package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/analyzer/signal"
)

func signalsCmd() *cli.Command {
	return &cli.Command{
		Name:      "signals",
		Aliases:   []string{"sig"},
		Usage:     "Flag notable recent-form changes against the season baseline",
		ArgsUsage: "<season.csv>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Recent window size in days",
			},
		},
		Action: runSignalsCmd,
	}
}

func runSignalsCmd(c *cli.Context) error {
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

	report := signal.Detect(season, window)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(report)
	}

	if len(report.Metrics) == 0 {
		color.Yellow("Not enough games for signal detection (%d season, %d in window)",
			report.SeasonGames, report.WindowGames)
		return nil
	}

	var rows [][]string
	for _, m := range report.Metrics {
		rows = append(rows, []string{
			m.Label,
			arrow(m.Direction),
			formatValue("%.2f", m.Z),
			formatValue("%.2f", m.RollingMean),
			formatValue("%.2f", m.SeasonMean),
			fmt.Sprintf("%d/%d", m.WindowGames, m.SeasonGames),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Signals (last %d days vs season)", report.WindowDays),
		[]string{"Metric", "Dir", "Z", "Window Mean", "Season Mean", "Games (win/season)"},
		rows,
		nil,
		report,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	w := formatter.Writer()
	if report.Breakout {
		color.Green("BREAKOUT: velocity, whiffs and strikeouts all trending up")
	}
	if report.Divergence {
		color.Red("DIVERGENCE: velocity down while walks climb")
	}
	if report.PitchMixShift {
		color.Yellow("PITCH MIX SHIFT:")
		for _, s := range report.MixShifts {
			fmt.Fprintf(w, "  %s: %.1f%% season -> %.1f%% window (%+.1f pts)\n",
				s.Label, s.SeasonPct, s.WindowPct, s.Diff)
		}
	}
	if !report.Breakout && !report.Divergence && !report.PitchMixShift {
		fmt.Fprintln(w, "No composite flags raised.")
	}
	return nil
}
