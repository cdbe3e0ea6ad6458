package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/analyzer/series"
	"github.com/statlines/windup/pkg/catalog"
)

func seriesCmd() *cli.Command {
	return &cli.Command{
		Name:      "series",
		Aliases:   []string{"ts"},
		Usage:     "Build per-game, per-pitch-type time series for plotting",
		ArgsUsage: "<season.csv>",
		Flags: []cli.Flag{
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
		},
		Action: runSeriesCmd,
	}
}

func runSeriesCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	season, err := loadSeason(c, cfg)
	if err != nil {
		return err
	}

	metrics := metricsFlag(c, cfg)
	pitchTypes := pitchTypesFlag(c, cfg, season)

	result := series.Build(season, metrics, pitchTypes)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(result)
	}

	for _, metric := range metrics {
		points := result[metric]
		if len(points) == 0 {
			continue
		}
		entry, ok := catalog.Metric(metric)
		if !ok {
			continue
		}
		var rows [][]string
		for _, pt := range points {
			rows = append(rows, []string{
				pt.GameDate,
				pt.PitchLabel,
				fmt.Sprintf(entry.Fmt, pt.Value),
			})
		}
		table := output.NewTable(
			fmt.Sprintf("%s by Game", entry.Label),
			[]string{"Date", "Pitch", entry.Unit},
			rows,
			nil,
			nil,
		)
		if err := formatter.Output(table); err != nil {
			return err
		}
	}
	return nil
}
