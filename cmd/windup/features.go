package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/analyzer/features"
	"github.com/statlines/windup/pkg/models"
)

func featuresCmd() *cli.Command {
	return &cli.Command{
		Name:      "features",
		Aliases:   []string{"feat"},
		Usage:     "Build the per-game regression feature table",
		ArgsUsage: "<season.csv>",
		Action:    runFeaturesCmd,
	}
}

type featuresResult struct {
	Columns []features.Column     `json:"columns"`
	Dates   []string              `json:"game_dates"`
	Rows    []map[string]*float64 `json:"rows"`
}

func runFeaturesCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	season, err := loadSeason(c, cfg)
	if err != nil {
		return err
	}

	f, columns := features.Build(season)

	result := featuresResult{
		Columns: columns,
		Dates:   f.Dates(),
	}
	for _, date := range result.Dates {
		row := make(map[string]*float64, len(columns))
		for _, col := range columns {
			row[col.Name] = models.Safe(f.Value(col.Name, date))
		}
		result.Rows = append(result.Rows, row)
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(result)
	}

	var rows [][]string
	for _, col := range columns {
		missing := f.MissingFraction(col.Name)
		rows = append(rows, []string{
			col.Name,
			col.Label,
			fmt.Sprintf("%.0f%%", (1-missing)*100),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Regression Features (%d games)", f.NumRows()),
		[]string{"Column", "Label", "Coverage"},
		rows,
		nil,
		result,
	)

	return formatter.Output(table)
}
