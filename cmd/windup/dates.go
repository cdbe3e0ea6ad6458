package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/models"
)

func datesCmd() *cli.Command {
	return &cli.Command{
		Name:      "dates",
		Usage:     "List game dates and pitch counts in a season export",
		ArgsUsage: "<season.csv>",
		Action:    runDatesCmd,
	}
}

type gameDate struct {
	GameDate string `json:"game_date"`
	Pitches  int    `json:"pitches"`
}

func runDatesCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	season, err := loadSeason(c, cfg)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, p := range season {
		counts[p.DateKey()]++
	}

	var result []gameDate
	var rows [][]string
	for _, d := range models.GameDates(season) {
		key := d.Format("2006-01-02")
		result = append(result, gameDate{GameDate: key, Pitches: counts[key]})
		rows = append(rows, []string{key, fmt.Sprintf("%d", counts[key])})
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		fmt.Sprintf("Game Dates (%d games, %d pitches)", len(result), len(season)),
		[]string{"Date", "Pitches"},
		rows,
		nil,
		result,
	)
	return formatter.Output(table)
}
