// Package features reshapes pitch-level data into a per-game wide table of
// regression predictors and outcomes: overall metric means, per-pitch-type
// variants, and outcome aggregates, outer-joined on game date.
package features

import (
	"fmt"

	"github.com/statlines/windup/pkg/analyzer/outcome"
	"github.com/statlines/windup/pkg/catalog"
	"github.com/statlines/windup/pkg/frame"
	"github.com/statlines/windup/pkg/models"
	"github.com/statlines/windup/pkg/stats"
)

// Column describes one feature column for client-side pickers.
type Column struct {
	Name  string `json:"col"`
	Label string `json:"label"`
}

// Build assembles the regression feature table for a season dataset. Every
// date present in any contributing sub-table survives the outer join, with
// missing cells staying missing. The returned columns carry display labels
// resolved against the catalogs.
func Build(season []models.Pitch) (*frame.Frame, []Column) {
	f := frame.New()
	if len(season) == 0 {
		return f, nil
	}

	pitchTypes := models.PitchTypes(season)
	games := models.ByGame(season)

	// Overall per-game metric means.
	for _, key := range catalog.MetricKeys() {
		short, _ := catalog.ShortName(key)
		for _, g := range games {
			f.Set(short, g.Date, gameMean(g.Pitches, key))
		}
	}

	// Per-pitch-type variants, suffixed with the type code.
	for _, pt := range pitchTypes {
		sub := models.FilterPitchTypes(season, []string{pt})
		for _, key := range catalog.MetricKeys() {
			short, _ := catalog.ShortName(key)
			col := fmt.Sprintf("%s_%s", short, pt)
			for _, g := range models.ByGame(sub) {
				f.Set(col, g.Date, gameMean(g.Pitches, key))
			}
		}
	}

	// Per-game outcome aggregates.
	for _, g := range outcome.ByGame(season) {
		for _, key := range catalog.OutcomeKeys() {
			f.Set(key, g.GameDate, models.Unsafe(g.Get(key)))
		}
	}

	cols := make([]Column, 0, len(f.Columns()))
	for _, name := range f.Columns() {
		cols = append(cols, Column{
			Name:  name,
			Label: catalog.FeatureLabel(name, pitchTypes),
		})
	}
	return f, cols
}

func gameMean(pitches []models.Pitch, metric string) float64 {
	var vals []float64
	for _, p := range pitches {
		if v, ok := catalog.MetricValue(p, metric); ok {
			vals = append(vals, v)
		}
	}
	return stats.Mean(vals)
}
