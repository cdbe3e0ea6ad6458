// Package series builds per-game-date, per-pitch-type metric series for
// charting.
package series

import (
	"math"
	"sort"

	"github.com/statlines/windup/pkg/catalog"
	"github.com/statlines/windup/pkg/models"
	"github.com/statlines/windup/pkg/stats"
)

// Point is one (game date, pitch type) mean for a metric.
type Point struct {
	GameDate   string  `json:"game_date"`
	PitchType  string  `json:"pitch_type"`
	PitchLabel string  `json:"pitch_label"`
	Value      float64 `json:"value"`
}

// Build produces one date-ordered series per requested metric, restricted to
// the requested pitch types. Groups whose mean is undefined are dropped.
// Unknown metric keys are skipped.
func Build(season []models.Pitch, metrics, pitchTypes []string) map[string][]Point {
	filtered := models.FilterPitchTypes(season, pitchTypes)
	result := make(map[string][]Point, len(metrics))

	for _, metric := range metrics {
		if _, known := catalog.Metric(metric); !known {
			continue
		}

		type groupKey struct {
			date string
			pt   string
		}
		groups := make(map[groupKey][]float64)
		for _, p := range filtered {
			v, _ := catalog.MetricValue(p, metric)
			key := groupKey{date: p.DateKey(), pt: p.PitchType}
			groups[key] = append(groups[key], v)
		}

		keys := make([]groupKey, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].date != keys[j].date {
				return keys[i].date < keys[j].date
			}
			return keys[i].pt < keys[j].pt
		})

		points := make([]Point, 0, len(keys))
		for _, k := range keys {
			mean := stats.Mean(groups[k])
			if math.IsNaN(mean) {
				continue
			}
			points = append(points, Point{
				GameDate:   k.date,
				PitchType:  k.pt,
				PitchLabel: catalog.PitchLabel(k.pt),
				Value:      mean,
			})
		}
		result[metric] = points
	}
	return result
}
