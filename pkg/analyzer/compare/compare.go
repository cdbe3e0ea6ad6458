// Package compare computes day-vs-trend deltas for pitch metrics: for each
// requested pitch type and metric, today's mean against a trend baseline
// (rolling window or prior season), with sample sizes and display metadata.
package compare

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/statlines/windup/pkg/catalog"
	"github.com/statlines/windup/pkg/models"
	"github.com/statlines/windup/pkg/stats"
)

// Row is one pitch type x metric comparison.
type Row struct {
	PitchType      string   `json:"pitch_type"`
	PitchLabel     string   `json:"pitch_label"`
	Metric         string   `json:"metric"`
	MetricLabel    string   `json:"metric_label"`
	DayVal         *float64 `json:"day_val"`
	TrendVal       *float64 `json:"trend_val"`
	Delta          *float64 `json:"delta"`
	DeltaPct       *float64 `json:"delta_pct"`
	NToday         int      `json:"n_today"`
	NTrend         int      `json:"n_trend"`
	Fmt            string   `json:"fmt"`
	HigherIsBetter *bool    `json:"higher_is_better"`
}

// Usage is the pitch count for one pitch type.
type Usage struct {
	PitchType string `json:"pitch_type"`
	Label     string `json:"label"`
	Count     int    `json:"count"`
}

// KPI summarizes the day and trend datasets.
type KPI struct {
	PitchesToday    int `json:"pitches_today"`
	PitchesTrend    int `json:"pitches_trend"`
	PitchTypesToday int `json:"pitch_types"`
	BattersFaced    int `json:"batters_faced"`
}

// metricValues extracts a metric column for one pitch type.
func metricValues(pitches []models.Pitch, pitchType, metric string) []float64 {
	var out []float64
	for _, p := range pitches {
		if p.PitchType != pitchType {
			continue
		}
		if v, ok := catalog.MetricValue(p, metric); ok {
			out = append(out, v)
		}
	}
	return out
}

// Compare builds comparison rows for every requested pitch type and metric.
// Pitch types without pitches today are skipped entirely; metrics whose
// today-mean is undefined are skipped; a missing trend side yields null
// trend/delta values rather than dropping the row.
func Compare(day, trend []models.Pitch, metrics, pitchTypes []string) []Row {
	var rows []Row
	for _, pt := range pitchTypes {
		dayVals := false
		for _, p := range day {
			if p.PitchType == pt {
				dayVals = true
				break
			}
		}
		if !dayVals {
			continue
		}

		for _, metric := range metrics {
			cfg, known := catalog.Metric(metric)
			if !known {
				continue
			}

			dVals := metricValues(day, pt, metric)
			tVals := metricValues(trend, pt, metric)

			dMean := stats.Mean(dVals)
			if math.IsNaN(dMean) {
				continue
			}
			tMean := stats.Mean(tVals)

			delta := dMean - tMean
			deltaPct := math.NaN()
			if !math.IsNaN(tMean) && tMean != 0 {
				deltaPct = delta / math.Abs(tMean) * 100
			}

			rows = append(rows, Row{
				PitchType:      pt,
				PitchLabel:     catalog.PitchLabel(pt),
				Metric:         metric,
				MetricLabel:    cfg.Label,
				DayVal:         models.Safe(dMean),
				TrendVal:       models.Safe(tMean),
				Delta:          models.Safe(delta),
				DeltaPct:       models.Safe(deltaPct),
				NToday:         stats.Count(dVals),
				NTrend:         stats.Count(tVals),
				Fmt:            cfg.Fmt,
				HigherIsBetter: cfg.HigherIsBetter,
			})
		}
	}
	return rows
}

// PitchUsage counts pitches per type, most used first. Ties break on the
// pitch-type code so output order is deterministic.
func PitchUsage(pitches []models.Pitch) []Usage {
	counts := make(map[string]int)
	for _, p := range pitches {
		if p.PitchType != "" {
			counts[p.PitchType]++
		}
	}
	out := make([]Usage, 0, len(counts))
	for pt, n := range counts {
		out = append(out, Usage{PitchType: pt, Label: catalog.PitchLabel(pt), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PitchType < out[j].PitchType
	})
	return out
}

// Summarize builds the KPI block for a day and its trend baseline. Distinct
// batters are tracked in a bitmap since batter IDs are dense integers.
func Summarize(day, trend []models.Pitch) KPI {
	types := make(map[string]bool)
	batters := roaring.New()
	for _, p := range day {
		if p.PitchType != "" {
			types[p.PitchType] = true
		}
		if p.Batter != 0 {
			batters.Add(p.Batter)
		}
	}
	return KPI{
		PitchesToday:    len(day),
		PitchesTrend:    len(trend),
		PitchTypesToday: len(types),
		BattersFaced:    int(batters.GetCardinality()),
	}
}
