// Package signal flags statistically notable deviations between a recent
// rolling window and the full-season baseline: per-metric z-score arrows,
// composite breakout/divergence flags, and pitch-mix shifts.
package signal

import (
	"math"
	"sort"
	"time"

	"github.com/statlines/windup/pkg/analyzer/outcome"
	"github.com/statlines/windup/pkg/catalog"
	"github.com/statlines/windup/pkg/models"
	"github.com/statlines/windup/pkg/stats"
)

// Direction of a metric arrow.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionNone = ""
)

// Thresholds are fixed: |z| must exceed 1.0 strictly for an arrow, a usage
// share must move more than 10 points strictly for a mix shift.
const (
	zThreshold        = 1.0
	mixShiftThreshold = 10.0
	minStdDev         = 1e-6
)

// Metric is one tracked signal metric's verdict.
type Metric struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Direction   string   `json:"direction"`
	Z           *float64 `json:"z"`
	RollingMean *float64 `json:"rolling_mean"`
	SeasonMean  *float64 `json:"season_mean"`
	SeasonStd   *float64 `json:"season_std"`
	SeasonGames int      `json:"season_games"`
	WindowGames int      `json:"window_games"`
}

// MixShift is one pitch type whose usage share moved notably.
type MixShift struct {
	PitchType string  `json:"pitch_type"`
	Label     string  `json:"label"`
	SeasonPct float64 `json:"season_pct"`
	WindowPct float64 `json:"window_pct"`
	Diff      float64 `json:"diff"`
}

// Report is the full signal-detection output. A neutral report (no metrics,
// no flags) is returned when the season or window has too few games.
type Report struct {
	WindowDays    int        `json:"window_days"`
	SeasonGames   int        `json:"season_games"`
	WindowGames   int        `json:"window_games"`
	Metrics       []Metric   `json:"metrics"`
	Breakout      bool       `json:"breakout"`
	Divergence    bool       `json:"divergence"`
	PitchMixShift bool       `json:"pitch_mix_shift"`
	MixShifts     []MixShift `json:"mix_shifts"`
}

// trackedMetrics are the signal metrics in report order. Velocity reads the
// raw column; the rest come from the per-game outcome aggregates.
var trackedMetrics = []struct {
	key   string
	label string
}{
	{key: "velocity", label: "Velocity"},
	{key: "k_per_9", label: "K/9"},
	{key: "bb_per_9", label: "BB/9"},
	{key: "whiff_pct", label: "Whiff%"},
	{key: "exit_velo", label: "Exit Velocity"},
}

// Detect analyzes a season dataset against a rolling window of windowDays.
func Detect(season []models.Pitch, windowDays int) *Report {
	report := &Report{WindowDays: windowDays}
	if len(season) == 0 {
		return report
	}

	maxDate := models.MaxDate(season)
	cutoff := maxDate.AddDate(0, 0, -windowDays)

	seasonDates := models.GameDates(season)
	var windowDates []time.Time
	for _, d := range seasonDates {
		if d.After(cutoff) {
			windowDates = append(windowDates, d)
		}
	}
	report.SeasonGames = len(seasonDates)
	report.WindowGames = len(windowDates)

	if len(windowDates) < 3 || len(seasonDates) < 5 {
		return report
	}

	inWindow := make(map[string]bool, len(windowDates))
	for _, d := range windowDates {
		inWindow[d.Format("2006-01-02")] = true
	}

	perGame := gameSeries(season)
	arrows := make(map[string]string, len(trackedMetrics))

	for _, tm := range trackedMetrics {
		m := Metric{Key: tm.key, Label: tm.label}

		var seasonVals, windowVals []float64
		for _, g := range perGame {
			v, ok := g.values[tm.key]
			if !ok || math.IsNaN(v) {
				continue
			}
			seasonVals = append(seasonVals, v)
			if inWindow[g.date] {
				windowVals = append(windowVals, v)
			}
		}
		m.SeasonGames = len(seasonVals)
		m.WindowGames = len(windowVals)

		if len(seasonVals) >= 5 && len(windowVals) >= 2 {
			seasonMean := stats.Mean(seasonVals)
			seasonStd := stats.StdDev(seasonVals)
			rollingMean := stats.Mean(windowVals)

			m.SeasonMean = models.Safe(seasonMean)
			m.SeasonStd = models.Safe(seasonStd)
			m.RollingMean = models.Safe(rollingMean)

			if !math.IsNaN(seasonStd) && seasonStd >= minStdDev {
				z := (rollingMean - seasonMean) / seasonStd
				m.Z = models.Safe(z)
				switch {
				case z > zThreshold:
					m.Direction = DirectionUp
				case z < -zThreshold:
					m.Direction = DirectionDown
				}
			}
		}

		arrows[tm.key] = m.Direction
		report.Metrics = append(report.Metrics, m)
	}

	report.Breakout = arrows["velocity"] == DirectionUp &&
		arrows["whiff_pct"] == DirectionUp &&
		arrows["k_per_9"] == DirectionUp
	report.Divergence = arrows["velocity"] == DirectionDown &&
		arrows["bb_per_9"] == DirectionUp

	report.MixShifts = detectMixShift(season, inWindow)
	report.PitchMixShift = len(report.MixShifts) > 0

	return report
}

// gameEntry holds one game's per-metric values.
type gameEntry struct {
	date   string
	values map[string]float64
}

// gameSeries builds the per-game value of every tracked metric.
func gameSeries(season []models.Pitch) []gameEntry {
	outcomes := outcome.ByGame(season)
	velo := make(map[string][]float64)
	for _, p := range season {
		velo[p.DateKey()] = append(velo[p.DateKey()], p.ReleaseSpeed)
	}

	entries := make([]gameEntry, len(outcomes))
	for i, g := range outcomes {
		values := map[string]float64{
			"velocity": stats.Mean(velo[g.GameDate]),
		}
		for _, key := range []string{"k_per_9", "bb_per_9", "whiff_pct", "exit_velo"} {
			values[key] = models.Unsafe(g.Get(key))
		}
		entries[i] = gameEntry{date: g.GameDate, values: values}
	}
	return entries
}

// detectMixShift returns the pitch types whose usage share moved by more
// than the threshold between the rolling window and the full season.
func detectMixShift(season []models.Pitch, inWindow map[string]bool) []MixShift {
	seasonCounts := make(map[string]float64)
	windowCounts := make(map[string]float64)
	var seasonTotal, windowTotal float64

	for _, p := range season {
		if p.PitchType == "" {
			continue
		}
		seasonCounts[p.PitchType]++
		seasonTotal++
		if inWindow[p.DateKey()] {
			windowCounts[p.PitchType]++
			windowTotal++
		}
	}
	if seasonTotal == 0 || windowTotal == 0 {
		return nil
	}

	types := make([]string, 0, len(seasonCounts))
	for pt := range seasonCounts {
		types = append(types, pt)
	}
	sort.Strings(types)

	var shifts []MixShift
	for _, pt := range types {
		seasonPct := seasonCounts[pt] / seasonTotal * 100
		windowPct := windowCounts[pt] / windowTotal * 100
		diff := windowPct - seasonPct
		if math.Abs(diff) > mixShiftThreshold {
			shifts = append(shifts, MixShift{
				PitchType: pt,
				Label:     catalog.PitchLabel(pt),
				SeasonPct: seasonPct,
				WindowPct: windowPct,
				Diff:      diff,
			})
		}
	}
	return shifts
}
