// Package trendtable assembles rolling-vs-season comparison rows across the
// full stat catalog, together with window metadata and the signal report.
package trendtable

import (
	"math"

	"github.com/statlines/windup/pkg/analyzer/outcome"
	"github.com/statlines/windup/pkg/analyzer/signal"
	"github.com/statlines/windup/pkg/catalog"
	"github.com/statlines/windup/pkg/models"
	"github.com/statlines/windup/pkg/stats"
)

// Row is one stat's season-vs-rolling comparison.
type Row struct {
	Key            string   `json:"key"`
	Label          string   `json:"label"`
	Unit           string   `json:"unit"`
	Group          string   `json:"group"`
	Season         *float64 `json:"season"`
	Rolling        *float64 `json:"rolling"`
	Delta          *float64 `json:"delta"`
	DeltaPct       *float64 `json:"delta_pct"`
	HigherIsBetter *bool    `json:"higher_is_better"`
	Fmt            string   `json:"fmt"`
}

// Window describes one side's date coverage.
type Window struct {
	FirstDate string `json:"first_date"`
	LastDate  string `json:"last_date"`
	Games     int    `json:"games"`
}

// Table is the full table-view output.
type Table struct {
	WindowDays int            `json:"window_days"`
	Season     Window         `json:"season"`
	Rolling    Window         `json:"rolling"`
	Rows       []Row          `json:"rows"`
	Catalog    []catalog.Stat `json:"catalog"`
	Signals    *signal.Report `json:"signals"`
}

// Build computes season-wide and rolling-window values for every stat in the
// catalog. Rows whose season value is undefined are omitted.
func Build(season []models.Pitch, windowDays int) *Table {
	maxDate := models.MaxDate(season)
	cutoff := maxDate.AddDate(0, 0, -windowDays)

	var rolling []models.Pitch
	for _, p := range season {
		if p.GameDate.After(cutoff) {
			rolling = append(rolling, p)
		}
	}

	t := &Table{
		WindowDays: windowDays,
		Season:     describeWindow(season),
		Rolling:    describeWindow(rolling),
		Catalog:    catalog.Stats(),
		Signals:    signal.Detect(season, windowDays),
	}

	seasonOut := outcome.Aggregate(season)
	rollingOut := outcome.Aggregate(rolling)

	for _, st := range t.Catalog {
		var seasonVal, rollingVal float64
		switch st.Mode {
		case catalog.ModeColumn:
			seasonVal = columnMean(season, st.Key)
			rollingVal = columnMean(rolling, st.Key)
		case catalog.ModeOutcome:
			seasonVal = models.Unsafe(seasonOut.Get(st.Key))
			rollingVal = models.Unsafe(rollingOut.Get(st.Key))
		}

		if math.IsNaN(seasonVal) {
			continue
		}

		delta := rollingVal - seasonVal
		deltaPct := math.NaN()
		if !math.IsNaN(rollingVal) && seasonVal != 0 {
			deltaPct = delta / math.Abs(seasonVal) * 100
		}

		t.Rows = append(t.Rows, Row{
			Key:            st.Key,
			Label:          st.Label,
			Unit:           st.Unit,
			Group:          st.Group,
			Season:         models.Safe(seasonVal),
			Rolling:        models.Safe(rollingVal),
			Delta:          models.Safe(delta),
			DeltaPct:       models.Safe(deltaPct),
			HigherIsBetter: st.HigherIsBetter,
			Fmt:            st.Fmt,
		})
	}
	return t
}

func describeWindow(pitches []models.Pitch) Window {
	dates := models.GameDates(pitches)
	w := Window{Games: len(dates)}
	if len(dates) > 0 {
		w.FirstDate = dates[0].Format("2006-01-02")
		w.LastDate = dates[len(dates)-1].Format("2006-01-02")
	}
	return w
}

func columnMean(pitches []models.Pitch, key string) float64 {
	var vals []float64
	for _, p := range pitches {
		if v, ok := catalog.MetricValue(p, key); ok {
			vals = append(vals, v)
		}
	}
	return stats.Mean(vals)
}
