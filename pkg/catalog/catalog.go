// Package catalog holds the static display metadata for pitch metrics,
// derived outcome statistics, and pitch-type codes. Everything here is fixed
// at process start and read-only.
package catalog

import (
	"fmt"

	"github.com/statlines/windup/pkg/models"
)

// Entry describes one stat's display metadata.
type Entry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
	// HigherIsBetter is nil for metrics with no inherent direction
	// (movement, release point).
	HigherIsBetter *bool  `json:"higher_is_better"`
	Fmt            string `json:"fmt"`
}

func better(v bool) *bool { return &v }

// Metrics is the raw pitch-metric catalog, in display order.
var Metrics = []Entry{
	{Key: "release_speed", Label: "Velocity", Unit: "mph", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "release_spin_rate", Label: "Spin Rate", Unit: "rpm", HigherIsBetter: better(true), Fmt: "%.0f"},
	{Key: "pfx_x", Label: "Horizontal Break", Unit: "in", HigherIsBetter: nil, Fmt: "%.2f"},
	{Key: "pfx_z", Label: "Vertical Break", Unit: "in", HigherIsBetter: nil, Fmt: "%.2f"},
	{Key: "release_extension", Label: "Extension", Unit: "ft", HigherIsBetter: better(true), Fmt: "%.2f"},
	{Key: "release_pos_x", Label: "Release Point X", Unit: "ft", HigherIsBetter: nil, Fmt: "%.2f"},
	{Key: "release_pos_z", Label: "Release Point Z", Unit: "ft", HigherIsBetter: nil, Fmt: "%.2f"},
	{Key: "effective_speed", Label: "Effective Velocity", Unit: "mph", HigherIsBetter: better(true), Fmt: "%.1f"},
}

// Outcomes is the derived rate-stat catalog, in display order.
var Outcomes = []Entry{
	{Key: "whiff_pct", Label: "Whiff%", Unit: "%", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "swstr_pct", Label: "SwStr%", Unit: "%", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "chase_pct", Label: "Chase%", Unit: "%", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "zone_pct", Label: "Zone%", Unit: "%", HigherIsBetter: nil, Fmt: "%.1f"},
	{Key: "iz_whiff_pct", Label: "In-Zone Whiff%", Unit: "%", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "oz_whiff_pct", Label: "Out-of-Zone Whiff%", Unit: "%", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "two_strike_whiff_pct", Label: "2-Strike Whiff%", Unit: "%", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "exit_velo", Label: "Exit Velocity", Unit: "mph", HigherIsBetter: better(false), Fmt: "%.1f"},
	{Key: "hhr_pct", Label: "Hard-Hit%", Unit: "%", HigherIsBetter: better(false), Fmt: "%.1f"},
	{Key: "barrel_pct", Label: "Barrel%", Unit: "%", HigherIsBetter: better(false), Fmt: "%.1f"},
	{Key: "gb_pct", Label: "GB%", Unit: "%", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "fb_pct", Label: "FB%", Unit: "%", HigherIsBetter: better(false), Fmt: "%.1f"},
	{Key: "bb_per_9", Label: "BB/9", Unit: "per 9", HigherIsBetter: better(false), Fmt: "%.2f"},
	{Key: "k_per_9", Label: "K/9", Unit: "per 9", HigherIsBetter: better(true), Fmt: "%.2f"},
	{Key: "fps_pct", Label: "First-Pitch Strike%", Unit: "%", HigherIsBetter: better(true), Fmt: "%.1f"},
	{Key: "rp_consistency", Label: "Release Consistency", Unit: "ft", HigherIsBetter: better(false), Fmt: "%.3f"},
}

var (
	metricIndex  = indexEntries(Metrics)
	outcomeIndex = indexEntries(Outcomes)
)

func indexEntries(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Key] = e
	}
	return m
}

// Metric looks up a raw pitch-metric entry by key.
func Metric(key string) (Entry, bool) {
	e, ok := metricIndex[key]
	return e, ok
}

// Outcome looks up an outcome-stat entry by key.
func Outcome(key string) (Entry, bool) {
	e, ok := outcomeIndex[key]
	return e, ok
}

// MetricKeys returns the raw metric keys in display order.
func MetricKeys() []string {
	keys := make([]string, len(Metrics))
	for i, e := range Metrics {
		keys[i] = e.Key
	}
	return keys
}

// OutcomeKeys returns the outcome-stat keys in display order.
func OutcomeKeys() []string {
	keys := make([]string, len(Outcomes))
	for i, e := range Outcomes {
		keys[i] = e.Key
	}
	return keys
}

// MetricLabel returns the display label for a metric key, or the key itself
// for unknown metrics.
func MetricLabel(key string) string {
	if e, ok := metricIndex[key]; ok {
		return e.Label
	}
	return key
}

// pitchTypeLabels maps Statcast pitch-type codes to display names.
var pitchTypeLabels = map[string]string{
	"FF": "4-Seam FB", "SI": "Sinker", "FC": "Cutter", "SL": "Slider",
	"CU": "Curveball", "KC": "Kn. Curve", "CH": "Changeup", "FS": "Splitter",
	"ST": "Sweeper", "SV": "Slurve", "KN": "Knuckleball", "EP": "Eephus",
	"SC": "Screwball", "FO": "Forkball", "PO": "Pitchout", "CS": "Slow Curve",
}

// PitchLabel returns the display name for a pitch-type code, falling back to
// the code itself.
func PitchLabel(code string) string {
	if label, ok := pitchTypeLabels[code]; ok {
		return label
	}
	return code
}

// shortNames maps raw metric keys to the short column names used in the
// regression feature table.
var shortNames = map[string]string{
	"release_speed":     "velo",
	"release_spin_rate": "spin",
	"pfx_x":             "break_h",
	"pfx_z":             "break_v",
	"release_extension": "ext",
	"release_pos_x":     "rel_x",
	"release_pos_z":     "rel_z",
	"effective_speed":   "eff_velo",
}

// ShortName returns the regression column short name for a metric key.
func ShortName(key string) (string, bool) {
	s, ok := shortNames[key]
	return s, ok
}

// MetricValue extracts a raw metric value from a pitch by catalog key.
// The second return is false for unknown keys.
func MetricValue(p models.Pitch, key string) (float64, bool) {
	switch key {
	case "release_speed":
		return p.ReleaseSpeed, true
	case "release_spin_rate":
		return p.ReleaseSpinRate, true
	case "pfx_x":
		return p.PfxX, true
	case "pfx_z":
		return p.PfxZ, true
	case "release_extension":
		return p.ReleaseExtension, true
	case "release_pos_x":
		return p.ReleasePosX, true
	case "release_pos_z":
		return p.ReleasePosZ, true
	case "effective_speed":
		return p.EffectiveSpeed, true
	default:
		return 0, false
	}
}

// FeatureLabel builds a human-readable label for a regression feature column
// by pattern-matching against the catalogs. Unknown columns fall back to the
// raw column name.
func FeatureLabel(col string, pitchTypes []string) string {
	if e, ok := outcomeIndex[col]; ok {
		return e.Label
	}
	for _, e := range Metrics {
		short := shortNames[e.Key]
		if col == short {
			return e.Label + " — All Pitches"
		}
		for _, pt := range pitchTypes {
			if col == fmt.Sprintf("%s_%s", short, pt) {
				return fmt.Sprintf("%s — %s", e.Label, PitchLabel(pt))
			}
		}
	}
	return col
}
