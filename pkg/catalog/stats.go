package catalog

// Mode is how a table-view stat is computed from pitch-level data.
type Mode string

const (
	// ModeColumn takes the mean of a raw metric column.
	ModeColumn Mode = "column"
	// ModeOutcome reads the stat from the outcome aggregator.
	ModeOutcome Mode = "outcome"
)

// Stat is one entry of the full table-view catalog.
type Stat struct {
	Key            string `json:"key"`
	Label          string `json:"label"`
	Unit           string `json:"unit"`
	Group          string `json:"group"`
	HigherIsBetter *bool  `json:"higher_is_better"`
	Fmt            string `json:"fmt"`
	Mode           Mode   `json:"mode"`
}

// metricGroups assigns display groups to raw metric columns.
var metricGroups = map[string]string{
	"release_speed":     "stuff",
	"release_spin_rate": "stuff",
	"effective_speed":   "stuff",
	"pfx_x":             "movement",
	"pfx_z":             "movement",
	"release_extension": "mechanics",
	"release_pos_x":     "mechanics",
	"release_pos_z":     "mechanics",
}

// outcomeGroups assigns display groups to outcome stats.
var outcomeGroups = map[string]string{
	"whiff_pct":            "discipline",
	"swstr_pct":            "discipline",
	"chase_pct":            "discipline",
	"zone_pct":             "discipline",
	"iz_whiff_pct":         "discipline",
	"oz_whiff_pct":         "discipline",
	"two_strike_whiff_pct": "discipline",
	"fps_pct":              "discipline",
	"exit_velo":            "contact",
	"hhr_pct":              "contact",
	"barrel_pct":           "contact",
	"gb_pct":               "contact",
	"fb_pct":               "contact",
	"bb_per_9":             "results",
	"k_per_9":              "results",
	"rp_consistency":       "mechanics",
}

// Stats returns the full stat catalog used by the table view: every raw
// metric (column-mean mode) followed by every outcome stat.
func Stats() []Stat {
	out := make([]Stat, 0, len(Metrics)+len(Outcomes))
	for _, e := range Metrics {
		out = append(out, Stat{
			Key:            e.Key,
			Label:          e.Label,
			Unit:           e.Unit,
			Group:          metricGroups[e.Key],
			HigherIsBetter: e.HigherIsBetter,
			Fmt:            e.Fmt,
			Mode:           ModeColumn,
		})
	}
	for _, e := range Outcomes {
		out = append(out, Stat{
			Key:            e.Key,
			Label:          e.Label,
			Unit:           e.Unit,
			Group:          outcomeGroups[e.Key],
			HigherIsBetter: e.HigherIsBetter,
			Fmt:            e.Fmt,
			Mode:           ModeOutcome,
		})
	}
	return out
}
