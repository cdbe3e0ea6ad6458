package models

import (
	"math"
	"sort"
	"time"
)

// Pitch is a single thrown pitch from a Statcast export. Numeric columns use
// NaN for missing values so that "no data" is never conflated with zero.
type Pitch struct {
	GameDate  time.Time `json:"game_date"`
	PitchType string    `json:"pitch_type"`

	ReleaseSpeed     float64 `json:"release_speed"`
	ReleaseSpinRate  float64 `json:"release_spin_rate"`
	PfxX             float64 `json:"pfx_x"`
	PfxZ             float64 `json:"pfx_z"`
	ReleaseExtension float64 `json:"release_extension"`
	ReleasePosX      float64 `json:"release_pos_x"`
	ReleasePosZ      float64 `json:"release_pos_z"`
	EffectiveSpeed   float64 `json:"effective_speed"`
	PlateX           float64 `json:"plate_x"`
	PlateZ           float64 `json:"plate_z"`
	SpinAxis         float64 `json:"spin_axis"`

	Description string `json:"description"`
	BBType      string `json:"bb_type"`
	Events      string `json:"events"`
	Balls       int    `json:"balls"`
	Strikes     int    `json:"strikes"`
	Batter      uint32 `json:"batter"`

	// Zone is the Statcast strike-zone region (1-9 in zone, 11-14 chase
	// regions), NaN when untracked.
	Zone float64 `json:"zone"`

	LaunchSpeed float64 `json:"launch_speed"`
	LaunchAngle float64 `json:"launch_angle"`
	// LaunchSpeedAngle is the Statcast quality-of-contact bucket (1-6,
	// 6 = barrel), NaN when absent.
	LaunchSpeedAngle float64 `json:"launch_speed_angle"`
}

// DateKey returns the pitch's game date as an ISO yyyy-mm-dd string.
func (p Pitch) DateKey() string {
	return p.GameDate.Format("2006-01-02")
}

// InZone reports whether the pitch was in the strike zone (regions 1-9).
// Pitches with an untracked zone are not in the zone.
func (p Pitch) InZone() bool {
	return p.Zone >= 1 && p.Zone <= 9
}

// HasZone reports whether the pitch has a tracked strike-zone region.
func (p Pitch) HasZone() bool {
	return !math.IsNaN(p.Zone)
}

// IsTerminal reports whether this pitch ended a plate appearance.
// Statcast populates the events column only on the final pitch of a PA.
func (p Pitch) IsTerminal() bool {
	return p.Events != ""
}

// Statcast description and event families.
var (
	swingingStrikeDescs = map[string]bool{
		"swinging_strike":         true,
		"swinging_strike_blocked": true,
		"foul_tip":                true,
	}

	swingDescs = map[string]bool{
		"swinging_strike":         true,
		"swinging_strike_blocked": true,
		"foul_tip":                true,
		"foul":                    true,
		"foul_bunt":               true,
		"foul_pitchout":           true,
		"hit_into_play":           true,
		"hit_into_play_no_out":    true,
		"hit_into_play_score":     true,
	}

	// Strike-equivalent descriptions for first-pitch strike rate: called
	// strikes, swinging strike variants, and foul variants.
	strikeDescs = map[string]bool{
		"called_strike":           true,
		"swinging_strike":         true,
		"swinging_strike_blocked": true,
		"foul_tip":                true,
		"foul":                    true,
		"foul_bunt":               true,
		"foul_pitchout":           true,
	}

	walkEvents = map[string]bool{
		"walk":        true,
		"intent_walk": true,
	}

	strikeoutEvents = map[string]bool{
		"strikeout":             true,
		"strikeout_double_play": true,
	}
)

// IsSwingingStrike reports whether the pitch drew a swing and miss.
func (p Pitch) IsSwingingStrike() bool { return swingingStrikeDescs[p.Description] }

// IsSwing reports whether the batter offered at the pitch.
func (p Pitch) IsSwing() bool { return swingDescs[p.Description] }

// IsStrikeDesc reports whether the pitch result counts as a strike for
// first-pitch strike purposes.
func (p Pitch) IsStrikeDesc() bool { return strikeDescs[p.Description] }

// IsWalk reports whether the pitch ended a PA in a walk.
func (p Pitch) IsWalk() bool { return walkEvents[p.Events] }

// IsStrikeout reports whether the pitch ended a PA in a strikeout.
func (p Pitch) IsStrikeout() bool { return strikeoutEvents[p.Events] }

// FilterPitchTypes returns the pitches whose type is in the given set.
func FilterPitchTypes(pitches []Pitch, types []string) []Pitch {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []Pitch
	for _, p := range pitches {
		if want[p.PitchType] {
			out = append(out, p)
		}
	}
	return out
}

// FilterDate returns the pitches thrown on the given date.
func FilterDate(pitches []Pitch, date time.Time) []Pitch {
	var out []Pitch
	for _, p := range pitches {
		if sameDate(p.GameDate, date) {
			out = append(out, p)
		}
	}
	return out
}

// ExcludeDate returns the pitches not thrown on the given date.
func ExcludeDate(pitches []Pitch, date time.Time) []Pitch {
	var out []Pitch
	for _, p := range pitches {
		if !sameDate(p.GameDate, date) {
			out = append(out, p)
		}
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// GameDates returns the distinct game dates in ascending order.
func GameDates(pitches []Pitch) []time.Time {
	seen := make(map[string]time.Time)
	for _, p := range pitches {
		seen[p.DateKey()] = p.GameDate
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	dates := make([]time.Time, len(keys))
	for i, k := range keys {
		dates[i] = seen[k]
	}
	return dates
}

// MaxDate returns the latest game date, or the zero time for an empty set.
func MaxDate(pitches []Pitch) time.Time {
	var maxDate time.Time
	for _, p := range pitches {
		if p.GameDate.After(maxDate) {
			maxDate = p.GameDate
		}
	}
	return maxDate
}

// PitchTypes returns the distinct pitch-type codes observed, sorted.
func PitchTypes(pitches []Pitch) []string {
	seen := make(map[string]bool)
	for _, p := range pitches {
		if p.PitchType != "" {
			seen[p.PitchType] = true
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ByGame groups pitches by game date, ascending. Group order and the order of
// pitches within a group are deterministic.
func ByGame(pitches []Pitch) []Game {
	groups := make(map[string][]Pitch)
	for _, p := range pitches {
		key := p.DateKey()
		groups[key] = append(groups[key], p)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	games := make([]Game, len(keys))
	for i, k := range keys {
		games[i] = Game{Date: k, Pitches: groups[k]}
	}
	return games
}

// Game is one game's worth of pitches.
type Game struct {
	Date    string
	Pitches []Pitch
}
