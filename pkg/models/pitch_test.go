package models

import (
	"math"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInZone(t *testing.T) {
	tests := []struct {
		name string
		zone float64
		want bool
	}{
		{"heart", 5, true},
		{"corner", 9, true},
		{"low edge", 1, true},
		{"chase region", 11, false},
		{"chase high", 14, false},
		{"untracked", math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pitch{Zone: tt.zone}
			if got := p.InZone(); got != tt.want {
				t.Errorf("InZone() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasZone(t *testing.T) {
	if (Pitch{Zone: math.NaN()}).HasZone() {
		t.Error("untracked zone should report HasZone() = false")
	}
	if !(Pitch{Zone: 12}).HasZone() {
		t.Error("chase-region zone should report HasZone() = true")
	}
}

func TestDescriptionFamilies(t *testing.T) {
	tests := []struct {
		desc     string
		swing    bool
		whiff    bool
		strikeEq bool
	}{
		{"swinging_strike", true, true, true},
		{"swinging_strike_blocked", true, true, true},
		{"foul_tip", true, true, true},
		{"foul", true, false, true},
		{"called_strike", false, false, true},
		{"ball", false, false, false},
		{"hit_into_play", true, false, false},
		{"hit_by_pitch", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			p := Pitch{Description: tt.desc}
			if p.IsSwing() != tt.swing {
				t.Errorf("IsSwing() = %v, want %v", p.IsSwing(), tt.swing)
			}
			if p.IsSwingingStrike() != tt.whiff {
				t.Errorf("IsSwingingStrike() = %v, want %v", p.IsSwingingStrike(), tt.whiff)
			}
			if p.IsStrikeDesc() != tt.strikeEq {
				t.Errorf("IsStrikeDesc() = %v, want %v", p.IsStrikeDesc(), tt.strikeEq)
			}
		})
	}
}

func TestEventFamilies(t *testing.T) {
	if !(Pitch{Events: "walk"}).IsWalk() || !(Pitch{Events: "intent_walk"}).IsWalk() {
		t.Error("walk events not recognized")
	}
	if !(Pitch{Events: "strikeout"}).IsStrikeout() || !(Pitch{Events: "strikeout_double_play"}).IsStrikeout() {
		t.Error("strikeout events not recognized")
	}
	if (Pitch{Events: "single"}).IsWalk() {
		t.Error("single should not be a walk")
	}
	if (Pitch{}).IsTerminal() {
		t.Error("pitch without events should not be terminal")
	}
	if !(Pitch{Events: "field_out"}).IsTerminal() {
		t.Error("pitch with events should be terminal")
	}
}

func TestFilterPitchTypes(t *testing.T) {
	pitches := []Pitch{
		{PitchType: "FF"},
		{PitchType: "SL"},
		{PitchType: "FF"},
		{PitchType: "CH"},
	}
	got := FilterPitchTypes(pitches, []string{"FF", "CH"})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, p := range got {
		if p.PitchType == "SL" {
			t.Error("SL should be filtered out")
		}
	}
}

func TestFilterAndExcludeDate(t *testing.T) {
	d1, d2 := date("2025-04-01"), date("2025-04-05")
	pitches := []Pitch{
		{GameDate: d1}, {GameDate: d1}, {GameDate: d2},
	}

	if got := FilterDate(pitches, d1); len(got) != 2 {
		t.Errorf("FilterDate len = %d, want 2", len(got))
	}
	if got := ExcludeDate(pitches, d1); len(got) != 1 {
		t.Errorf("ExcludeDate len = %d, want 1", len(got))
	}
	// Time-of-day must not matter.
	noon := d1.Add(12 * time.Hour)
	if got := FilterDate(pitches, noon); len(got) != 2 {
		t.Errorf("FilterDate with time component len = %d, want 2", len(got))
	}
}

func TestGameDatesSorted(t *testing.T) {
	pitches := []Pitch{
		{GameDate: date("2025-05-10")},
		{GameDate: date("2025-04-01")},
		{GameDate: date("2025-05-10")},
		{GameDate: date("2025-04-20")},
	}
	dates := GameDates(pitches)
	if len(dates) != 3 {
		t.Fatalf("len = %d, want 3", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Errorf("dates not ascending at %d", i)
		}
	}
}

func TestMaxDate(t *testing.T) {
	if !MaxDate(nil).IsZero() {
		t.Error("MaxDate of empty input should be zero")
	}
	pitches := []Pitch{
		{GameDate: date("2025-04-01")},
		{GameDate: date("2025-06-15")},
		{GameDate: date("2025-05-01")},
	}
	if got := MaxDate(pitches); !got.Equal(date("2025-06-15")) {
		t.Errorf("MaxDate = %v", got)
	}
}

func TestPitchTypes(t *testing.T) {
	pitches := []Pitch{
		{PitchType: "SL"}, {PitchType: "FF"}, {PitchType: ""}, {PitchType: "FF"},
	}
	got := PitchTypes(pitches)
	want := []string{"FF", "SL"}
	if len(got) != len(want) {
		t.Fatalf("PitchTypes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PitchTypes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestByGame(t *testing.T) {
	pitches := []Pitch{
		{GameDate: date("2025-04-05"), PitchType: "FF"},
		{GameDate: date("2025-04-01"), PitchType: "SL"},
		{GameDate: date("2025-04-05"), PitchType: "CH"},
	}
	games := ByGame(pitches)
	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}
	if games[0].Date != "2025-04-01" || games[1].Date != "2025-04-05" {
		t.Errorf("games out of order: %q, %q", games[0].Date, games[1].Date)
	}
	if len(games[1].Pitches) != 2 {
		t.Errorf("second game has %d pitches, want 2", len(games[1].Pitches))
	}
}
