package trendtable

import (
	"math"
	"testing"
	"time"

	"github.com/statlines/windup/pkg/models"
)

func pitch(day string, speed float64) models.Pitch {
	d, _ := time.Parse("2006-01-02", day)
	return models.Pitch{
		GameDate:         d,
		PitchType:        "FF",
		ReleaseSpeed:     speed,
		ReleaseSpinRate:  math.NaN(),
		PfxX:             math.NaN(),
		PfxZ:             math.NaN(),
		ReleaseExtension: math.NaN(),
		ReleasePosX:      math.NaN(),
		ReleasePosZ:      math.NaN(),
		EffectiveSpeed:   math.NaN(),
		PlateX:           math.NaN(),
		PlateZ:           math.NaN(),
		SpinAxis:         math.NaN(),
		Zone:             math.NaN(),
		LaunchSpeed:      math.NaN(),
		LaunchAngle:      math.NaN(),
		LaunchSpeedAngle: math.NaN(),
	}
}

func TestBuildWindows(t *testing.T) {
	season := []models.Pitch{
		pitch("2025-04-01", 92),
		pitch("2025-04-15", 93),
		pitch("2025-05-01", 95),
	}
	table := Build(season, 14)

	if table.WindowDays != 14 {
		t.Errorf("window days = %d", table.WindowDays)
	}
	if table.Season.Games != 3 || table.Season.FirstDate != "2025-04-01" || table.Season.LastDate != "2025-05-01" {
		t.Errorf("season window = %+v", table.Season)
	}
	// Only the last game falls inside 14 days of the max date.
	if table.Rolling.Games != 1 || table.Rolling.FirstDate != "2025-05-01" {
		t.Errorf("rolling window = %+v", table.Rolling)
	}
	if table.Signals == nil {
		t.Error("signal report should always be attached")
	}
	if len(table.Catalog) == 0 {
		t.Error("catalog should be attached for clients")
	}
}

func TestBuildRowValues(t *testing.T) {
	season := []models.Pitch{
		pitch("2025-04-01", 90),
		pitch("2025-04-02", 90),
		pitch("2025-05-01", 96),
	}
	table := Build(season, 7)

	var velo *Row
	for i := range table.Rows {
		if table.Rows[i].Key == "release_speed" {
			velo = &table.Rows[i]
		}
	}
	if velo == nil {
		t.Fatal("release_speed row missing")
	}
	if velo.Season == nil || *velo.Season != 92 {
		t.Errorf("season = %v, want 92", velo.Season)
	}
	if velo.Rolling == nil || *velo.Rolling != 96 {
		t.Errorf("rolling = %v, want 96", velo.Rolling)
	}
	if velo.Delta == nil || *velo.Delta != 4 {
		t.Errorf("delta = %v, want 4", velo.Delta)
	}
	if velo.DeltaPct == nil || math.Abs(*velo.DeltaPct-4.0/92*100) > 1e-9 {
		t.Errorf("delta_pct = %v", velo.DeltaPct)
	}
}

func TestBuildOmitsUndefinedSeasonStats(t *testing.T) {
	// Fastballs with nothing but velocity: spin, movement and every outcome
	// denominator are undefined season-wide.
	season := []models.Pitch{pitch("2025-04-01", 92), pitch("2025-04-02", 93)}
	table := Build(season, 7)

	for _, r := range table.Rows {
		if r.Season == nil {
			t.Errorf("row %q has a nil season value; undefined stats should be omitted", r.Key)
		}
		if r.Key == "release_spin_rate" || r.Key == "exit_velo" {
			t.Errorf("row %q should have been omitted", r.Key)
		}
	}
}
