package features

import (
	"math"
	"testing"
	"time"

	"github.com/statlines/windup/pkg/models"
)

func pitch(day, pt string, speed float64) models.Pitch {
	d, _ := time.Parse("2006-01-02", day)
	p := models.Pitch{GameDate: d, PitchType: pt, ReleaseSpeed: speed}
	p.ReleaseSpinRate = math.NaN()
	p.PfxX = math.NaN()
	p.PfxZ = math.NaN()
	p.ReleaseExtension = math.NaN()
	p.ReleasePosX = math.NaN()
	p.ReleasePosZ = math.NaN()
	p.EffectiveSpeed = math.NaN()
	p.Zone = math.NaN()
	p.LaunchSpeed = math.NaN()
	p.LaunchAngle = math.NaN()
	p.LaunchSpeedAngle = math.NaN()
	return p
}

func TestBuildEmpty(t *testing.T) {
	f, cols := Build(nil)
	if f.NumRows() != 0 {
		t.Errorf("rows = %d, want 0", f.NumRows())
	}
	if len(cols) != 0 {
		t.Errorf("cols = %v, want none", cols)
	}
}

func TestBuildColumns(t *testing.T) {
	season := []models.Pitch{
		pitch("2025-04-01", "FF", 95),
		pitch("2025-04-01", "SL", 86),
		pitch("2025-04-05", "FF", 96),
	}
	f, cols := Build(season)

	for _, want := range []string{"velo", "velo_FF", "velo_SL", "whiff_pct", "k_per_9"} {
		if !f.HasColumn(want) {
			t.Errorf("column %q missing", want)
		}
	}

	labels := make(map[string]string, len(cols))
	for _, c := range cols {
		labels[c.Name] = c.Label
	}
	if labels["velo"] != "Velocity — All Pitches" {
		t.Errorf("velo label = %q", labels["velo"])
	}
	if labels["velo_SL"] != "Velocity — Slider" {
		t.Errorf("velo_SL label = %q", labels["velo_SL"])
	}
	if labels["whiff_pct"] != "Whiff%" {
		t.Errorf("whiff_pct label = %q", labels["whiff_pct"])
	}
}

func TestBuildDateRoundTrip(t *testing.T) {
	season := []models.Pitch{
		pitch("2025-04-05", "FF", 96),
		pitch("2025-04-01", "FF", 95),
	}
	f, _ := Build(season)

	dates := f.Dates()
	if len(dates) != 2 || dates[0] != "2025-04-01" || dates[1] != "2025-04-05" {
		t.Errorf("dates = %v", dates)
	}
}

func TestBuildValuesAndMissing(t *testing.T) {
	season := []models.Pitch{
		pitch("2025-04-01", "FF", 94),
		pitch("2025-04-01", "FF", 96),
		pitch("2025-04-05", "SL", 86),
	}
	f, _ := Build(season)

	if got := f.Value("velo", "2025-04-01"); got != 95 {
		t.Errorf("velo on 4/1 = %v, want 95", got)
	}
	if got := f.Value("velo_FF", "2025-04-01"); got != 95 {
		t.Errorf("velo_FF on 4/1 = %v, want 95", got)
	}
	// The FF column has no reading on the slider-only date; the outer join
	// keeps the row with the cell missing.
	if !math.IsNaN(f.Value("velo_FF", "2025-04-05")) {
		t.Error("velo_FF on 4/5 should be missing, not zero")
	}
	if got := f.MissingFraction("velo_FF"); got != 0.5 {
		t.Errorf("velo_FF missing fraction = %v, want 0.5", got)
	}
}
