package series

import (
	"math"
	"testing"
	"time"

	"github.com/statlines/windup/pkg/models"
)

func pitch(day, pt string, speed float64) models.Pitch {
	d, _ := time.Parse("2006-01-02", day)
	return models.Pitch{GameDate: d, PitchType: pt, ReleaseSpeed: speed}
}

func TestBuildOrdering(t *testing.T) {
	season := []models.Pitch{
		pitch("2025-04-10", "SL", 86),
		pitch("2025-04-01", "FF", 95),
		pitch("2025-04-01", "FF", 97),
		pitch("2025-04-10", "FF", 96),
	}

	result := Build(season, []string{"release_speed"}, []string{"FF", "SL"})
	points := result["release_speed"]
	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}

	// Date-major, pitch-type-minor ordering.
	if points[0].GameDate != "2025-04-01" || points[0].PitchType != "FF" {
		t.Errorf("points[0] = %+v", points[0])
	}
	if points[0].Value != 96 {
		t.Errorf("opening-day FF mean = %v, want 96", points[0].Value)
	}
	if points[1].PitchType != "FF" || points[2].PitchType != "SL" {
		t.Errorf("same-date ordering: %q then %q", points[1].PitchType, points[2].PitchType)
	}
}

func TestBuildFiltersPitchTypes(t *testing.T) {
	season := []models.Pitch{
		pitch("2025-04-01", "FF", 95),
		pitch("2025-04-01", "CH", 84),
	}
	result := Build(season, []string{"release_speed"}, []string{"FF"})
	for _, p := range result["release_speed"] {
		if p.PitchType != "FF" {
			t.Errorf("unexpected pitch type %q", p.PitchType)
		}
	}
}

func TestBuildDropsUndefinedGroups(t *testing.T) {
	season := []models.Pitch{pitch("2025-04-01", "FF", math.NaN())}
	result := Build(season, []string{"release_speed"}, []string{"FF"})
	if len(result["release_speed"]) != 0 {
		t.Error("groups with no finite readings should be dropped")
	}
}

func TestBuildSkipsUnknownMetrics(t *testing.T) {
	season := []models.Pitch{pitch("2025-04-01", "FF", 95)}
	result := Build(season, []string{"release_speed", "bogus"}, []string{"FF"})
	if _, ok := result["bogus"]; ok {
		t.Error("unknown metric keys should not appear in the result")
	}
	if len(result["release_speed"]) != 1 {
		t.Error("known metrics should still be built")
	}
}
