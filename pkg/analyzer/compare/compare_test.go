package compare

import (
	"math"
	"testing"

	"github.com/statlines/windup/pkg/models"
)

func ff(speed float64) models.Pitch {
	return models.Pitch{PitchType: "FF", ReleaseSpeed: speed}
}

func TestCompareDelta(t *testing.T) {
	day := []models.Pitch{ff(95), ff(97)}
	trend := []models.Pitch{ff(94), ff(94), ff(94)}

	rows := Compare(day, trend, []string{"release_speed"}, []string{"FF"})
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.PitchType != "FF" || r.Metric != "release_speed" {
		t.Errorf("unexpected row identity: %+v", r)
	}
	if r.DayVal == nil || *r.DayVal != 96 {
		t.Errorf("day_val = %v, want 96", r.DayVal)
	}
	if r.TrendVal == nil || *r.TrendVal != 94 {
		t.Errorf("trend_val = %v, want 94", r.TrendVal)
	}
	if r.Delta == nil || *r.Delta != 2 {
		t.Errorf("delta = %v, want 2", r.Delta)
	}
	if r.DeltaPct == nil || math.Abs(*r.DeltaPct-2.0/94*100) > 1e-9 {
		t.Errorf("delta_pct = %v", r.DeltaPct)
	}
	if r.NToday != 2 || r.NTrend != 3 {
		t.Errorf("sample sizes = %d/%d, want 2/3", r.NToday, r.NTrend)
	}
}

func TestCompareSkipsAbsentPitchTypes(t *testing.T) {
	day := []models.Pitch{ff(95)}
	trend := []models.Pitch{{PitchType: "SL", ReleaseSpeed: 86}}

	rows := Compare(day, trend, []string{"release_speed"}, []string{"FF", "SL"})
	for _, r := range rows {
		if r.PitchType == "SL" {
			t.Error("pitch types not thrown today should be skipped")
		}
	}
}

func TestCompareMissingTrendSide(t *testing.T) {
	day := []models.Pitch{ff(95)}

	rows := Compare(day, nil, []string{"release_speed"}, []string{"FF"})
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.DayVal == nil {
		t.Fatal("day_val should be set")
	}
	if r.TrendVal != nil || r.Delta != nil || r.DeltaPct != nil {
		t.Error("missing trend side should yield null trend, delta and delta_pct")
	}
}

func TestCompareSkipsUndefinedDayMean(t *testing.T) {
	p := ff(math.NaN())
	rows := Compare([]models.Pitch{p}, nil, []string{"release_speed"}, []string{"FF"})
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0 when the day mean is undefined", len(rows))
	}
}

func TestCompareUnknownMetricSkipped(t *testing.T) {
	rows := Compare([]models.Pitch{ff(95)}, nil, []string{"nonsense"}, []string{"FF"})
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0 for unknown metrics", len(rows))
	}
}

func TestPitchUsageOrder(t *testing.T) {
	pitches := []models.Pitch{
		{PitchType: "SL"}, {PitchType: "FF"}, {PitchType: "FF"},
		{PitchType: "CH"}, {PitchType: ""},
	}
	usage := PitchUsage(pitches)
	if len(usage) != 3 {
		t.Fatalf("len = %d, want 3", len(usage))
	}
	if usage[0].PitchType != "FF" || usage[0].Count != 2 {
		t.Errorf("top usage = %+v", usage[0])
	}
	// CH and SL tie at one; code order breaks the tie.
	if usage[1].PitchType != "CH" || usage[2].PitchType != "SL" {
		t.Errorf("tie break order = %q, %q", usage[1].PitchType, usage[2].PitchType)
	}
}

func TestSummarize(t *testing.T) {
	day := []models.Pitch{
		{PitchType: "FF", Batter: 660271},
		{PitchType: "FF", Batter: 660271},
		{PitchType: "SL", Batter: 545361},
	}
	trend := []models.Pitch{{PitchType: "FF"}, {PitchType: "FF"}}

	kpi := Summarize(day, trend)
	if kpi.PitchesToday != 3 || kpi.PitchesTrend != 2 {
		t.Errorf("pitch counts = %d/%d", kpi.PitchesToday, kpi.PitchesTrend)
	}
	if kpi.PitchTypesToday != 2 {
		t.Errorf("pitch types = %d, want 2", kpi.PitchTypesToday)
	}
	if kpi.BattersFaced != 2 {
		t.Errorf("batters faced = %d, want 2", kpi.BattersFaced)
	}
}
