package loader

import (
	"math"
	"strings"
	"testing"
)

const sampleCSV = `pitch_type,game_date,release_speed,release_spin_rate,description,events,bb_type,balls,strikes,batter,zone,launch_speed,launch_angle,launch_speed_angle
FF,2025-04-01,95.3,2310,swinging_strike,,,0,0,660271,5,,,
SL,2025-04-01,86.1,null,ball,,,1,0,660271,13,,,
FF,2025-04-01,,NA,hit_into_play,field_out,ground_ball,2,2,660271,4,88.5,-12,3
`

func TestParse(t *testing.T) {
	pitches, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(pitches) != 3 {
		t.Fatalf("len = %d, want 3", len(pitches))
	}

	p := pitches[0]
	if p.PitchType != "FF" || p.DateKey() != "2025-04-01" {
		t.Errorf("identity = %q %q", p.PitchType, p.DateKey())
	}
	if p.ReleaseSpeed != 95.3 || p.ReleaseSpinRate != 2310 {
		t.Errorf("speed/spin = %v/%v", p.ReleaseSpeed, p.ReleaseSpinRate)
	}
	if p.Description != "swinging_strike" || p.Balls != 0 || p.Strikes != 0 {
		t.Errorf("count fields = %q %d-%d", p.Description, p.Balls, p.Strikes)
	}
	if p.Batter != 660271 || p.Zone != 5 {
		t.Errorf("batter/zone = %d/%v", p.Batter, p.Zone)
	}
	// Absent launch columns become NaN, never zero.
	if !math.IsNaN(p.LaunchSpeed) || !math.IsNaN(p.LaunchAngle) {
		t.Error("missing launch data should parse as NaN")
	}
	// Columns not present in the export at all are also NaN.
	if !math.IsNaN(p.PfxX) || !math.IsNaN(p.EffectiveSpeed) {
		t.Error("absent columns should parse as NaN")
	}
}

func TestParseMissingSentinels(t *testing.T) {
	pitches, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if !math.IsNaN(pitches[1].ReleaseSpinRate) {
		t.Error("null should parse as NaN")
	}
	if !math.IsNaN(pitches[2].ReleaseSpeed) || !math.IsNaN(pitches[2].ReleaseSpinRate) {
		t.Error("empty and NA should parse as NaN")
	}
	if pitches[2].LaunchSpeed != 88.5 || pitches[2].LaunchAngle != -12 {
		t.Errorf("launch data = %v/%v", pitches[2].LaunchSpeed, pitches[2].LaunchAngle)
	}
	if pitches[2].BBType != "ground_ball" || pitches[2].Events != "field_out" {
		t.Errorf("batted ball fields = %q/%q", pitches[2].BBType, pitches[2].Events)
	}
}

func TestParseHeaderOrderIndependent(t *testing.T) {
	csv := "release_speed,pitch_type,game_date\n93.5,CH,2025-05-10\n"
	pitches, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(pitches) != 1 || pitches[0].PitchType != "CH" || pitches[0].ReleaseSpeed != 93.5 {
		t.Errorf("pitches = %+v", pitches)
	}
}

func TestParseDatetimeDates(t *testing.T) {
	csv := "game_date,pitch_type\n2025-04-01 19:05:00,FF\n"
	pitches, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(pitches) != 1 || pitches[0].DateKey() != "2025-04-01" {
		t.Errorf("pitches = %+v", pitches)
	}
}

func TestParseSkipsBadDates(t *testing.T) {
	csv := "game_date,pitch_type\nnot-a-date,FF\n2025-04-01,SL\n"
	pitches, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(pitches) != 1 || pitches[0].PitchType != "SL" {
		t.Errorf("pitches = %+v", pitches)
	}
}

func TestParseRequiredColumns(t *testing.T) {
	if _, err := Parse(strings.NewReader("pitch_type,release_speed\nFF,95\n")); err == nil {
		t.Error("missing game_date should error")
	}
	if _, err := Parse(strings.NewReader("game_date,release_speed\n2025-04-01,95\n")); err == nil {
		t.Error("missing pitch_type should error")
	}
}
