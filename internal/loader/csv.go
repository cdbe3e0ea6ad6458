// Package loader reads Statcast pitch-level CSV exports into typed records,
// with a dataset cache so repeated commands skip the parse.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/statlines/windup/pkg/models"
)

// column indexes resolved from the export header. A value of -1 means the
// export does not carry that column.
type header struct {
	gameDate         int
	pitchType        int
	releaseSpeed     int
	releaseSpinRate  int
	pfxX             int
	pfxZ             int
	releaseExtension int
	releasePosX      int
	releasePosZ      int
	effectiveSpeed   int
	plateX           int
	plateZ           int
	spinAxis         int
	description      int
	bbType           int
	events           int
	balls            int
	strikes          int
	batter           int
	zone             int
	launchSpeed      int
	launchAngle      int
	launchSpeedAngle int
}

// Parse reads a Statcast CSV export. The header row is required and columns
// are matched by name, so column order does not matter. Rows with an
// unparseable game date are skipped.
func Parse(r io.Reader) ([]models.Pitch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h, err := resolveHeader(head)
	if err != nil {
		return nil, err
	}

	var pitches []models.Pitch
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(pitches)+2, err)
		}
		date, ok := parseDate(field(rec, h.gameDate))
		if !ok {
			continue
		}
		pitches = append(pitches, models.Pitch{
			GameDate:         date,
			PitchType:        field(rec, h.pitchType),
			ReleaseSpeed:     parseFloat(field(rec, h.releaseSpeed)),
			ReleaseSpinRate:  parseFloat(field(rec, h.releaseSpinRate)),
			PfxX:             parseFloat(field(rec, h.pfxX)),
			PfxZ:             parseFloat(field(rec, h.pfxZ)),
			ReleaseExtension: parseFloat(field(rec, h.releaseExtension)),
			ReleasePosX:      parseFloat(field(rec, h.releasePosX)),
			ReleasePosZ:      parseFloat(field(rec, h.releasePosZ)),
			EffectiveSpeed:   parseFloat(field(rec, h.effectiveSpeed)),
			PlateX:           parseFloat(field(rec, h.plateX)),
			PlateZ:           parseFloat(field(rec, h.plateZ)),
			SpinAxis:         parseFloat(field(rec, h.spinAxis)),
			Description:      field(rec, h.description),
			BBType:           field(rec, h.bbType),
			Events:           field(rec, h.events),
			Balls:            parseInt(field(rec, h.balls)),
			Strikes:          parseInt(field(rec, h.strikes)),
			Batter:           uint32(parseInt(field(rec, h.batter))),
			Zone:             parseFloat(field(rec, h.zone)),
			LaunchSpeed:      parseFloat(field(rec, h.launchSpeed)),
			LaunchAngle:      parseFloat(field(rec, h.launchAngle)),
			LaunchSpeedAngle: parseFloat(field(rec, h.launchSpeedAngle)),
		})
	}
	return pitches, nil
}

func resolveHeader(head []string) (*header, error) {
	idx := make(map[string]int, len(head))
	for i, name := range head {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	col := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}

	h := &header{
		gameDate:         col("game_date"),
		pitchType:        col("pitch_type"),
		releaseSpeed:     col("release_speed"),
		releaseSpinRate:  col("release_spin_rate"),
		pfxX:             col("pfx_x"),
		pfxZ:             col("pfx_z"),
		releaseExtension: col("release_extension"),
		releasePosX:      col("release_pos_x"),
		releasePosZ:      col("release_pos_z"),
		effectiveSpeed:   col("effective_speed"),
		plateX:           col("plate_x"),
		plateZ:           col("plate_z"),
		spinAxis:         col("spin_axis"),
		description:      col("description"),
		bbType:           col("bb_type"),
		events:           col("events"),
		balls:            col("balls"),
		strikes:          col("strikes"),
		batter:           col("batter"),
		zone:             col("zone"),
		launchSpeed:      col("launch_speed"),
		launchAngle:      col("launch_angle"),
		launchSpeedAngle: col("launch_speed_angle"),
	}
	if h.gameDate < 0 {
		return nil, fmt.Errorf("export is missing the game_date column")
	}
	if h.pitchType < 0 {
		return nil, fmt.Errorf("export is missing the pitch_type column")
	}
	return h, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseFloat treats empty and sentinel values as missing.
func parseFloat(s string) float64 {
	if s == "" || s == "null" || strings.EqualFold(s, "na") {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) {
			return 0
		}
		return int(f)
	}
	return v
}
