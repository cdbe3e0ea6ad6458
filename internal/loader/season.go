package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/statlines/windup/internal/cache"
	"github.com/statlines/windup/internal/progress"
	"github.com/statlines/windup/pkg/models"
)

// pitchWire is the cache serialization form of a pitch. Metric fields use
// pointers so missing values survive the JSON round trip.
type pitchWire struct {
	GameDate         string   `json:"d"`
	PitchType        string   `json:"pt,omitempty"`
	ReleaseSpeed     *float64 `json:"rs,omitempty"`
	ReleaseSpinRate  *float64 `json:"rr,omitempty"`
	PfxX             *float64 `json:"px,omitempty"`
	PfxZ             *float64 `json:"pz,omitempty"`
	ReleaseExtension *float64 `json:"re,omitempty"`
	ReleasePosX      *float64 `json:"rx,omitempty"`
	ReleasePosZ      *float64 `json:"rz,omitempty"`
	EffectiveSpeed   *float64 `json:"es,omitempty"`
	PlateX           *float64 `json:"cx,omitempty"`
	PlateZ           *float64 `json:"cz,omitempty"`
	SpinAxis         *float64 `json:"sa,omitempty"`
	Description      string   `json:"de,omitempty"`
	BBType           string   `json:"bb,omitempty"`
	Events           string   `json:"ev,omitempty"`
	Balls            int      `json:"b,omitempty"`
	Strikes          int      `json:"s,omitempty"`
	Batter           uint32   `json:"ba,omitempty"`
	Zone             *float64 `json:"z,omitempty"`
	LaunchSpeed      *float64 `json:"ls,omitempty"`
	LaunchAngle      *float64 `json:"la,omitempty"`
	LaunchSpeedAngle *float64 `json:"lb,omitempty"`
}

// LoadSeason reads a season export, going through the cache when the file
// has not changed since it was last parsed.
func LoadSeason(path string, c *cache.Cache) ([]models.Pitch, error) {
	key, err := cache.FileKey(path)
	if err != nil {
		return nil, fmt.Errorf("locating season file: %w", err)
	}

	if data, ok := c.Get(key); ok {
		pitches, err := decodeSeason(data)
		if err == nil {
			return pitches, nil
		}
		c.Invalidate(key)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening season file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	tracker := progress.NewBytesTracker(fmt.Sprintf("parsing %s", filepath.Base(path)), info.Size())
	pitches, err := Parse(tracker.Reader(f))
	if err != nil {
		tracker.FinishError(err)
		return nil, err
	}
	tracker.FinishSuccess()

	if data, err := encodeSeason(pitches); err == nil {
		c.SetWithHash(key, cache.HashBytes(data), data)
	}
	return pitches, nil
}

func encodeSeason(pitches []models.Pitch) ([]byte, error) {
	wire := make([]pitchWire, len(pitches))
	for i, p := range pitches {
		wire[i] = pitchWire{
			GameDate:         p.DateKey(),
			PitchType:        p.PitchType,
			ReleaseSpeed:     models.Safe(p.ReleaseSpeed),
			ReleaseSpinRate:  models.Safe(p.ReleaseSpinRate),
			PfxX:             models.Safe(p.PfxX),
			PfxZ:             models.Safe(p.PfxZ),
			ReleaseExtension: models.Safe(p.ReleaseExtension),
			ReleasePosX:      models.Safe(p.ReleasePosX),
			ReleasePosZ:      models.Safe(p.ReleasePosZ),
			EffectiveSpeed:   models.Safe(p.EffectiveSpeed),
			PlateX:           models.Safe(p.PlateX),
			PlateZ:           models.Safe(p.PlateZ),
			SpinAxis:         models.Safe(p.SpinAxis),
			Description:      p.Description,
			BBType:           p.BBType,
			Events:           p.Events,
			Balls:            p.Balls,
			Strikes:          p.Strikes,
			Batter:           p.Batter,
			Zone:             models.Safe(p.Zone),
			LaunchSpeed:      models.Safe(p.LaunchSpeed),
			LaunchAngle:      models.Safe(p.LaunchAngle),
			LaunchSpeedAngle: models.Safe(p.LaunchSpeedAngle),
		}
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(wire); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSeason(data []byte) ([]models.Pitch, error) {
	var wire []pitchWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	pitches := make([]models.Pitch, len(wire))
	for i, w := range wire {
		date, ok := parseDate(w.GameDate)
		if !ok {
			return nil, fmt.Errorf("corrupt cached date %q", w.GameDate)
		}
		pitches[i] = models.Pitch{
			GameDate:         date,
			PitchType:        w.PitchType,
			ReleaseSpeed:     models.Unsafe(w.ReleaseSpeed),
			ReleaseSpinRate:  models.Unsafe(w.ReleaseSpinRate),
			PfxX:             models.Unsafe(w.PfxX),
			PfxZ:             models.Unsafe(w.PfxZ),
			ReleaseExtension: models.Unsafe(w.ReleaseExtension),
			ReleasePosX:      models.Unsafe(w.ReleasePosX),
			ReleasePosZ:      models.Unsafe(w.ReleasePosZ),
			EffectiveSpeed:   models.Unsafe(w.EffectiveSpeed),
			PlateX:           models.Unsafe(w.PlateX),
			PlateZ:           models.Unsafe(w.PlateZ),
			SpinAxis:         models.Unsafe(w.SpinAxis),
			Description:      w.Description,
			BBType:           w.BBType,
			Events:           w.Events,
			Balls:            w.Balls,
			Strikes:          w.Strikes,
			Batter:           w.Batter,
			Zone:             models.Unsafe(w.Zone),
			LaunchSpeed:      models.Unsafe(w.LaunchSpeed),
			LaunchAngle:      models.Unsafe(w.LaunchAngle),
			LaunchSpeedAngle: models.Unsafe(w.LaunchSpeedAngle),
		}
	}
	return pitches, nil
}
