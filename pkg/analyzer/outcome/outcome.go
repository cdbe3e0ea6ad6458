// Package outcome computes derived rate statistics (whiff%, chase%, K/9,
// barrel%, ...) from pitch-level event data, in aggregate or grouped per
// game. Every stat is null, never zero, when its denominator is empty.
package outcome

import (
	"math"

	"github.com/statlines/windup/pkg/models"
	"github.com/statlines/windup/pkg/stats"
)

// Stats holds one aggregate of every configured outcome stat. Nil means the
// stat was undefined for the input (no qualifying pitches).
type Stats struct {
	WhiffPct            *float64 `json:"whiff_pct"`
	SwStrPct            *float64 `json:"swstr_pct"`
	ChasePct            *float64 `json:"chase_pct"`
	ZonePct             *float64 `json:"zone_pct"`
	IZWhiffPct          *float64 `json:"iz_whiff_pct"`
	OZWhiffPct          *float64 `json:"oz_whiff_pct"`
	TwoStrikeWhiffPct   *float64 `json:"two_strike_whiff_pct"`
	ExitVelo            *float64 `json:"exit_velo"`
	HardHitPct          *float64 `json:"hhr_pct"`
	BarrelPct           *float64 `json:"barrel_pct"`
	GroundBallPct       *float64 `json:"gb_pct"`
	FlyBallPct          *float64 `json:"fb_pct"`
	WalksPer9           *float64 `json:"bb_per_9"`
	StrikeoutsPer9      *float64 `json:"k_per_9"`
	FirstPitchStrikePct *float64 `json:"fps_pct"`
	ReleaseConsistency  *float64 `json:"rp_consistency"`
}

// Get returns a stat by its catalog key.
func (s *Stats) Get(key string) *float64 {
	switch key {
	case "whiff_pct":
		return s.WhiffPct
	case "swstr_pct":
		return s.SwStrPct
	case "chase_pct":
		return s.ChasePct
	case "zone_pct":
		return s.ZonePct
	case "iz_whiff_pct":
		return s.IZWhiffPct
	case "oz_whiff_pct":
		return s.OZWhiffPct
	case "two_strike_whiff_pct":
		return s.TwoStrikeWhiffPct
	case "exit_velo":
		return s.ExitVelo
	case "hhr_pct":
		return s.HardHitPct
	case "barrel_pct":
		return s.BarrelPct
	case "gb_pct":
		return s.GroundBallPct
	case "fb_pct":
		return s.FlyBallPct
	case "bb_per_9":
		return s.WalksPer9
	case "k_per_9":
		return s.StrikeoutsPer9
	case "fps_pct":
		return s.FirstPitchStrikePct
	case "rp_consistency":
		return s.ReleaseConsistency
	default:
		return nil
	}
}

// GameStats is one game's outcome aggregate.
type GameStats struct {
	GameDate string `json:"game_date"`
	Stats
}

// ratio returns num/den*scale, NaN when the denominator is zero.
func ratio(num, den, scale float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den * scale
}

// whiffRate returns swinging strikes over swings x100 for a subset.
func whiffRate(pitches []models.Pitch) float64 {
	var swings, whiffs float64
	for _, p := range pitches {
		if p.IsSwing() {
			swings++
		}
		if p.IsSwingingStrike() {
			whiffs++
		}
	}
	return ratio(whiffs, swings, 100)
}

// isBarrel classifies a batted ball. The explicit launch-speed-angle bucket
// wins when tracked; otherwise a fixed approximation (launch speed >= 98 and
// launch angle in [26, 30]) stands in for the official classifier.
func isBarrel(p models.Pitch) bool {
	if !math.IsNaN(p.LaunchSpeedAngle) {
		return p.LaunchSpeedAngle == 6
	}
	if !math.IsNaN(p.LaunchSpeed) && !math.IsNaN(p.LaunchAngle) {
		return p.LaunchSpeed >= 98 && p.LaunchAngle >= 26 && p.LaunchAngle <= 30
	}
	return false
}

// Aggregate computes every configured outcome stat over a set of pitches.
// An empty input yields a Stats with every field nil.
func Aggregate(pitches []models.Pitch) Stats {
	if len(pitches) == 0 {
		return Stats{}
	}

	nPitches := float64(len(pitches))
	var nSwStr, nSwings float64
	var nInZone, nChase float64
	var nOutZone float64 // tracked zone, outside 1-9
	var izSwings, izWhiffs, ozSwings, ozWhiffs float64
	var bip, nGB, nFB float64
	var tbf, walks, ks, barrels float64
	var firstPitches, firstStrikes float64

	launchSpeeds := make([]float64, 0, len(pitches))
	relX := make([]float64, 0, len(pitches))
	relZ := make([]float64, 0, len(pitches))
	var twoStrike []models.Pitch

	var nHardHit, nTracked float64

	for _, p := range pitches {
		if p.IsSwingingStrike() {
			nSwStr++
		}
		if p.IsSwing() {
			nSwings++
		}

		switch {
		case p.InZone():
			nInZone++
			if p.IsSwing() {
				izSwings++
			}
			if p.IsSwingingStrike() {
				izWhiffs++
			}
		case p.HasZone():
			nOutZone++
			if p.IsSwing() {
				nChase++
				ozSwings++
			}
			if p.IsSwingingStrike() {
				ozWhiffs++
			}
		}

		if p.Strikes == 2 {
			twoStrike = append(twoStrike, p)
		}

		if p.BBType != "" {
			bip++
			if p.BBType == "ground_ball" {
				nGB++
			}
			if p.BBType == "fly_ball" {
				nFB++
			}
			if !math.IsNaN(p.LaunchSpeed) {
				launchSpeeds = append(launchSpeeds, p.LaunchSpeed)
				nTracked++
				if p.LaunchSpeed >= 95 {
					nHardHit++
				}
			}
		}

		if p.IsTerminal() {
			tbf++
			if p.IsWalk() {
				walks++
			}
			if p.IsStrikeout() {
				ks++
			}
			if isBarrel(p) {
				barrels++
			}
		}

		if p.Balls == 0 && p.Strikes == 0 {
			firstPitches++
			if p.IsStrikeDesc() {
				firstStrikes++
			}
		}

		relX = append(relX, p.ReleasePosX)
		relZ = append(relZ, p.ReleasePosZ)
	}

	knownZone := nInZone + nOutZone

	var rpConsistency float64
	sdX := stats.StdDev(relX)
	sdZ := stats.StdDev(relZ)
	if math.IsNaN(sdX) || math.IsNaN(sdZ) {
		rpConsistency = math.NaN()
	} else {
		rpConsistency = (sdX + sdZ) / 2
	}

	return Stats{
		WhiffPct:            models.Safe(ratio(nSwStr, nSwings, 100)),
		SwStrPct:            models.Safe(ratio(nSwStr, nPitches, 100)),
		ChasePct:            models.Safe(ratio(nChase, nOutZone, 100)),
		ZonePct:             models.Safe(ratio(nInZone, knownZone, 100)),
		IZWhiffPct:          models.Safe(ratio(izWhiffs, izSwings, 100)),
		OZWhiffPct:          models.Safe(ratio(ozWhiffs, ozSwings, 100)),
		TwoStrikeWhiffPct:   models.Safe(whiffRate(twoStrike)),
		ExitVelo:            models.Safe(stats.Mean(launchSpeeds)),
		HardHitPct:          models.Safe(ratio(nHardHit, nTracked, 100)),
		BarrelPct:           models.Safe(ratio(barrels, tbf, 100)),
		GroundBallPct:       models.Safe(ratio(nGB, bip, 100)),
		FlyBallPct:          models.Safe(ratio(nFB, bip, 100)),
		WalksPer9:           models.Safe(ratio(walks, tbf, 27)),
		StrikeoutsPer9:      models.Safe(ratio(ks, tbf, 27)),
		FirstPitchStrikePct: models.Safe(ratio(firstStrikes, firstPitches, 100)),
		ReleaseConsistency:  models.Safe(rpConsistency),
	}
}

// ByGame groups the input by game date and aggregates each game
// independently, ordered by date.
func ByGame(pitches []models.Pitch) []GameStats {
	games := models.ByGame(pitches)
	out := make([]GameStats, len(games))
	for i, g := range games {
		out[i] = GameStats{GameDate: g.Date, Stats: Aggregate(g.Pitches)}
	}
	return out
}
