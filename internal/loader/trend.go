package loader

import (
	"time"

	"github.com/statlines/windup/pkg/models"
)

// Day returns the pitches thrown on the target date.
func Day(season []models.Pitch, target time.Time) []models.Pitch {
	return models.FilterDate(season, target)
}

// Rolling returns the trend baseline for a rolling window: pitches from
// games within windowDays before the target date, excluding the target date
// itself.
func Rolling(season []models.Pitch, target time.Time, windowDays int) []models.Pitch {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := target.AddDate(0, 0, -windowDays)
	var out []models.Pitch
	for _, p := range season {
		if !p.GameDate.Before(cutoff) && p.GameDate.Before(target) {
			out = append(out, p)
		}
	}
	return out
}

// FullSeason returns the trend baseline for season-vs-day comparison: every
// pitch from the season except the target date's game.
func FullSeason(season []models.Pitch, target time.Time) []models.Pitch {
	return models.ExcludeDate(season, target)
}
