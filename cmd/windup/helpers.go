package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/statlines/windup/internal/cache"
	"github.com/statlines/windup/internal/loader"
	"github.com/statlines/windup/internal/output"
	"github.com/statlines/windup/pkg/config"
	"github.com/statlines/windup/pkg/models"
)

// seasonArg returns the season CSV path from the first positional argument.
func seasonArg(c *cli.Context) (string, error) {
	if c.Args().Len() == 0 {
		return "", fmt.Errorf("missing season export argument (windup %s <season.csv>)", c.Command.Name)
	}
	return c.Args().First(), nil
}

// loadConfig resolves the effective config, honoring the global --config flag.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

// newFormatter builds the output formatter from the global flags.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if !c.IsSet("format") && cfg.Output.Format != "" {
		format = cfg.Output.Format
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

// openCache builds the dataset cache, honoring --no-cache.
func openCache(c *cli.Context, cfg *config.Config) (*cache.Cache, error) {
	enabled := cfg.Cache.Enabled && !c.Bool("no-cache")
	return cache.New(cfg.Cache.Dir, cfg.Cache.TTL, enabled)
}

// loadSeason reads the season export through the cache.
func loadSeason(c *cli.Context, cfg *config.Config) ([]models.Pitch, error) {
	path, err := seasonArg(c)
	if err != nil {
		return nil, err
	}
	store, err := openCache(c, cfg)
	if err != nil {
		return nil, err
	}
	season, err := loader.LoadSeason(path, store)
	if err != nil {
		return nil, err
	}
	if len(season) == 0 {
		return nil, fmt.Errorf("no pitches found in %s", path)
	}
	return season, nil
}

// targetDate resolves the --date flag, defaulting to the latest game date.
func targetDate(c *cli.Context, season []models.Pitch) (time.Time, error) {
	if s := c.String("date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", s)
		}
		return t, nil
	}
	return models.MaxDate(season), nil
}

// trendBaseline builds the trend pitch set according to the flags: a rolling
// window before the target date, or a full reference season.
func trendBaseline(c *cli.Context, cfg *config.Config, season []models.Pitch, target time.Time) ([]models.Pitch, error) {
	trendType := cfg.Trend.Type
	if c.IsSet("trend") {
		trendType = c.String("trend")
	}
	switch trendType {
	case "rolling":
		window := cfg.Trend.WindowDays
		if c.IsSet("window") {
			window = c.Int("window")
		}
		if window <= 0 {
			return nil, fmt.Errorf("--window must be positive, got %d", window)
		}
		return loader.Rolling(season, target, window), nil
	case "season":
		if path := c.String("trend-file"); path != "" {
			store, err := openCache(c, cfg)
			if err != nil {
				return nil, err
			}
			ref, err := loader.LoadSeason(path, store)
			if err != nil {
				return nil, fmt.Errorf("loading trend season: %w", err)
			}
			return loader.FullSeason(ref, target), nil
		}
		return loader.FullSeason(season, target), nil
	default:
		return nil, fmt.Errorf("--trend must be \"rolling\" or \"season\", got %q", trendType)
	}
}

// splitList parses a comma-separated flag value.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// metricsFlag resolves --metrics against the config default.
func metricsFlag(c *cli.Context, cfg *config.Config) []string {
	if c.IsSet("metrics") {
		return splitList(c.String("metrics"))
	}
	return cfg.Trend.Metrics
}

// pitchTypesFlag resolves --pitch-types, defaulting to every type in the
// season.
func pitchTypesFlag(c *cli.Context, cfg *config.Config, season []models.Pitch) []string {
	if c.IsSet("pitch-types") {
		return splitList(c.String("pitch-types"))
	}
	if len(cfg.Trend.PitchTypes) > 0 {
		return cfg.Trend.PitchTypes
	}
	return models.PitchTypes(season)
}

// formatValue renders a nullable stat with its catalog format verb.
func formatValue(verb string, v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "-"
	}
	if verb == "" {
		verb = "%.2f"
	}
	return fmt.Sprintf(verb, *v)
}

// formatSigned renders a nullable delta with an explicit sign.
func formatSigned(verb string, v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "-"
	}
	if verb == "" {
		verb = "%.2f"
	}
	s := fmt.Sprintf(verb, *v)
	if *v > 0 && !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	return s
}

// arrow renders a signal direction for text output.
func arrow(direction string) string {
	switch direction {
	case "up":
		return "^"
	case "down":
		return "v"
	default:
		return "-"
	}
}
