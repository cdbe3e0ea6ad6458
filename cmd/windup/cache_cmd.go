package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Dataset cache management",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count and size",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached datasets",
				Action: runCacheClearCmd,
			},
		},
	}
}

func runCacheStatsCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	store, err := openCache(c, cfg)
	if err != nil {
		return err
	}
	stats, err := store.GetStats()
	if err != nil {
		return err
	}

	fmt.Printf("Cache directory: %s\n", cfg.Cache.Dir)
	fmt.Printf("Entries: %d\n", stats.Entries)
	fmt.Printf("Total size: %.1f KiB\n", float64(stats.TotalSize)/1024)
	if stats.Entries > 0 {
		fmt.Printf("Oldest entry: %s ago\n", stats.OldestAge.Round(time.Second))
		fmt.Printf("Newest entry: %s ago\n", stats.NewestAge.Round(time.Second))
	}
	return nil
}

func runCacheClearCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	store, err := openCache(c, cfg)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	color.Green("Cache cleared: %s", cfg.Cache.Dir)
	return nil
}
