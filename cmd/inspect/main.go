// Package main provides a developer tool that dumps the local Shenava data
// directory: the download ledger, aggregate sizes, user settings, and
// search history.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/shenavaapp/shenava-client/internal/downloads"
	"github.com/shenavaapp/shenava-client/internal/logger"
	"github.com/shenavaapp/shenava-client/internal/store"
	"github.com/shenavaapp/shenava-client/internal/store/sqlite"
	"github.com/shenavaapp/shenava-client/internal/util"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to locate home directory: %v", err)
		}
		dataPath = filepath.Join(home, "Shenava")
	}

	ctx := context.Background()
	quiet := logger.Discard().Logger

	fmt.Println("=== Shenava Data Inspection ===")
	fmt.Printf("Data path: %s\n\n", dataPath)

	inspectLedger(ctx, dataPath, quiet)
	inspectKV(ctx, dataPath, quiet)
}

func inspectLedger(ctx context.Context, dataPath string, quiet *slog.Logger) {
	db, err := sqlite.Open(filepath.Join(dataPath, "downloads.db"), quiet)
	if err != nil {
		log.Printf("Download ledger unavailable: %v", err)
		return
	}
	defer db.Close()

	ledger := downloads.New(db, quiet)

	groups, err := ledger.GroupByAudiobook(ctx)
	if err != nil {
		log.Fatalf("Failed to read ledger: %v", err)
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("=== Download Ledger ===")
	totalChapters := 0
	for _, id := range ids {
		chapters := groups[id]
		totalChapters += len(chapters)

		size, err := ledger.AudiobookSize(ctx, id)
		if err != nil {
			log.Printf("Size lookup failed for %s: %v", id, err)
			continue
		}

		fmt.Printf("Audiobook: %s\n", id)
		fmt.Printf("  Chapters: %d\n", len(chapters))
		fmt.Printf("  Size: %s (%s)\n", util.FormatSize(size), util.FormatSizeFa(size))
		for i, ch := range chapters {
			if i >= 5 {
				fmt.Printf("    ... and %d more chapters\n", len(chapters)-5)
				break
			}
			fmt.Printf("    [%s] %s (%s)\n", ch.ChapterID, ch.Path, util.FormatSize(ch.SizeBytes))
		}
		fmt.Println()
	}

	total, err := ledger.TotalSize(ctx)
	if err != nil {
		log.Fatalf("Failed to total ledger sizes: %v", err)
	}

	fmt.Println("=== Ledger Summary ===")
	fmt.Printf("Audiobooks: %d\n", len(ids))
	fmt.Printf("Chapters: %d\n", totalChapters)
	fmt.Printf("Total size: %s (%s)\n\n", util.FormatSize(total), util.FormatSizeFa(total))
}

func inspectKV(ctx context.Context, dataPath string, quiet *slog.Logger) {
	kv, err := store.Open(filepath.Join(dataPath, "kv"), quiet)
	if err != nil {
		log.Printf("KV store unavailable: %v", err)
		return
	}
	defer kv.Close()

	deviceID, err := kv.DeviceID(ctx)
	if err != nil {
		log.Fatalf("Failed to read device ID: %v", err)
	}
	fmt.Printf("Device ID: %s\n\n", deviceID)

	settings, err := kv.GetSettings(ctx)
	if err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}

	fmt.Println("=== Settings ===")
	fmt.Printf("Playback speed: %.2fx\n", settings.PlaybackSpeed)
	fmt.Printf("Skip forward/backward: %ds / %ds\n", settings.SkipForwardSec, settings.SkipBackwardSec)
	fmt.Printf("Theme: %s\n", settings.Theme)
	fmt.Printf("Tabs: music=%t podcasts=%t articles=%t\n\n",
		settings.ShowMusic, settings.ShowPodcasts, settings.ShowArticles)

	entries, err := kv.GetSearchHistory(ctx)
	if err != nil {
		log.Fatalf("Failed to read search history: %v", err)
	}

	fmt.Println("=== Search History ===")
	if len(entries) == 0 {
		fmt.Println("(empty)")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.SearchedAt.Format("2006-01-02 15:04"), e.Query)
	}
}
