package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/attendance-log/internal/config"
	"github.com/kozaktomas/attendance-log/internal/database/postgres"
	"github.com/kozaktomas/attendance-log/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Find and remove orphaned photo blobs",
	Long: `Scan the blob directory against the metadata table.

A blob with no referencing attendance record is an orphan - the leftover
of a submission whose metadata insert failed. Orphans are reported (and
deleted unless --dry-run). Records whose blob is missing are reported as
well; they stay in the table and show up as imageMissing in listings.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().Bool("dry-run", true, "Report orphans without deleting them")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	dryRun := mustGetBool(cmd, "dry-run")
	cfg := config.Load()

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if err := postgres.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	pool := postgres.GetGlobalPool()
	defer pool.Close()
	repo := postgres.NewAttendanceRepository(pool)

	blobs, err := storage.NewBlobStore(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open blob store: %w", err)
	}

	ctx := context.Background()
	referenced, err := repo.ImageRefs(ctx)
	if err != nil {
		return fmt.Errorf("loading referenced blobs: %w", err)
	}
	stored, err := blobs.Refs()
	if err != nil {
		return fmt.Errorf("listing stored blobs: %w", err)
	}

	fmt.Printf("Scanning %d blob files against %d referenced refs\n", len(stored), len(referenced))
	bar := progressbar.Default(int64(len(stored)), "scanning blobs")

	var orphans []string
	storedSet := make(map[string]struct{}, len(stored))
	for _, ref := range stored {
		storedSet[ref] = struct{}{}
		if _, ok := referenced[ref]; !ok {
			orphans = append(orphans, ref)
		}
		bar.Add(1)
	}

	var missing int
	for ref := range referenced {
		if _, ok := storedSet[ref]; !ok {
			fmt.Printf("Missing blob for referenced ref: %s\n", ref)
			missing++
		}
	}

	if len(orphans) == 0 {
		fmt.Printf("No orphaned blobs found (%d records missing their blob)\n", missing)
		return nil
	}

	if dryRun {
		for _, ref := range orphans {
			fmt.Printf("Orphaned blob: %s\n", ref)
		}
		fmt.Printf("Found %d orphaned blobs, %d missing blobs. Re-run with --dry-run=false to delete.\n",
			len(orphans), missing)
		return nil
	}

	var deleted int
	for _, ref := range orphans {
		if err := blobs.Remove(ref); err != nil {
			fmt.Printf("Warning: failed to remove %s: %v\n", ref, err)
			continue
		}
		deleted++
	}
	fmt.Printf("Deleted %d of %d orphaned blobs (%d records missing their blob)\n",
		deleted, len(orphans), missing)
	return nil
}
