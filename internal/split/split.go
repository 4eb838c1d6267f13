// Package split wires config, lock, manifest and partitioner for the CLI.
package split

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/postsplit/builder/cache"
	"github.com/Kush-Singh-26/postsplit/builder/config"
	"github.com/Kush-Singh-26/postsplit/builder/partition"
	"github.com/Kush-Singh-26/postsplit/builder/utils"
)

// Run performs one partition run against the OS filesystem.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*partition.Result, error) {
	lock, err := utils.AcquireRunLock(cfg.CachePath())
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Release() }()

	opts := []partition.Option{partition.WithLogger(logger)}
	if cfg.UseManifest {
		m, err := cache.Open(cfg.CachePath(), cfg.CacheDBTimeout)
		if err != nil {
			logger.Warn("Manifest unavailable, continuing without it", "error", err)
		} else {
			defer func() { _ = m.Close() }()
			logger.Debug("manifest opened", "dir", m.Path())
			opts = append(opts, partition.WithManifest(m))
		}
	}

	fmt.Printf("✂️  Splitting %s (policy: %s, workers: %d)\n", cfg.InputPath(), cfg.Policy, cfg.Workers)

	res, err := partition.New(afero.NewOsFs(), cfg, opts...).Run(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Printf("   🗂️  Index   → %s\n", res.IndexPath)
	fmt.Printf("   📝 Content → %s/\n", res.ContentDir)
	res.Metrics.Print()
	if res.Changes != nil {
		fmt.Println(FormatChanges(res.Changes))
	}
	return res, nil
}

// FormatChanges renders a one-line change summary.
func FormatChanges(cs *partition.ChangeSet) string {
	parts := []string{
		fmt.Sprintf("%d added", len(cs.Added)),
		fmt.Sprintf("%d updated", len(cs.Updated)),
		fmt.Sprintf("%d unchanged", len(cs.Unchanged)),
	}
	if len(cs.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed from input (%s)", len(cs.Removed), strings.Join(cs.Removed, ", ")))
	}
	return "   🔄 Changes: " + strings.Join(parts, ", ")
}
