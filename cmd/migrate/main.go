// ABOUTME: Copies all activation data from one storage backend to another
// ABOUTME: Supports dry runs and is safe to rerun after a partial copy

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/harperreed/activator/cli"
	"github.com/harperreed/activator/config"
	"github.com/harperreed/activator/logging"
	"github.com/harperreed/activator/models"
	"github.com/harperreed/activator/store"
)

func main() {
	from := flag.String("from", "", "Source store as backend:path, e.g. sqlite:/data/activator.db (required)")
	to := flag.String("to", "", "Destination store as backend:path, e.g. badger:/data/badger (required)")
	dryRun := flag.Bool("dry-run", false, "Count what would be copied without writing")
	flag.Parse()

	logger, err := logging.New("info", logging.FormatConsole)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *from == "" || *to == "" {
		logger.Fatal("both -from and -to are required")
	}

	if err := migrate(context.Background(), logger, *from, *to, *dryRun); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}

// parseTarget splits "backend:path" into a config. A bare backend name uses
// that backend's default location.
func parseTarget(target string) (config.Config, error) {
	backend, path, _ := strings.Cut(target, ":")
	cfg := config.Default()
	cfg.Backend = backend
	cfg.DBPath = path
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid target %q: %w", target, err)
	}
	return cfg, nil
}

func migrate(ctx context.Context, logger *zap.Logger, from, to string, dryRun bool) error {
	srcCfg, err := parseTarget(from)
	if err != nil {
		return err
	}
	dstCfg, err := parseTarget(to)
	if err != nil {
		return err
	}
	if srcCfg.Backend == dstCfg.Backend && srcCfg.StoragePath() == dstCfg.StoragePath() {
		return fmt.Errorf("source and destination are the same store")
	}

	src, err := cli.OpenStore(srcCfg)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := cli.OpenStore(dstCfg)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	logger.Info("copying records",
		zap.String("from", srcCfg.Backend+":"+srcCfg.StoragePath()),
		zap.String("to", dstCfg.Backend+":"+dstCfg.StoragePath()),
		zap.Bool("dry_run", dryRun))

	stats, err := store.Copy(ctx, dst.Backend(), src.Backend(), dryRun)
	if err != nil {
		return err
	}
	logStats(logger, stats)
	return nil
}

func logStats(logger *zap.Logger, stats store.CopyStats) {
	seen := make(map[models.Kind]bool)
	var kinds []models.Kind
	for _, counts := range []map[models.Kind]int{stats.Copied, stats.Skipped} {
		for kind := range counts {
			if !seen[kind] {
				seen[kind] = true
				kinds = append(kinds, kind)
			}
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		logger.Info("kind",
			zap.String("kind", string(kind)),
			zap.Int("copied", stats.Copied[kind]),
			zap.Int("skipped", stats.Skipped[kind]))
	}
	logger.Info("done", zap.Int("copied", stats.Total()))
}
