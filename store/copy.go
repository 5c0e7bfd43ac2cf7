// ABOUTME: Copies every row from one backend into another
// ABOUTME: Activations go first so child rows never reference a missing parent
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/activator/models"
)

// CopyStats counts rows per kind seen during a copy.
type CopyStats struct {
	Copied  map[models.Kind]int
	Skipped map[models.Kind]int // already present in dst
}

// Total is the number of rows copied across all kinds.
func (s CopyStats) Total() int {
	n := 0
	for _, c := range s.Copied {
		n += c
	}
	return n
}

// Copy inserts every row of src into dst. Rows whose id already exists in dst
// are skipped, so an interrupted copy can be rerun. With dryRun nothing is written.
func Copy(ctx context.Context, dst, src Backend, dryRun bool) (CopyStats, error) {
	stats := CopyStats{
		Copied:  make(map[models.Kind]int),
		Skipped: make(map[models.Kind]int),
	}

	kinds := append([]models.Kind{models.KindActivation}, ChildKinds...)
	for _, kind := range kinds {
		rows, err := src.List(ctx, kind, "")
		if err != nil {
			return stats, fmt.Errorf("failed to list %s rows: %w", kind, err)
		}
		for _, row := range rows {
			if _, err := dst.Get(ctx, kind, row.ID); err == nil {
				stats.Skipped[kind]++
				continue
			} else if !errors.Is(err, ErrNotFound) {
				return stats, fmt.Errorf("failed to check %s %s: %w", kind, row.ID, err)
			}

			if !dryRun {
				row.Seq = 0
				if err := dst.Insert(ctx, row); err != nil {
					return stats, fmt.Errorf("failed to copy %s %s: %w", kind, row.ID, err)
				}
			}
			stats.Copied[kind]++
		}
	}
	return stats, nil
}
