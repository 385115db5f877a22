// Package indexer refreshes the persistent hash index over an existing
// sorted tree, hashing only files it has not seen before.
package indexer

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/user/mediasort/internal/fingerprint"
	"github.com/user/mediasort/internal/index"
	"github.com/user/mediasort/internal/media"
	"github.com/user/mediasort/internal/scan"
)

// saveEvery is the number of new entries between periodic index saves.
const saveEvery = 100

// Stats summarizes one update run.
type Stats struct {
	New   int
	Total int
}

// Update walks root, hashes every media file whose relative path is not
// yet recorded, and saves the index periodically and at the end. The
// index file itself and non-media files are skipped.
func Update(root string, quiet bool) (Stats, error) {
	var stats Stats

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return stats, fmt.Errorf("failed to resolve path %s: %w", root, err)
	}

	store := index.Open(filepath.Join(absRoot, index.FileName(fingerprint.ModeFile)))
	stats.Total = store.Len()

	var bar *progressbar.ProgressBar
	if !quiet {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Indexing"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}

	walkErr := scan.Walk(absRoot, nil, func(path string) error {
		if !media.IsMedia(path) {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if store.HasPath(rel) {
			return nil
		}
		if bar != nil {
			bar.Add(1)
		}
		hash, err := fingerprint.FileHash(path)
		if err != nil {
			log.Printf("failed to hash %s: %v", path, err)
			return nil
		}
		store.Add(hash, rel)
		stats.New++
		if stats.New%saveEvery == 0 {
			if err := store.Save(); err != nil {
				log.Printf("periodic index save failed: %v", err)
			}
		}
		return nil
	})
	if bar != nil {
		bar.Finish()
	}

	if err := store.Save(); err != nil {
		return stats, fmt.Errorf("failed to save index: %w", err)
	}
	stats.Total = store.Len()
	return stats, walkErr
}
