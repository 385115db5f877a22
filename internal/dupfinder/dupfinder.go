// Package dupfinder scans a tree for files with identical content and
// ranks each duplicate group so the most likely original is kept.
package dupfinder

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/user/mediasort/internal/dates"
	"github.com/user/mediasort/internal/fingerprint"
	"github.com/user/mediasort/internal/fsops"
	"github.com/user/mediasort/internal/media"
	"github.com/user/mediasort/internal/scan"
)

// Entry is one file inside a duplicate group.
type Entry struct {
	Path string
	Date time.Time
	Size int64
}

// Group is a set of files sharing one content hash. Files[0] is the
// keeper: oldest capture date first, shortest path as tie-break. Path
// length is a heuristic for "likely original filename", nothing more.
type Group struct {
	Hash  string
	Files []Entry
}

// Duplicates returns every entry in the group except the keeper.
func (g Group) Duplicates() []Entry {
	return g.Files[1:]
}

// Finder scans for duplicate content. Images are compared by pixel hash,
// videos by byte hash; other categories are skipped.
type Finder struct {
	Resolver dates.Resolver
	Quiet    bool
}

// Scan hashes every image and video under root and returns the groups
// holding more than one file, along with the number of files scanned.
// Files that cannot be hashed are skipped silently: an unreadable file
// cannot be compared.
func (f Finder) Scan(root string, ignore map[string]bool) ([]Group, int, error) {
	byHash := map[string][]Entry{}
	scanned := 0

	var bar *progressbar.ProgressBar
	if !f.Quiet {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Hashing files"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}

	err := scan.Walk(root, ignore, func(path string) error {
		cat := media.CategoryOf(path)
		if cat != media.Image && cat != media.Video {
			return nil
		}
		scanned++
		if bar != nil {
			bar.Add(1)
		}

		hash, err := fingerprint.Compute(path, fingerprint.ModeContent)
		if err != nil {
			return nil
		}
		fi, err := os.Stat(path)
		if err != nil {
			return nil
		}
		date, _, err := f.Resolver.Resolve(path, cat)
		if err != nil {
			return nil
		}
		byHash[hash] = append(byHash[hash], Entry{Path: path, Date: date, Size: fi.Size()})
		return nil
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, scanned, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	var groups []Group
	for hash, files := range byHash {
		if len(files) < 2 {
			continue
		}
		sort.Slice(files, func(i, j int) bool {
			if !files[i].Date.Equal(files[j].Date) {
				return files[i].Date.Before(files[j].Date)
			}
			return len(files[i].Path) < len(files[j].Path)
		})
		groups = append(groups, Group{Hash: hash, Files: files})
	}
	// Deterministic output order.
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Files[0].Path < groups[j].Files[0].Path
	})
	return groups, scanned, nil
}

// Remove deletes every non-keeper file in the groups. It returns the
// number of files removed and the bytes reclaimed; per-file delete
// failures are reported through onError and do not stop the sweep.
func Remove(groups []Group, onError func(path string, err error)) (removed int, reclaimed int64) {
	for _, g := range groups {
		for _, dup := range g.Duplicates() {
			if err := fsops.ForceDelete(dup.Path); err != nil {
				if onError != nil {
					onError(dup.Path, err)
				}
				continue
			}
			removed++
			reclaimed += dup.Size
		}
	}
	return removed, reclaimed
}
