// Package videocheck scans a tree for corrupt and zombie video files and
// can quarantine them.
package videocheck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/user/mediasort/internal/fsops"
	"github.com/user/mediasort/internal/media"
	"github.com/user/mediasort/internal/metadata"
	"github.com/user/mediasort/internal/scan"
)

// Stats summarizes one scan.
type Stats struct {
	Total   int
	Valid   int
	Corrupt int
	Moved   int
}

// Checker inspects every video under a root. Prober must be non-nil; the
// command refuses to start without a metadata backend because the whole
// point of this tool is structural assessment.
type Checker struct {
	Prober      metadata.VideoProber
	Quarantine  string // destination for corrupt files when MoveCorrupt is set
	MoveCorrupt bool
	Quiet       bool
}

// assess returns validity and a human-readable reason.
func (c Checker) assess(path string) (bool, string) {
	info, err := c.Prober.Probe(path)
	if err != nil {
		if errors.Is(err, metadata.ErrUnsupportedContainer) {
			return true, "unsupported container, cannot assess"
		}
		return false, fmt.Sprintf("unreadable structure: %v", err)
	}
	if info.Duration > 0 || info.Width > 0 {
		return true, fmt.Sprintf("valid (duration %s, width %d)", info.Duration, info.Width)
	}
	return false, "empty metadata (zombie file)"
}

// Scan walks root, assesses every video and optionally moves corrupt ones
// into the quarantine folder. Name collisions in quarantine get a
// minute-second suffix.
func (c Checker) Scan(root string, ignore map[string]bool) (Stats, error) {
	var stats Stats

	if c.MoveCorrupt && c.Quarantine != "" {
		if err := os.MkdirAll(c.Quarantine, 0755); err != nil {
			return stats, fmt.Errorf("failed to create quarantine folder %s: %w", c.Quarantine, err)
		}
	}

	err := scan.Walk(root, ignore, func(path string) error {
		if media.CategoryOf(path) != media.Video {
			return nil
		}
		stats.Total++
		filename := filepath.Base(path)
		if !c.Quiet {
			fmt.Printf("Checking: %s...\r", filename)
		}

		valid, reason := c.assess(path)
		if valid {
			stats.Valid++
			return nil
		}
		stats.Corrupt++
		color.Red(" [CORRUPT] %s", filename)
		fmt.Printf("    -> Reason: %s\n", reason)

		if c.MoveCorrupt && c.Quarantine != "" {
			target := filepath.Join(c.Quarantine, filename)
			if _, err := os.Stat(target); err == nil {
				ext := filepath.Ext(filename)
				base := strings.TrimSuffix(filename, ext)
				target = filepath.Join(c.Quarantine, fmt.Sprintf("%s_%s%s", base, time.Now().Format("0405"), ext))
			}
			if err := fsops.MoveFile(path, target); err != nil {
				fmt.Printf("    -> ERROR MOVING: %v\n", err)
				return nil
			}
			stats.Moved++
			fmt.Println("    -> MOVED to quarantine")
		}
		return nil
	})
	return stats, err
}

// PrintSummary reports the scan counters.
func (c Checker) PrintSummary(stats Stats) {
	rule := strings.Repeat("-", 60)
	fmt.Println(rule)
	fmt.Println("Scan complete.")
	fmt.Printf("Total videos:   %d\n", stats.Total)
	fmt.Printf("Valid videos:   %d\n", stats.Valid)
	if stats.Corrupt > 0 {
		color.Red("Corrupt videos: %d", stats.Corrupt)
	} else {
		fmt.Printf("Corrupt videos: %d\n", stats.Corrupt)
	}
	if c.MoveCorrupt {
		fmt.Printf("Corrupt files moved to: %s\n", c.Quarantine)
	}
}
