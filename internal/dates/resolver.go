// Package dates derives a single capture timestamp per file from a
// priority-ordered chain of sources. Each probe either yields a value or is
// treated as absent; the first success wins and sources are never merged.
package dates

import (
	"fmt"
	"os"
	"time"

	"github.com/user/mediasort/internal/media"
	"github.com/user/mediasort/internal/metadata"
)

// Source identifies which probe supplied a resolved timestamp.
type Source string

const (
	// SourceEXIF means the date came from an embedded EXIF tag.
	SourceEXIF Source = "exif"
	// SourceVideoMeta means the date came from the video container.
	SourceVideoMeta Source = "video-metadata"
	// SourceModTime means the date fell back to filesystem mtime.
	SourceModTime Source = "filesystem-mtime"
)

// Resolver resolves capture dates. Prober may be nil when no container
// metadata backend is available; video dates then fall back to mtime.
type Resolver struct {
	Prober metadata.VideoProber
}

// FilenameFormat is the layout used for sorted filenames.
const FilenameFormat = "2006-01-02_15-04-05"

// Resolve returns the best capture timestamp for path and where it came
// from. Standard images consult the full EXIF date chain; RAW files only
// DateTimeOriginal. Missing tags, parse failures and unsupported
// containers silently fall through to the filesystem modification time;
// an error is returned only when even that is unavailable.
func (r Resolver) Resolve(path string, cat media.Category) (time.Time, Source, error) {
	switch cat {
	case media.Image:
		if t, err := metadata.ExifDate(path); err == nil {
			return t, SourceEXIF, nil
		}
	case media.RawImage:
		if t, err := metadata.ExifDateOriginal(path); err == nil {
			return t, SourceEXIF, nil
		}
	case media.Video:
		if r.Prober != nil {
			if info, err := r.Prober.Probe(path); err == nil && !info.CreationTime.IsZero() {
				return info.CreationTime, SourceVideoMeta, nil
			}
		}
	}

	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to stat %s for mtime fallback: %w", path, err)
	}
	return fi.ModTime(), SourceModTime, nil
}
