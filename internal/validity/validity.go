// Package validity holds the two predicates that gate the pipeline: the
// junk filter (size and dimension thresholds) and the video structural
// validity check (zombie detection).
package validity

import (
	"errors"
	"os"

	"github.com/user/mediasort/internal/config"
	"github.com/user/mediasort/internal/fingerprint"
	"github.com/user/mediasort/internal/media"
	"github.com/user/mediasort/internal/metadata"
)

// Checker evaluates the filter predicates against a configuration and an
// optional video metadata backend.
type Checker struct {
	Config config.Config
	Prober metadata.VideoProber
}

// PassesFilters reports whether the file clears the junk thresholds.
// Any file below the minimum byte size fails. Standard images additionally
// fail when both width and height are below the minimum dimension; a
// decode failure during the dimension check counts as a filter failure.
// RAW files are not dimension-checked: their pixel data is not decodable
// with the registered decoders and size is the only usable signal.
func (c Checker) PassesFilters(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	if fi.Size() < c.Config.MinFileSize {
		return false
	}
	if media.CategoryOf(path) == media.Image {
		w, h, err := fingerprint.Resolution(path)
		if err != nil {
			return false
		}
		if w < c.Config.MinDimension && h < c.Config.MinDimension {
			return false
		}
	}
	return true
}

// IsVideoValid reports whether a video's container structure is sound.
// Without a backend (nil prober, or a container the prober cannot parse)
// it defaults to valid: the file cannot be assessed and is given the
// benefit of the doubt. A parse failure means the header is unreadable;
// metadata with neither duration nor width means the file parses but
// carries no playable structure (a zombie).
func (c Checker) IsVideoValid(path string) bool {
	if c.Prober == nil {
		return true
	}
	info, err := c.Prober.Probe(path)
	if err != nil {
		if errors.Is(err, metadata.ErrUnsupportedContainer) {
			return true
		}
		return false
	}
	return info.Duration > 0 || info.Width > 0
}
