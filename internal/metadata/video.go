package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mp4 "github.com/abema/go-mp4"
)

// VideoInfo holds the structural fields a container probe can surface.
// Zero values mean the field was not present in the container.
type VideoInfo struct {
	Duration     time.Duration
	Width        int
	Height       int
	CreationTime time.Time
}

// VideoProber is the capability object for container metadata extraction.
// A nil prober means the capability is absent for the whole run: validity
// checks pass through and video dates fall back to filesystem time.
type VideoProber interface {
	Probe(path string) (*VideoInfo, error)
}

// ErrUnsupportedContainer is returned for video formats the prober cannot
// parse. Callers treat it as "cannot assess", not as corruption.
var ErrUnsupportedContainer = fmt.Errorf("container format not supported by prober")

// mp4Extensions are the ISO base media file format containers the MP4
// prober understands.
var mp4Extensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".m4v": true,
}

// MP4 container timestamps count seconds since 1904-01-01 UTC.
var mp4Epoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// MP4Prober parses ISO base media containers (MP4, MOV, M4V) with a box
// walker. Other containers report ErrUnsupportedContainer.
type MP4Prober struct{}

// Probe walks the container's box structure and collects duration, track
// dimensions and the movie header creation time. A parseable container
// without a movie header is reported as an error: the file has no playable
// structure.
func (MP4Prober) Probe(path string) (*VideoInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !mp4Extensions[ext] {
		return nil, ErrUnsupportedContainer
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video file %s: %w", path, err)
	}
	defer file.Close()

	info := &VideoInfo{}
	sawMvhd := false

	_, err = mp4.ReadBoxStructure(file, func(h *mp4.ReadHandle) (interface{}, error) {
		switch h.BoxInfo.Type {
		case mp4.BoxTypeMoov(), mp4.BoxTypeTrak():
			return h.Expand()
		case mp4.BoxTypeMvhd():
			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, err
			}
			mvhd, ok := box.(*mp4.Mvhd)
			if !ok {
				return nil, nil
			}
			sawMvhd = true
			var creation, duration uint64
			if mvhd.Version == 0 {
				creation = uint64(mvhd.CreationTimeV0)
				duration = uint64(mvhd.DurationV0)
			} else {
				creation = mvhd.CreationTimeV1
				duration = mvhd.DurationV1
			}
			if mvhd.Timescale > 0 && duration > 0 {
				// Whole seconds plus a scaled remainder, so clips
				// shorter than one second do not read as zero.
				ts := uint64(mvhd.Timescale)
				info.Duration = time.Duration(duration/ts)*time.Second +
					time.Duration(duration%ts*uint64(time.Second)/ts)
			}
			if creation > 0 {
				info.CreationTime = mp4Epoch.Add(time.Duration(creation) * time.Second)
			}
		case mp4.BoxTypeTkhd():
			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, err
			}
			tkhd, ok := box.(*mp4.Tkhd)
			if !ok {
				return nil, nil
			}
			// 16.16 fixed point; keep the largest track (the video one).
			w := int(tkhd.Width >> 16)
			if w > info.Width {
				info.Width = w
				info.Height = int(tkhd.Height >> 16)
			}
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse video container %s: %w", path, err)
	}
	if !sawMvhd {
		return nil, fmt.Errorf("no movie header found in %s", path)
	}
	return info, nil
}

// NopProber reports every container as unsupported. It substitutes for a
// missing backend in tests and degraded runs.
type NopProber struct{}

// Probe always returns ErrUnsupportedContainer.
func (NopProber) Probe(string) (*VideoInfo, error) {
	return nil, ErrUnsupportedContainer
}
