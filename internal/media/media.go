// Package media classifies files into the categories the toolkit cares about,
// based on their extension.
package media

import (
	"path/filepath"
	"strings"
)

// Category describes how a file is treated by the pipeline.
type Category int

const (
	// Other is anything the toolkit does not recognize; such files are
	// skipped by the organizer and hashed as raw bytes everywhere else.
	Other Category = iota
	// Image is a standard, decodable raster image (JPEG, PNG, HEIC, ...).
	Image
	// RawImage is a camera RAW file; dates come from EXIF but the pixel
	// data cannot be decoded with the registered decoders.
	RawImage
	// Video is a video container file.
	Video
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case Image:
		return "image"
	case RawImage:
		return "raw"
	case Video:
		return "video"
	default:
		return "other"
	}
}

// imageExtensions maps standard image file extensions to true.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
	".heic": true,
	".heif": true,
}

// rawExtensions maps camera RAW file extensions to true.
var rawExtensions = map[string]bool{
	".arw": true,
	".cr2": true,
	".nef": true,
	".dng": true,
}

// videoExtensions maps video container extensions to true.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".m4v":  true,
	".avi":  true,
	".mkv":  true,
	".wmv":  true,
	".flv":  true,
	".mts":  true,
	".m2ts": true,
}

// CategoryOf classifies a path by its lowercased extension.
func CategoryOf(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		return Image
	case rawExtensions[ext]:
		return RawImage
	case videoExtensions[ext]:
		return Video
	default:
		return Other
	}
}

// IsMedia reports whether the path belongs to any recognized media category.
func IsMedia(path string) bool {
	return CategoryOf(path) != Other
}

// IsImage reports whether the path is a standard or RAW image.
func IsImage(path string) bool {
	c := CategoryOf(path)
	return c == Image || c == RawImage
}
