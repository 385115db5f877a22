// Package metadata wraps the optional metadata backends: EXIF tag reading
// for images and container probing for videos. Expected-absence conditions
// (no tag, unsupported container) surface as sentinel errors, never as
// failures that cross the pipeline boundary.
package metadata

import (
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ErrNoExifDate is returned when EXIF data is found but no suitable date
// tag is present.
var ErrNoExifDate = fmt.Errorf("no EXIF date tag found")

// ExifDate extracts the capture date from a photo's EXIF data. It
// prioritizes DateTimeOriginal, then DateTimeDigitized, then DateTime.
// Returns ErrNoExifDate if no suitable date tag is found.
func ExifDate(path string) (time.Time, error) {
	return exifDate(path, exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime)
}

// ExifDateOriginal extracts the capture date from DateTimeOriginal alone.
// RAW files use this chain: a plain DateTime tag on a RAW is a writer
// timestamp, not a capture time.
func ExifDateOriginal(path string) (time.Time, error) {
	return exifDate(path, exif.DateTimeOriginal)
}

func exifDate(path string, fields ...exif.FieldName) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to decode EXIF data from %s: %w", path, err)
	}

	for _, field := range fields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		t, err := parseExifDateTime(tag)
		if err != nil {
			continue
		}
		return t, nil
	}

	return time.Time{}, ErrNoExifDate
}

// parseExifDateTime parses an EXIF datetime string. Handles
// "YYYY:MM:DD HH:MM:SS" and a date-only fallback.
func parseExifDateTime(tag *tiff.Tag) (time.Time, error) {
	if tag == nil {
		return time.Time{}, fmt.Errorf("tag is nil")
	}
	dateStr, err := tag.StringVal() // Handles potential null terminators.
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get string value from EXIF date tag: %w", err)
	}

	layout := "2006:01:02 15:04:05" // Common EXIF datetime format
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		layoutDateOnly := "2006:01:02"
		t, errDateOnly := time.Parse(layoutDateOnly, dateStr)
		if errDateOnly != nil {
			return time.Time{}, fmt.Errorf("failed to parse EXIF date string %q: %w", dateStr, err)
		}
		return t, nil
	}
	return t, nil
}
