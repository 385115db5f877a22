// Package testutil synthesizes media fixtures for tests: solid-color
// images in various encodings and a minimal TIFF carrying an EXIF
// capture date.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// SolidImage returns a width x height image filled with c.
func SolidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// WritePNG encodes img to dir/name and returns the full path.
func WritePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return WriteFile(t, dir, name, buf.Bytes())
}

// WriteGIF encodes img to dir/name and returns the full path.
func WriteGIF(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode GIF: %v", err)
	}
	return WriteFile(t, dir, name, buf.Bytes())
}

// WriteFile writes data to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// TIFFWithExifDate builds a minimal little-endian TIFF whose EXIF sub-IFD
// carries DateTimeOriginal set to dateTime (format "2006:01:02 15:04:05").
// padding extra zero bytes are appended after the structures; TIFF readers
// ignore trailing bytes, so this is a cheap way to control file size.
func TIFFWithExifDate(dateTime string, padding int) []byte {
	if len(dateTime) != 19 {
		panic("EXIF datetime must be 19 characters")
	}
	le := binary.LittleEndian
	var buf bytes.Buffer

	// Header: byte order, magic, offset of IFD0.
	buf.WriteString("II")
	w16 := func(v uint16) { b := make([]byte, 2); le.PutUint16(b, v); buf.Write(b) }
	w32 := func(v uint32) { b := make([]byte, 4); le.PutUint32(b, v); buf.Write(b) }
	w16(42)
	w32(8)

	// Layout: IFD0 at 8 (2 + 12 + 4 = 18 bytes), Exif IFD at 26,
	// DateTimeOriginal string at 44.
	const exifIFDOffset = 26
	const dateOffset = 44

	// IFD0: one entry, the Exif IFD pointer (tag 0x8769, type LONG).
	w16(1)
	w16(0x8769)
	w16(4)
	w32(1)
	w32(exifIFDOffset)
	w32(0) // no next IFD

	// Exif IFD: one entry, DateTimeOriginal (tag 0x9003, type ASCII, 20 bytes).
	w16(1)
	w16(0x9003)
	w16(2)
	w32(20)
	w32(dateOffset)
	w32(0)

	buf.WriteString(dateTime)
	buf.WriteByte(0)

	buf.Write(make([]byte, padding))
	return buf.Bytes()
}

// TIFFWithDateTime builds a minimal little-endian TIFF whose IFD0 carries
// only the plain DateTime tag (0x0132), without an EXIF sub-IFD. This is
// the shape a writer-stamped file has: modified, not captured.
func TIFFWithDateTime(dateTime string, padding int) []byte {
	if len(dateTime) != 19 {
		panic("EXIF datetime must be 19 characters")
	}
	le := binary.LittleEndian
	var buf bytes.Buffer

	buf.WriteString("II")
	w16 := func(v uint16) { b := make([]byte, 2); le.PutUint16(b, v); buf.Write(b) }
	w32 := func(v uint32) { b := make([]byte, 4); le.PutUint32(b, v); buf.Write(b) }
	w16(42)
	w32(8)

	// IFD0 at 8 (2 + 12 + 4 = 18 bytes), DateTime string at 26.
	const dateOffset = 26
	w16(1)
	w16(0x0132)
	w16(2)
	w32(20)
	w32(dateOffset)
	w32(0) // no next IFD

	buf.WriteString(dateTime)
	buf.WriteByte(0)

	buf.Write(make([]byte, padding))
	return buf.Bytes()
}
