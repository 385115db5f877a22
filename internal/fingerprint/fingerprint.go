// Package fingerprint computes content hashes for duplicate detection.
//
// Images are hashed by their decoded pixels so that visually identical
// files with different encodings or metadata collide; everything else is
// hashed as a raw byte stream.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"

	_ "github.com/vegidio/heif-go"  // Register HEIF/HEVC decoder
	_ "golang.org/x/image/bmp"      // Register BMP decoder
	_ "golang.org/x/image/tiff"     // Register TIFF decoder
	_ "golang.org/x/image/webp"     // Register WebP decoder

	"github.com/user/mediasort/internal/media"
)

// Mode selects how file content is fingerprinted.
type Mode string

const (
	// ModeFile hashes the raw byte stream of the file.
	ModeFile Mode = "file"
	// ModeContent hashes decoded pixel data for images and falls back to
	// ModeFile for everything else.
	ModeContent Mode = "content"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeFile || m == ModeContent
}

// ErrUnsupportedForPixelHashing is returned when a file cannot be decoded
// for pixel data hashing.
var ErrUnsupportedForPixelHashing = fmt.Errorf("file format not supported for pixel data hashing")

// readChunkSize is the buffer used when streaming file bytes into the
// hasher. The digest is independent of this value.
const readChunkSize = 1024 * 1024

// Compute returns the content hash for path under the given mode. Image and
// RAW categories use pixel hashing in ModeContent; pixel-hash failures and
// all other categories fall back to the byte-stream hash.
func Compute(path string, mode Mode) (string, error) {
	if mode == ModeContent && media.IsImage(path) {
		if hash, err := PixelHash(path); err == nil {
			return hash, nil
		}
		// RAW files and undecodable images fall through to byte hashing.
	}
	return FileHash(path)
}

// FileHash calculates the SHA-256 hash of a file's content, streamed in
// fixed-size chunks.
func FileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s for hashing: %w", path, err)
	}
	defer file.Close()

	hash := sha256.New()
	buf := make([]byte, readChunkSize)
	if _, err := io.CopyBuffer(hash, file, buf); err != nil {
		return "", fmt.Errorf("failed to read file content for hashing %s: %w", path, err)
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// PixelHash calculates the SHA-256 hash of an image's decoded pixel data,
// normalized to 8-bit RGB so the digest is stable across encodings.
func PixelHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s for pixel hashing: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedForPixelHashing, err)
	}

	hasher := sha256.New()
	bounds := img.Bounds()
	row := make([]byte, 0, bounds.Dx()*3)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row = row[:0]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA() // uint32 values (0-0xFFFF)
			row = append(row, byte(r>>8), byte(g>>8), byte(b>>8))
		}
		if _, err := hasher.Write(row); err != nil {
			return "", fmt.Errorf("failed to write pixel data to hasher for %s: %w", path, err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Resolution decodes the image configuration to get its width and height
// without decoding the full pixel data.
func Resolution(path string) (width int, height int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image file %s for resolution: %w", path, err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		// Unrecognized format or corrupted image data.
		return 0, 0, fmt.Errorf("failed to decode image config for %s: %w", path, err)
	}

	return config.Width, config.Height, nil
}
