package dupfinder

import (
	"image"
	"os"

	"github.com/corona10/goimagehash"
	"github.com/schollz/progressbar/v3"

	"github.com/user/mediasort/internal/media"
	"github.com/user/mediasort/internal/scan"
)

// NearPair is two images whose perceptual hashes are within the requested
// distance. Exact duplicates also qualify (distance 0).
type NearPair struct {
	A        string
	B        string
	Distance int
}

// NearDuplicates computes a perceptual hash for every decodable image
// under root and returns the pairs within maxDistance bits of each other.
// Unlike the exact scanner this catches re-encoded and lightly edited
// copies, at the cost of a pairwise comparison.
func (f Finder) NearDuplicates(root string, ignore map[string]bool, maxDistance int) ([]NearPair, error) {
	type hashed struct {
		path string
		hash *goimagehash.ImageHash
	}
	var images []hashed

	var bar *progressbar.ProgressBar
	if !f.Quiet {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Perceptual hashing"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}

	err := scan.Walk(root, ignore, func(path string) error {
		if media.CategoryOf(path) != media.Image {
			return nil
		}
		if bar != nil {
			bar.Add(1)
		}
		file, err := os.Open(path)
		if err != nil {
			return nil
		}
		img, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			return nil
		}
		ph, err := goimagehash.PerceptionHash(img)
		if err != nil {
			return nil
		}
		images = append(images, hashed{path: path, hash: ph})
		return nil
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	var pairs []NearPair
	for i := 0; i < len(images); i++ {
		for j := i + 1; j < len(images); j++ {
			dist, err := images[i].hash.Distance(images[j].hash)
			if err != nil {
				continue
			}
			if dist <= maxDistance {
				pairs = append(pairs, NearPair{A: images[i].path, B: images[j].path, Distance: dist})
			}
		}
	}
	return pairs, nil
}
