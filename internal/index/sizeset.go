package index

import (
	"io/fs"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// SizeSet records the byte sizes of every file under the destination root.
// It is a pre-filter for the duplicate check: a source file whose size is
// absent cannot match anything already stored, so hashing is skipped.
// False positives (same size, different content) are fine; sizes are added
// on every successful insert and never removed during a run.
type SizeSet map[int64]struct{}

// Contains reports whether any destination file has this byte size.
func (s SizeSet) Contains(size int64) bool {
	_, ok := s[size]
	return ok
}

// Add registers a byte size.
func (s SizeSet) Add(size int64) {
	s[size] = struct{}{}
}

// BuildSizeSet scans the destination tree once and collects the sizes of
// every file present. Unreadable entries are skipped. With quiet set, no
// progress spinner is shown.
func BuildSizeSet(root string, quiet bool) SizeSet {
	set := SizeSet{}

	var bar *progressbar.ProgressBar
	if !quiet {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Mapping destination sizes"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
	}

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			set.Add(fi.Size())
			if bar != nil {
				bar.Add(1)
			}
		}
		return nil
	})
	if bar != nil {
		bar.Finish()
	}
	return set
}
