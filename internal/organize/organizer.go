// Package organize is the classify-and-route engine: it drives each
// discovered file through filter, validity, duplicate and date resolution
// stages, relocates it to exactly one destination, and keeps the hash
// index and size set current.
package organize

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/user/mediasort/internal/config"
	"github.com/user/mediasort/internal/dates"
	"github.com/user/mediasort/internal/fingerprint"
	"github.com/user/mediasort/internal/fsops"
	"github.com/user/mediasort/internal/index"
	"github.com/user/mediasort/internal/media"
	"github.com/user/mediasort/internal/metadata"
	"github.com/user/mediasort/internal/scan"
	"github.com/user/mediasort/internal/validity"
)

// Options are the per-run switches selected on the command line.
type Options struct {
	DryRun     bool
	Move       bool
	DupAction  config.Action
	JunkAction config.Action
	Mode       fingerprint.Mode
	Debug      bool
	Quiet      bool
}

// Stats accumulates per-run counters. They are reported at the end of a
// run and never persisted.
type Stats struct {
	Sorted        int
	Duplicates    int
	Junk          int
	Errors        int
	NoMetadata    int
	CorruptVideos int
	DeletedDups   int
}

// Organizer routes files from a source tree into a date-sorted destination
// tree. Construct with New; a single Run consumes the source once.
type Organizer struct {
	cfg      config.Config
	opts     Options
	src      string
	dest     string
	store    *index.Store
	sizes    index.SizeSet
	checker  validity.Checker
	resolver dates.Resolver
	stats    Stats
}

// New prepares an organizer: loads the persistent index for the selected
// hash mode and builds the destination size set. A nil prober downgrades
// video validity and video dates for the whole run.
func New(src, dest string, cfg config.Config, opts Options, prober metadata.VideoProber) (*Organizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path %s: %w", src, err)
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination path %s: %w", dest, err)
	}

	o := &Organizer{
		cfg:      cfg,
		opts:     opts,
		src:      absSrc,
		dest:     absDest,
		store:    index.Open(filepath.Join(absDest, index.FileName(opts.Mode))),
		checker:  validity.Checker{Config: cfg, Prober: prober},
		resolver: dates.Resolver{Prober: prober},
	}
	o.sizes = index.BuildSizeSet(absDest, opts.Quiet)
	return o, nil
}

// Store exposes the backing index, mainly for tests and the final save.
func (o *Organizer) Store() *index.Store {
	return o.store
}

// Run walks the source tree and processes every media file to a terminal
// state. Cancellation of ctx is observed between files and treated as a
// normal termination: the index is saved and the summary printed either way.
func (o *Organizer) Run(ctx context.Context) (Stats, error) {
	filesFound := 0
	interrupted := false

	err := scan.Walk(o.src, o.cfg.IgnoreSet(), func(path string) error {
		if ctx.Err() != nil {
			interrupted = true
			return scan.ErrStop
		}
		filesFound++
		if !o.opts.Quiet && filesFound%100 == 0 {
			fmt.Printf("[Scanning] Found %d files...\r", filesFound)
		}
		if !media.IsMedia(path) {
			return nil
		}
		if err := o.process(path); err != nil {
			o.stats.Errors++
			fmt.Printf("[ERROR] %s: %v\n", filepath.Base(path), err)
		}
		return nil
	})

	if interrupted && !o.opts.Quiet {
		fmt.Println("\n[STOP] Interrupted, flushing state.")
	}

	if !o.opts.DryRun {
		if saveErr := o.saveIndex(); saveErr != nil {
			log.Printf("index save failed: %v", saveErr)
		}
	}
	o.printSummary()
	return o.stats, err
}

// process runs the routing state machine for a single file. The returned
// error covers transient per-file failures only; every terminal decision
// returns nil.
func (o *Organizer) process(path string) error {
	filename := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))
	cat := media.CategoryOf(path)
	o.debugf("--- processing %s (%s) ---", filename, cat)

	// 1. Junk filter.
	if !o.checker.PassesFilters(path) {
		o.stats.Junk++
		o.debugf("junk: %s", filename)
		switch o.opts.JunkAction {
		case config.ActionDelete:
			if !o.opts.DryRun {
				if err := fsops.ForceDelete(path); err != nil {
					return err
				}
			}
		case config.ActionMove:
			if !o.opts.DryRun {
				if err := o.relocate(path, filepath.Join(o.dest, o.cfg.JunkDir, filename)); err != nil {
					return err
				}
			}
		}
		return nil
	}

	// 2. Corrupt video check. Always preserved, never deleted.
	if cat == media.Video && !o.checker.IsVideoValid(path) {
		o.stats.CorruptVideos++
		color.Red("[CORRUPT VIDEO] %s -> %s/", filename, o.cfg.CorruptVideoDir)
		if !o.opts.DryRun {
			return o.relocate(path, filepath.Join(o.dest, o.cfg.CorruptVideoDir, filename))
		}
		return nil
	}

	// 3. Size gate: a size unseen in the destination cannot be a
	// duplicate, so hashing is skipped entirely.
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	srcSize := fi.Size()
	var hash string
	if o.sizes.Contains(srcSize) {
		o.debugf("size match, hashing %s", filename)
		if h, err := fingerprint.Compute(path, o.opts.Mode); err == nil {
			hash = h
		} else {
			o.debugf("hash unavailable for %s: %v", filename, err)
		}
	} else {
		o.debugf("size unique, skipping hash for %s", filename)
	}

	// 4. Duplicate check against the persistent index.
	if hash != "" {
		if _, seen := o.store.Lookup(hash); seen {
			o.stats.Duplicates++
			switch o.opts.DupAction {
			case config.ActionDelete:
				if !o.opts.DryRun {
					if err := fsops.ForceDelete(path); err != nil {
						return err
					}
					o.stats.DeletedDups++
				}
			case config.ActionMove:
				if !o.opts.DryRun {
					if err := o.relocate(path, filepath.Join(o.dest, o.cfg.DuplicatesDir, filename)); err != nil {
						return err
					}
				}
			case config.ActionIgnore:
				fmt.Printf("[IGNORED DUP] %s\n", filename)
			}
			return nil
		}
	}

	// 5. Date resolution.
	date, source, err := o.resolver.Resolve(path, cat)
	if err != nil {
		return err
	}
	o.debugf("date for %s: %s (%s)", filename, date.Format(dates.FilenameFormat), source)

	// 6. Images without real metadata go to their own bucket.
	if o.cfg.SeparateNoMetadata && media.IsImage(path) && source == dates.SourceModTime {
		o.stats.NoMetadata++
		if !o.opts.DryRun {
			base := strings.TrimSuffix(filename, filepath.Ext(filename))
			target := fsops.UniquePath(filepath.Join(o.dest, o.cfg.NoMetadataDir), base, filepath.Ext(filename))
			if err := o.relocate(path, target); err != nil {
				return err
			}
			fmt.Printf("[NO METADATA] %s\n", filename)
		}
		return nil
	}

	// 7. Sort into <dest>/<YYYY>/<MM-MonthName>/<date-stamp><ext>.
	yearFolder := date.Format("2006")
	monthFolder := date.Format("01-January")
	if o.opts.DryRun {
		fmt.Printf("[DRY RUN] %s -> %s/%s\n", filename, yearFolder, monthFolder)
		return nil
	}

	targetFolder := filepath.Join(o.dest, yearFolder, monthFolder)
	if err := os.MkdirAll(targetFolder, 0755); err != nil {
		return fmt.Errorf("failed to create target directory %s: %w", targetFolder, err)
	}
	target := fsops.UniquePath(targetFolder, date.Format(dates.FilenameFormat), ext)
	if err := o.relocate(path, target); err != nil {
		return err
	}
	color.Green("[OK] %s -> %s/%s", filename, yearFolder, monthFolder)

	// The size gate may have skipped hashing; fingerprint the file at its
	// new location so the index stays complete.
	if hash == "" {
		if h, err := fingerprint.Compute(target, o.opts.Mode); err == nil {
			hash = h
		} else {
			o.debugf("post-move hash unavailable for %s: %v", target, err)
		}
	}
	if hash != "" {
		rel, err := filepath.Rel(o.dest, target)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", target, err)
		}
		o.store.Add(hash, filepath.ToSlash(rel))
		o.sizes.Add(srcSize)
		o.stats.Sorted++
		if o.stats.Sorted%o.cfg.SaveInterval == 0 {
			if err := o.saveIndex(); err != nil {
				log.Printf("periodic index save failed: %v", err)
			}
		}
	}
	return nil
}

// relocate moves or copies depending on the run mode.
func (o *Organizer) relocate(src, dest string) error {
	if o.opts.Move {
		return fsops.MoveFile(src, dest)
	}
	return fsops.CopyFile(src, dest)
}

func (o *Organizer) saveIndex() error {
	return o.store.Save()
}

func (o *Organizer) debugf(format string, args ...interface{}) {
	if o.opts.Debug {
		log.Printf("[DEBUG] "+format, args...)
	}
}
