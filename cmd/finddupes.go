package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/mediasort/internal/config"
	"github.com/user/mediasort/internal/dates"
	"github.com/user/mediasort/internal/dupfinder"
	"github.com/user/mediasort/internal/metadata"
)

var (
	findDupesDelete   bool
	findDupesNear     bool
	findDupesDistance int
)

var findDupesCmd = &cobra.Command{
	Use:   "find-dupes <directory>",
	Short: "Find duplicate images and videos by content",
	Long: `Hash every image (by decoded pixels) and video (by byte stream) under a
directory and group files with identical content. Within each group the
oldest capture date is kept, with the shortest path as tie-break; the
rest are reported or, with --delete, removed.

With --near, images are additionally compared by perceptual hash to
surface re-encoded or lightly edited copies; near matches are reported
only, never deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDir(args[0]); err != nil {
			return err
		}
		finder := dupfinder.Finder{
			Resolver: dates.Resolver{Prober: metadata.MP4Prober{}},
			Quiet:    quiet,
		}
		ignore := config.Default().IgnoreSet()

		groups, scanned, err := finder.Scan(args[0], ignore)
		if err != nil {
			return err
		}
		fmt.Printf("Scanned %d files.\n", scanned)

		total := 0
		var reclaimable int64
		for _, g := range groups {
			dups := g.Duplicates()
			total += len(dups)
			fmt.Printf("\n[GROUP] Found %d duplicate(s):\n", len(dups))
			fmt.Printf("  KEEPING (oldest): %s (%s)\n", filepath.Base(g.Files[0].Path), g.Files[0].Date.Format(dates.FilenameFormat))
			for _, d := range dups {
				fmt.Printf("  DUPLICATE:        %s (%s)\n", filepath.Base(d.Path), d.Date.Format(dates.FilenameFormat))
				reclaimable += d.Size
			}
		}

		if findDupesDelete {
			removed, reclaimed := dupfinder.Remove(groups, func(path string, err error) {
				color.Red("     -> ERROR DELETING %s: %v", path, err)
			})
			fmt.Printf("\nDeleted %d duplicate(s), reclaimed %.2f MB\n", removed, float64(reclaimed)/(1024*1024))
		} else {
			fmt.Println(strings.Repeat("-", 50))
			fmt.Printf("Total duplicates found: %d\n", total)
			fmt.Printf("Potential space reclaimed: %.2f MB\n", float64(reclaimable)/(1024*1024))
			if total > 0 {
				fmt.Println("(Run with --delete to remove them; the oldest copy is kept.)")
			}
		}

		if findDupesNear {
			pairs, err := finder.NearDuplicates(args[0], ignore, findDupesDistance)
			if err != nil {
				return err
			}
			fmt.Printf("\nNear-duplicate image pairs (perceptual distance <= %d):\n", findDupesDistance)
			for _, p := range pairs {
				fmt.Printf("  %s <-> %s (distance %d)\n", p.A, p.B, p.Distance)
			}
			if len(pairs) == 0 {
				fmt.Println("  none")
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findDupesCmd)
	findDupesCmd.Flags().BoolVar(&findDupesDelete, "delete", false, "Delete the duplicates (the oldest copy is kept)")
	findDupesCmd.Flags().BoolVar(&findDupesNear, "near", false, "Also report perceptually similar image pairs")
	findDupesCmd.Flags().IntVar(&findDupesDistance, "distance", 10, "Maximum perceptual hash distance for --near")
}
