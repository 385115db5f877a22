package organize

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// printSummary reports the run counters. Printed on every termination
// path, including interrupted runs.
func (o *Organizer) printSummary() {
	verb := "COPYING"
	if o.opts.Move {
		verb = "MOVING"
	}
	if o.opts.DryRun {
		verb = "DRY RUN (" + verb + ")"
	}

	rule := strings.Repeat("-", 40)
	fmt.Println(rule)
	fmt.Printf("Action:         %s\n", verb)
	color.Green("Sorted:         %d", o.stats.Sorted)
	fmt.Printf("Duplicates:     %d\n", o.stats.Duplicates)
	fmt.Printf("Junk:           %d\n", o.stats.Junk)
	fmt.Printf("No metadata:    %d\n", o.stats.NoMetadata)
	if o.stats.CorruptVideos > 0 {
		color.Red("Corrupt videos: %d", o.stats.CorruptVideos)
	} else {
		fmt.Printf("Corrupt videos: %d\n", o.stats.CorruptVideos)
	}
	if o.stats.DeletedDups > 0 {
		fmt.Printf("Deleted dups:   %d\n", o.stats.DeletedDups)
	}
	if o.stats.Errors > 0 {
		color.Yellow("Errors:         %d", o.stats.Errors)
	}
	fmt.Println(rule)
}
