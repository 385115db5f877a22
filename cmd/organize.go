package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/mediasort/internal/config"
	"github.com/user/mediasort/internal/fingerprint"
	"github.com/user/mediasort/internal/metadata"
	"github.com/user/mediasort/internal/organize"
)

var (
	organizeMove    bool
	organizeDryRun  bool
	organizeDebug   bool
	organizeMode    string
	organizeDupAct  string
	organizeJunkAct string
	organizeConfig  string
)

var organizeCmd = &cobra.Command{
	Use:   "organize <source> <destination>",
	Short: "Sort media into a date-based folder hierarchy",
	Long: `Scan a source tree and route every photo and video to exactly one
destination: the sorted tree (<dest>/<YYYY>/<MM-MonthName>/), the
duplicates bucket, the junk bucket, the no-metadata bucket or the
corrupt-video bucket.

Duplicate detection runs against the persistent index in the destination
root; --compare-mode content compares images by decoded pixels so
re-encoded copies collide. Per-file failures are counted and logged but
never abort the run.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(organizeConfig)
		if err != nil {
			return err
		}
		mode := fingerprint.Mode(organizeMode)
		if !mode.Valid() {
			return fmt.Errorf("invalid --compare-mode %q (want file or content)", organizeMode)
		}
		dupAction := config.Action(organizeDupAct)
		if !dupAction.Valid() {
			return fmt.Errorf("invalid --dup-action %q (want ignore, move or delete)", organizeDupAct)
		}
		junkAction := config.Action(organizeJunkAct)
		if !junkAction.Valid() {
			return fmt.Errorf("invalid --junk-action %q (want ignore, move or delete)", organizeJunkAct)
		}
		if err := requireDir(args[0]); err != nil {
			return err
		}

		opts := organize.Options{
			DryRun:     organizeDryRun,
			Move:       organizeMove,
			DupAction:  dupAction,
			JunkAction: junkAction,
			Mode:       mode,
			Debug:      organizeDebug || verbose,
			Quiet:      quiet,
		}
		org, err := organize.New(args[0], args[1], cfg, opts, metadata.MP4Prober{})
		if err != nil {
			return err
		}
		// Per-file errors are already counted in the summary; only an
		// unrecoverable failure should produce a non-zero exit.
		_, err = org.Run(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(organizeCmd)
	organizeCmd.Flags().BoolVar(&organizeMove, "move", false, "Move files instead of copying them")
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "Log decisions without touching the filesystem")
	organizeCmd.Flags().BoolVar(&organizeDebug, "debug", false, "Log every pipeline decision")
	organizeCmd.Flags().StringVar(&organizeMode, "compare-mode", "file", "Hash mode: file (bytes) or content (decoded pixels)")
	organizeCmd.Flags().StringVar(&organizeDupAct, "dup-action", "move", "What to do with duplicates: ignore, move or delete")
	organizeCmd.Flags().StringVar(&organizeJunkAct, "junk-action", "ignore", "What to do with junk files: ignore, move or delete")
	organizeCmd.Flags().StringVar(&organizeConfig, "config", "", "Optional YAML config file overriding the default thresholds")
}
