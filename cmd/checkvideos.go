package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/mediasort/internal/config"
	"github.com/user/mediasort/internal/metadata"
	"github.com/user/mediasort/internal/videocheck"
)

var checkVideosMove bool

var checkVideosCmd = &cobra.Command{
	Use:   "check-videos <directory>",
	Short: "Find corrupt and zombie video files",
	Long: `Parse every video container under a directory and report files whose
structure is unreadable or that parse but expose neither a duration nor
a resolution (zombie files). With --move, corrupt files are relocated to
a Corrupt_Quarantine folder inside the scanned directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDir(args[0]); err != nil {
			return err
		}
		checker := videocheck.Checker{
			Prober:      metadata.MP4Prober{},
			Quarantine:  filepath.Join(args[0], "Corrupt_Quarantine"),
			MoveCorrupt: checkVideosMove,
			Quiet:       quiet,
		}
		stats, err := checker.Scan(args[0], config.Default().IgnoreSet())
		if err != nil {
			return err
		}
		checker.PrintSummary(stats)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkVideosCmd)
	checkVideosCmd.Flags().BoolVar(&checkVideosMove, "move", false, "Move corrupt videos to a quarantine folder")
}
