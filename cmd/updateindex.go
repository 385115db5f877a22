package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/mediasort/internal/indexer"
)

var updateIndexCmd = &cobra.Command{
	Use:   "update-index [directory]",
	Short: "Rebuild the hash index over an existing sorted tree",
	Long: `Walk a sorted tree and add every media file that is not yet recorded in
photo_index.json, hashing only the new files. Use this after moving
files into the tree by hand, or to seed the index for a tree organized
before indexing existed. Defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		if err := requireDir(root); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Target directory: %s\n", root)

		stats, err := indexer.Update(root, quiet)
		if err != nil {
			return err
		}
		rule := strings.Repeat("=", 40)
		fmt.Println(rule)
		fmt.Printf("New items added:      %d\n", stats.New)
		fmt.Printf("Total items in index: %d\n", stats.Total)
		fmt.Println(rule)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateIndexCmd)
}
