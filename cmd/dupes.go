package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamo/photo-gallery/internal/organize"
	"github.com/jamo/photo-gallery/internal/store"
)

var dupesCmd = &cobra.Command{
	Use:   "dupes <directory>",
	Short: "List exact-duplicate photos in a directory",
	Long: `Ingests a directory and prints every group of photos sharing an exact
fingerprint (capture timestamp plus byte size). No analysis runs and
nothing is removed; use the server's review flow to resolve groups.`,
	Args: cobra.ExactArgs(1),
	RunE: runDupes,
}

func init() {
	rootCmd.AddCommand(dupesCmd)
}

func runDupes(cmd *cobra.Command, args []string) error {
	s := store.New()

	photos, skipped, err := ingestDirectory(s, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Scanned %d photos (%d non-image files skipped)\n\n", len(photos), skipped)

	groups := organize.FindDuplicates(s.Photos())
	if len(groups) == 0 {
		fmt.Println("No exact duplicates found.")
		return nil
	}

	for _, g := range groups {
		fmt.Printf("group %s (%d photos):\n", g.ID, len(g.Photos))
		for _, p := range g.Photos {
			fmt.Printf("  - %s (%d bytes, %s)\n", p.Name, p.ByteSize, p.CapturedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Println()
	}

	return nil
}
