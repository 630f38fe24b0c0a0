package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jamo/photo-gallery/internal/importer"
	"github.com/jamo/photo-gallery/internal/ingest"
	"github.com/jamo/photo-gallery/internal/models"
	"github.com/jamo/photo-gallery/internal/organize"
	"github.com/jamo/photo-gallery/internal/pipeline"
	"github.com/jamo/photo-gallery/internal/store"
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Organize a directory of photos from the command line",
	Long: `Ingests every image file in a directory (file modification time is used
as the capture time), runs classification to completion, and prints the
derived albums and duplicate groups.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	s := store.New()

	photos, skipped, err := ingestDirectory(s, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Ingested %d photos (%d non-image files skipped)\n", len(photos), skipped)

	p := pipeline.New(s, newClassifier(), importer.NewHTTPFetcher())

	// Analyses run concurrently and complete in any order; each one only
	// patches its own record.
	var wg sync.WaitGroup
	for _, photo := range photos {
		photo := photo
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Run(cmd.Context(), photo); err != nil {
				fmt.Printf("  %s: analysis failed: %v\n", photo.Name, err)
			}
		}()
	}
	wg.Wait()

	snapshot := s.Photos()
	printReport(snapshot, p.Analyzed())
	return nil
}

// ingestDirectory reads a directory's image files into the store. Files
// whose extension does not map to an image media type are skipped silently.
func ingestDirectory(s *store.Store, dir string) ([]models.Photo, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read directory: %w", err)
	}

	var batch []ingest.Upload
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(entry.Name())))
		if !strings.HasPrefix(mediaType, "image/") {
			skipped++
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
		}
		info, err := entry.Info()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		batch = append(batch, ingest.Upload{
			Name:      entry.Name(),
			MediaType: mediaType,
			Data:      data,
			ModTime:   info.ModTime(),
		})
	}

	return ingest.Uploads(s, batch), skipped, nil
}

func printReport(photos []models.Photo, analyzed int64) {
	albums := organize.DeriveAlbums(photos)
	groups := organize.FindDuplicates(photos)

	fmt.Println("\n======================================================================")
	fmt.Println("PHOTO ORGANIZATION REPORT")
	fmt.Println("======================================================================")
	fmt.Println()

	fmt.Printf("Total Photos:      %d\n", len(photos))
	fmt.Printf("Analyzed:          %d\n", analyzed)
	failed := 0
	for _, p := range photos {
		if p.State == models.StateFailed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("Failed analysis:   %d\n", failed)
	}
	fmt.Println()

	fmt.Println("Albums:")
	for _, a := range albums {
		fmt.Printf("  [%s] %-24s %d photos\n", a.Kind, a.Title, a.Count)
	}
	fmt.Println()

	if len(groups) == 0 {
		fmt.Println("No exact duplicates found.")
		return
	}

	fmt.Printf("Duplicate groups: %d\n", len(groups))
	for _, g := range groups {
		fmt.Printf("  group %s:\n", g.ID)
		for _, p := range g.Photos {
			fmt.Printf("    - %s (%d bytes, %s)\n", p.Name, p.ByteSize, p.CapturedAt.Format("2006-01-02 15:04:05"))
		}
	}
}
