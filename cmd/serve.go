package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamo/photo-gallery/internal/importer"
	"github.com/jamo/photo-gallery/internal/pipeline"
	"github.com/jamo/photo-gallery/internal/store"
	"github.com/jamo/photo-gallery/internal/web"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gallery API server",
	Long: `Starts the HTTP server backing the browser gallery:
  - POST /api/photos              upload a batch of images
  - POST /api/import              pull a batch from the cloud provider
  - GET  /api/photos?album=<id>   the filtered, sorted photo grid
  - GET  /api/albums              automatic date and content albums
  - GET  /api/duplicates          exact-duplicate groups for review
  - POST /api/duplicates/<id>/resolve  keep one photo, remove the rest`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&port, "port", 8080, "Port to run the server on")
}

func runServe(cmd *cobra.Command, args []string) error {
	s := store.New()
	p := pipeline.New(s, newClassifier(), importer.NewHTTPFetcher())

	var imp importer.Service
	if importURL != "" {
		imp = importer.NewManifest(importURL)
	} else {
		imp = importer.NewSimulated()
	}

	server := web.NewServer(s, p, imp)

	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting gallery server on http://localhost%s\n", addr)
	fmt.Printf("Classifier: %s\n", classifierMode)
	fmt.Println("\nPress Ctrl+C to stop")

	if err := server.Start(addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
