package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jamo/photo-gallery/internal/classify"
)

var (
	classifierMode string
	classifierURL  string
	classifierKey  string
	importURL      string
)

var rootCmd = &cobra.Command{
	Use:   "photo-gallery",
	Short: "Organize a photo collection into albums and find duplicates",
	Long: `Photo Gallery ingests images, classifies them into content categories,
groups them into automatic date and content albums, and detects exact
duplicates for review. Classification runs against a remote vision service
or a deterministic filename-based fallback.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Load .env file if it exists
	godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&classifierMode, "classifier", envOr("CLASSIFIER", "filename"), "Classifier to use: filename or remote")
	rootCmd.PersistentFlags().StringVar(&classifierURL, "classifier-url", os.Getenv("CLASSIFIER_URL"), "Vision service base URL (remote classifier only, can be set via CLASSIFIER_URL)")
	rootCmd.PersistentFlags().StringVar(&classifierKey, "classifier-key", os.Getenv("CLASSIFIER_API_KEY"), "Vision service API key (can be set via CLASSIFIER_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&importURL, "import-url", os.Getenv("IMPORT_MANIFEST_URL"), "Cloud import manifest URL; empty uses the built-in simulated provider")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch classifierMode {
		case "filename":
		case "remote":
			if classifierURL == "" {
				return fmt.Errorf("classifier-url is required with --classifier remote (or set CLASSIFIER_URL)")
			}
		default:
			return fmt.Errorf("unknown classifier %q (want filename or remote)", classifierMode)
		}
		return nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newClassifier() classify.Classifier {
	if classifierMode == "remote" {
		return classify.NewRemote(classifierURL, classifierKey)
	}
	return classify.NewHeuristic()
}
