package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/version"
)

var (
	configFile string
	outputDir  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "lastenboek-split",
	Short: "Recover structure and split content of scanned lastenboek documents",
	Long: `lastenboek-split recovers the chapter and section hierarchy of large
scanned construction specification documents (lastenboeken) and assigns the
text of every page to the sections that claim it.

The structure step asks a language model about overlapping page windows and
reconciles the answers into chapters.json; the split step partitions page
content along detected heading boundaries into chapters_with_text.json.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("lastenboek-split %s\n", version.String()))

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for output artifacts (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the run's structured logger, honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
