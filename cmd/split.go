package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/config"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/document"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/hierarchy"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/partition"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/report"
)

var parsedPath string

var splitCmd = &cobra.Command{
	Use:   "split <document.pdf> <chapters.json>",
	Short: "Partition page content along the recovered hierarchy",
	Long: `Assign the text of every page to the chapters and sections that
claim it, splitting shared pages at detected heading boundaries.

Heading levels are corrected and boilerplate headings dropped before
partitioning. Writes chapters_with_text.json and a quality summary to the
output directory. With --parsed, pages come from a parsed-document JSON
file instead of the PDF.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		logger := newLogger()
		pdfPath, chaptersPath := args[0], args[1]

		h, err := hierarchy.Load(chaptersPath)
		if err != nil {
			return err
		}
		if len(h) == 0 {
			return fmt.Errorf("%s holds no chapters", chaptersPath)
		}

		var pages []document.Page
		if parsedPath != "" {
			pages, err = document.LoadPages(parsedPath)
		} else {
			pages, err = document.ExtractPages(pdfPath)
		}
		if err != nil {
			return err
		}

		corrected := document.CorrectPages(pages, logger)
		logger.Info("heading levels corrected", "pages", len(pages), "corrections", corrected)

		records := partition.NewPartitioner(logger).Partition(h, pages)
		quality := partition.AnalyzeQuality(records, h, pages)

		recordsPath := filepath.Join(cfg.OutputDir, "chapters_with_text.json")
		if err := partition.SaveRecords(recordsPath, records); err != nil {
			return err
		}

		report.FormatPartitionSummary(cmd.OutOrStdout(), records, quality)
		fmt.Fprint(cmd.OutOrStdout(), quality.Summary())
		logger.Info("content partitioned", "records", recordsPath)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVar(&parsedPath, "parsed", "", "Parsed-document JSON file to use instead of extracting the PDF")
	rootCmd.AddCommand(splitCmd)
}
