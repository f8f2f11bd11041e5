package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/analyzer"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/config"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/document"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/report"
)

var (
	providerName string
	modelName    string
	windowSize   int
	windowLap    int
)

var structureCmd = &cobra.Command{
	Use:   "structure <document.pdf>",
	Short: "Recover the chapter hierarchy of a document",
	Long: `Recover the chapter and section hierarchy of a lastenboek PDF by
querying a language model about overlapping page windows and reconciling
the partial answers.

Writes chapters.json and toc_report.md to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig()
		if err != nil {
			return err
		}
		logger := newLogger()
		pdfPath := args[0]

		totalPages, err := document.PageCount(pdfPath)
		if err != nil {
			return fmt.Errorf("counting pages of %s: %w", pdfPath, err)
		}

		pdfBytes, err := os.ReadFile(pdfPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", pdfPath, err)
		}

		doc := analyzer.DocumentPayload{
			Name: filepath.Base(pdfPath),
			PDF:  pdfBytes,
		}

		ctx := cmd.Context()
		provider, err := newProvider(cmd, cfg, pdfPath, &doc)
		if err != nil {
			return err
		}

		scheduler := analyzer.NewScheduler(provider, logger)
		scheduler.WindowSize = cfg.WindowSize
		scheduler.Overlap = cfg.Overlap
		scheduler.MaxRetries = cfg.MaxRetries
		scheduler.Limiter().BaseDelay = time.Duration(cfg.BaseDelay * float64(time.Second))

		windows := analyzer.PlanWindows(totalPages, cfg.WindowSize, cfg.Overlap)
		report.FormatRunHeader(cmd.OutOrStdout(), doc.Name, provider.Model(), totalPages, len(windows))

		h, err := scheduler.Run(ctx, doc, totalPages)
		if err != nil {
			return err
		}

		chaptersPath := filepath.Join(cfg.OutputDir, "chapters.json")
		if err := h.Save(chaptersPath); err != nil {
			return err
		}
		tocPath := filepath.Join(cfg.OutputDir, "toc_report.md")
		if err := report.WriteTOCReport(tocPath, doc.Name, h); err != nil {
			return err
		}

		report.FormatHierarchySummary(cmd.OutOrStdout(), h)
		logger.Info("structure recovered", "chapters", chaptersPath, "report", tocPath)
		return nil
	},
}

func init() {
	structureCmd.Flags().StringVar(&providerName, "provider", "", "Analysis provider (gemini, openai)")
	structureCmd.Flags().StringVar(&modelName, "model", "", "Model name (provider default when empty)")
	structureCmd.Flags().IntVar(&windowSize, "window-size", 0, "Pages per analysis window")
	structureCmd.Flags().IntVar(&windowLap, "overlap", 0, "Pages shared between adjacent windows")
	rootCmd.AddCommand(structureCmd)
}

// loadRunConfig merges the config file with command-line overrides.
func loadRunConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if providerName != "" {
		cfg.Provider = providerName
	}
	if modelName != "" {
		cfg.Model = modelName
	}
	if windowSize > 0 {
		cfg.WindowSize = windowSize
	}
	if windowLap > 0 {
		cfg.Overlap = windowLap
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newProvider builds the configured analysis provider. The OpenAI backend
// cannot take the PDF itself, so its session is seeded with extracted text.
func newProvider(cmd *cobra.Command, cfg *config.Config, pdfPath string, doc *analyzer.DocumentPayload) (analyzer.Provider, error) {
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case "gemini":
		return analyzer.NewGeminiProvider(cmd.Context(), apiKey, cfg.Model)
	case "openai":
		pages, err := document.ExtractPages(pdfPath)
		if err != nil {
			return nil, fmt.Errorf("extracting text from %s: %w", pdfPath, err)
		}
		var parts []string
		for _, p := range pages {
			parts = append(parts, fmt.Sprintf("[pagina %d]\n%s", p.Number, p.Text))
		}
		doc.Text = strings.Join(parts, "\n\n")
		return analyzer.NewOpenAIProvider(apiKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
