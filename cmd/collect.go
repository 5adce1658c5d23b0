package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openlead/leadgen-cli/internal/export"
)

var (
	collectCatalog  string
	collectFormat   string
	collectOutput   string
	collectMinScore float64
	collectWorkers  int
	collectLimit    int
	collectNoDedup  bool
	collectNoEnrich bool
	collectNoScore  bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run the full collection pipeline and export the lead list",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg, err := loadSources(cfg, collectCatalog)
		if err != nil {
			return err
		}

		sc, err := buildScorer(cfg)
		if err != nil {
			return err
		}

		minScore := cfg.Scoring.MinScore
		if cmd.Flags().Changed("min-score") {
			minScore = collectMinScore
		}
		if collectWorkers > 0 {
			cfg.Pipeline.Workers = collectWorkers
		}
		if collectNoDedup {
			cfg.Pipeline.EnableDedup = false
		}
		if collectNoEnrich {
			cfg.Pipeline.EnableEnrichment = false
		}
		if collectNoScore {
			cfg.Pipeline.EnableScoring = false
		}
		orch, err := buildOrchestrator(cfg, minScore)
		if err != nil {
			return err
		}

		result, err := orch.Run(ctx, reg.List(), defaultEnrichers(), sc)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		if collectLimit > 0 && len(result.Companies) > collectLimit {
			result.Companies = result.Companies[:collectLimit]
		}

		format := cfg.Export.Format
		if collectFormat != "" {
			format = collectFormat
		}
		exp, err := export.ForFormat(format)
		if err != nil {
			return err
		}
		output := cfg.Export.Path
		if collectOutput != "" {
			output = collectOutput
		}
		if err := export.ToFile(output, exp, result.Companies); err != nil {
			return err
		}

		zap.L().Info("collection complete",
			zap.String("output", output),
			zap.Int("scraped", result.TotalScraped),
			zap.Int("unique", result.UniqueCount),
			zap.Int("exported", len(result.Companies)),
			zap.Duration("elapsed", result.Elapsed),
		)

		// Summary JSON on stdout; records are in the export file.
		summary := struct {
			RunID       string   `json:"run_id"`
			Output      string   `json:"output"`
			Scraped     int      `json:"scraped"`
			Unique      int      `json:"unique"`
			Exported    int      `json:"exported"`
			FilteredOut int      `json:"filtered_out"`
			Warnings    []string `json:"warnings,omitempty"`
		}{
			RunID:       result.RunID,
			Output:      output,
			Scraped:     result.TotalScraped,
			Unique:      result.UniqueCount,
			Exported:    len(result.Companies),
			FilteredOut: result.FilteredOut,
			Warnings:    result.Warnings,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

func init() {
	collectCmd.Flags().StringVar(&collectCatalog, "catalog", "", "source catalog path (default from config)")
	collectCmd.Flags().StringVar(&collectFormat, "format", "", "export format: csv, json, xlsx (default from config)")
	collectCmd.Flags().StringVarP(&collectOutput, "output", "o", "", "output file path (default from config)")
	collectCmd.Flags().Float64Var(&collectMinScore, "min-score", 0, "drop leads scoring below this threshold")
	collectCmd.Flags().IntVar(&collectWorkers, "workers", 0, "concurrent source adapters (default from config)")
	collectCmd.Flags().IntVar(&collectLimit, "limit", 0, "export at most this many leads (0 = all)")
	collectCmd.Flags().BoolVar(&collectNoDedup, "no-dedup", false, "skip deduplication")
	collectCmd.Flags().BoolVar(&collectNoEnrich, "no-enrich", false, "skip enrichment")
	collectCmd.Flags().BoolVar(&collectNoScore, "no-score", false, "skip scoring and filtering")
	rootCmd.AddCommand(collectCmd)
}
