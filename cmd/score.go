package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openlead/leadgen-cli/internal/export"
	"github.com/openlead/leadgen-cli/internal/model"
)

var (
	scoreInput    string
	scoreOutput   string
	scoreMinScore float64
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Re-score a previously exported JSON lead list",
	Long:  "Reads a JSON export, recomputes every lead score with the current weights, filters by the minimum score, and writes the result back out sorted by score.",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(scoreInput)
		if err != nil {
			return eris.Wrapf(err, "open %s", scoreInput)
		}
		companies, err := export.ReadJSON(f)
		_ = f.Close()
		if err != nil {
			return err
		}

		sc, err := buildScorer(cfg)
		if err != nil {
			return err
		}
		companies = sc.ScoreAll(companies)

		minScore := cfg.Scoring.MinScore
		if cmd.Flags().Changed("min-score") {
			minScore = scoreMinScore
		}
		if minScore > 0 {
			kept := companies[:0]
			for _, c := range companies {
				if c.Score != nil && c.Score.Total >= minScore {
					kept = append(kept, c)
				}
			}
			companies = kept
		}

		output := scoreOutput
		if output == "" {
			output = scoreInput
		}
		if err := export.ToFile(output, &export.JSONExporter{}, companies); err != nil {
			return err
		}

		zap.L().Info("re-scoring complete",
			zap.String("input", scoreInput),
			zap.String("output", output),
			zap.Int("leads", len(companies)),
			zap.Int("high_priority", countPriority(companies, model.PriorityHigh)),
		)
		return nil
	},
}

func countPriority(companies []*model.Company, p model.Priority) int {
	n := 0
	for _, c := range companies {
		if c.Score != nil && c.Score.Priority == p {
			n++
		}
	}
	return n
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "input", "i", "", "JSON export to re-score (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", "", "output path (default: overwrite input)")
	scoreCmd.Flags().Float64Var(&scoreMinScore, "min-score", 0, "drop leads scoring below this threshold")
	_ = scoreCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(scoreCmd)
}
