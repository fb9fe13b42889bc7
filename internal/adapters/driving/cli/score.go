package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/core/services"
)

var (
	scoreSources []string
	scoreQueryID string
	scoreNoSave  bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [question] [answer]",
	Short: "Score an answer for quality",
	Long: `Evaluates a generated answer against its question and grounding
sources, producing relevance, source quality, citation and medical
term metrics plus a weighted overall score. Results are stored for
later review unless --no-save is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringArrayVar(&scoreSources, "source", nil, "grounding source text (repeatable)")
	scoreCmd.Flags().StringVar(&scoreQueryID, "query-id", "", "identifier for the query (derived from the question when empty)")
	scoreCmd.Flags().BoolVar(&scoreNoSave, "no-save", false, "compute metrics without storing the result")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	question, answer := args[0], args[1]

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var result domain.EvaluationResult
	if scoreNoSave {
		result = services.Score(question, answer, scoreSources, scoreQueryID)
	} else {
		eval, err := newEvaluationService()
		if err != nil {
			return err
		}
		result, err = eval.Evaluate(ctx, question, answer, scoreSources, scoreQueryID)
		if err != nil {
			return err
		}
	}

	printEvaluation(cmd, result)
	return nil
}

// printEvaluation renders one evaluation result.
func printEvaluation(cmd *cobra.Command, result domain.EvaluationResult) {
	bold := color.New(color.Bold).SprintFunc()

	cmd.Printf("%s %s\n", bold("Query ID:"), result.QueryID)
	cmd.Printf("  relevance:          %.3f\n", result.Metrics[domain.MetricRelevance])
	cmd.Printf("  source quality:     %.3f\n", result.Metrics[domain.MetricSourceQuality])
	cmd.Printf("  citations:          %.0f\n", result.Metrics[domain.MetricCitationCount])
	cmd.Printf("  medical terms:      %.0f\n", result.Metrics[domain.MetricMedicalTermCount])
	cmd.Printf("  %s %.3f\n", bold("overall score:     "), result.OverallScore())
}
