package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var evaluationsLimit int

var evaluationsCmd = &cobra.Command{
	Use:   "evaluations",
	Short: "List stored answer evaluations",
	Long:  `Lists previously stored answer evaluations, newest first.`,
	RunE:  runEvaluations,
}

func init() {
	evaluationsCmd.Flags().IntVarP(&evaluationsLimit, "limit", "n", 10, "maximum number of evaluations to show (0 for all)")
	rootCmd.AddCommand(evaluationsCmd)
}

func runEvaluations(cmd *cobra.Command, _ []string) error {
	eval, err := newEvaluationService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := eval.List(ctx, evaluationsLimit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		cmd.Println("No evaluations stored.")
		return nil
	}

	for i, result := range results {
		if i > 0 {
			cmd.Println()
		}
		cmd.Printf("%s  %s\n", result.CreatedAt.Format("2006-01-02 15:04:05"), result.Query)
		printEvaluation(cmd, result)
	}
	return nil
}
