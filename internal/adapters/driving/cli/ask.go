package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	askTopK        int
	askShowSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed documents",
	Long: `Retrieves the most relevant passages for the question and generates
an answer grounded on them using the configured language model.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "k", "k", 0, "number of passages to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askShowSources, "show-sources", false, "print the retrieved passages after the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	query, err := newQueryService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	k := askTopK
	if k == 0 {
		k = cfg.Retrieval.TopK
	}

	answer, err := query.Ask(ctx, question, k)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	cmd.Println(bold("Answer:"))
	cmd.Println(answer.Text)

	if askShowSources {
		cmd.Println()
		cmd.Println(bold("Sources:"))
		for i, passage := range answer.Passages {
			cmd.Printf("  [%d] %s (%.3f)\n", i+1, cyan(passage.Source), passage.Score)
			cmd.Printf("      %s\n", snippet(passage.Content, 160))
		}
	}

	return nil
}

// snippet truncates text for single-line display.
func snippet(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen] + "..."
}
