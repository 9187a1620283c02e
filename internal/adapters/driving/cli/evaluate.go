package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the retrieval evaluation suite",
	Long: `Runs the configured evaluation queries against every configured
embedder variant and reports recall, MRR, nDCG and latency per
variant. Runs are logged to the run directory when enabled.`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	if evaluateService == nil {
		return errors.New("evaluation service not configured")
	}

	outcomes, err := evaluateService.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	if len(outcomes) == 0 {
		cmd.Println("No evaluation queries configured.")
		return nil
	}

	for _, outcome := range outcomes {
		m := outcome.Run.Metrics
		cmd.Printf("%s: recall %.3f, MRR %.3f, nDCG %.3f, avg latency %.2fms (%d queries, index size %d)\n",
			outcome.Run.Embedder, m.Recall, m.MRR, m.NDCG, m.AvgLatencyMS, len(outcome.Run.Queries), m.IndexSize)
		if outcome.LogPath != "" {
			cmd.Printf("  run logged to %s\n", outcome.LogPath)
		}
	}
	return nil
}
