package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ragTopK int

var ragCmd = &cobra.Command{
	Use:   "rag [query]",
	Short: "Rerank hits and assemble a prompt",
	Long: `Retrieves hits for the query, applies every configured rerank
strategy, assembles a length-bounded context block per strategy and
prints the filled prompt template.`,
	Args: cobra.ExactArgs(1),
	RunE: runRag,
}

func init() {
	ragCmd.Flags().IntVarP(&ragTopK, "top-k", "k", 0, "maximum number of hits to rerank (0 uses the configured default)")
	rootCmd.AddCommand(ragCmd)
}

func runRag(cmd *cobra.Command, args []string) error {
	if ragService == nil {
		return errors.New("rag service not configured")
	}

	results, err := ragService.Run(cmd.Context(), args[0], ragTopK)
	if err != nil {
		return fmt.Errorf("rag failed: %w", err)
	}
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for _, result := range results {
		cmd.Printf("=== Strategy: %s ===\n", result.Strategy)
		if len(result.Ranked) == 0 {
			cmd.Println("No hits above threshold.")
			cmd.Println()
			continue
		}
		for i, ranked := range result.Ranked {
			hit := result.Hits[ranked.HitIndex]
			cmd.Printf("[%d] %.4f  %s\n", i+1, ranked.Score, snippet(hit.Chunk.Text, 80))
		}
		cmd.Printf("Prompt:\n%s\n\n", result.Prompt)
	}
	return nil
}
