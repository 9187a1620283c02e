package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/millrace-labs/skim-cli/internal/core/domain"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driving"
)

var (
	ingestStrategy       string
	ingestEmitWordTally  bool
	ingestEmitNormalized bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest documents into the corpus",
	Long: `Walks the given path, normalises and chunks every matching file,
embeds the chunks and persists the updated corpus snapshot. Files
whose content is already in the corpus are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestStrategy, "strategy", "structured", "chunking strategy (structured or fixed)")
	ingestCmd.Flags().BoolVar(&ingestEmitWordTally, "emit-word-tally", false, "write a word-count CSV artifact")
	ingestCmd.Flags().BoolVar(&ingestEmitNormalized, "emit-normalized", false, "write the normalised text artifact")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	strategy, err := domain.ParseChunkStrategy(ingestStrategy)
	if err != nil {
		return fmt.Errorf("invalid strategy %q: %w", ingestStrategy, err)
	}

	summary, err := ingestService.Ingest(cmd.Context(), args[0], strategy, driving.IngestOptions{
		EmitWordTally:  ingestEmitWordTally,
		EmitNormalized: ingestEmitNormalized,
	})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingest complete: %d documents, %d chunks", summary.Documents, summary.Chunks)
	if summary.Skipped > 0 {
		cmd.Printf(" (%d files skipped as duplicates)", summary.Skipped)
	}
	cmd.Println()
	return nil
}
