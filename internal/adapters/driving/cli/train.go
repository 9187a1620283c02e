package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	storagefile "github.com/millrace-labs/skim-cli/internal/adapters/driven/storage/file"
	"github.com/millrace-labs/skim-cli/internal/core/ports/driving"
)

var (
	trainVersion    string
	trainChunksPath string
)

var trainCmd = &cobra.Command{
	Use:   "train [model]",
	Short: "Train a custom embedder model",
	Long: `Reads the chunk log and builds a token-weight table where each
token's weight is its share of the total token count. The model is
written under the models directory as a new version.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainVersion, "version", "", "model version (default derives one from the current time)")
	trainCmd.Flags().StringVar(&trainChunksPath, "chunks", "", "train from this chunk log instead of the configured one")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	if trainService == nil {
		return errors.New("train service not configured")
	}

	var opts driving.TrainOptions
	if trainChunksPath != "" {
		opts.Chunks = storagefile.NewChunkLog(trainChunksPath)
	}

	outcome, err := trainService.Train(cmd.Context(), args[0], trainVersion, opts)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	manifest := outcome.Manifest
	cmd.Printf("Trained %s@%s: %d examples, %d vocabulary tokens\n",
		manifest.Name, manifest.Version, manifest.ExampleCount, len(manifest.TokenWeights))
	cmd.Printf("Manifest written to %s\n", outcome.ManifestPath)
	return nil
}
