package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if corpus == nil {
		return errors.New("corpus not loaded")
	}

	cmd.Printf("Documents: %d\n", len(corpus.Documents))
	cmd.Printf("Chunks:    %d\n", len(corpus.Chunks))
	cmd.Printf("Indexed:   %d\n", len(corpus.IndexEntries))
	if len(corpus.Documents) > 0 {
		cmd.Printf("Latest:    %s\n", corpus.Documents[len(corpus.Documents)-1].Path)
	}
	return nil
}
