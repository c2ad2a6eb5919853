package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuchat/internal/chunking"
)

var ingestStrategy string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the index",
	Long: `Reads a plain text or markdown file, splits it into fragments,
indexes the fragments in the vector store and records the document
in the local catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestStrategy, "strategy", "s", chunking.StrategyFixedSize,
		"chunking strategy (fixed_size or semantic)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := ingestionService.IngestFile(context.Background(), content,
		filepath.Base(path), ingestStrategy)
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", path, err)
	}

	cmd.Printf("Ingested %s\n", result.Filename)
	cmd.Printf("  Document ID: %s\n", result.DocumentID)
	cmd.Printf("  Fragments:   %d\n", result.FragmentCount)
	cmd.Printf("  Status:      %s\n", result.Status)
	return nil
}
