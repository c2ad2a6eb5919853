// Package cli implements the cobra command tree driving the docuchat
// core. Services are injected by main before Execute runs; commands
// fail cleanly when their service is not configured.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
	"github.com/custodia-labs/docuchat/internal/core/ports/driving"
	"github.com/custodia-labs/docuchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by main.
var (
	ingestionService    driving.IngestionService
	conversationService driving.ConversationService
	catalogStore        driven.CatalogStore
	searchIndex         driven.SearchIndex
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docuchat",
	Short: "Chat with your documents",
	Long: `docuchat ingests plain text documents, indexes them in a vector
store and answers questions about them in a conversational session.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Configure injects the assembled services. Called once from main.
func Configure(
	ingestion driving.IngestionService,
	conversation driving.ConversationService,
	catalog driven.CatalogStore,
	index driven.SearchIndex,
) {
	ingestionService = ingestion
	conversationService = conversation
	catalogStore = catalog
	searchIndex = index
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
