package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	configfile "github.com/custodia-labs/docuchat/internal/adapters/driven/config/file"
	sessionmem "github.com/custodia-labs/docuchat/internal/adapters/driven/session/memory"
	"github.com/custodia-labs/docuchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docuchat/internal/adapters/driven/vectorstore/qdrant"
	"github.com/custodia-labs/docuchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/docuchat/internal/chunking"
	"github.com/custodia-labs/docuchat/internal/core/services"
	"github.com/custodia-labs/docuchat/internal/embedding/wordfreq"
	"github.com/custodia-labs/docuchat/internal/index"
	"github.com/custodia-labs/docuchat/internal/normalisers/plaintext"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings := configfile.NewSettings(configStore)

	catalog, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()

	vectorStore := qdrant.NewStore(qdrant.Config{
		BaseURL: settings.QdrantURL(),
		APIKey:  settings.QdrantAPIKey(),
		Timeout: settings.QdrantTimeout(),
	})

	var vectorizerOpts []wordfreq.Option
	if size := settings.VectorSize(); size > 0 {
		vectorizerOpts = append(vectorizerOpts, wordfreq.WithVectorSize(size))
	}
	vectorizer := wordfreq.New(vectorizerOpts...)

	var indexOpts []index.Option
	if collection := settings.QdrantCollection(); collection != "" {
		indexOpts = append(indexOpts, index.WithCollection(collection))
	}
	searchIndex := index.New(vectorStore, vectorizer, indexOpts...)
	searchIndex.Init(context.Background())

	var sessionOpts []sessionmem.Option
	if retention := settings.SessionRetention(); retention > 0 {
		sessionOpts = append(sessionOpts, sessionmem.WithRetention(retention))
	}
	sessions := sessionmem.NewSessionStore(sessionOpts...)

	var chunkOpts []chunking.Option
	if size := settings.ChunkSize(); size > 0 {
		chunkOpts = append(chunkOpts, chunking.WithChunkSize(size))
	}
	if overlap := settings.ChunkOverlap(); overlap > 0 {
		chunkOpts = append(chunkOpts, chunking.WithOverlap(overlap))
	}

	ingestion := services.NewIngestionService(plaintext.New(), searchIndex, catalog, chunkOpts...)

	var conversationOpts []services.ConversationOption
	if limit := settings.HistoryLimit(); limit > 0 {
		conversationOpts = append(conversationOpts, services.WithHistoryLimit(limit))
	}
	conversation := services.NewConversationService(searchIndex, sessions, catalog,
		services.NewBookingExtractor(), conversationOpts...)

	cli.Configure(ingestion, conversation, catalog, searchIndex)
	return cli.Execute()
}
