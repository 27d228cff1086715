package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"
	"github.com/joho/godotenv"
	milvusClient "github.com/milvus-io/milvus-sdk-go/v2/client"
	chromemgo "github.com/philippgille/chromem-go"
	openai "github.com/sashabaranov/go-openai"

	"github.com/anchoring-ai/docsnippets/components/chunker"
	"github.com/anchoring-ai/docsnippets/components/docs"
	"github.com/anchoring-ai/docsnippets/components/embedder"
	cohereEmbedder "github.com/anchoring-ai/docsnippets/components/embedder/providers/cohere"
	openaiEmbedder "github.com/anchoring-ai/docsnippets/components/embedder/providers/openai"
	"github.com/anchoring-ai/docsnippets/components/vectordb"
	"github.com/anchoring-ai/docsnippets/components/vectordb/engines/chromem"
	"github.com/anchoring-ai/docsnippets/components/vectordb/engines/memory"
	"github.com/anchoring-ai/docsnippets/components/vectordb/engines/milvus"
	"github.com/anchoring-ai/docsnippets/internal/config"
	"github.com/anchoring-ai/docsnippets/mcpserver"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	// stdout carries the MCP protocol, so all logging goes to stderr.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "docsnippets",
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading configuration", "path", *configPath, "err", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", "err", err)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *log.Logger) error {
	provider, err := newEmbedder(cfg, logger)
	if err != nil {
		return err
	}
	splitter, err := newSplitter(cfg)
	if err != nil {
		return err
	}
	engine, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}
	service, err := docs.NewService(engine, embedder.NewDocumentEmbedder(provider, splitter, logger),
		docs.WithCollection(cfg.VectorStore.Collection),
		docs.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	logger.Info("configured",
		"provider", cfg.Embedder.Provider,
		"model", cfg.Embedder.Model,
		"dimensions", cfg.Embedder.Dimensions,
		"engine", cfg.VectorStore.Engine,
		"collection", cfg.VectorStore.Collection,
	)
	return mcpserver.New(service, logger).Run(ctx)
}

func newEmbedder(cfg *config.AppConfig, logger *log.Logger) (embedder.Embedder, error) {
	apiKey := cfg.Embedder.APIKey()
	if apiKey == "" {
		logger.Warn("embedding API key is not set, provider calls will fail", "env", cfg.Embedder.APIKeyEnv)
	}
	opts := []embedder.Option{
		embedder.WithModel(cfg.Embedder.Model),
		embedder.WithDimensions(cfg.Embedder.Dimensions),
	}
	switch cfg.Embedder.Provider {
	case "openai":
		clientCfg := openai.DefaultConfig(apiKey)
		if baseURL := os.Getenv("OPENAI_API_BASE_URL"); baseURL != "" {
			clientCfg.BaseURL = baseURL
		}
		return openaiEmbedder.New(openai.NewClientWithConfig(clientCfg), opts...), nil
	case "cohere":
		clientOpts := []cohereOption.RequestOption{cohereOption.WithToken(apiKey)}
		if baseURL := os.Getenv("COHERE_API_BASE_URL"); baseURL != "" {
			clientOpts = append(clientOpts, cohereOption.WithBaseURL(baseURL))
		}
		return cohereEmbedder.New(cohereClient.NewClient(clientOpts...), opts...), nil
	}
	return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedder.Provider)
}

func newSplitter(cfg *config.AppConfig) (*chunker.Splitter, error) {
	counter, err := chunker.NewTikTokenCounterForModel(cfg.Embedder.Model)
	if err != nil {
		// Unknown models still get exact counting with the encoding
		// shared by current OpenAI embedding models.
		counter, err = chunker.NewTikTokenCounter("cl100k_base")
		if err != nil {
			return nil, err
		}
	}
	return chunker.New(counter, chunker.WithMaxTokens(cfg.Chunker.MaxTokens))
}

func newEngine(ctx context.Context, cfg *config.AppConfig) (vectordb.Engine, error) {
	opts := []vectordb.Option{
		vectordb.WithDimension(cfg.Embedder.Dimensions),
		vectordb.WithTopK(docs.DefaultNResults),
	}
	switch cfg.VectorStore.Engine {
	case "memory":
		return memory.New(opts...)
	case "chromem":
		if cfg.VectorStore.Chromem != nil && cfg.VectorStore.Chromem.Path != "" {
			db, err := chromemgo.NewPersistentDB(cfg.VectorStore.Chromem.Path, cfg.VectorStore.Chromem.Compress)
			if err != nil {
				return nil, err
			}
			return chromem.New(db, opts...), nil
		}
		return chromem.New(chromemgo.NewDB(), opts...), nil
	case "milvus":
		if cfg.VectorStore.Milvus == nil || cfg.VectorStore.Milvus.Address == "" {
			return nil, fmt.Errorf("milvus engine requires an address")
		}
		client, err := milvusClient.NewClient(ctx, milvusClient.Config{
			Address: cfg.VectorStore.Milvus.Address,
		})
		if err != nil {
			return nil, err
		}
		return milvus.New(client, opts...), nil
	}
	return nil, fmt.Errorf("unknown vector store engine %q", cfg.VectorStore.Engine)
}
