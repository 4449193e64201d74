// Package setup wires the application graph from environment settings and the
// YAML tunables file.
package setup

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/config"
	"github.com/yinterview/forum-agent/internal/critic"
	"github.com/yinterview/forum-agent/internal/embedding"
	"github.com/yinterview/forum-agent/internal/forum"
	"github.com/yinterview/forum-agent/internal/llm"
	"github.com/yinterview/forum-agent/internal/llm/bedrock"
	"github.com/yinterview/forum-agent/internal/llm/gpt"
	"github.com/yinterview/forum-agent/internal/memory"
	"github.com/yinterview/forum-agent/internal/moderator"
	"github.com/yinterview/forum-agent/internal/search"
	"github.com/yinterview/forum-agent/internal/vector"
)

// EnvConfig carries the environment-sourced settings: credentials, endpoints
// and provider selection.
type EnvConfig struct {
	LogLevel   string
	ConfigPath string

	LLMProvider    string
	AWSRegion      string
	BedrockModelID string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string

	EmbeddingModel   string
	EmbeddingBaseURL string

	PostgresDSN       string
	VectorPersistPath string
	TavilyAPIKey      string
}

func LoadEnvConfig() EnvConfig {
	return EnvConfig{
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		ConfigPath: getEnv("FORUM_CONFIG_PATH", "configs/forum.yaml"),

		LLMProvider:    getEnv("LLM_PROVIDER", "bedrock"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		BedrockModelID: getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-5-sonnet-20240620-v1:0"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),

		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingBaseURL: os.Getenv("EMBEDDING_BASE_URL"),

		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		VectorPersistPath: getEnv("VECTOR_DB_PATH", "./data/vectors"),
		TavilyAPIKey:      os.Getenv("TAVILY_API_KEY"),
	}
}

// App is the wired application graph shared by all entrypoints.
type App struct {
	Config           *config.Config
	Logger           zerolog.Logger
	Coordinator      *forum.Coordinator
	SessionEvaluator *forum.SessionEvaluator
	Repository       memory.Repository
	Ingestor         *memory.Ingestor
}

// Wire builds every collaborator and assembles the coordinator. The logger
// is passed in so entrypoints can choose their output format.
func Wire(ctx context.Context, env EnvConfig, log zerolog.Logger) (*App, error) {
	cfg, err := loadConfig(env.ConfigPath)
	if err != nil {
		return nil, err
	}

	llmClient, err := createLLMClient(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("create LLM client: %w", err)
	}

	embedder, err := embedding.NewEmbedder(embedding.Config{
		Model:   env.EmbeddingModel,
		APIKey:  env.OpenAIAPIKey,
		BaseURL: env.EmbeddingBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	index, err := vector.NewIndex(vector.Config{PersistPath: env.VectorPersistPath})
	if err != nil {
		return nil, fmt.Errorf("open vector index: %w", err)
	}

	if env.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	db, err := memory.Connect(env.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	repo := memory.NewRepository(db)

	if env.TavilyAPIKey == "" {
		return nil, errors.New("TAVILY_API_KEY is required")
	}
	searcher := search.NewTavilyClient(env.TavilyAPIKey)

	ragCritic := critic.NewRAGCritic(llmClient, embedder, index, repo, cfg.Forum.RAGTopK, &log)
	webCritic := critic.NewWebCritic(llmClient, searcher, cfg.Forum.WebMaxResults, &log)
	mod := moderator.New(llmClient, &log)

	coordinator := forum.NewCoordinator(ragCritic, webCritic, mod, repo, cfg.Forum.MaxRounds, cfg.Forum.StepTimeout(), &log)
	evaluator := forum.NewSessionEvaluator(coordinator, mod, &log)
	ingestor := memory.NewIngestor(repo, embedder, index, &log)

	log.Info().
		Str("llm_provider", env.LLMProvider).
		Int("max_rounds", cfg.Forum.MaxRounds).
		Msg("application wired")

	return &App{
		Config:           cfg,
		Logger:           log,
		Coordinator:      coordinator,
		SessionEvaluator: evaluator,
		Repository:       repo,
		Ingestor:         ingestor,
	}, nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func createLLMClient(ctx context.Context, env EnvConfig) (llm.Client, error) {
	switch env.LLMProvider {
	case "bedrock":
		return bedrock.NewClient(ctx, env.AWSRegion, env.BedrockModelID)
	case "openai":
		if env.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY is required for the openai provider")
		}
		return gpt.NewClient(env.OpenAIAPIKey, env.OpenAIModel, env.OpenAIBaseURL)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", env.LLMProvider)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
