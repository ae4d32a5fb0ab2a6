package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dhanushperumalla/ai-post-generator/config"
	"github.com/dhanushperumalla/ai-post-generator/internal/agents"
	"github.com/dhanushperumalla/ai-post-generator/internal/database"
	"github.com/dhanushperumalla/ai-post-generator/internal/generation"
	"github.com/dhanushperumalla/ai-post-generator/internal/logging"
	slackpkg "github.com/dhanushperumalla/ai-post-generator/internal/slack"
	"github.com/dhanushperumalla/ai-post-generator/internal/storage"
	"github.com/dhanushperumalla/ai-post-generator/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "optional YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer logger.Sync()

	logger.Info("🚀 AI Post Generator starting...")

	// Cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close()

	// Initialize AI Agents
	contentGenerator := agents.NewContentGeneratorAgent(agents.ContentGeneratorConfig{
		APIKey:  cfg.NebiusAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Logger:  logger.Named("llm"),
	})
	imageGenerator := agents.NewImageGeneratorAgent(agents.ImageGeneratorConfig{
		Token:    cfg.HFToken,
		ModelURL: cfg.ImageModelURL,
		Logger:   logger.Named("image"),
	})
	if !contentGenerator.Configured() {
		logger.Warn("⚠️ NEBIUS_API_KEY not set, generation requests will fail")
	}
	if !imageGenerator.Configured() {
		logger.Warn("⚠️ HF_TOKEN not set, posts will be generated without images")
	}

	handler := generation.NewHandler(contentGenerator, imageGenerator, logger.Named("generation"))

	// Slack sharing is optional
	var sharer web.Sharer
	if cfg.SlackEnabled() {
		sharer = slackpkg.NewClient(cfg.SlackToken, cfg.SlackChannelID, logger.Named("slack"))
	} else {
		logger.Info("Slack sharing disabled, set SLACK_BOT_TOKEN and SLACK_CHANNEL_ID to enable")
	}

	server, err := web.NewServer(web.Config{
		Generator:  handler,
		Text:       contentGenerator,
		Image:      imageGenerator,
		Sharer:     sharer,
		Store:      store,
		Guard:      generation.NewBusyGuard(),
		Logger:     logger.Named("web"),
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		logger.Fatal("Failed to build server", zap.Error(err))
	}

	logger.Info("✅ System initialized successfully",
		zap.String("store", cfg.StoreBackend),
		zap.Bool("images", imageGenerator.Configured()),
		zap.Bool("slack", cfg.SlackEnabled()),
	)

	if err := server.Start(ctx, ":"+cfg.Port); err != nil {
		logger.Error("❌ Server error", zap.Error(err))
		return
	}

	logger.Info("Shut down gracefully")
}

// openStore connects the configured backend. The postgres backend also
// starts the pruner for idle sessions.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		store, err := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, "", cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("unable to ping redis: %w", err)
		}
		logger.Info("✅ Redis store connected", zap.String("addr", cfg.RedisAddr))
		return store, nil

	case config.StorePostgres:
		db, err := database.NewDB(ctx, database.Options{
			URL:      cfg.DatabaseURL,
			MaxConns: int32(cfg.DBMaxConns),
			MinConns: int32(cfg.DBMinConns),
			Logger:   logger.Named("database"),
		})
		if err != nil {
			return nil, err
		}
		if err := db.CreateTables(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
		repo := database.NewKVRepository(db)
		go database.NewPruner(repo, cfg.SessionTTL, 0, logger.Named("pruner")).Run(ctx)
		return repo, nil

	default:
		logger.Info("💾 Using in-memory store")
		return storage.NewMemoryStore(cfg.MemoryStoreSize, cfg.SessionTTL, logger.Named("store")), nil
	}
}
