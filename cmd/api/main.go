package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tariften-backend/internal/api"
	"tariften-backend/internal/core/ai/cache"
	"tariften-backend/internal/core/ai/openai"
	"tariften-backend/internal/core/catalog"
	"tariften-backend/internal/core/store"
	"tariften-backend/internal/infrastructure/config"
	"tariften-backend/internal/infrastructure/persistence/gormstore"
	"tariften-backend/internal/pkg/common"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("configuration loaded",
		zap.String("openai_api_key", config.MaskAPIKey(cfg.OpenAI.APIKey)),
		zap.String("openai_model", cfg.OpenAI.Model),
		zap.String("database_path", cfg.Database.Path),
	)

	contentStore := openContentStore(cfg)

	var llm openai.LLM = openai.NewClient(cfg.OpenAI)
	if cfg.Cache.Enabled {
		llm = cache.Wrap(llm, cfg.Cache.Addr, cfg.Cache.TTL)
	}

	router, err := api.SetupRouter(cfg, llm, contentStore)
	if err != nil {
		common.LogFatal("failed to setup router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("starting server",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("server exited")
}

// openContentStore opens the SQLite store and seeds the fallback
// vocabulary. An in-memory store keeps the API usable when the database
// cannot be opened.
func openContentStore(cfg *config.Config) store.ContentStore {
	gs, err := gormstore.Open(cfg.Database.Path)
	if err != nil {
		common.LogError("failed to open database, falling back to in-memory store",
			zap.String("path", cfg.Database.Path), zap.Error(err))
		ms := store.NewMemoryStore()
		for _, tax := range store.Taxonomies {
			ms.SeedTerms(tax, catalog.Fallback(tax)...)
		}
		return ms
	}
	for _, tax := range store.Taxonomies {
		if err := gs.SeedTerms(tax, catalog.Fallback(tax)...); err != nil {
			common.LogWarn("term seeding failed", zap.String("taxonomy", tax), zap.Error(err))
		}
	}
	common.LogInfo("content store ready", zap.String("path", cfg.Database.Path))
	return gs
}
