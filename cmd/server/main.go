package main

import (
	"fmt"
	"log"
	"os"

	"github.com/stylefinder/backend/config"
	httpDelivery "github.com/stylefinder/backend/internal/delivery/http"
	"github.com/stylefinder/backend/internal/domain"
	"github.com/stylefinder/backend/internal/infrastructure/cache"
	"github.com/stylefinder/backend/internal/infrastructure/catalog"
	"github.com/stylefinder/backend/internal/infrastructure/gemini"
	"github.com/stylefinder/backend/internal/infrastructure/history"
	"github.com/stylefinder/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debug := cfg.Server.Environment == "development"

	log.Printf("Starting StyleFinder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Sizing policy: %s", cfg.Sizing.Policy)

	// Infrastructure dependencies
	var resultCache domain.CacheRepository
	if cfg.Cache.Type == "memory" {
		resultCache = cache.NewMemoryCache()
		log.Printf("Cache: memory, TTL %s", cfg.Cache.TTL)
	} else {
		log.Printf("Cache: disabled")
	}

	catalogClient := catalog.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL)
	catalogClient.SetRateBudget(cfg.RateLimit.Catalog)
	if debug {
		catalogClient.SetDebug(true)
	}
	log.Printf("Catalog API: %s", cfg.Catalog.BaseURL)

	var advisor domain.StyleAdvisor
	if cfg.Gemini.Enabled {
		geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL)
		if debug {
			geminiClient.SetDebug(true)
		}
		advisor = geminiClient
		log.Printf("Generative advisor enabled: %s", cfg.Gemini.BaseURL)
	}

	var historyLog domain.HistoryRepository
	if cfg.History.Path != "" {
		historyLog = history.NewFileLog(cfg.History.Path)
		log.Printf("Search history: %s", cfg.History.Path)
	}

	// Usecase layer
	classifier := usecase.NewSizeClassifier(usecase.SizingConfig{
		Policy:             usecase.SizingPolicy(cfg.Sizing.Policy),
		EnableDebugLogging: debug,
	})
	builder := usecase.NewQueryBuilder(debug)

	recommendationService := usecase.NewRecommendationService(
		classifier,
		builder,
		catalogClient,
		resultCache,
		historyLog,
		advisor,
		usecase.RecommendationConfig{
			CacheTTL:           cfg.Cache.TTL,
			MaxResults:         cfg.Search.MaxResults,
			EnableDebugLogging: debug,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendationService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
