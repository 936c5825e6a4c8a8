package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/urbanstyle/support-assistant/internal/api/handlers"
	"github.com/urbanstyle/support-assistant/internal/config"
	"github.com/urbanstyle/support-assistant/internal/database"
	"github.com/urbanstyle/support-assistant/internal/health"
	"github.com/urbanstyle/support-assistant/internal/llm"
	"github.com/urbanstyle/support-assistant/internal/middleware"
	"github.com/urbanstyle/support-assistant/internal/repository"
	"github.com/urbanstyle/support-assistant/internal/search"
	"github.com/urbanstyle/support-assistant/internal/services"
	"github.com/urbanstyle/support-assistant/internal/tickets"
	"github.com/urbanstyle/support-assistant/pkg/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting UrbanStyle support assistant...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Optional persistence: analytics and retrieval caching degrade to
	// disabled when not configured.
	dbManager, err := database.NewManager(&database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize persistence")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	cache := database.NewCache(dbManager.Redis, logger)
	repoManager := repository.NewRepositoryManager(dbManager.DB)
	if repoManager == nil {
		logger.Warn("DATABASE_URL not set, query analytics disabled")
	}

	// The assistant needs both credentials; without them the ticket
	// table and charts still work.
	var (
		searchClient     *search.Client
		llmClient        *llm.Client
		assistantService *services.AssistantService
		searchPinger     health.Pinger
		llmPinger        health.Pinger
	)

	if !cfg.SearchEnabled() {
		logger.Warn("ES_ENDPOINT or ES_API_KEY not set, AI assistant disabled")
	} else if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, AI assistant disabled")
	} else {
		searchClient, err = search.NewClient(
			cfg.Elasticsearch.Endpoint,
			cfg.Elasticsearch.APIKey,
			cfg.Elasticsearch.Index,
			logger,
		)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Elasticsearch client")
		}
		llmClient = llm.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)

		assistantService = services.NewAssistantService(searchClient, llmClient, cache, logger)
		searchPinger = searchClient
		llmPinger = llmClient
	}

	ticketManager := tickets.NewManager(logger)
	checker := health.NewChecker(dbManager, searchPinger, llmPinger, logger)

	assistantHandler := handlers.NewAssistantHandler(assistantService, ticketManager, repoManager, logger)
	ticketHandler := handlers.NewTicketHandler(ticketManager, logger)
	healthHandler := handlers.NewHealthHandler(checker)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Session())

	rateLimiter := middleware.NewRateLimiter(60)
	router.Use(rateLimiter.RateLimit())

	api := router.Group("/api")
	{
		api.POST("/assistant/ask", assistantHandler.HandleAsk)
		api.GET("/suggestions", assistantHandler.HandleSuggestions)
		api.GET("/tickets", ticketHandler.HandleList)
		api.PATCH("/tickets/:id", ticketHandler.HandleUpdate)
		api.GET("/tickets/stats", ticketHandler.HandleStats)
	}

	router.GET("/health", healthHandler.HandleHealth)

	// Static demo UI
	router.StaticFile("/", "./web/index.html")
	router.Static("/static", "./web/static")

	logger.WithField("port", cfg.Server.Port).Info("Server listening")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}
