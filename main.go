package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/takvimi-shqip/takvimi-api/config"
	"github.com/takvimi-shqip/takvimi-api/handler"
	"github.com/takvimi-shqip/takvimi-api/service"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	if err := os.MkdirAll(cfg.JSONDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.JSONDir).Msg("could not create JSON cache directory")
	}

	// Initialize service layer
	dataManager := service.NewDataManager(cfg.JSONDir)
	extractor := service.NewExtractor(cfg.FrontMatterOffset)

	// Initialize handler layer
	takvimiHandler := handler.NewTakvimiHandler(cfg, extractor, dataManager)

	// Setup Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Takvimi Shqip API",
		})
	})

	router.GET("/", takvimiHandler.Home)

	// API routes
	api := router.Group("/api")
	{
		takvimi := api.Group("/takvimi")
		{
			takvimi.GET("", takvimiHandler.ListCalendars)
			takvimi.GET("/:year", takvimiHandler.GetYear)
			takvimi.GET("/:year/:month", takvimiHandler.GetMonth)
			takvimi.GET("/:year/:month/:page", takvimiHandler.GetPageCSV)
		}
	}

	// Start server
	log.Info().Str("port", cfg.ServerPort).Msg("starting Takvimi Shqip API")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
