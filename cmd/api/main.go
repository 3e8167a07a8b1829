package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aavashbaral/stock-market-tracker/internal/db"
	"github.com/aavashbaral/stock-market-tracker/internal/handlers"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults or environment variables")
	}

	// Initialize database
	if err := db.InitDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.CloseDB()

	if err := db.EnsureSchema(); err != nil {
		log.Fatal("Failed to apply schema:", err)
	}

	// Initialize trade processor
	tradeProcessor := handlers.NewTradeProcessor(envInt("NUM_WORKERS", 5))
	tradeProcessor.Start()
	defer tradeProcessor.Stop()

	// Initialize price feed + websocket hub
	hub := handlers.NewPriceHub()
	feed := handlers.NewPriceFeed(
		time.Duration(envInt("PRICE_FEED_INTERVAL_SECONDS", 5))*time.Second,
		hub,
	)
	feed.Start()
	defer feed.Stop()

	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// API routes
	api := router.Group("/api")
	{
		// Trading endpoints
		api.POST("/trades", tradeProcessor.TradeShare)
		api.GET("/trades/:userId", handlers.GetTradeHistory)

		// Portfolio and scrip endpoints
		api.GET("/portfolio/:userId", handlers.GetPortfolio)
		api.GET("/scrips", handlers.GetAllScrips)
		api.POST("/scrips", handlers.CreateScrip)

		// Wallet endpoints
		api.POST("/wallet/:userId/add-money", handlers.AddMoney)
		api.GET("/wallet/:userId", handlers.GetWallet)
	}

	// WebSocket endpoint for live prices
	router.GET("/ws/prices", hub.HandleWS)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server starting on http://localhost:" + port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
