package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Arrostyle/milano-zone-news/db"
	"github.com/Arrostyle/milano-zone-news/internal/collector"
	"github.com/Arrostyle/milano-zone-news/internal/handler"
	"github.com/Arrostyle/milano-zone-news/internal/repository"
	"github.com/Arrostyle/milano-zone-news/pkg/news"
)

// Retry delay after a failed update cycle, much shorter than the
// regular interval so transient upstream trouble recovers quickly.
const retryDelay = 5 * time.Minute

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	conn, err := db.Connect(envString("DB_PATH", "news.db"))
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	apiKey := os.Getenv("NEWSDATA_API_KEY")
	if apiKey == "" {
		slog.Warn("NEWSDATA_API_KEY not configured, update cycles will be skipped")
	}

	fetchTimeout := time.Duration(envInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second
	updateInterval := time.Duration(envInt("UPDATE_INTERVAL_SECONDS", 3600)) * time.Second
	retention := time.Duration(envInt("RETENTION_DAYS", 30)) * 24 * time.Hour
	pageSize := envInt("PAGE_SIZE", 50)

	repo := repository.NewNewsRepository(conn)
	client := news.NewNewsDataClient(apiKey, fetchTimeout)
	col := collector.New(client, repo, pageSize, retention)

	// Process-lifetime loop: there is no graceful shutdown path, the
	// context exists so the loop is cancellable, not because we cancel it.
	go col.Run(context.Background(), updateInterval, retryDelay)

	newsHandler := handler.NewNewsHandler(repo, col)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/news", newsHandler.GetNews)
	r.GET("/api/zones", newsHandler.GetZones)
	r.GET("/api/dates", newsHandler.GetDates)
	r.POST("/api/favorite", newsHandler.ToggleFavorite)
	r.GET("/api/stats", newsHandler.GetStats)
	r.POST("/api/update", newsHandler.TriggerUpdate)
	r.GET("/health", newsHandler.GetHealth)

	err = r.Run(":" + envString("PORT", "8080"))
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func envString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid environment value, using default", "name", name, "value", v, "default", fallback)
		return fallback
	}

	return n
}
