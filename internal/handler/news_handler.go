package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Arrostyle/milano-zone-news/internal/model"
)

type NewsStore interface {
	Query(f model.Filters) ([]model.Article, error)
	CountsByZone() (map[string]int, error)
	DistinctDates() ([]string, error)
	ToggleFavorite(id int64) (bool, error)
	Stats() (*model.Stats, error)
}

type Updater interface {
	RunUpdateCycle(ctx context.Context) int
}

type NewsHandler struct {
	repository NewsStore
	updater    Updater
}

func NewNewsHandler(repository NewsStore, updater Updater) *NewsHandler {
	return &NewsHandler{repository: repository, updater: updater}
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	filters := model.Filters{
		Zone:          c.DefaultQuery("zone", model.AllZones),
		Date:          c.Query("date"),
		FavoritesOnly: c.Query("favorites") == "true",
		Limit:         getQueryLimit(c),
	}

	articles, err := h.repository.Query(filters)
	if err != nil {
		slog.Error("error fetching news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	items := make([]NewsItemResponse, 0, len(articles))
	for _, a := range articles {
		items = append(items, NewsItemResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Link:        a.URL,
			PublishedAt: a.PublishedAt,
			Zone:        a.Zone,
			IsFavorite:  a.IsFavorite,
			CreatedAt:   a.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewsResponse{
		Status: "success",
		News:   items,
		Count:  len(items),
	})
}

func (h *NewsHandler) GetZones(c *gin.Context) {
	zones, err := h.repository.CountsByZone()
	if err != nil {
		slog.Error("error fetching zone counts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	c.JSON(http.StatusOK, ZonesResponse{Status: "success", Zones: zones})
}

func (h *NewsHandler) GetDates(c *gin.Context) {
	dates, err := h.repository.DistinctDates()
	if err != nil {
		slog.Error("error fetching dates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	if dates == nil {
		dates = []string{}
	}

	c.JSON(http.StatusOK, DatesResponse{Status: "success", Dates: dates})
}

func (h *NewsHandler) ToggleFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing news ID"})
		return
	}

	favorite, err := h.repository.ToggleFavorite(req.ID)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "News not found"})
		return
	}

	if err != nil {
		slog.Error("error toggling favorite", "error", err, "news_id", req.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	c.JSON(http.StatusOK, FavoriteResponse{Status: "success", IsFavorite: favorite})
}

func (h *NewsHandler) GetStats(c *gin.Context) {
	stats, err := h.repository.Stats()
	if err != nil {
		slog.Error("error fetching stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Status: "success",
		Stats: StatsPayload{
			TotalNews:    stats.TotalNews,
			Favorites:    stats.Favorites,
			Zones:        stats.Zones,
			LatestUpdate: stats.LatestUpdate,
		},
	})
}

func (h *NewsHandler) TriggerUpdate(c *gin.Context) {
	newArticles := h.updater.RunUpdateCycle(c.Request.Context())

	c.JSON(http.StatusOK, UpdateResponse{
		Status:      "success",
		Message:     fmt.Sprintf("Update completed: %d new articles", newArticles),
		NewArticles: newArticles,
	})
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.Stats()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 100
		maxLimit     = 200
	)

	param := c.Query("limit")
	if param == "" {
		return defaultLimit
	}

	limit, err := strconv.Atoi(param)
	if err != nil || limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", param, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}
