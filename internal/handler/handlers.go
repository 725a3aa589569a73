package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"phishhook/internal/config"
	"phishhook/internal/model"
	"phishhook/internal/service"
	"phishhook/internal/storage"
	"phishhook/internal/utils"
)

type Handler struct {
	Scanner    *service.Scanner
	History    *service.History
	Dataset    *service.Dataset
	Hub        *service.Hub
	Storage    *storage.Storage
	AppConfig  *config.Config
	WSUpgrader websocket.Upgrader
}

func NewHandler(scanner *service.Scanner, history *service.History, data *service.Dataset, hub *service.Hub, store *storage.Storage, cfg *config.Config) *Handler {
	h := &Handler{
		Scanner:   scanner,
		History:   history,
		Dataset:   data,
		Hub:       hub,
		Storage:   store,
		AppConfig: cfg,
	}
	h.initUpgrader()
	return h
}

// === Routes ===

func (h *Handler) ScanURL(c echo.Context) error {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"message": "URL is required",
		})
	}

	record, analysis, err := h.Scanner.Scan(c.Request().Context(), req.URL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidURL) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "Invalid URL format. Please include http:// or https://",
			})
		}
		utils.Log.Error("scan failed", utils.Field("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Error scanning URL",
		})
	}

	return c.JSON(http.StatusOK, model.ScanResponse{
		URL:     record.URL,
		IsSafe:  record.IsSafe,
		Message: record.Message,
		Score:   analysis.Score,
		Signals: analysis.Signals,
	})
}

func (h *Handler) ScanHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": h.History.Snapshot(),
	})
}

func (h *Handler) Stats(c echo.Context) error {
	stats := h.History.Stats()
	stats.KnownLegitimateUrls = h.Dataset.LegitimateCount()
	stats.KnownPhishingUrls = h.Dataset.PhishingCount()
	return c.JSON(http.StatusOK, stats)
}

// ScanArchive serves the Redis-backed archive that outlives the live window.
func (h *Handler) ScanArchive(c echo.Context) error {
	if h.Storage == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"message": "Scan archive is not configured",
		})
	}
	records, err := h.Storage.RecentScans(c.Request().Context(), 1000)
	if err != nil {
		utils.Log.Error("archive read failed", utils.Field("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Error reading scan archive",
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": records,
	})
}
