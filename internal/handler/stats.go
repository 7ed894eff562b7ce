package handler

import (
	"log/slog"
	"net/http"

	"github.com/immerse/sponsor-tracker/internal/service"
)

// StatsHandler обрабатывает эндпоинты статистики
type StatsHandler struct {
	statsService *service.StatsService
	logger       *slog.Logger
}

// NewStatsHandler создает новый StatsHandler
func NewStatsHandler(statsService *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// GetStats обрабатывает GET /sponsors/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetStats(r.Context())
	if err != nil {
		HandleError(w, r, h.logger, "get_stats", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, Response{Success: true, Data: stats})
}
