package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// StatsHandler отвечает за сводную статистику пользователя.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler создаёт экземпляр.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats обрабатывает GET /stats. Форма ответа зависит от роли.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	stats, err := h.stats.GetStats(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
