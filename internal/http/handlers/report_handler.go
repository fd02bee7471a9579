package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(s *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: s}
}

// ListReports GET /reports/:contractId
func (h *ReportHandler) ListReports(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}
	contractID, ok := common.RequireUUIDParam(c, "contractId")
	if !ok {
		return
	}

	reports, err := h.svc.ListReports(c.Request.Context(), userID, contractID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}
