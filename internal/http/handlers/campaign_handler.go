package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/dto"
	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// CampaignHandler обслуживает кампании бренда.
type CampaignHandler struct {
	campaigns *service.CampaignService
}

// NewCampaignHandler создаёт хэндлер кампаний.
func NewCampaignHandler(campaigns *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// ListCampaigns обрабатывает GET /campaigns.
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	campaigns, err := h.campaigns.ListCampaigns(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// CreateCampaign обрабатывает POST /campaigns.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCampaignRequest
	if !common.BindJSON(c, &req) {
		return
	}

	campaign, err := h.campaigns.CreateCampaign(c.Request.Context(), userID, service.CreateCampaignInput{
		Name:        req.Name,
		Description: req.Description,
		Objective:   req.Objective,
		Budget:      req.Budget,
		Status:      req.Status,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// GetCampaign обрабатывает GET /campaigns/:id.
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := common.RequireUUIDParam(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaigns.GetCampaign(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaign обрабатывает PATCH /campaigns/:id.
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := common.RequireUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCampaignRequest
	if !common.BindJSON(c, &req) {
		return
	}

	campaign, err := h.campaigns.UpdateCampaign(c.Request.Context(), userID, id, service.UpdateCampaignInput{
		Name:        req.Name,
		Description: req.Description,
		Objective:   req.Objective,
		Budget:      req.Budget,
		Status:      req.Status,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}
