package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/dto"
	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// OfferHandler обслуживает офферы и переговоры по ним.
type OfferHandler struct {
	offers *service.OfferService
}

// NewOfferHandler создаёт хэндлер офферов.
func NewOfferHandler(offers *service.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// ListOffers обрабатывает GET /offers?status=.
func (h *OfferHandler) ListOffers(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	offers, err := h.offers.ListOffers(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// CreateOffer обрабатывает POST /offers. Для одного автора возвращает объект,
// для creator_ids массив офферов.
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOfferRequest
	if !common.BindJSON(c, &req) {
		return
	}

	offers, err := h.offers.CreateOffers(c.Request.Context(), userID, service.CreateOfferInput{
		CampaignID: req.CampaignID,
		CreatorIDs: req.Creators(),
		Amount:     req.Amount,
		Message:    req.Message,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if len(req.CreatorIDs) == 0 && len(offers) == 1 {
		c.JSON(http.StatusOK, offers[0])
		return
	}
	c.JSON(http.StatusOK, offers)
}

// UpdateOffer обрабатывает PATCH /offers/:id.
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := common.RequireUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOfferRequest
	if !common.BindJSON(c, &req) {
		return
	}

	offer, err := h.offers.UpdateOffer(c.Request.Context(), userID, id, service.UpdateOfferInput{
		Status:         req.Status,
		Amount:         req.Amount,
		Message:        req.Message,
		CounterAmount:  req.CounterAmount,
		CounterMessage: req.CounterMessage,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}
