package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/dto"
	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// ContractHandler обслуживает договоры и их подписание.
type ContractHandler struct {
	contracts *service.ContractService
}

// NewContractHandler создаёт хэндлер договоров.
func NewContractHandler(contracts *service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// ListContracts обрабатывает GET /contracts.
func (h *ContractHandler) ListContracts(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	contracts, err := h.contracts.ListContracts(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts)
}

// CreateContract обрабатывает POST /contracts.
func (h *ContractHandler) CreateContract(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContractRequest
	if !common.BindJSON(c, &req) {
		return
	}

	created, err := h.contracts.CreateContract(c.Request.Context(), userID, service.CreateContractInput{
		OfferID:     req.OfferID,
		FinalAmount: req.FinalAmount,
		Terms:       req.Terms,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ContractCreatedResponse{
		ContractWithDetails: created.Contract,
		Payment:             created.Payment,
	})
}

// SignContract обрабатывает PATCH /contracts/:id/sign.
func (h *ContractHandler) SignContract(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := common.RequireUUIDParam(c, "id")
	if !ok {
		return
	}

	contract, err := h.contracts.SignContract(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}
