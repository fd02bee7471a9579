package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/dto"
	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// ProfileHandler обслуживает каталог авторов и профили текущего пользователя.
type ProfileHandler struct {
	creators *service.CreatorService
	profiles *service.ProfileService
}

// NewProfileHandler создаёт хэндлер профилей.
func NewProfileHandler(creators *service.CreatorService, profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{creators: creators, profiles: profiles}
}

// ListCreators обрабатывает GET /creators.
func (h *ProfileHandler) ListCreators(c *gin.Context) {
	minFollowers, err := common.ParseOptionalIntQuery(c, "minFollowers")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	maxFollowers, err := common.ParseOptionalIntQuery(c, "maxFollowers")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	creators, err := h.creators.ListCreators(c.Request.Context(), models.CreatorFilter{
		Niche:        c.Query("niche"),
		MinFollowers: minFollowers,
		MaxFollowers: maxFollowers,
		Location:     c.Query("location"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, creators)
}

// GetCreator обрабатывает GET /creators/:id.
func (h *ProfileHandler) GetCreator(c *gin.Context) {
	id, ok := common.RequireUUIDParam(c, "id")
	if !ok {
		return
	}

	creator, err := h.creators.GetCreator(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, creator)
}

// UpdateMyCreator обрабатывает PUT /creators/me.
func (h *ProfileHandler) UpdateMyCreator(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCreatorRequest
	if !common.BindJSON(c, &req) {
		return
	}

	creator, err := h.profiles.UpdateCreator(c.Request.Context(), userID, service.UpdateCreatorInput{
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		Niche:           req.Niche,
		FollowersCount:  req.FollowersCount,
		EngagementRate:  req.EngagementRate,
		AverageRate:     req.AverageRate,
		Location:        req.Location,
		ProfileImageURL: req.ProfileImageURL,
		Tags:            req.Tags,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, creator)
}

// UpdateMyBrand обрабатывает PUT /brands/me.
func (h *ProfileHandler) UpdateMyBrand(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBrandRequest
	if !common.BindJSON(c, &req) {
		return
	}

	brand, err := h.profiles.UpdateBrand(c.Request.Context(), userID, service.UpdateBrandInput{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Description: req.Description,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}
