package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/collabhub-backend/internal/dto"
	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/http/middleware"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// AuthHandler предоставляет HTTP слой для регистрации, логина и выбора роли.
type AuthHandler struct {
	auth          *service.AuthService
	profiles      *service.ProfileService
	secureCookies bool
}

// NewAuthHandler создаёт хэндлер. secureCookies включает флаг Secure у cookie сессии.
func NewAuthHandler(auth *service.AuthService, profiles *service.ProfileService, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, profiles: profiles, secureCookies: secureCookies}
}

// Register обрабатывает POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}, requestMeta(c))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	h.setSessionCookie(c, result.TokenPair.AccessToken)
	c.JSON(http.StatusCreated, authResponse(result))
}

// Login обрабатывает POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, requestMeta(c))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	h.setSessionCookie(c, result.TokenPair.AccessToken)
	c.JSON(http.StatusOK, authResponse(result))
}

// Refresh обрабатывает POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !common.BindJSON(c, &req) {
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, requestMeta(c))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	h.setSessionCookie(c, tokens.AccessToken)
	c.JSON(http.StatusOK, tokens)
}

// Logout обрабатывает POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if !common.BindJSON(c, &req) {
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookieName, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "выход выполнен"})
}

// Me обрабатывает GET /auth/user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// AssignRole обрабатывает POST /user/role.
func (h *AuthHandler) AssignRole(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if !common.BindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.AssignRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SetupBrand обрабатывает POST /setup-brand.
func (h *AuthHandler) SetupBrand(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.SetupBrand(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListSessions обрабатывает GET /auth/sessions.
func (h *AuthHandler) ListSessions(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	sessions, err := h.auth.ListSessions(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// DeleteSession обрабатывает DELETE /auth/sessions/:id.
func (h *AuthHandler) DeleteSession(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}
	sessionID, ok := common.RequireUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.auth.DeleteSession(c.Request.Context(), sessionID, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, accessToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookieName, accessToken, h.auth.AccessTTL(), "/", "", h.secureCookies, true)
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	resp := dto.AuthResponse{User: result.User, Tokens: result.TokenPair}
	if result.Profile != nil {
		resp.Profile = result.Profile
	}
	return resp
}

func requestMeta(c *gin.Context) map[string]string {
	return map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}
}
