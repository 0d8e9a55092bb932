package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/snipstash-backend/internal/dto"
	"github.com/ignatzorin/snipstash-backend/internal/http/handlers/common"
	"github.com/ignatzorin/snipstash-backend/internal/service"
)

// AuthHandler обрабатывает выдачу кодов, вход и профиль.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт обработчик аутентификации.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SendOTP отправляет одноразовый код на email.
// POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "email обязателен")
		return
	}

	if err := h.auth.SendOTP(c.Request.Context(), req.Email); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "код отправлен на email"})
}

// VerifyOTP проверяет код и выдаёт сессионный токен.
// POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "email и otp обязательны")
		return
	}

	result, err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyOTPResponse{
		ID:    result.User.ID,
		Email: result.User.Email,
		Token: result.Token,
	})
}

// Profile возвращает данные текущего пользователя.
// GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}
