package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/snipstash-backend/internal/dto"
	"github.com/ignatzorin/snipstash-backend/internal/http/middleware"
	"github.com/ignatzorin/snipstash-backend/internal/logger"
	"github.com/ignatzorin/snipstash-backend/internal/pkg/apperror"
)

// CurrentUserID извлекает идентификатор пользователя, положенный auth middleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// ParseUUIDParam читает параметр пути и парсит его как UUID.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "неверный формат идентификатора")
		return uuid.Nil, false
	}
	return id, true
}

// RespondError отправляет JSON ошибку с заданным статусом.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

// RespondUnauthorized — ответ 401 для запросов без валидного пользователя.
func RespondUnauthorized(c *gin.Context) {
	RespondError(c, http.StatusUnauthorized, "требуется авторизация")
}

// RespondAppError переводит ошибку сервисного слоя в HTTP ответ.
// Неизвестные ошибки скрываются за 500, детали уходят только в лог.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		RespondError(c, appErr.HTTPStatus, appErr.Message)
		return
	}

	if logger.Log != nil {
		logger.Log.WithError(err).Error("необработанная ошибка запроса")
	}
	RespondError(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}
