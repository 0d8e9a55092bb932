package dto

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/snipstash-backend/internal/models"
)

// ErrorResponse — унифицированный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse — ответ с информационным сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileResponse — публичный профиль пользователя.
type ProfileResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// VerifyOTPResponse возвращается после успешной проверки кода.
type VerifyOTPResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Token string    `json:"token"`
}

// SnippetFilters — доступные значения фильтров для списка сниппетов.
type SnippetFilters struct {
	Languages []string `json:"languages"`
}

// SnippetListResponse — список сниппетов вместе с фасетом фильтров.
type SnippetListResponse struct {
	Snippets []models.Snippet `json:"snippets"`
	Filters  SnippetFilters   `json:"filters"`
}
