package models

import (
	"time"

	"github.com/google/uuid"
)

// Snippet описывает сохранённый фрагмент кода.
// Теги — объединение пользовательских и автоматически выведенных классификатором.
type Snippet struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Code        string    `db:"code" json:"code"`
	Description *string   `db:"description" json:"description,omitempty"`
	Language    string    `db:"language" json:"language"`
	Tags        []string  `db:"tags" json:"tags"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
