package models

import (
	"time"

	"github.com/google/uuid"
)

// Категории закладок. Любое другое значение отклоняется валидацией и схемой.
const (
	BlogCategoryArticle       = "article"
	BlogCategoryTutorial      = "tutorial"
	BlogCategoryDocumentation = "documentation"
	BlogCategoryOther         = "other"
)

// BlogCategories перечисляет допустимые категории.
var BlogCategories = []string{
	BlogCategoryArticle,
	BlogCategoryTutorial,
	BlogCategoryDocumentation,
	BlogCategoryOther,
}

// IsValidBlogCategory проверяет, входит ли категория в фиксированный список.
func IsValidBlogCategory(category string) bool {
	for _, c := range BlogCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Blog описывает закладку на статью или блог.
type Blog struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	URL         string    `db:"url" json:"url"`
	Description *string   `db:"description" json:"description,omitempty"`
	Category    string    `db:"category" json:"category"`
	Tags        []string  `db:"tags" json:"tags"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
