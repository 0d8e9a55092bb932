package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/snipstash-backend/internal/models"
	"github.com/ignatzorin/snipstash-backend/internal/pkg/apperror"
	"github.com/ignatzorin/snipstash-backend/internal/repository"
	"github.com/ignatzorin/snipstash-backend/internal/validation"
)

// BlogStore описывает зависимости BlogService от слоя хранилища.
type BlogStore interface {
	Create(ctx context.Context, b *models.Blog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	List(ctx context.Context, userID uuid.UUID, filter repository.BlogFilter) ([]models.Blog, error)
	Update(ctx context.Context, id uuid.UUID, title, url, description, category, notes *string, tags []string, isRead *bool) (*models.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlogService инкапсулирует бизнес-логику работы с закладками.
type BlogService struct {
	repo BlogStore
}

// CreateBlogInput содержит данные новой закладки.
type CreateBlogInput struct {
	Title       string
	URL         string
	Description *string
	Category    string
	Tags        []string
	Notes       *string
}

// UpdateBlogInput содержит частичное обновление: nil — оставить прежнее значение.
type UpdateBlogInput struct {
	Title       *string
	URL         *string
	Description *string
	Category    *string
	Tags        []string
	Notes       *string
	IsRead      *bool
}

// NewBlogService создаёт сервис закладок.
func NewBlogService(repo BlogStore) *BlogService {
	return &BlogService{repo: repo}
}

// Create сохраняет закладку. Категория по умолчанию — article, isRead — false.
func (s *BlogService) Create(ctx context.Context, userID uuid.UUID, in CreateBlogInput) (*models.Blog, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateURL(in.URL); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateCategory(in.Category); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateTags(in.Tags); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNotes(in.Notes); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	category := in.Category
	if category == "" {
		category = models.BlogCategoryArticle
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	blog := &models.Blog{
		UserID:      userID,
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Category:    category,
		Tags:        tags,
		Notes:       in.Notes,
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// List возвращает закладки владельца по фильтру.
func (s *BlogService) List(ctx context.Context, userID uuid.UUID, filter repository.BlogFilter) ([]models.Blog, error) {
	return s.repo.List(ctx, userID, filter)
}

// GetByID возвращает закладку владельца.
func (s *BlogService) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Blog, error) {
	return s.getOwned(ctx, userID, id)
}

// Update заменяет значения переданных полей закладки владельца.
func (s *BlogService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateBlogInput) (*models.Blog, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.URL != nil {
		if err := validation.ValidateURL(*in.URL); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.Category != nil {
		if *in.Category == "" || !models.IsValidBlogCategory(*in.Category) {
			return nil, apperror.New(apperror.ErrCodeValidation, "недопустимая категория закладки")
		}
	}
	if err := validation.ValidateTags(in.Tags); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateNotes(in.Notes); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	updated, err := s.repo.Update(ctx, id, in.Title, in.URL, in.Description, in.Category, in.Notes, in.Tags, in.IsRead)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, apperror.ErrBlogNotFound
		}
		return nil, err
	}

	return updated, nil
}

// Delete безвозвратно удаляет закладку владельца.
func (s *BlogService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return apperror.ErrBlogNotFound
		}
		return err
	}

	return nil
}

// ToggleRead переключает флаг прочитанности и возвращает обновлённую закладку.
func (s *BlogService) ToggleRead(ctx context.Context, userID, id uuid.UUID) (*models.Blog, error) {
	blog, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	toggled := !blog.IsRead
	updated, err := s.repo.Update(ctx, id, nil, nil, nil, nil, nil, nil, &toggled)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, apperror.ErrBlogNotFound
		}
		return nil, err
	}

	return updated, nil
}

// getOwned загружает закладку и проверяет принадлежность:
// сначала существование (404), затем владелец (401).
func (s *BlogService) getOwned(ctx context.Context, userID, id uuid.UUID) (*models.Blog, error) {
	blog, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, apperror.ErrBlogNotFound
		}
		return nil, err
	}

	if blog.UserID != userID {
		return nil, apperror.ErrNotOwner
	}

	return blog, nil
}
