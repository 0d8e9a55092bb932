package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/snipstash-backend/internal/models"
	"github.com/ignatzorin/snipstash-backend/internal/pkg/apperror"
	"github.com/ignatzorin/snipstash-backend/internal/repository"
	"github.com/ignatzorin/snipstash-backend/internal/tagger"
	"github.com/ignatzorin/snipstash-backend/internal/validation"
)

// SnippetStore описывает зависимости SnippetService от слоя хранилища.
type SnippetStore interface {
	Create(ctx context.Context, s *models.Snippet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Snippet, error)
	List(ctx context.Context, userID uuid.UUID, filter repository.SnippetFilter) ([]models.Snippet, error)
	Search(ctx context.Context, userID uuid.UUID, search repository.SnippetSearch) ([]models.Snippet, error)
	DistinctLanguages(ctx context.Context, userID uuid.UUID) ([]string, error)
	Update(ctx context.Context, id uuid.UUID, title, code, description, language *string, tags []string) (*models.Snippet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SnippetService инкапсулирует бизнес-логику работы со сниппетами.
type SnippetService struct {
	repo SnippetStore
}

// CreateSnippetInput содержит данные нового сниппета.
type CreateSnippetInput struct {
	Title       string
	Code        string
	Language    string
	Description *string
	Tags        []string
}

// UpdateSnippetInput содержит частичное обновление: nil — оставить прежнее значение.
type UpdateSnippetInput struct {
	Title       *string
	Code        *string
	Description *string
	Language    *string
	Tags        []string
}

// SnippetListResult содержит сниппеты и доступные значения фильтров владельца.
type SnippetListResult struct {
	Snippets  []models.Snippet
	Languages []string
}

// NewSnippetService создаёт сервис сниппетов.
func NewSnippetService(repo SnippetStore) *SnippetService {
	return &SnippetService{repo: repo}
}

// Create сохраняет сниппет. Итоговые теги — объединение пользовательских
// с выведенными классификатором; классификатор выполняется только при создании.
func (s *SnippetService) Create(ctx context.Context, userID uuid.UUID, in CreateSnippetInput) (*models.Snippet, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateCode(in.Code); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLanguage(in.Language); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateTags(in.Tags); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	snippet := &models.Snippet{
		UserID:      userID,
		Title:       in.Title,
		Code:        in.Code,
		Description: in.Description,
		Language:    in.Language,
		Tags:        tagger.MergeTags(in.Tags, tagger.AutoTags(in.Code, in.Language)),
	}

	if err := s.repo.Create(ctx, snippet); err != nil {
		return nil, err
	}

	return snippet, nil
}

// List возвращает сниппеты владельца по фильтру вместе со списком его языков.
func (s *SnippetService) List(ctx context.Context, userID uuid.UUID, filter repository.SnippetFilter) (*SnippetListResult, error) {
	snippets, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	languages, err := s.repo.DistinctLanguages(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &SnippetListResult{Snippets: snippets, Languages: languages}, nil
}

// Search возвращает сниппеты владельца по поисковому запросу.
func (s *SnippetService) Search(ctx context.Context, userID uuid.UUID, search repository.SnippetSearch) ([]models.Snippet, error) {
	return s.repo.Search(ctx, userID, search)
}

// GetByID возвращает сниппет владельца.
func (s *SnippetService) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Snippet, error) {
	return s.getOwned(ctx, userID, id)
}

// Update заменяет значения переданных полей сниппета владельца.
// Теги заменяются целиком; классификатор при обновлении не перезапускается.
func (s *SnippetService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateSnippetInput) (*models.Snippet, error) {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.Code != nil {
		if err := validation.ValidateCode(*in.Code); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.Language != nil {
		if err := validation.ValidateLanguage(*in.Language); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if err := validation.ValidateTags(in.Tags); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	updated, err := s.repo.Update(ctx, id, in.Title, in.Code, in.Description, in.Language, in.Tags)
	if err != nil {
		if errors.Is(err, repository.ErrSnippetNotFound) {
			return nil, apperror.ErrSnippetNotFound
		}
		return nil, err
	}

	return updated, nil
}

// Delete безвозвратно удаляет сниппет владельца.
func (s *SnippetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSnippetNotFound) {
			return apperror.ErrSnippetNotFound
		}
		return err
	}

	return nil
}

// getOwned загружает сниппет и проверяет принадлежность:
// сначала существование (404), затем владелец (401).
func (s *SnippetService) getOwned(ctx context.Context, userID, id uuid.UUID) (*models.Snippet, error) {
	snippet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSnippetNotFound) {
			return nil, apperror.ErrSnippetNotFound
		}
		return nil, err
	}

	if snippet.UserID != userID {
		return nil, apperror.ErrNotOwner
	}

	return snippet, nil
}
