package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/snipstash-backend/internal/models"
	"github.com/ignatzorin/snipstash-backend/internal/pkg/apperror"
	"github.com/ignatzorin/snipstash-backend/internal/repository"
)

type mockSnippetStore struct {
	mock.Mock
}

func (m *mockSnippetStore) Create(ctx context.Context, s *models.Snippet) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSnippetStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Snippet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}

func (m *mockSnippetStore) List(ctx context.Context, userID uuid.UUID, filter repository.SnippetFilter) ([]models.Snippet, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Snippet), args.Error(1)
}

func (m *mockSnippetStore) Search(ctx context.Context, userID uuid.UUID, search repository.SnippetSearch) ([]models.Snippet, error) {
	args := m.Called(ctx, userID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Snippet), args.Error(1)
}

func (m *mockSnippetStore) DistinctLanguages(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockSnippetStore) Update(ctx context.Context, id uuid.UUID, title, code, description, language *string, tags []string) (*models.Snippet, error) {
	args := m.Called(ctx, id, title, code, description, language, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}

func (m *mockSnippetStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSnippetCreate_MergesAutoTags(t *testing.T) {
	store := new(mockSnippetStore)
	svc := NewSnippetService(store)
	userID := uuid.New()

	store.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Snippet) bool {
		return s.UserID == userID
	})).Return(nil)

	code := "try {\n  console.log(value)\n} catch (e) {}"
	snippet, err := svc.Create(context.Background(), userID, CreateSnippetInput{
		Title:    "Логирование значения",
		Code:     code,
		Language: "javascript",
		Tags:     []string{"frontend", "Debugging"},
	})

	assert.NoError(t, err)
	// Пользовательские теги идут первыми, авто-теги добавляются без дублей.
	assert.Equal(t, []string{"frontend", "Debugging", "error handling"}, snippet.Tags)
	store.AssertExpectations(t)
}

func TestSnippetCreate_ValidationStopsBeforeStore(t *testing.T) {
	store := new(mockSnippetStore)
	svc := NewSnippetService(store)

	_, err := svc.Create(context.Background(), uuid.New(), CreateSnippetInput{
		Title:    "",
		Code:     "print(1)",
		Language: "python",
	})

	assert.True(t, apperror.IsValidation(err))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSnippetGetByID_NotFound(t *testing.T) {
	store := new(mockSnippetStore)
	svc := NewSnippetService(store)
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(nil, repository.ErrSnippetNotFound)

	_, err := svc.GetByID(context.Background(), uuid.New(), id)
	assert.True(t, errors.Is(err, apperror.ErrSnippetNotFound))
}

func TestSnippetGetByID_ForeignOwner(t *testing.T) {
	store := new(mockSnippetStore)
	svc := NewSnippetService(store)
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(&models.Snippet{ID: id, UserID: uuid.New()}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New(), id)
	assert.True(t, errors.Is(err, apperror.ErrNotOwner))
}

func TestSnippetUpdate_PartialFieldsForwarded(t *testing.T) {
	store := new(mockSnippetStore)
	svc := NewSnippetService(store)
	userID := uuid.New()
	id := uuid.New()

	existing := &models.Snippet{ID: id, UserID: userID, Title: "старое", Language: "go"}
	store.On("GetByID", mock.Anything, id).Return(existing, nil)

	newTitle := "новое название"
	updated := &models.Snippet{ID: id, UserID: userID, Title: newTitle, Language: "go"}
	store.On("Update", mock.Anything, id, &newTitle, (*string)(nil), (*string)(nil), (*string)(nil), []string(nil)).Return(updated, nil)

	result, err := svc.Update(context.Background(), userID, id, UpdateSnippetInput{Title: &newTitle})

	assert.NoError(t, err)
	assert.Equal(t, newTitle, result.Title)
	store.AssertExpectations(t)
}

func TestSnippetUpdate_ForeignOwnerRejectedBeforeStore(t *testing.T) {
	store := new(mockSnippetStore)
	svc := NewSnippetService(store)
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(&models.Snippet{ID: id, UserID: uuid.New()}, nil)

	newTitle := "не должно примениться"
	_, err := svc.Update(context.Background(), uuid.New(), id, UpdateSnippetInput{Title: &newTitle})

	assert.True(t, errors.Is(err, apperror.ErrNotOwner))
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSnippetDelete_NotFound(t *testing.T) {
	store := new(mockSnippetStore)
	svc := NewSnippetService(store)
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(nil, repository.ErrSnippetNotFound)

	err := svc.Delete(context.Background(), uuid.New(), id)
	assert.True(t, errors.Is(err, apperror.ErrSnippetNotFound))
}

func TestSnippetList_IncludesLanguagesFacet(t *testing.T) {
	store := new(mockSnippetStore)
	svc := NewSnippetService(store)
	userID := uuid.New()

	snippets := []models.Snippet{{ID: uuid.New(), UserID: userID, Language: "go"}}
	store.On("List", mock.Anything, userID, repository.SnippetFilter{Language: "go"}).Return(snippets, nil)
	store.On("DistinctLanguages", mock.Anything, userID).Return([]string{"go", "python"}, nil)

	result, err := svc.List(context.Background(), userID, repository.SnippetFilter{Language: "go"})

	assert.NoError(t, err)
	assert.Len(t, result.Snippets, 1)
	assert.Equal(t, []string{"go", "python"}, result.Languages)
}
