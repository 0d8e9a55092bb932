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

type mockBlogStore struct {
	mock.Mock
}

func (m *mockBlogStore) Create(ctx context.Context, b *models.Blog) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBlogStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *mockBlogStore) List(ctx context.Context, userID uuid.UUID, filter repository.BlogFilter) ([]models.Blog, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *mockBlogStore) Update(ctx context.Context, id uuid.UUID, title, url, description, category, notes *string, tags []string, isRead *bool) (*models.Blog, error) {
	args := m.Called(ctx, id, title, url, description, category, notes, tags, isRead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *mockBlogStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestBlogCreate_Defaults(t *testing.T) {
	store := new(mockBlogStore)
	svc := NewBlogService(store)
	userID := uuid.New()

	var saved *models.Blog
	store.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Blog) bool {
		saved = b
		return b.UserID == userID
	})).Return(nil)

	blog, err := svc.Create(context.Background(), userID, CreateBlogInput{
		Title: "Заметки о Postgres",
		URL:   "https://example.com/postgres",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.BlogCategoryArticle, blog.Category)
	assert.False(t, blog.IsRead)
	assert.NotNil(t, saved.Tags)
	assert.Empty(t, saved.Tags)
}

func TestBlogCreate_InvalidCategory(t *testing.T) {
	store := new(mockBlogStore)
	svc := NewBlogService(store)

	_, err := svc.Create(context.Background(), uuid.New(), CreateBlogInput{
		Title:    "Заметки",
		URL:      "https://example.com",
		Category: "podcast",
	})

	assert.True(t, apperror.IsValidation(err))
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBlogCreate_InvalidURL(t *testing.T) {
	store := new(mockBlogStore)
	svc := NewBlogService(store)

	_, err := svc.Create(context.Background(), uuid.New(), CreateBlogInput{
		Title: "Заметки",
		URL:   "ftp://example.com/file",
	})

	assert.True(t, apperror.IsValidation(err))
}

func TestBlogToggleRead_FlipsFlag(t *testing.T) {
	store := new(mockBlogStore)
	svc := NewBlogService(store)
	userID := uuid.New()
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(&models.Blog{ID: id, UserID: userID, IsRead: false}, nil).Once()
	store.On("Update", mock.Anything, id, (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), []string(nil), mock.MatchedBy(func(v *bool) bool {
		return v != nil && *v == true
	})).Return(&models.Blog{ID: id, UserID: userID, IsRead: true}, nil).Once()

	blog, err := svc.ToggleRead(context.Background(), userID, id)
	assert.NoError(t, err)
	assert.True(t, blog.IsRead)

	// Повторное переключение возвращает исходное значение.
	store.On("GetByID", mock.Anything, id).Return(&models.Blog{ID: id, UserID: userID, IsRead: true}, nil).Once()
	store.On("Update", mock.Anything, id, (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), []string(nil), mock.MatchedBy(func(v *bool) bool {
		return v != nil && *v == false
	})).Return(&models.Blog{ID: id, UserID: userID, IsRead: false}, nil).Once()

	blog, err = svc.ToggleRead(context.Background(), userID, id)
	assert.NoError(t, err)
	assert.False(t, blog.IsRead)
	store.AssertExpectations(t)
}

func TestBlogGetByID_ForeignOwner(t *testing.T) {
	store := new(mockBlogStore)
	svc := NewBlogService(store)
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(&models.Blog{ID: id, UserID: uuid.New()}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New(), id)
	assert.True(t, errors.Is(err, apperror.ErrNotOwner))
}

func TestBlogDelete_NotFound(t *testing.T) {
	store := new(mockBlogStore)
	svc := NewBlogService(store)
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(nil, repository.ErrBlogNotFound)

	err := svc.Delete(context.Background(), uuid.New(), id)
	assert.True(t, errors.Is(err, apperror.ErrBlogNotFound))
}

func TestBlogUpdate_EmptyCategoryRejected(t *testing.T) {
	store := new(mockBlogStore)
	svc := NewBlogService(store)
	userID := uuid.New()
	id := uuid.New()

	store.On("GetByID", mock.Anything, id).Return(&models.Blog{ID: id, UserID: userID}, nil)

	empty := ""
	_, err := svc.Update(context.Background(), userID, id, UpdateBlogInput{Category: &empty})

	assert.True(t, apperror.IsValidation(err))
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
