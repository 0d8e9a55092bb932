package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/snipstash-backend/internal/http/middleware"
	"github.com/ignatzorin/snipstash-backend/internal/models"
	"github.com/ignatzorin/snipstash-backend/internal/repository"
	"github.com/ignatzorin/snipstash-backend/internal/service"
)

// memSnippetStore — хранилище в памяти для хэндлер-тестов.
// Запоминает последний поисковый запрос для проверки проброса параметров.
type memSnippetStore struct {
	snippets   map[uuid.UUID]*models.Snippet
	lastSearch repository.SnippetSearch
}

func newMemSnippetStore() *memSnippetStore {
	return &memSnippetStore{snippets: make(map[uuid.UUID]*models.Snippet)}
}

func (m *memSnippetStore) Create(_ context.Context, s *models.Snippet) error {
	s.ID = uuid.New()
	m.snippets[s.ID] = s
	return nil
}

func (m *memSnippetStore) GetByID(_ context.Context, id uuid.UUID) (*models.Snippet, error) {
	s, ok := m.snippets[id]
	if !ok {
		return nil, repository.ErrSnippetNotFound
	}
	return s, nil
}

func (m *memSnippetStore) List(_ context.Context, userID uuid.UUID, _ repository.SnippetFilter) ([]models.Snippet, error) {
	var out []models.Snippet
	for _, s := range m.snippets {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memSnippetStore) Search(_ context.Context, userID uuid.UUID, search repository.SnippetSearch) ([]models.Snippet, error) {
	m.lastSearch = search
	return m.List(context.Background(), userID, repository.SnippetFilter{})
}

func (m *memSnippetStore) DistinctLanguages(_ context.Context, userID uuid.UUID) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, s := range m.snippets {
		if s.UserID == userID && !seen[s.Language] {
			seen[s.Language] = true
			out = append(out, s.Language)
		}
	}
	return out, nil
}

func (m *memSnippetStore) Update(_ context.Context, id uuid.UUID, title, code, description, language *string, tags []string) (*models.Snippet, error) {
	s, ok := m.snippets[id]
	if !ok {
		return nil, repository.ErrSnippetNotFound
	}
	if title != nil {
		s.Title = *title
	}
	if code != nil {
		s.Code = *code
	}
	if description != nil {
		s.Description = description
	}
	if language != nil {
		s.Language = *language
	}
	if tags != nil {
		s.Tags = tags
	}
	return s, nil
}

func (m *memSnippetStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.snippets[id]; !ok {
		return repository.ErrSnippetNotFound
	}
	delete(m.snippets, id)
	return nil
}

// setupSnippetRouter собирает роутер с подменой auth middleware.
func setupSnippetRouter(store *memSnippetStore, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewSnippetHandler(service.NewSnippetService(store))

	r := gin.New()
	authed := r.Group("/api")
	authed.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})
	authed.POST("/snippets", handler.Create)
	authed.GET("/snippets", handler.List)
	authed.GET("/snippets/search", handler.Search)
	authed.GET("/snippets/:id", middleware.UUIDValidator("id"), handler.GetByID)
	authed.PUT("/snippets/:id", middleware.UUIDValidator("id"), handler.Update)
	authed.DELETE("/snippets/:id", middleware.UUIDValidator("id"), handler.Delete)

	return r
}

func TestSnippetHandlerCreate_AppliesAutoTags(t *testing.T) {
	store := newMemSnippetStore()
	userID := uuid.New()
	r := setupSnippetRouter(store, userID)

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Отладка формы",
		"code":     "console.log(form)",
		"language": "javascript",
		"tags":     []string{"frontend"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/snippets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.Snippet
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, userID, created.UserID)
	assert.Contains(t, created.Tags, "frontend")
	assert.Contains(t, created.Tags, "debugging")
}

func TestSnippetHandlerCreate_MissingFields(t *testing.T) {
	r := setupSnippetRouter(newMemSnippetStore(), uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/api/snippets", bytes.NewReader([]byte(`{"title":"без кода"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnippetHandlerList_ReturnsLanguagesFacet(t *testing.T) {
	store := newMemSnippetStore()
	userID := uuid.New()
	store.snippets[uuid.New()] = &models.Snippet{ID: uuid.New(), UserID: userID, Title: "a", Language: "go"}
	r := setupSnippetRouter(store, userID)

	req := httptest.NewRequest(http.MethodGet, "/api/snippets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Snippets []models.Snippet `json:"snippets"`
		Filters  struct {
			Languages []string `json:"languages"`
		} `json:"filters"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Snippets, 1)
	assert.Equal(t, []string{"go"}, resp.Filters.Languages)
}

func TestSnippetHandlerSearch_ForwardsQueryParams(t *testing.T) {
	store := newMemSnippetStore()
	r := setupSnippetRouter(store, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/snippets/search?query=alpha&language=go&tag=debugging", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, repository.SnippetSearch{Query: "alpha", Language: "go", Tag: "debugging"}, store.lastSearch)
}

func TestSnippetHandlerGet_ForeignOwner(t *testing.T) {
	store := newMemSnippetStore()
	foreignID := uuid.New()
	store.snippets[foreignID] = &models.Snippet{ID: foreignID, UserID: uuid.New(), Title: "чужой", Language: "go"}
	r := setupSnippetRouter(store, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/snippets/"+foreignID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSnippetHandlerGet_UnknownID(t *testing.T) {
	r := setupSnippetRouter(newMemSnippetStore(), uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/snippets/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSnippetHandlerGet_InvalidUUID(t *testing.T) {
	r := setupSnippetRouter(newMemSnippetStore(), uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/snippets/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnippetHandler_NoUserInContext(t *testing.T) {
	// userID == uuid.Nil — middleware ничего не кладёт в контекст.
	r := setupSnippetRouter(newMemSnippetStore(), uuid.Nil)

	req := httptest.NewRequest(http.MethodGet, "/api/snippets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
