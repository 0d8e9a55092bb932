package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/snipstash-backend/internal/dto"
	"github.com/ignatzorin/snipstash-backend/internal/http/handlers/common"
	"github.com/ignatzorin/snipstash-backend/internal/repository"
	"github.com/ignatzorin/snipstash-backend/internal/service"
)

// SnippetHandler обрабатывает CRUD и поиск сниппетов.
type SnippetHandler struct {
	snippets *service.SnippetService
}

// NewSnippetHandler создаёт обработчик сниппетов.
func NewSnippetHandler(snippets *service.SnippetService) *SnippetHandler {
	return &SnippetHandler{snippets: snippets}
}

// Create сохраняет новый сниппет с автоматической разметкой тегов.
// POST /api/snippets
func (h *SnippetHandler) Create(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}

	var req struct {
		Title       string   `json:"title" binding:"required"`
		Code        string   `json:"code" binding:"required"`
		Language    string   `json:"language" binding:"required"`
		Description *string  `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "title, code и language обязательны")
		return
	}

	snippet, err := h.snippets.Create(c.Request.Context(), userID, service.CreateSnippetInput{
		Title:       req.Title,
		Code:        req.Code,
		Language:    req.Language,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snippet)
}

// List возвращает сниппеты пользователя с фасетом языков.
// GET /api/snippets?title=&language=&tags=a,b
func (h *SnippetHandler) List(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}

	filter := repository.SnippetFilter{
		Title:    c.Query("title"),
		Language: c.Query("language"),
		Tags:     splitTags(c.Query("tags")),
	}

	result, err := h.snippets.List(c.Request.Context(), userID, filter)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SnippetListResponse{
		Snippets: result.Snippets,
		Filters:  dto.SnippetFilters{Languages: result.Languages},
	})
}

// Search ищет подстроку в названии, коде и описании.
// GET /api/snippets/search?query=&language=&tag=
func (h *SnippetHandler) Search(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}

	snippets, err := h.snippets.Search(c.Request.Context(), userID, repository.SnippetSearch{
		Query:    c.Query("query"),
		Language: c.Query("language"),
		Tag:      c.Query("tag"),
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, snippets)
}

// GetByID возвращает один сниппет владельца.
// GET /api/snippets/:id
func (h *SnippetHandler) GetByID(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	snippet, err := h.snippets.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, snippet)
}

// Update частично обновляет сниппет: отсутствующие поля не меняются.
// PUT /api/snippets/:id
func (h *SnippetHandler) Update(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Code        *string  `json:"code"`
		Language    *string  `json:"language"`
		Description *string  `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	snippet, err := h.snippets.Update(c.Request.Context(), userID, id, service.UpdateSnippetInput{
		Title:       req.Title,
		Code:        req.Code,
		Language:    req.Language,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, snippet)
}

// Delete безвозвратно удаляет сниппет владельца.
// DELETE /api/snippets/:id
func (h *SnippetHandler) Delete(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.snippets.Delete(c.Request.Context(), userID, id); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "сниппет удалён"})
}

// splitTags разбирает значение ?tags=a,b,c в срез без пустых элементов.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
