package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/snipstash-backend/internal/dto"
	"github.com/ignatzorin/snipstash-backend/internal/http/handlers/common"
	"github.com/ignatzorin/snipstash-backend/internal/repository"
	"github.com/ignatzorin/snipstash-backend/internal/service"
)

// BlogHandler обрабатывает CRUD закладок на статьи и блоги.
type BlogHandler struct {
	blogs *service.BlogService
}

// NewBlogHandler создаёт обработчик закладок.
func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// Create сохраняет новую закладку.
// POST /api/blogs
func (h *BlogHandler) Create(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}

	var req struct {
		Title       string   `json:"title" binding:"required"`
		URL         string   `json:"url" binding:"required"`
		Description *string  `json:"description"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		Notes       *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "title и url обязательны")
		return
	}

	blog, err := h.blogs.Create(c.Request.Context(), userID, service.CreateBlogInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Notes:       req.Notes,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, blog)
}

// List возвращает закладки пользователя по фильтру.
// GET /api/blogs?category=&isRead=&search=
func (h *BlogHandler) List(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}

	filter := repository.BlogFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("isRead"); raw != "" {
		isRead, err := strconv.ParseBool(raw)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "isRead должен быть true или false")
			return
		}
		filter.IsRead = &isRead
	}

	blogs, err := h.blogs.List(c.Request.Context(), userID, filter)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, blogs)
}

// GetByID возвращает одну закладку владельца.
// GET /api/blogs/:id
func (h *BlogHandler) GetByID(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	blog, err := h.blogs.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, blog)
}

// Update частично обновляет закладку: отсутствующие поля не меняются.
// PUT /api/blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
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
		URL         *string  `json:"url"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Tags        []string `json:"tags"`
		Notes       *string  `json:"notes"`
		IsRead      *bool    `json:"isRead"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	blog, err := h.blogs.Update(c.Request.Context(), userID, id, service.UpdateBlogInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Notes:       req.Notes,
		IsRead:      req.IsRead,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, blog)
}

// Delete безвозвратно удаляет закладку владельца.
// DELETE /api/blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.blogs.Delete(c.Request.Context(), userID, id); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "закладка удалена"})
}

// ToggleRead переключает отметку о прочтении.
// PUT /api/blogs/:id/toggle-read
func (h *BlogHandler) ToggleRead(c *gin.Context) {
	userID, ok := common.CurrentUserID(c)
	if !ok {
		common.RespondUnauthorized(c)
		return
	}
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	blog, err := h.blogs.ToggleRead(c.Request.Context(), userID, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, blog)
}
