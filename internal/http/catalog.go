package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type authorRequest struct {
	Name      string `json:"name" binding:"required"`
	Biography string `json:"biography"`
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) listAuthors(c *gin.Context) {
	authors, err := h.authors.ListAuthors(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]AuthorResponse, len(authors))
	for i := range authors {
		resp[i] = authorToResponse(authors[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getAuthor(c *gin.Context) {
	id, ok := pathID(c, "author")
	if !ok {
		return
	}

	author, err := h.authors.GetAuthor(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authorToResponse(*author))
}

func (h *Handler) createAuthor(c *gin.Context) {
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	author, err := h.authors.CreateAuthor(c.Request.Context(), req.Name, req.Biography)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authorToResponse(*author))
}

func (h *Handler) updateAuthor(c *gin.Context) {
	id, ok := pathID(c, "author")
	if !ok {
		return
	}
	var req authorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	author, err := h.authors.UpdateAuthor(c.Request.Context(), id, req.Name, req.Biography)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authorToResponse(*author))
}

func (h *Handler) deleteAuthor(c *gin.Context) {
	id, ok := pathID(c, "author")
	if !ok {
		return
	}

	if err := h.authors.DeleteAuthor(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = categoryToResponse(categories[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}

	category, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(*category))
}

func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, categoryToResponse(*category))
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	category, err := h.categories.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(*category))
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
