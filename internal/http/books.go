package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"library-api/internal/domain"
	"library-api/internal/service"
)

const maxCoverBytes = 5 << 20

type bookRequest struct {
	Title         string    `json:"title" binding:"required"`
	AuthorID      int64     `json:"author_id" binding:"required"`
	CategoryID    int64     `json:"category_id" binding:"required"`
	PublishedDate time.Time `json:"published_date" binding:"required"`
	Price         float64   `json:"price" binding:"gte=0"`
	Stock         int       `json:"stock" binding:"gte=0"`
}

func (r bookRequest) input() service.BookInput {
	return service.BookInput{
		Title:         r.Title,
		AuthorID:      r.AuthorID,
		CategoryID:    r.CategoryID,
		PublishedDate: r.PublishedDate,
		Price:         r.Price,
		Stock:         r.Stock,
	}
}

// bookQuery reads page, page_size, sort_by, ascending and filter, falling back to the listing defaults.
func bookQuery(c *gin.Context) (domain.BookQuery, error) {
	q := domain.NewBookQuery()

	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, domain.InvalidArgumentf("invalid page %q", v)
		}
		q.PageNumber = n
	}
	if v := c.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, domain.InvalidArgumentf("invalid page_size %q", v)
		}
		q.PageSize = n
	}
	if v := c.Query("ascending"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, domain.InvalidArgumentf("invalid ascending flag %q", v)
		}
		q.Ascending = b
	}

	field, err := domain.ParseSortField(c.Query("sort_by"))
	if err != nil {
		return q, err
	}
	q.SortBy = field
	q.Filter = c.Query("filter")
	return q, nil
}

func (h *Handler) listBooks(c *gin.Context) {
	q, err := bookQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	page, err := h.books.ListBooks(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageToResponse(page))
}

func (h *Handler) countBooks(c *gin.Context) {
	n, err := h.books.CountMatches(c.Request.Context(), c.Query("filter"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *Handler) getBook(c *gin.Context) {
	id, ok := pathID(c, "book")
	if !ok {
		return
	}

	book, err := h.books.GetBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(*book))
}

func (h *Handler) createBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	book, err := h.books.CreateBook(c.Request.Context(), req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookToResponse(*book))
}

func (h *Handler) updateBook(c *gin.Context) {
	id, ok := pathID(c, "book")
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	book, err := h.books.UpdateBook(c.Request.Context(), id, req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(*book))
}

func (h *Handler) deleteBook(c *gin.Context) {
	id, ok := pathID(c, "book")
	if !ok {
		return
	}

	book, err := h.books.DeleteBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{"deleted": book.ID}
	if h.covers != nil && book.CoverKey != "" {
		remoteCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		if err := h.covers.Remove(remoteCtx, book.ID); err != nil {
			h.logger.WithError(err).WithField("book_id", book.ID).Warn("delete cover objects")
			resp["warnings"] = []string{"cover could not be removed from storage"}
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadCover(c *gin.Context) {
	if h.covers == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}
	id, ok := pathID(c, "book")
	if !ok {
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxCoverBytes)
	book, err := h.covers.Upload(c.Request.Context(), id, body, c.ContentType())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(*book))
}

func (h *Handler) getCover(c *gin.Context) {
	if h.covers == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}
	id, ok := pathID(c, "book")
	if !ok {
		return
	}

	url, err := h.covers.URL(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, CoverResponse{
		URL:       url,
		ExpiresAt: time.Now().UTC().Add(service.CoverURLTTL).Format(time.RFC3339),
	})
}

func (h *Handler) listBookBorrowings(c *gin.Context) {
	id, ok := pathID(c, "book")
	if !ok {
		return
	}

	records, err := h.borrowings.ListByBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrowingsToResponse(records))
}
