package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/service"
)

type borrowRequest struct {
	BookID int64 `json:"book_id" binding:"required"`
	// UserID defaults to the caller; only admins may borrow on behalf of someone else.
	UserID int64 `json:"user_id"`
}

func (h *Handler) borrowBook(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	caller := principal(c)
	userID := req.UserID
	if userID == 0 {
		userID = caller.UserID
	}
	if !caller.CanAccessUser(userID) {
		h.writeError(c, service.ErrForbidden)
		return
	}

	record, err := h.borrowings.BorrowBook(c.Request.Context(), req.BookID, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, borrowingToResponse(*record))
}

func (h *Handler) getBorrowing(c *gin.Context) {
	id, ok := pathID(c, "borrowing")
	if !ok {
		return
	}

	record, err := h.borrowings.GetBorrowing(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !principal(c).CanAccessUser(record.UserID) {
		h.writeError(c, service.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, borrowingToResponse(*record))
}

func (h *Handler) lateFee(c *gin.Context) {
	id, ok := pathID(c, "borrowing")
	if !ok {
		return
	}

	fee, err := h.borrowings.CalculateLateFee(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, LateFeeResponse{BorrowingID: id, LateFee: fee})
}

func (h *Handler) returnBook(c *gin.Context) {
	id, ok := pathID(c, "borrowing")
	if !ok {
		return
	}

	record, err := h.borrowings.ReturnBook(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, borrowingToResponse(*record))
}
