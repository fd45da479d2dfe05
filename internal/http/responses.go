package http

import (
	"time"

	"library-api/internal/domain"
)

type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	AuthorID      int64   `json:"author_id"`
	AuthorName    string  `json:"author_name"`
	CategoryID    int64   `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	PublishedDate string  `json:"published_date"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	IsBorrowed    bool    `json:"is_borrowed"`
	HasCover      bool    `json:"has_cover"`
}

type BookPageResponse struct {
	Items      []BookResponse `json:"items"`
	TotalCount int            `json:"total_count"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

type AuthorResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Biography string `json:"biography"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID        int64       `json:"id"`
	UserName  string      `json:"user_name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt string      `json:"created_at"`
	LastLogin *string     `json:"last_login,omitempty"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type BorrowingResponse struct {
	ID           int64   `json:"id"`
	BookID       int64   `json:"book_id"`
	UserID       int64   `json:"user_id"`
	BorrowedDate string  `json:"borrowed_date"`
	DueDate      string  `json:"due_date"`
	ReturnedDate *string `json:"returned_date,omitempty"`
	LateFee      float64 `json:"late_fee"`
}

type LateFeeResponse struct {
	BorrowingID int64   `json:"borrowing_id"`
	LateFee     float64 `json:"late_fee"`
}

type CoverResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

func bookToResponse(book domain.Book) BookResponse {
	return BookResponse{
		ID:            book.ID,
		Title:         book.Title,
		AuthorID:      book.AuthorID,
		AuthorName:    book.AuthorName,
		CategoryID:    book.CategoryID,
		CategoryName:  book.CategoryName,
		PublishedDate: book.PublishedDate.Format(time.RFC3339),
		Price:         book.Price,
		Stock:         book.Stock,
		IsBorrowed:    book.IsBorrowed,
		HasCover:      book.CoverKey != "",
	}
}

func pageToResponse(page domain.BookPage) BookPageResponse {
	resp := BookPageResponse{
		Items:      make([]BookResponse, len(page.Books)),
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
	for i := range page.Books {
		resp.Items[i] = bookToResponse(page.Books[i])
	}
	return resp
}

func authorToResponse(a domain.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name, Biography: a.Biography}
}

func categoryToResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func userToResponse(user domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		UserName:  user.UserName,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		v := user.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &v
	}
	return resp
}

func borrowingToResponse(record domain.BorrowingRecord) BorrowingResponse {
	resp := BorrowingResponse{
		ID:           record.ID,
		BookID:       record.BookID,
		UserID:       record.UserID,
		BorrowedDate: record.BorrowedDate.Format(time.RFC3339),
		DueDate:      record.DueDate().Format(time.RFC3339),
		LateFee:      record.LateFee,
	}
	if record.ReturnedDate != nil {
		v := record.ReturnedDate.Format(time.RFC3339)
		resp.ReturnedDate = &v
	}
	return resp
}

func borrowingsToResponse(records []domain.BorrowingRecord) []BorrowingResponse {
	resp := make([]BorrowingResponse, len(records))
	for i := range records {
		resp[i] = borrowingToResponse(records[i])
	}
	return resp
}
