package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-api/internal/auth"
	"library-api/internal/domain"
	"library-api/internal/metrics"
	"library-api/internal/service"
)

// Services groups the domain services served over HTTP. Covers may be nil
// when no storage bucket is configured.
type Services struct {
	Books      service.BookService
	Authors    service.AuthorService
	Categories service.CategoryService
	Users      service.UserService
	Borrowings service.BorrowingService
	Covers     service.CoverService
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	books      service.BookService
	authors    service.AuthorService
	categories service.CategoryService
	users      service.UserService
	borrowings service.BorrowingService
	covers     service.CoverService
	tokens     *auth.Issuer
	logger     logrus.FieldLogger
}

func NewHandler(svcs Services, tokens *auth.Issuer, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		books:      svcs.Books,
		authors:    svcs.Authors,
		categories: svcs.Categories,
		users:      svcs.Users,
		borrowings: svcs.Borrowings,
		covers:     svcs.Covers,
		tokens:     tokens,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), h.requestLogger(), metrics.GinMiddleware())
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	anyone := h.requireRoles(domain.RoleUser, domain.RoleAdmin)
	admin := h.requireRoles(domain.RoleAdmin)

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
		api.POST("/users/register", h.register)
		api.POST("/users/login", h.login)
	}

	protected := api.Group("", h.authenticate())
	{
		protected.GET("/users", admin, h.listUsers)
		protected.GET("/users/:id", anyone, h.getUser)
		protected.PUT("/users/:id", anyone, h.updateUser)
		protected.DELETE("/users/:id", anyone, h.deleteUser)
		protected.GET("/users/:id/borrowings", anyone, h.listUserBorrowings)

		protected.GET("/books", anyone, h.listBooks)
		protected.GET("/books/count", anyone, h.countBooks)
		protected.GET("/books/:id", anyone, h.getBook)
		protected.POST("/books", admin, h.createBook)
		protected.PUT("/books/:id", admin, h.updateBook)
		protected.DELETE("/books/:id", admin, h.deleteBook)
		protected.PUT("/books/:id/cover", admin, h.uploadCover)
		protected.GET("/books/:id/cover", anyone, h.getCover)
		protected.GET("/books/:id/borrowings", admin, h.listBookBorrowings)

		protected.GET("/authors", anyone, h.listAuthors)
		protected.GET("/authors/:id", anyone, h.getAuthor)
		protected.POST("/authors", admin, h.createAuthor)
		protected.PUT("/authors/:id", admin, h.updateAuthor)
		protected.DELETE("/authors/:id", admin, h.deleteAuthor)

		protected.GET("/categories", admin, h.listCategories)
		protected.GET("/categories/:id", anyone, h.getCategory)
		protected.POST("/categories", admin, h.createCategory)
		protected.PUT("/categories/:id", admin, h.updateCategory)
		protected.DELETE("/categories/:id", admin, h.deleteCategory)

		protected.POST("/borrowings", anyone, h.borrowBook)
		protected.GET("/borrowings/:id", anyone, h.getBorrowing)
		protected.GET("/borrowings/:id/late-fee", admin, h.lateFee)
		protected.POST("/borrowings/:id/return", admin, h.returnBook)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := h.logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request handled")
	}
}
