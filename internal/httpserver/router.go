package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"online-bookstore/internal/domain"
	bookrepo "online-bookstore/internal/repository/book"
)

const defaultPageSize = 20

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	{
		api.GET("/books", h.listBooks)
		api.GET("/books/search", h.searchBooks)
		api.GET("/books/:id", h.getBook)
		api.POST("/books", h.createBook)
		api.PUT("/books/:id", h.updateBook)
		api.DELETE("/books/:id", h.deleteBook)

		api.GET("/categories", h.listCategories)
		api.GET("/categories/:id", h.getCategory)
		api.GET("/categories/:id/books", h.listBooksByCategory)
		api.POST("/categories", h.createCategory)
		api.PUT("/categories/:id", h.updateCategory)
		api.DELETE("/categories/:id", h.deleteCategory)

		api.GET("/cart", h.getCart)
		api.POST("/cart/items", h.addCartItem)
		api.PUT("/cart/items/:itemId", h.updateCartItem)
		api.DELETE("/cart/items/:itemId", h.removeCartItem)

		api.POST("/orders", h.createOrder)
		api.GET("/orders", h.listOrders)
		api.GET("/orders/:id/items", h.listOrderItems)
		api.GET("/orders/:id/items/:itemId", h.getOrderItem)
		api.PATCH("/orders/:id", h.updateOrderStatus)
	}

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

// userID reads the caller identity. Authentication is an external
// collaborator; the API trusts the header the gateway sets.
func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-User-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-User-ID header"})
		return "", false
	}
	return id, true
}

func pageFromQuery(c *gin.Context) bookrepo.Page {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return bookrepo.Page{Limit: limit, Offset: offset}
}

// respondError maps the error taxonomy onto status codes. Configuration
// errors are defects and get logged before the opaque 500.
func (h handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateItem), errors.Is(err, domain.ErrDuplicateISBN):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConfiguration):
		h.logger.Printf("configuration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		h.logger.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
