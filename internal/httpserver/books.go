package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	booksvc "online-bookstore/internal/service/book"
)

func (h handlers) listBooks(c *gin.Context) {
	books, err := h.deps.Books.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": books, "count": len(books)})
}

// searchBooks accepts repeated query parameters per field, e.g.
// /api/books/search?authors=Tolkien&authors=Orwell&titles=1984.
func (h handlers) searchBooks(c *gin.Context) {
	params := booksvc.SearchParams{
		Authors: c.QueryArray("authors"),
		Titles:  c.QueryArray("titles"),
		ISBNs:   c.QueryArray("isbns"),
	}
	books, err := h.deps.Books.Search(c.Request.Context(), params, pageFromQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": books, "count": len(books)})
}

func (h handlers) getBook(c *gin.Context) {
	book, err := h.deps.Books.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h handlers) createBook(c *gin.Context) {
	var in booksvc.UpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book, err := h.deps.Books.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (h handlers) updateBook(c *gin.Context) {
	var in booksvc.UpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book, err := h.deps.Books.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h handlers) deleteBook(c *gin.Context) {
	if err := h.deps.Books.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
