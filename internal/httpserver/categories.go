package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	categorysvc "online-bookstore/internal/service/category"
)

func (h handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Categories.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": categories, "count": len(categories)})
}

func (h handlers) getCategory(c *gin.Context) {
	category, err := h.deps.Categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h handlers) listBooksByCategory(c *gin.Context) {
	books, err := h.deps.Books.ListByCategory(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": books, "count": len(books)})
}

func (h handlers) createCategory(c *gin.Context) {
	var in categorysvc.UpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.deps.Categories.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h handlers) updateCategory(c *gin.Context) {
	var in categorysvc.UpsertInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.deps.Categories.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h handlers) deleteCategory(c *gin.Context) {
	if err := h.deps.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
