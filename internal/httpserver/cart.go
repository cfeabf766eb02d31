package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (h handlers) getCart(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	cart, err := h.deps.Carts.Get(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h handlers) addCartItem(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.deps.Carts.AddItem(c.Request.Context(), user, req.BookID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h handlers) updateCartItem(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.deps.Carts.UpdateItemQuantity(c.Request.Context(), user, c.Param("itemId"), req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h handlers) removeCartItem(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	cart, err := h.deps.Carts.RemoveItem(c.Request.Context(), user, c.Param("itemId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
