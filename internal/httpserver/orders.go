package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"online-bookstore/internal/domain"
)

type createOrderRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h handlers) createOrder(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.deps.Orders.Create(c.Request.Context(), user, req.ShippingAddress)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h handlers) listOrders(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	orders, err := h.deps.Orders.ListByUser(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orders, "count": len(orders)})
}

func (h handlers) listOrderItems(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	items, err := h.deps.Orders.GetItems(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": items, "count": len(items)})
}

func (h handlers) getOrderItem(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	item, err := h.deps.Orders.GetItem(c.Request.Context(), c.Param("itemId"), c.Param("id"), user)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// updateOrderStatus is the privileged transition endpoint; upstream
// authorization decides who may call it.
func (h handlers) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := domain.ParseOrderStatus(req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.deps.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
