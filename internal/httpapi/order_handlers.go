package httpapi

import (
	"net/http"

	"github.com/bookstore/storefront/internal/orders"
	"github.com/gin-gonic/gin"
)

type placeOrderRequest struct {
	Items []orders.CartItem `json:"items"`
}

func (h *Handler) placeOrder(c *gin.Context) {
	customerID, err := h.gate.CurrentCustomerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	receipt, err := h.orders.PlaceOrder(c.Request.Context(), customerID, req.Items)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":          "OK",
		"id":           receipt.OrderID,
		"total_amount": receipt.TotalAmount.InexactFloat64(),
	})
}

func (h *Handler) myOrders(c *gin.Context) {
	customerID, err := h.gate.CurrentCustomerID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	placed, err := h.orders.ListOrders(c.Request.Context(), customerID)
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]orderView, 0, len(placed))
	for _, o := range placed {
		views = append(views, newOrderView(o))
	}
	c.JSON(http.StatusOK, views)
}
