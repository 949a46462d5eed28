package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/laundryhub/pkg/models"
)

// listOrders godoc
// @Summary List the caller's orders
// @Tags orders
// @Param X-Customer-ID header string true "Customer ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, total, err := s.orders.List(c.Request.Context(), cid, page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": result,
		"total":  total,
	})
}

// getOrder godoc
// @Summary Get one order with its line items
// @Tags orders
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	order, err := s.orders.Get(c.Request.Context(), c.Param("id"), cid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// getOrderSummary is the lightweight poll target for the order tracking page;
// it is served from the Redis projection when one is cached.
// @Summary Get the cached status summary of an order
// @Tags orders
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Order ID"
// @Success 200 {object} repository.OrderSummary
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/summary [get]
func (s *Server) getOrderSummary(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	summary, err := s.orders.Summary(c.Request.Context(), c.Param("id"), cid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getOrderAudit is the operations-side view of an order's audit trail; it is
// not scoped to a customer.
// @Summary List an order's audit trail, newest first
// @Tags orders
// @Param id path string true "Order ID"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} map[string]interface{}
// @Router /orders/{id}/audit [get]
func (s *Server) getOrderAudit(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	logs, err := s.orders.AuditTrail(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": logs})
}

// cancelOrder godoc
// @Summary Cancel an order that has not been picked up yet
// @Tags orders
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (s *Server) cancelOrder(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	order, err := s.orders.Cancel(c.Request.Context(), c.Param("id"), cid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// retryPayment re-requests a checkout session for a pending order whose first
// session attempt failed.
// @Summary Request a fresh checkout session for a pending order
// @Tags orders
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /orders/{id}/payment [post]
func (s *Server) retryPayment(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	order, err := s.orders.RetryPayment(c.Request.Context(), c.Param("id"), cid)
	if err != nil {
		if order != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"order":         order,
				"payment_error": err.Error(),
			})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"checkout_url": order.CheckoutURL,
	})
}

// updateOrderStatus is the operations-side lifecycle endpoint; it is not
// scoped to a customer.
// @Summary Advance an order's lifecycle status
// @Tags orders
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [put]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := s.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
