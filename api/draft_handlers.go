package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/laundryhub/pkg/cart"
	"github.com/example/laundryhub/pkg/catalog"
	"github.com/example/laundryhub/pkg/pricing"
	"github.com/example/laundryhub/pkg/wizard"
)

// draftView is the draft plus everything the wizard pages display: the running
// totals and which steps still block confirmation.
func draftView(d *wizard.Draft) gin.H {
	breakdown := pricing.Compute(d.Cart.TotalAmount())
	return gin.H{
		"draft":         d,
		"total_amount":  breakdown.Subtotal,
		"tax":           breakdown.Tax,
		"total":         breakdown.Total,
		"item_count":    d.Cart.TotalItemCount(),
		"missing_steps": d.MissingSteps(),
		"complete":      d.Complete(),
	}
}

// createDraft godoc
// @Summary Start a new order draft
// @Tags drafts
// @Param X-Customer-ID header string true "Customer ID"
// @Success 201 {object} map[string]interface{}
// @Router /drafts [post]
func (s *Server) createDraft(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	draft := wizard.NewDraft(cid)
	if err := s.drafts.Save(c.Request.Context(), draft); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, draftView(draft))
}

// loadDraft fetches the draft and checks it belongs to the caller. A foreign
// draft reads as missing.
func (s *Server) loadDraft(c *gin.Context) (*wizard.Draft, bool) {
	cid, ok := customerID(c)
	if !ok {
		return nil, false
	}

	draft, err := s.drafts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return nil, false
	}
	if draft.CustomerID != cid {
		fail(c, wizard.ErrDraftNotFound)
		return nil, false
	}
	return draft, true
}

// getDraft godoc
// @Summary Get a draft with its totals and missing steps
// @Tags drafts
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Draft ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /drafts/{id} [get]
func (s *Server) getDraft(c *gin.Context) {
	draft, ok := s.loadDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, draftView(draft))
}

// setDraftService godoc
// @Summary Choose the service for a draft
// @Tags drafts
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Draft ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /drafts/{id}/service [put]
func (s *Server) setDraftService(c *gin.Context) {
	draft, ok := s.loadDraft(c)
	if !ok {
		return
	}

	var req struct {
		ServiceID string `json:"service_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, found := catalog.ServiceByID(req.ServiceID); !found {
		fail(c, wizard.ErrUnknownService)
		return
	}

	// Switching services resets the item selection; prices differ per service.
	if draft.ServiceID != "" && draft.ServiceID != req.ServiceID {
		draft.Cart = cart.New()
	} else if draft.ServiceID == "" {
		// Items deep-added before a service was chosen only survive if they
		// belong to it.
		for _, line := range draft.Cart.SortedLines() {
			if serviceID, ok := catalog.ServiceForItem(line.Item); !ok || serviceID != req.ServiceID {
				draft.Cart = cart.New()
				break
			}
		}
	}
	draft.ServiceID = req.ServiceID

	if err := s.drafts.Save(c.Request.Context(), draft); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, draftView(draft))
}

// adjustDraftItem godoc
// @Summary Adjust an item quantity in the draft cart
// @Tags drafts
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Draft ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /drafts/{id}/items [post]
func (s *Server) adjustDraftItem(c *gin.Context) {
	draft, ok := s.loadDraft(c)
	if !ok {
		return
	}

	var req struct {
		ItemID string `json:"item_id" binding:"required"`
		Delta  int    `json:"delta" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, found := catalog.ItemByID(req.ItemID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown catalog item"})
		return
	}

	// Deep-linking into the items step must not mix services in one draft.
	if draft.ServiceID != "" {
		if serviceID, ok := catalog.ServiceForItem(item); !ok || serviceID != draft.ServiceID {
			fail(c, wizard.ErrItemOutsideService)
			return
		}
	}

	if err := draft.Cart.SetQuantity(item, req.Delta); err != nil {
		// Quote-required items route to the quote flow instead.
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       err.Error(),
			"quote_route": "/api/v1/quotes",
		})
		return
	}

	if err := s.drafts.Save(c.Request.Context(), draft); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, draftView(draft))
}

// setDraftAddress godoc
// @Summary Set the pickup address of a draft
// @Tags drafts
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Draft ID"
// @Success 200 {object} map[string]interface{}
// @Router /drafts/{id}/address [put]
func (s *Server) setDraftAddress(c *gin.Context) {
	draft, ok := s.loadDraft(c)
	if !ok {
		return
	}

	var req struct {
		Label      string `json:"label"`
		Street     string `json:"street" binding:"required"`
		City       string `json:"city" binding:"required"`
		PostalCode string `json:"postal_code" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft.Address = &wizard.Address{
		Label:      req.Label,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
	}

	if err := s.drafts.Save(c.Request.Context(), draft); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, draftView(draft))
}

// setDraftSchedule godoc
// @Summary Set pickup and delivery times of a draft
// @Tags drafts
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Draft ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /drafts/{id}/schedule [put]
func (s *Server) setDraftSchedule(c *gin.Context) {
	draft, ok := s.loadDraft(c)
	if !ok {
		return
	}

	var req struct {
		PickupAt         time.Time `json:"pickup_at" binding:"required"`
		DeliveryAt       time.Time `json:"delivery_at" binding:"required"`
		PickupHandling   string    `json:"pickup_handling"`
		DeliveryHandling string    `json:"delivery_handling"`
		Notes            string    `json:"notes"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule := wizard.Schedule{
		PickupAt:         req.PickupAt,
		DeliveryAt:       req.DeliveryAt,
		PickupHandling:   req.PickupHandling,
		DeliveryHandling: req.DeliveryHandling,
		Notes:            req.Notes,
	}
	if err := schedule.Validate(); err != nil {
		fail(c, err)
		return
	}
	draft.Schedule = &schedule

	if err := s.drafts.Save(c.Request.Context(), draft); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, draftView(draft))
}

// submitDraft godoc
// @Summary Submit a complete draft as an order
// @Tags drafts
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Draft ID"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /drafts/{id}/submit [post]
func (s *Server) submitDraft(c *gin.Context) {
	draft, ok := s.loadDraft(c)
	if !ok {
		return
	}

	order, err := s.orders.Submit(c.Request.Context(), draft)
	if err != nil && order == nil {
		fail(c, err)
		return
	}

	// The order row exists from here on; the draft is done either way.
	if delErr := s.drafts.Delete(c.Request.Context(), draft.ID); delErr != nil {
		s.logger.Warn("Failed to delete submitted draft",
			zap.String("draft_id", draft.ID), zap.Error(delErr))
	}

	if err != nil {
		// Payment session failed: order is pending, retry goes through
		// POST /orders/:id/payment without re-submitting.
		c.JSON(http.StatusCreated, gin.H{
			"order":         order,
			"payment_error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":        order,
		"checkout_url": order.CheckoutURL,
	})
}
