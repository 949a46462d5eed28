package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// listQuotes godoc
// @Summary List the caller's quote requests
// @Tags quotes
// @Param X-Customer-ID header string true "Customer ID"
// @Success 200 {object} map[string]interface{}
// @Router /quotes [get]
func (s *Server) listQuotes(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	quotes, err := s.quotes.List(c.Request.Context(), cid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

// requestQuote godoc
// @Summary Request a price for a quote-only item
// @Tags quotes
// @Param X-Customer-ID header string true "Customer ID"
// @Success 201 {object} models.QuoteRequest
// @Failure 422 {object} map[string]string
// @Router /quotes [post]
func (s *Server) requestQuote(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	var req struct {
		ItemID      string `json:"item_id" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := s.quotes.Request(c.Request.Context(), cid, req.ItemID, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// respondQuote is the staff endpoint that attaches a price to an open request.
// @Summary Attach a price to an open quote request
// @Tags quotes
// @Param id path string true "Quote ID"
// @Success 200 {object} models.QuoteRequest
// @Failure 409 {object} map[string]string
// @Router /quotes/{id}/respond [post]
func (s *Server) respondQuote(c *gin.Context) {
	var req struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	quote, err := s.quotes.Respond(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// acceptQuote godoc
// @Summary Accept a quoted price
// @Tags quotes
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Quote ID"
// @Success 200 {object} models.QuoteRequest
// @Failure 409 {object} map[string]string
// @Router /quotes/{id}/accept [post]
func (s *Server) acceptQuote(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	quote, err := s.quotes.Accept(c.Request.Context(), c.Param("id"), cid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// declineQuote godoc
// @Summary Decline a quoted price
// @Tags quotes
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Quote ID"
// @Success 200 {object} models.QuoteRequest
// @Failure 409 {object} map[string]string
// @Router /quotes/{id}/decline [post]
func (s *Server) declineQuote(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	quote, err := s.quotes.Decline(c.Request.Context(), c.Param("id"), cid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
