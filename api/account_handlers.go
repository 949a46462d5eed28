package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getProfile godoc
// @Summary Get the caller's profile
// @Tags account
// @Param X-Customer-ID header string true "Customer ID"
// @Success 200 {object} models.Customer
// @Router /profile [get]
func (s *Server) getProfile(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	customer, err := s.account.Profile(c.Request.Context(), cid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// updateProfile godoc
// @Summary Update profile fields the caller filled in
// @Tags account
// @Param X-Customer-ID header string true "Customer ID"
// @Success 200 {object} models.Customer
// @Router /profile [put]
func (s *Server) updateProfile(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := s.account.UpdateProfile(c.Request.Context(), cid, req.Name, req.Email, req.Phone)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// listAddresses godoc
// @Summary List the caller's address book
// @Tags account
// @Param X-Customer-ID header string true "Customer ID"
// @Success 200 {object} map[string]interface{}
// @Router /addresses [get]
func (s *Server) listAddresses(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	addresses, err := s.account.Addresses(c.Request.Context(), cid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// createAddress godoc
// @Summary Save a new address
// @Tags account
// @Param X-Customer-ID header string true "Customer ID"
// @Success 201 {object} models.Address
// @Router /addresses [post]
func (s *Server) createAddress(c *gin.Context) {
	cid, ok := customerID(c)
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

	address, err := s.account.AddAddress(c.Request.Context(), cid, req.Label, req.Street, req.City, req.PostalCode)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

// deleteAddress godoc
// @Summary Remove an address from the book
// @Tags account
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Address ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /addresses/{id} [delete]
func (s *Server) deleteAddress(c *gin.Context) {
	cid, ok := customerID(c)
	if !ok {
		return
	}

	if err := s.account.RemoveAddress(c.Request.Context(), c.Param("id"), cid); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
