package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/laundryhub/pkg/catalog"
	"github.com/example/laundryhub/pkg/models"
)

// listServices godoc
// @Summary List bookable services
// @Tags catalog
// @Success 200 {object} map[string]interface{}
// @Router /catalog/services [get]
func (s *Server) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": catalog.Services()})
}

// listCategories godoc
// @Summary List the categories of a service
// @Tags catalog
// @Param service_id path string true "Service ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /catalog/services/{service_id}/categories [get]
func (s *Server) listCategories(c *gin.Context) {
	serviceID := c.Param("service_id")
	if _, ok := catalog.ServiceByID(serviceID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": catalog.CategoriesForService(serviceID)})
}

// listItems godoc
// @Summary List the items of a service
// @Tags catalog
// @Param service_id path string true "Service ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /catalog/services/{service_id}/items [get]
func (s *Server) listItems(c *gin.Context) {
	serviceID := c.Param("service_id")
	if _, ok := catalog.ServiceByID(serviceID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": catalog.ItemsForService(serviceID)})
}

// createBusinessInquiry godoc
// @Summary Submit a business service inquiry
// @Tags business
// @Success 201 {object} models.BusinessInquiry
// @Failure 422 {object} map[string]string
// @Router /business/inquiries [post]
func (s *Server) createBusinessInquiry(c *gin.Context) {
	var req struct {
		CompanyName string `json:"company_name"`
		ContactName string `json:"contact_name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		ServiceType string `json:"service_type"`
		Message     string `json:"message"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, err := s.business.SubmitInquiry(c.Request.Context(), &models.BusinessInquiry{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		Message:     req.Message,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}

// suggestPlaces godoc
// @Summary Autocomplete an address query
// @Tags places
// @Param q query string true "Free-text query"
// @Success 200 {object} map[string]interface{}
// @Router /places/suggest [get]
func (s *Server) suggestPlaces(c *gin.Context) {
	suggestions, err := s.places.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.logger.Warn("places lookup failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"suggestions": []interface{}{}})
		return
	}
	if suggestions == nil {
		c.JSON(http.StatusOK, gin.H{"suggestions": []interface{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
