package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/service"
)

type SiteHandler struct {
	site *service.SiteService
}

func NewSiteHandler(site *service.SiteService) *SiteHandler {
	return &SiteHandler{site: site}
}

func (h *SiteHandler) GetSettings(c *gin.Context) {
	settings, err := h.site.GetSettings(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load site settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

// CreateSettings seeds the singleton settings row. Staff only; a second
// create is rejected.
func (h *SiteHandler) CreateSettings(c *gin.Context) {
	var settings models.SiteSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.site.CreateSettings(c.Request.Context(), &settings); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "settings": settings})
}

func (h *SiteHandler) UpdateSettings(c *gin.Context) {
	var settings models.SiteSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.site.UpdateSettings(c.Request.Context(), &settings); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

func (h *SiteHandler) GetStats(c *gin.Context) {
	stats, err := h.site.GetStats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load site stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (h *SiteHandler) UpdateStats(c *gin.Context) {
	var stats models.SiteStats
	if err := c.ShouldBindJSON(&stats); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.site.UpdateStats(c.Request.Context(), &stats); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update site stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
