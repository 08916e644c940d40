package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shodhsrija/foundation-backend/internal/middleware"
	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/service"
)

type IssueHandler struct {
	issues *service.IssueService
}

func NewIssueHandler(issues *service.IssueService) *IssueHandler {
	return &IssueHandler{issues: issues}
}

func (h *IssueHandler) ListCategories(c *gin.Context) {
	categories, err := h.issues.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

type reportRequest struct {
	Title               string `json:"title" binding:"required"`
	Description         string `json:"description" binding:"required"`
	CategoryID          string `json:"category_id"`
	LocationDescription string `json:"location_description"`
	City                string `json:"city"`
	State               string `json:"state"`
	ReporterName        string `json:"reporter_name"`
	ReporterEmail       string `json:"reporter_email"`
	IsAnonymous         bool   `json:"is_anonymous"`
}

// Report accepts a civic issue from any visitor.
func (h *IssueHandler) Report(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	issue, err := h.issues.Report(c.Request.Context(), middleware.UserID(c), service.ReportInput{
		Title:               req.Title,
		Description:         req.Description,
		CategoryID:          req.CategoryID,
		LocationDescription: req.LocationDescription,
		City:                req.City,
		State:               req.State,
		ReporterName:        req.ReporterName,
		ReporterEmail:       req.ReporterEmail,
		IsAnonymous:         req.IsAnonymous,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"issue_number": issue.IssueNumber,
		"issue":        issue,
	})
}

func (h *IssueHandler) Get(c *gin.Context) {
	issue, err := h.issues.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"issue":    issue,
		"reporter": issue.ReporterDisplayName(),
		"location": issue.LocationDisplay(),
	})
}

func (h *IssueHandler) ListPublic(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	issues, err := h.issues.ListPublic(c.Request.Context(), limit, offset)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load issues")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "issues": issues})
}

type issueStatusRequest struct {
	Status          string `json:"status" binding:"required"`
	ResolutionNotes string `json:"resolution_notes"`
}

// UpdateStatus moves an issue through its workflow. Staff only.
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	var req issueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.issues.UpdateStatus(c.Request.Context(), c.Param("id"),
		models.IssueStatus(req.Status), req.ResolutionNotes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
