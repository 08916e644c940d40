package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/middleware"
	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/service"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

type MembershipHandler struct {
	memberships *service.MembershipService
}

func NewMembershipHandler(memberships *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

// ListTiers is public; the frontend renders pricing from it.
func (h *MembershipHandler) ListTiers(c *gin.Context) {
	tiers, err := h.memberships.ListTiers(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load membership tiers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tiers": tiers})
}

type applyRequest struct {
	TierID         string `json:"tier_id" binding:"required"`
	DurationMonths int    `json:"duration_months" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postal_code"`
	Motivation     string `json:"motivation"`
}

func (h *MembershipHandler) Apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.Logger.Warn("Invalid membership application", zap.Error(err))
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, amount, err := h.memberships.Apply(c.Request.Context(), middleware.UserID(c), service.ApplyInput{
		TierID:         req.TierID,
		DurationMonths: req.DurationMonths,
		FullName:       req.FullName,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		PostalCode:     req.PostalCode,
		Motivation:     req.Motivation,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"application":  app,
		"total_amount": amount,
	})
}

// applicationView decorates an application with whether its membership window
// covers the current moment.
type applicationView struct {
	*models.MembershipApplication
	IsActiveMembership bool `json:"is_active_membership"`
}

func viewApplication(app *models.MembershipApplication) applicationView {
	return applicationView{app, app.IsActiveMembership(time.Now())}
}

func (h *MembershipHandler) Get(c *gin.Context) {
	app, err := h.memberships.GetApplication(c.Request.Context(), c.Param("id"),
		middleware.UserID(c), middleware.IsStaff(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "application": viewApplication(app)})
}

func (h *MembershipHandler) ListMine(c *gin.Context) {
	apps, err := h.memberships.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load applications")
		return
	}
	views := make([]applicationView, 0, len(apps))
	for i := range apps {
		views = append(views, viewApplication(&apps[i]))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "applications": views})
}

type reviewRequest struct {
	Approve         bool   `json:"approve"`
	AdminNotes      string `json:"admin_notes"`
	RejectionReason string `json:"rejection_reason"`
}

// Review approves or rejects a pending application. Staff only.
func (h *MembershipHandler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.memberships.Review(c.Request.Context(), c.Param("id"), middleware.UserID(c),
		req.Approve, req.AdminNotes, req.RejectionReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
