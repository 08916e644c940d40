package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/middleware"
	"github.com/shodhsrija/foundation-backend/internal/service"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

type DonationHandler struct {
	donations *service.DonationService
}

func NewDonationHandler(donations *service.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

type donateRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DonorName   string          `json:"donor_name"`
	DonorEmail  string          `json:"donor_email"`
	DonorPhone  string          `json:"donor_phone"`
	IsAnonymous bool            `json:"is_anonymous"`
	Wants80G    bool            `json:"wants_80g_certificate"`
	PAN         string          `json:"pan"`
}

// Donate records a donation and opens its checkout order. Works for guests;
// a valid token attributes the donation to the caller.
func (h *DonationHandler) Donate(c *gin.Context) {
	var req donateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.Logger.Warn("Invalid donation request", zap.Error(err))
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.donations.Donate(c.Request.Context(), middleware.UserID(c), service.DonateInput{
		Amount:      req.Amount,
		DonorName:   req.DonorName,
		DonorEmail:  req.DonorEmail,
		DonorPhone:  req.DonorPhone,
		IsAnonymous: req.IsAnonymous,
		Wants80G:    req.Wants80G,
		PAN:         req.PAN,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":           true,
		"donation_id":       result.Donation.DonationID,
		"payment_id":        result.Order.PaymentID,
		"razorpay_order_id": result.Order.RazorpayOrderID,
		"amount":            result.Order.Amount,
		"currency":          result.Order.Currency,
		"razorpay_key":      result.Order.RazorpayKey,
	})
}

type donationVerifyRequest struct {
	DonationID        string `json:"donation_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPayment settles a donation checkout. Reachable without a session so
// guest donors can finish paying; the donation id is the claim ticket.
func (h *DonationHandler) VerifyPayment(c *gin.Context) {
	var req donationVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.donations.VerifyPayment(c.Request.Context(), middleware.UserID(c), req.DonationID, service.VerifyRequest{
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{
		"success":     true,
		"donation_id": req.DonationID,
		"payment_id":  result.PaymentID,
		"status":      "completed",
	}
	if result.AlreadyProcessed {
		resp["message"] = "Payment already processed"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DonationHandler) Get(c *gin.Context) {
	d, err := h.donations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"donation":   d,
		"donor_name": d.DonorDisplayName(),
	})
}

func (h *DonationHandler) ListMine(c *gin.Context) {
	donations, err := h.donations.ListMine(c.Request.Context(), middleware.UserID(c), 50)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load donations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "donations": donations})
}

// Receipt returns the donation receipt, including the 80G certificate when
// one has been issued.
func (h *DonationHandler) Receipt(c *gin.Context) {
	d, err := h.donations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{
		"success":    true,
		"donation":   d,
		"donor_name": d.DonorDisplayName(),
	}
	if cert, err := h.donations.Certificate(c.Request.Context(), d.DonationID); err == nil {
		resp["certificate"] = cert
	}
	c.JSON(http.StatusOK, resp)
}
