package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/middleware"
	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/service"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

type PaymentHandler struct {
	payments    *service.PaymentService
	memberships *service.MembershipService
}

func NewPaymentHandler(payments *service.PaymentService, memberships *service.MembershipService) *PaymentHandler {
	return &PaymentHandler{payments: payments, memberships: memberships}
}

type createOrderRequest struct {
	PaymentType   string          `json:"payment_type" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	ApplicationID string          `json:"membership_application_id"`
}

// CreateOrder opens a gateway order and records a pending payment. Donation
// orders take the client's amount. Membership orders deviate from that:
// membership_application_id is required, the amount field is ignored, and the
// charge is derived server-side from the application's tier and duration.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.Logger.Warn("Invalid order request", zap.Error(err))
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	paymentType, err := models.ParsePaymentType(req.PaymentType)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	amount := req.Amount
	if paymentType == models.PaymentTypeMembership {
		if req.ApplicationID == "" {
			fail(c, http.StatusBadRequest, "membership_application_id is required for membership payments")
			return
		}
		app, err := h.memberships.GetApplication(ctx, req.ApplicationID, userID, false)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if !app.Status.PreActivation() {
			fail(c, http.StatusBadRequest, "Application is not approved for payment")
			return
		}
		amount, err = h.memberships.PayableAmount(ctx, app)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	order, err := h.payments.CreateOrder(ctx, userID, paymentType, amount, req.ApplicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":           true,
		"payment_id":        order.PaymentID,
		"razorpay_order_id": order.RazorpayOrderID,
		"amount":            order.Amount,
		"currency":          order.Currency,
		"razorpay_key":      order.RazorpayKey,
	})
}

type verifyRequest struct {
	PaymentID         string `json:"payment_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// Verify authenticates a checkout callback and settles the payment.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.payments.Verify(c.Request.Context(), middleware.UserID(c), service.VerifyRequest{
		PaymentID:         req.PaymentID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if result.AlreadyProcessed {
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"payment_id": result.PaymentID,
			"message":    "Payment already processed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"payment_id": result.PaymentID,
		"message":    "Payment verified successfully",
	})
}

// ListMine returns the caller's payment history.
func (h *PaymentHandler) ListMine(c *gin.Context) {
	payments, err := h.payments.ListUserPayments(c.Request.Context(), middleware.UserID(c), 50)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load payments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

// fail writes the uniform error envelope.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrDonationNotFound),
		errors.Is(err, service.ErrIssueNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrVerificationFailed):
		fail(c, http.StatusBadRequest, "Payment verification failed")
	case errors.Is(err, service.ErrPaymentFailed):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSettingsExist):
		fail(c, http.StatusConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}
