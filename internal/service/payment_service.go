package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/interfaces"
	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

var (
	// ErrPaymentNotFound covers both a missing payment and one owned by a
	// different user; callers must not be able to tell the two apart.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrVerificationFailed is the expected, retryable signature mismatch.
	ErrVerificationFailed = errors.New("payment verification failed")

	// ErrPaymentFailed marks a verification attempt against a payment that
	// already settled as failed. The attempt is dead; the client must start
	// a new order.
	ErrPaymentFailed = errors.New("payment already failed, create a new order")

	// ErrValidation marks client input errors.
	ErrValidation = errors.New("validation error")
)

// PaymentService runs the payment lifecycle: order initiation, signature
// verification, status transition and downstream activation.
type PaymentService struct {
	payments    interfaces.PaymentRepository
	memberships interfaces.MembershipRepository
	donations   interfaces.DonationRepository
	gateway     interfaces.PaymentGateway
	publisher   interfaces.EventPublisher
	redisClient *redis.Client
	now         func() time.Time
}

func NewPaymentService(
	payments interfaces.PaymentRepository,
	memberships interfaces.MembershipRepository,
	donations interfaces.DonationRepository,
	gw interfaces.PaymentGateway,
	publisher interfaces.EventPublisher,
	redisClient *redis.Client,
) *PaymentService {
	return &PaymentService{
		payments:    payments,
		memberships: memberships,
		donations:   donations,
		gateway:     gw,
		publisher:   publisher,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// OrderResult is returned to the browser to open checkout. It carries the
// gateway's public key, never the secret.
type OrderResult struct {
	PaymentID       string          `json:"payment_id"`
	RazorpayOrderID string          `json:"razorpay_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	RazorpayKey     string          `json:"razorpay_key"`
}

// CreateOrder opens a gateway order and records a pending Payment. Each call
// creates an independent attempt; retries after an abandoned checkout simply
// call again.
func (s *PaymentService) CreateOrder(ctx context.Context, userID string, paymentType models.PaymentType, amount decimal.Decimal, applicationID string) (*OrderResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if applicationID != "" {
		app, err := s.memberships.GetApplication(ctx, applicationID)
		if err != nil {
			return nil, fmt.Errorf("%w: membership application not found", ErrValidation)
		}
		if app.UserID != userID {
			return nil, fmt.Errorf("%w: membership application not found", ErrValidation)
		}
	}

	paymentID := models.NewPaymentID()
	payment := &models.Payment{
		PaymentID:     paymentID,
		Amount:        amount,
		Currency:      "INR",
		UserID:        userID,
		PaymentType:   paymentType,
		Status:        models.PaymentPending,
		ApplicationID: applicationID,
		InitiatedAt:   s.now(),
	}

	order, err := s.gateway.CreateOrder(ctx, payment.AmountInPaise(), "INR", paymentID)
	if err != nil {
		telemetry.Logger.Error("Gateway order creation failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	payment.RazorpayOrderID = order.OrderID
	payment.GatewayResponse = order.Raw

	if err := s.payments.Create(ctx, payment); err != nil {
		telemetry.Logger.Error("Failed to save payment",
			zap.String("payment_id", paymentID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create payment")
	}

	telemetry.OrdersCreated.WithLabelValues(string(paymentType)).Inc()
	telemetry.Logger.Info("Payment order created",
		zap.String("payment_id", paymentID),
		zap.String("razorpay_order_id", order.OrderID),
		zap.String("user_id", userID),
		zap.String("amount", amount.String()),
	)

	return &OrderResult{
		PaymentID:       paymentID,
		RazorpayOrderID: order.OrderID,
		Amount:          amount,
		Currency:        "INR",
		RazorpayKey:     s.gateway.KeyID(),
	}, nil
}

// VerifyRequest carries the checkout callback fields the client returns from
// the gateway.
type VerifyRequest struct {
	PaymentID         string
	RazorpayPaymentID string
	RazorpayOrderID   string
	RazorpaySignature string
}

// VerifyResult reports the outcome of a verification attempt.
type VerifyResult struct {
	PaymentID        string
	AlreadyProcessed bool
}

// Verify authenticates a payment-completion claim and, on first success,
// transitions the Payment to completed and activates the owning membership
// application or donation. Re-verifying a completed payment is benign.
func (s *PaymentService) Verify(ctx context.Context, userID string, req VerifyRequest) (*VerifyResult, error) {
	payment, err := s.payments.GetForUser(ctx, req.PaymentID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			telemetry.VerificationResults.WithLabelValues("not_found").Inc()
			return nil, ErrPaymentNotFound
		}
		telemetry.VerificationResults.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load payment")
	}
	return s.settle(ctx, payment, req)
}

// VerifyDonation settles the payment behind a donation, addressed by donation
// id instead of a session so guest donors can complete checkout. A donation
// attributed to a user is still only settleable by that user.
func (s *PaymentService) VerifyDonation(ctx context.Context, callerID, donationID string, req VerifyRequest) (*VerifyResult, error) {
	donation, err := s.donations.GetByDonationID(ctx, donationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			telemetry.VerificationResults.WithLabelValues("not_found").Inc()
			return nil, ErrDonationNotFound
		}
		telemetry.VerificationResults.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load donation")
	}
	if donation.UserID != "" && donation.UserID != callerID {
		telemetry.VerificationResults.WithLabelValues("not_found").Inc()
		return nil, ErrDonationNotFound
	}

	payment, err := s.payments.GetByPaymentID(ctx, donation.PaymentID)
	if err != nil {
		telemetry.VerificationResults.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load payment")
	}
	req.PaymentID = payment.PaymentID
	return s.settle(ctx, payment, req)
}

// settle runs the signature check and conditional completion for an already
// authorised payment, then cascades activation.
func (s *PaymentService) settle(ctx context.Context, payment *models.Payment, req VerifyRequest) (*VerifyResult, error) {
	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		// Expected client condition: record the failure, leave the door
		// open for a fresh order.
		if err := s.payments.MarkFailed(ctx, payment.PaymentID); err != nil {
			telemetry.Logger.Error("Failed to record verification failure",
				zap.String("payment_id", payment.PaymentID),
				zap.Error(err),
			)
		}
		s.failLinkedRecords(ctx, payment)
		telemetry.VerificationResults.WithLabelValues("failed").Inc()
		telemetry.Logger.Warn("Payment signature verification failed",
			zap.String("payment_id", payment.PaymentID),
			zap.String("razorpay_order_id", req.RazorpayOrderID),
		)
		return nil, ErrVerificationFailed
	}

	// Guard against a double-submitted callback racing itself. The
	// conditional UPDATE below is the real protection; the lock just keeps
	// the activation cascade single-flight.
	if unlock := s.lock(ctx, payment.PaymentID); unlock != nil {
		defer unlock()
	}

	completedAt := s.now()
	transitioned, err := s.payments.MarkCompleted(ctx, payment.PaymentID,
		req.RazorpayPaymentID, req.RazorpaySignature, payment.GatewayResponse, completedAt)
	if err != nil {
		telemetry.VerificationResults.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to update payment")
	}
	if !transitioned {
		// Settled by an earlier call. A prior completion is benign; a prior
		// failure means this attempt is dead and the client needs a new order.
		current, err := s.payments.GetByPaymentID(ctx, payment.PaymentID)
		if err == nil && current.Status == models.PaymentFailed {
			telemetry.VerificationResults.WithLabelValues("already_failed").Inc()
			return nil, ErrPaymentFailed
		}
		telemetry.VerificationResults.WithLabelValues("already_completed").Inc()
		return &VerifyResult{PaymentID: payment.PaymentID, AlreadyProcessed: true}, nil
	}

	telemetry.VerificationResults.WithLabelValues("completed").Inc()
	telemetry.Logger.Info("Payment completed",
		zap.String("payment_id", payment.PaymentID),
		zap.String("razorpay_payment_id", req.RazorpayPaymentID),
	)

	s.activate(ctx, payment, completedAt)

	if s.publisher != nil {
		s.publisher.PaymentStateChanged(ctx, payment.PaymentID,
			string(models.PaymentPending), string(models.PaymentCompleted))
	}

	return &VerifyResult{PaymentID: payment.PaymentID}, nil
}

// activate cascades a completed payment to its owning record. Activation is
// guarded by that record's own pre-activation status, so a replayed
// completion can never extend a window or re-issue a certificate.
func (s *PaymentService) activate(ctx context.Context, payment *models.Payment, completedAt time.Time) {
	switch payment.PaymentType {
	case models.PaymentTypeMembership:
		if payment.ApplicationID == "" {
			return
		}
		app, err := s.memberships.GetApplication(ctx, payment.ApplicationID)
		if err != nil {
			telemetry.Logger.Error("Failed to load application for activation",
				zap.String("payment_id", payment.PaymentID),
				zap.String("application_id", payment.ApplicationID),
				zap.Error(err),
			)
			return
		}
		start, end := app.MembershipWindow(completedAt)
		activated, err := s.memberships.Activate(ctx, app.ID, start, end)
		if err != nil {
			telemetry.Logger.Error("Failed to activate membership",
				zap.String("application_id", app.ID),
				zap.Error(err),
			)
			return
		}
		if activated {
			telemetry.Logger.Info("Membership activated",
				zap.String("application_id", app.ID),
				zap.Time("membership_end_date", end),
			)
		}

	case models.PaymentTypeDonation:
		donation, err := s.donations.GetByPaymentID(ctx, payment.PaymentID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				telemetry.Logger.Error("Failed to load donation for activation",
					zap.String("payment_id", payment.PaymentID),
					zap.Error(err),
				)
			}
			return
		}
		completed, err := s.donations.MarkCompleted(ctx, donation.DonationID, completedAt)
		if err != nil {
			telemetry.Logger.Error("Failed to complete donation",
				zap.String("donation_id", donation.DonationID),
				zap.Error(err),
			)
			return
		}
		if !completed {
			return
		}
		telemetry.DonationsCompleted.Inc()

		if donation.Wants80G {
			fy := models.FinancialYear(completedAt)
			cert, err := s.donations.IssueCertificate(ctx, donation.DonationID, fy, completedAt)
			if err != nil {
				telemetry.Logger.Error("Failed to issue donation certificate",
					zap.String("donation_id", donation.DonationID),
					zap.Error(err),
				)
				return
			}
			if s.publisher != nil {
				s.publisher.CertificateRequested(ctx, donation.DonationID, cert.CertificateNumber)
			}
		}
	}
}

// failLinkedRecords mirrors a signature failure onto a pending donation so
// its status tracks the payment's.
func (s *PaymentService) failLinkedRecords(ctx context.Context, payment *models.Payment) {
	if payment.PaymentType != models.PaymentTypeDonation {
		return
	}
	donation, err := s.donations.GetByPaymentID(ctx, payment.PaymentID)
	if err != nil {
		return
	}
	if err := s.donations.MarkFailed(ctx, donation.DonationID); err != nil {
		telemetry.Logger.Error("Failed to mark donation failed",
			zap.String("donation_id", donation.DonationID),
			zap.Error(err),
		)
	}
}

// lock takes a short Redis lock per payment. Returns nil when Redis is not
// configured or unavailable; the conditional UPDATE still keeps the
// transition safe.
func (s *PaymentService) lock(ctx context.Context, paymentID string) func() {
	if s.redisClient == nil {
		return nil
	}
	key := "payment_verify_lock:" + paymentID
	ok, err := s.redisClient.SetNX(ctx, key, "1", 30*time.Second).Result()
	if err != nil || !ok {
		return nil
	}
	return func() { s.redisClient.Del(ctx, key) }
}

// ListUserPayments returns the caller's payment history.
func (s *PaymentService) ListUserPayments(ctx context.Context, userID string, limit int) ([]models.Payment, error) {
	return s.payments.ListByUser(ctx, userID, limit)
}
