package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/interfaces"
	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

var ErrDonationNotFound = errors.New("donation not found")

// DonationService records donations and ties each to a payment order. A
// donation never completes itself; that happens through payment verification.
type DonationService struct {
	donations interfaces.DonationRepository
	payments  *PaymentService
	now       func() time.Time
}

func NewDonationService(donations interfaces.DonationRepository, payments *PaymentService) *DonationService {
	return &DonationService{donations: donations, payments: payments, now: time.Now}
}

// DonateInput is the donor-supplied portion of a donation.
type DonateInput struct {
	Amount      decimal.Decimal
	DonorName   string
	DonorEmail  string
	DonorPhone  string
	IsAnonymous bool
	Wants80G    bool
	PAN         string
}

// DonateResult pairs the recorded donation with the checkout order the
// browser needs.
type DonateResult struct {
	Donation *models.Donation
	Order    *OrderResult
}

// Donate opens a payment order and records a pending donation against it.
// userID may be empty for anonymous guest donations.
func (s *DonationService) Donate(ctx context.Context, userID string, in DonateInput) (*DonateResult, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if in.Wants80G && in.PAN == "" {
		return nil, fmt.Errorf("%w: PAN is required for an 80G certificate", ErrValidation)
	}
	if in.Wants80G && in.DonorEmail == "" {
		return nil, fmt.Errorf("%w: email is required for an 80G certificate", ErrValidation)
	}

	order, err := s.payments.CreateOrder(ctx, userID, models.PaymentTypeDonation, in.Amount, "")
	if err != nil {
		return nil, err
	}

	donation := &models.Donation{
		DonationID:  models.NewDonationID(),
		Amount:      in.Amount,
		Currency:    "INR",
		DonorName:   in.DonorName,
		DonorEmail:  in.DonorEmail,
		DonorPhone:  in.DonorPhone,
		UserID:      userID,
		IsAnonymous: in.IsAnonymous,
		Status:      models.DonationPending,
		Wants80G:    in.Wants80G,
		PAN:         in.PAN,
		PaymentID:   order.PaymentID,
		CreatedAt:   s.now(),
	}
	if err := s.donations.Create(ctx, donation); err != nil {
		telemetry.Logger.Error("Failed to record donation",
			zap.String("payment_id", order.PaymentID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create donation")
	}

	telemetry.Logger.Info("Donation initiated",
		zap.String("donation_id", donation.DonationID),
		zap.String("payment_id", order.PaymentID),
		zap.String("amount", in.Amount.String()),
		zap.Bool("wants_80g", in.Wants80G),
	)
	return &DonateResult{Donation: donation, Order: order}, nil
}

// VerifyPayment settles a donation's checkout callback. Addressed by donation
// id so guest donors can complete payment without a session; callerID is empty
// for guests.
func (s *DonationService) VerifyPayment(ctx context.Context, callerID, donationID string, req VerifyRequest) (*VerifyResult, error) {
	return s.payments.VerifyDonation(ctx, callerID, donationID, req)
}

func (s *DonationService) Get(ctx context.Context, donationID string) (*models.Donation, error) {
	d, err := s.donations.GetByDonationID(ctx, donationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to load donation")
	}
	return d, nil
}

func (s *DonationService) ListMine(ctx context.Context, userID string, limit int) ([]models.Donation, error) {
	return s.donations.ListByUser(ctx, userID, limit)
}

// Certificate returns the 80G certificate for a completed donation, if issued.
func (s *DonationService) Certificate(ctx context.Context, donationID string) (*models.DonationCertificate, error) {
	cert, err := s.donations.GetCertificate(ctx, donationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to load certificate")
	}
	return cert, nil
}
