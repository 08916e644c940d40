package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shodhsrija/foundation-backend/internal/interfaces"
	"github.com/shodhsrija/foundation-backend/internal/models"
	"github.com/shodhsrija/foundation-backend/internal/telemetry"
)

var ErrApplicationNotFound = errors.New("membership application not found")

// MembershipService manages tiers and the application review flow. Activation
// itself belongs to the payment lifecycle.
type MembershipService struct {
	memberships interfaces.MembershipRepository
	now         func() time.Time
}

func NewMembershipService(memberships interfaces.MembershipRepository) *MembershipService {
	return &MembershipService{memberships: memberships, now: time.Now}
}

func (s *MembershipService) ListTiers(ctx context.Context) ([]models.MembershipTier, error) {
	return s.memberships.ListTiers(ctx)
}

// ApplyInput is the applicant-supplied portion of a membership application.
type ApplyInput struct {
	TierID         string
	DurationMonths int
	FullName       string
	Phone          string
	Address        string
	City           string
	State          string
	PostalCode     string
	Motivation     string
}

// Apply records a pending application. The payable amount is derived from the
// tier, never taken from the client.
func (s *MembershipService) Apply(ctx context.Context, userID string, in ApplyInput) (*models.MembershipApplication, decimal.Decimal, error) {
	if in.DurationMonths != 2 && in.DurationMonths != 4 {
		return nil, decimal.Decimal{}, fmt.Errorf("%w: duration must be 2 or 4 months", ErrValidation)
	}
	if in.FullName == "" {
		return nil, decimal.Decimal{}, fmt.Errorf("%w: full name is required", ErrValidation)
	}

	tier, err := s.memberships.GetTier(ctx, in.TierID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, decimal.Decimal{}, fmt.Errorf("%w: membership tier not found", ErrValidation)
		}
		return nil, decimal.Decimal{}, fmt.Errorf("failed to load tier")
	}
	if !tier.IsActive {
		return nil, decimal.Decimal{}, fmt.Errorf("%w: membership tier not available", ErrValidation)
	}

	app := &models.MembershipApplication{
		ID:             uuid.New().String(),
		UserID:         userID,
		TierID:         tier.ID,
		DurationMonths: in.DurationMonths,
		Status:         models.ApplicationPending,
		FullName:       in.FullName,
		Phone:          in.Phone,
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		PostalCode:     in.PostalCode,
		Motivation:     in.Motivation,
		CreatedAt:      s.now(),
	}
	if err := s.memberships.CreateApplication(ctx, app); err != nil {
		telemetry.Logger.Error("Failed to create membership application",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, decimal.Decimal{}, fmt.Errorf("failed to create application")
	}

	amount, err := app.TotalAmount(tier)
	if err != nil {
		return nil, decimal.Decimal{}, err
	}

	telemetry.Logger.Info("Membership application submitted",
		zap.String("application_id", app.ID),
		zap.String("tier", tier.Name),
		zap.Int("duration_months", in.DurationMonths),
	)
	return app, amount, nil
}

// GetApplication returns an application the caller may see: its owner, or any
// staff reviewer.
func (s *MembershipService) GetApplication(ctx context.Context, id, callerID string, isStaff bool) (*models.MembershipApplication, error) {
	app, err := s.memberships.GetApplication(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application")
	}
	if !isStaff && app.UserID != callerID {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

func (s *MembershipService) ListMine(ctx context.Context, userID string) ([]models.MembershipApplication, error) {
	return s.memberships.ListApplicationsByUser(ctx, userID)
}

// PayableAmount resolves what an approved application owes right now.
func (s *MembershipService) PayableAmount(ctx context.Context, app *models.MembershipApplication) (decimal.Decimal, error) {
	tier, err := s.memberships.GetTier(ctx, app.TierID)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to load tier")
	}
	return app.TotalAmount(tier)
}

// Review approves or rejects a pending application.
func (s *MembershipService) Review(ctx context.Context, id, reviewerID string, approve bool, notes, rejectionReason string) error {
	to := models.ApplicationApproved
	if !approve {
		to = models.ApplicationRejected
		if rejectionReason == "" {
			return fmt.Errorf("%w: rejection reason is required", ErrValidation)
		}
	}
	err := s.memberships.Review(ctx, id, reviewerID, to, notes, rejectionReason, s.now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrApplicationNotFound
		}
		return fmt.Errorf("failed to review application")
	}
	telemetry.Logger.Info("Membership application reviewed",
		zap.String("application_id", id),
		zap.String("reviewed_by", reviewerID),
		zap.String("status", string(to)),
	)
	return nil
}
