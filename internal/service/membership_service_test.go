package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shodhsrija/foundation-backend/internal/models"
)

func testTier() *models.MembershipTier {
	return &models.MembershipTier{
		ID:           "tier-1",
		Name:         "supporter",
		Price2Months: decimal.RequireFromString("500"),
		Price4Months: decimal.RequireFromString("900"),
		IsActive:     true,
	}
}

func TestApplyDerivesAmountFromTier(t *testing.T) {
	repo := &mockMembershipRepo{
		GetTierFunc: func(ctx context.Context, id string) (*models.MembershipTier, error) {
			return testTier(), nil
		},
	}
	svc := NewMembershipService(repo)

	app, amount, err := svc.Apply(context.Background(), "user-1", ApplyInput{
		TierID:         "tier-1",
		DurationMonths: 4,
		FullName:       "Asha Rao",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("new application status = %s", app.Status)
	}
	if !amount.Equal(decimal.RequireFromString("900")) {
		t.Errorf("derived amount = %s, want 900", amount)
	}
	if len(repo.CreatedApps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(repo.CreatedApps))
	}
}

func TestApplyRejectsBadDuration(t *testing.T) {
	svc := NewMembershipService(&mockMembershipRepo{})
	for _, months := range []int{0, 1, 3, 6, 12} {
		_, _, err := svc.Apply(context.Background(), "user-1", ApplyInput{
			TierID:         "tier-1",
			DurationMonths: months,
			FullName:       "Asha Rao",
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("duration %d: err = %v, want validation error", months, err)
		}
	}
}

func TestApplyRejectsInactiveTier(t *testing.T) {
	repo := &mockMembershipRepo{
		GetTierFunc: func(ctx context.Context, id string) (*models.MembershipTier, error) {
			tier := testTier()
			tier.IsActive = false
			return tier, nil
		},
	}
	svc := NewMembershipService(repo)

	_, _, err := svc.Apply(context.Background(), "user-1", ApplyInput{
		TierID:         "tier-1",
		DurationMonths: 2,
		FullName:       "Asha Rao",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestGetApplicationHidesForeignApplications(t *testing.T) {
	repo := &mockMembershipRepo{
		GetApplicationFunc: func(ctx context.Context, id string) (*models.MembershipApplication, error) {
			return &models.MembershipApplication{ID: id, UserID: "owner"}, nil
		},
	}
	svc := NewMembershipService(repo)

	if _, err := svc.GetApplication(context.Background(), "app-1", "owner", false); err != nil {
		t.Errorf("owner should see their application: %v", err)
	}
	if _, err := svc.GetApplication(context.Background(), "app-1", "intruder", false); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("foreign caller err = %v, want not found", err)
	}
	if _, err := svc.GetApplication(context.Background(), "app-1", "reviewer", true); err != nil {
		t.Errorf("staff should see any application: %v", err)
	}
}

func TestReviewRequiresRejectionReason(t *testing.T) {
	svc := NewMembershipService(&mockMembershipRepo{})
	err := svc.Review(context.Background(), "app-1", "staff-1", false, "", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}
