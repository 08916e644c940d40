package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	ApplicationPending          ApplicationStatus = "pending"
	ApplicationApproved         ApplicationStatus = "approved"
	ApplicationPaymentCompleted ApplicationStatus = "payment_completed"
	ApplicationActive           ApplicationStatus = "active"
	ApplicationRejected         ApplicationStatus = "rejected"
	ApplicationExpired          ApplicationStatus = "expired"
	ApplicationSuspended        ApplicationStatus = "suspended"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:          {ApplicationApproved, ApplicationRejected},
	ApplicationApproved:         {ApplicationPaymentCompleted, ApplicationActive, ApplicationRejected},
	ApplicationPaymentCompleted: {ApplicationActive},
	ApplicationActive:           {ApplicationExpired, ApplicationSuspended},
	ApplicationSuspended:        {ApplicationActive, ApplicationExpired},
}

func (s ApplicationStatus) CanTransition(to ApplicationStatus) bool {
	for _, next := range applicationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// PreActivation reports whether a successful payment may still activate the
// application. Guards the activation step against double-application.
func (s ApplicationStatus) PreActivation() bool {
	return s == ApplicationApproved || s == ApplicationPaymentCompleted
}

// MembershipTier defines pricing for the 2 and 4 month durations.
type MembershipTier struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	DisplayName  string          `json:"display_name"`
	Description  string          `json:"description"`
	Price2Months decimal.Decimal `json:"price_2_months"`
	Price4Months decimal.Decimal `json:"price_4_months"`
	Benefits     json.RawMessage `json:"benefits,omitempty"`
	IsActive     bool            `json:"is_active"`
	Order        int             `json:"order"`
}

// PriceFor returns the tier price for a 2 or 4 month duration.
func (t *MembershipTier) PriceFor(durationMonths int) (decimal.Decimal, error) {
	switch durationMonths {
	case 2:
		return t.Price2Months, nil
	case 4:
		return t.Price4Months, nil
	}
	return decimal.Decimal{}, fmt.Errorf("invalid membership duration %d", durationMonths)
}

func (t *MembershipTier) IsFree() bool {
	return t.Price2Months.IsZero() && t.Price4Months.IsZero()
}

// MembershipApplication is a request to join at a tier for a duration. The
// total amount is never stored; it is derived from the tier at read time.
type MembershipApplication struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	TierID          string            `json:"tier_id"`
	DurationMonths  int               `json:"duration_months"`
	Status          ApplicationStatus `json:"status"`
	FullName        string            `json:"full_name"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	City            string            `json:"city"`
	State           string            `json:"state"`
	PostalCode      string            `json:"postal_code"`
	Motivation      string            `json:"motivation"`
	ReviewedBy      string            `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	AdminNotes      string            `json:"-"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time        `json:"approved_at,omitempty"`
	StartDate       *time.Time        `json:"membership_start_date,omitempty"`
	EndDate         *time.Time        `json:"membership_end_date,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// TotalAmount derives the payable amount from the tier's current pricing.
func (a *MembershipApplication) TotalAmount(tier *MembershipTier) (decimal.Decimal, error) {
	return tier.PriceFor(a.DurationMonths)
}

// MembershipWindow computes the validity window from the payment completion
// time: start + 2 or 4 calendar months.
func (a *MembershipApplication) MembershipWindow(completedAt time.Time) (time.Time, time.Time) {
	return completedAt, completedAt.AddDate(0, a.DurationMonths, 0)
}

// IsActiveMembership is computed, not stored: expiry needs no scheduled job.
func (a *MembershipApplication) IsActiveMembership(now time.Time) bool {
	return a.Status == ApplicationActive &&
		a.StartDate != nil && a.EndDate != nil &&
		!now.Before(*a.StartDate) && !now.After(*a.EndDate)
}
