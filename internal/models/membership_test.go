package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestApplicationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{ApplicationPending, ApplicationApproved, true},
		{ApplicationPending, ApplicationRejected, true},
		{ApplicationPending, ApplicationActive, false},
		{ApplicationApproved, ApplicationActive, true},
		{ApplicationPaymentCompleted, ApplicationActive, true},
		{ApplicationActive, ApplicationExpired, true},
		{ApplicationActive, ApplicationSuspended, true},
		{ApplicationSuspended, ApplicationActive, true},
		{ApplicationRejected, ApplicationApproved, false},
		{ApplicationExpired, ApplicationActive, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPreActivation(t *testing.T) {
	if !ApplicationApproved.PreActivation() || !ApplicationPaymentCompleted.PreActivation() {
		t.Error("approved and payment_completed should allow activation")
	}
	for _, s := range []ApplicationStatus{ApplicationPending, ApplicationActive, ApplicationRejected, ApplicationExpired} {
		if s.PreActivation() {
			t.Errorf("%s should not allow activation", s)
		}
	}
}

func TestTierPriceFor(t *testing.T) {
	tier := MembershipTier{
		Price2Months: decimal.RequireFromString("500"),
		Price4Months: decimal.RequireFromString("900"),
	}

	p2, err := tier.PriceFor(2)
	if err != nil || !p2.Equal(decimal.RequireFromString("500")) {
		t.Errorf("PriceFor(2) = %v, %v", p2, err)
	}
	p4, err := tier.PriceFor(4)
	if err != nil || !p4.Equal(decimal.RequireFromString("900")) {
		t.Errorf("PriceFor(4) = %v, %v", p4, err)
	}
	if _, err := tier.PriceFor(3); err == nil {
		t.Error("expected error for 3 month duration")
	}
}

func TestMembershipWindow(t *testing.T) {
	completed := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

	app := MembershipApplication{DurationMonths: 2}
	start, end := app.MembershipWindow(completed)
	if !start.Equal(completed) {
		t.Errorf("start = %v, want %v", start, completed)
	}
	if want := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("2 month end = %v, want %v", end, want)
	}

	app.DurationMonths = 4
	_, end = app.MembershipWindow(completed)
	if want := time.Date(2026, time.May, 15, 10, 30, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("4 month end = %v, want %v", end, want)
	}
}

func TestIsActiveMembership(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 2, 0)
	app := MembershipApplication{
		Status:    ApplicationActive,
		StartDate: &start,
		EndDate:   &end,
	}

	if !app.IsActiveMembership(start.AddDate(0, 1, 0)) {
		t.Error("mid-window membership should be active")
	}
	if app.IsActiveMembership(end.AddDate(0, 0, 1)) {
		t.Error("expired window should not be active")
	}
	if app.IsActiveMembership(start.AddDate(0, 0, -1)) {
		t.Error("pre-window membership should not be active")
	}

	app.Status = ApplicationSuspended
	if app.IsActiveMembership(start.AddDate(0, 1, 0)) {
		t.Error("suspended membership should not be active")
	}
}
