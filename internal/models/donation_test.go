package models

import (
	"testing"
	"time"
)

func TestFinancialYear(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), "2026-27"},
		{time.Date(2026, time.March, 31, 23, 59, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC), "2026-27"},
		{time.Date(2027, time.January, 10, 0, 0, 0, 0, time.UTC), "2026-27"},
		{time.Date(2099, time.December, 1, 0, 0, 0, 0, time.UTC), "2099-00"},
	}
	for _, tc := range cases {
		if got := FinancialYear(tc.date); got != tc.want {
			t.Errorf("FinancialYear(%s) = %q, want %q", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestCertificateNumber(t *testing.T) {
	if got := CertificateNumber("2026-27", 7); got != "80G/2026-27/0007" {
		t.Errorf("CertificateNumber = %q", got)
	}
	if got := CertificateNumber("2026-27", 12345); got != "80G/2026-27/12345" {
		t.Errorf("CertificateNumber wide seq = %q", got)
	}
}

func TestDonorDisplayName(t *testing.T) {
	d := Donation{DonorName: "Asha Rao", IsAnonymous: true}
	if got := d.DonorDisplayName(); got != "Anonymous" {
		t.Errorf("anonymous donor displayed as %q", got)
	}

	d.IsAnonymous = false
	if got := d.DonorDisplayName(); got != "Asha Rao" {
		t.Errorf("named donor displayed as %q", got)
	}

	d.DonorName = ""
	if got := d.DonorDisplayName(); got != "Well-wisher" {
		t.Errorf("unnamed donor displayed as %q", got)
	}
}

func TestDonationStatusTransitions(t *testing.T) {
	if !DonationPending.CanTransition(DonationCompleted) {
		t.Error("pending -> completed should be allowed")
	}
	if !DonationPending.CanTransition(DonationFailed) {
		t.Error("pending -> failed should be allowed")
	}
	if DonationCompleted.CanTransition(DonationPending) {
		t.Error("completed -> pending should be rejected")
	}
	if DonationFailed.CanTransition(DonationCompleted) {
		t.Error("failed -> completed should be rejected")
	}
}
