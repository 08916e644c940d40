package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
	DonationRefunded  DonationStatus = "refunded"
)

var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending:   {DonationCompleted, DonationFailed},
	DonationCompleted: {DonationRefunded},
}

func (s DonationStatus) CanTransition(to DonationStatus) bool {
	for _, next := range donationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Donation is a one-off contribution. It observes its Payment; it never
// self-reports completion.
type Donation struct {
	DonationID  string          `json:"donation_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	DonorName   string          `json:"donor_name,omitempty"`
	DonorEmail  string          `json:"donor_email,omitempty"`
	DonorPhone  string          `json:"donor_phone,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	IsAnonymous bool            `json:"is_anonymous"`
	Status      DonationStatus  `json:"status"`
	Wants80G    bool            `json:"wants_80g_certificate"`
	PAN         string          `json:"pan,omitempty"`
	PaymentID   string          `json:"payment_id"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

func NewDonationID() string {
	return "DON_" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// DonorDisplayName is derived on read; anonymous donors are never named.
func (d *Donation) DonorDisplayName() string {
	if d.IsAnonymous {
		return "Anonymous"
	}
	if d.DonorName != "" {
		return d.DonorName
	}
	return "Well-wisher"
}

// DonationCertificate is an 80G tax-exemption certificate, numbered
// sequentially within an Indian financial year.
type DonationCertificate struct {
	CertificateNumber string    `json:"certificate_number"`
	FinancialYear     string    `json:"financial_year"`
	DonationID        string    `json:"donation_id"`
	IssuedAt          time.Time `json:"issued_at"`
}

// FinancialYear returns the Indian financial year (April to March) that
// contains t, formatted like "2026-27".
func FinancialYear(t time.Time) string {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// CertificateNumber formats an 80G certificate reference for a financial year
// and sequence number.
func CertificateNumber(financialYear string, seq int64) string {
	return fmt.Sprintf("80G/%s/%04d", financialYear, seq)
}
