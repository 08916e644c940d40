package interfaces

import (
	"context"
	"time"

	"github.com/shodhsrija/foundation-backend/internal/models"
)

// PaymentRepository defines the contract for payment data access. Payments
// are append-and-update only; there is no delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
	// GetForUser looks a payment up by local id AND owner; a mismatch reads
	// as not found so callers cannot probe for foreign payment ids.
	GetForUser(ctx context.Context, paymentID, userID string) (*models.Payment, error)
	// MarkCompleted conditionally transitions to completed, recording the
	// gateway ids and signature. Returns false when the row was already in a
	// terminal settled state.
	MarkCompleted(ctx context.Context, paymentID, gatewayPaymentID, signature string, raw []byte, completedAt time.Time) (bool, error)
	// MarkFailed conditionally transitions to failed. A no-op on settled rows.
	MarkFailed(ctx context.Context, paymentID string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Payment, error)
}

// MembershipRepository covers tiers and applications.
type MembershipRepository interface {
	ListTiers(ctx context.Context) ([]models.MembershipTier, error)
	GetTier(ctx context.Context, id string) (*models.MembershipTier, error)
	CreateApplication(ctx context.Context, app *models.MembershipApplication) error
	GetApplication(ctx context.Context, id string) (*models.MembershipApplication, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]models.MembershipApplication, error)
	Review(ctx context.Context, id, reviewerID string, to models.ApplicationStatus, notes, rejectionReason string, at time.Time) error
	// Activate sets the membership window and moves the application to
	// active, guarded by the current status still being pre-activation.
	// Returns false if the application was not in a pre-activation state.
	Activate(ctx context.Context, id string, start, end time.Time) (bool, error)
}

// DonationRepository covers donations and their certificates.
type DonationRepository interface {
	Create(ctx context.Context, d *models.Donation) error
	GetByDonationID(ctx context.Context, donationID string) (*models.Donation, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error)
	// MarkCompleted conditionally completes the donation. Returns false when
	// it already left pending.
	MarkCompleted(ctx context.Context, donationID string, at time.Time) (bool, error)
	MarkFailed(ctx context.Context, donationID string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Donation, error)
	// IssueCertificate allocates the next certificate number for the
	// financial year and stores the certificate, atomically.
	IssueCertificate(ctx context.Context, donationID string, financialYear string, issuedAt time.Time) (*models.DonationCertificate, error)
	GetCertificate(ctx context.Context, donationID string) (*models.DonationCertificate, error)
}

// IssueRepository covers public issue reports.
type IssueRepository interface {
	ListCategories(ctx context.Context) ([]models.IssueCategory, error)
	// CreateIssue assigns the next yearly issue number from an atomic
	// counter and inserts the report.
	CreateIssue(ctx context.Context, issue *models.ReportedIssue) error
	GetIssue(ctx context.Context, id string) (*models.ReportedIssue, error)
	ListPublic(ctx context.Context, limit, offset int) ([]models.ReportedIssue, error)
	UpdateStatus(ctx context.Context, id string, from, to models.IssueStatus, notes string, at time.Time) (bool, error)
}

// SiteRepository covers the singleton settings and stats rows.
type SiteRepository interface {
	GetSettings(ctx context.Context) (*models.SiteSettings, error)
	// CreateSettings rejects creation when a settings row already exists.
	CreateSettings(ctx context.Context, s *models.SiteSettings) error
	UpdateSettings(ctx context.Context, s *models.SiteSettings) error
	GetStats(ctx context.Context) (*models.SiteStats, error)
	UpdateStats(ctx context.Context, s *models.SiteStats) error
}
