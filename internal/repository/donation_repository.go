package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shodhsrija/foundation-backend/internal/models"
)

type DonationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

const donationColumns = `donation_id, amount, currency, donor_name, donor_email, donor_phone,
	user_id, is_anonymous, status, wants_80g_certificate, pan, payment_id, created_at, completed_at`

func scanDonation(row interface{ Scan(...any) error }) (*models.Donation, error) {
	var d models.Donation
	var userID sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(&d.DonationID, &d.Amount, &d.Currency, &d.DonorName, &d.DonorEmail,
		&d.DonorPhone, &userID, &d.IsAnonymous, &d.Status, &d.Wants80G, &d.PAN,
		&d.PaymentID, &d.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		d.UserID = userID.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		d.CompletedAt = &t
	}
	return &d, nil
}

func (r *DonationRepository) Create(ctx context.Context, d *models.Donation) error {
	var userID any
	if d.UserID != "" {
		userID = d.UserID
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO donations (donation_id, amount, currency, donor_name, donor_email,
			donor_phone, user_id, is_anonymous, status, wants_80g_certificate, pan,
			payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, d.DonationID, d.Amount, d.Currency, d.DonorName, d.DonorEmail,
		d.DonorPhone, userID, d.IsAnonymous, d.Status, d.Wants80G, d.PAN,
		d.PaymentID, d.CreatedAt)
	return err
}

func (r *DonationRepository) GetByDonationID(ctx context.Context, donationID string) (*models.Donation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE donation_id = $1`, donationID)
	return scanDonation(row)
}

func (r *DonationRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE payment_id = $1`, paymentID)
	return scanDonation(row)
}

func (r *DonationRepository) MarkCompleted(ctx context.Context, donationID string, at time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE donations SET status = $1, completed_at = $2
		WHERE donation_id = $3 AND status = $4
	`, models.DonationCompleted, at, donationID, models.DonationPending)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *DonationRepository) MarkFailed(ctx context.Context, donationID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE donations SET status = $1
		WHERE donation_id = $2 AND status = $3
	`, models.DonationFailed, donationID, models.DonationPending)
	return err
}

func (r *DonationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Donation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+donationColumns+` FROM donations
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []models.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		donations = append(donations, *d)
	}
	return donations, rows.Err()
}

// IssueCertificate allocates the next number for the financial year and
// inserts the certificate in one transaction. The UNIQUE constraint on
// donation_id means a donation can never hold two certificates.
func (r *DonationRepository) IssueCertificate(ctx context.Context, donationID, financialYear string, issuedAt time.Time) (*models.DonationCertificate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx, "donation_certificate", financialYear)
	if err != nil {
		return nil, err
	}

	cert := &models.DonationCertificate{
		CertificateNumber: models.CertificateNumber(financialYear, seq),
		FinancialYear:     financialYear,
		DonationID:        donationID,
		IssuedAt:          issuedAt,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO donation_certificates (certificate_number, financial_year, donation_id, issued_at)
		VALUES ($1, $2, $3, $4)
	`, cert.CertificateNumber, cert.FinancialYear, cert.DonationID, cert.IssuedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cert, nil
}

func (r *DonationRepository) GetCertificate(ctx context.Context, donationID string) (*models.DonationCertificate, error) {
	var c models.DonationCertificate
	err := r.db.QueryRowContext(ctx, `
		SELECT certificate_number, financial_year, donation_id, issued_at
		FROM donation_certificates WHERE donation_id = $1
	`, donationID).Scan(&c.CertificateNumber, &c.FinancialYear, &c.DonationID, &c.IssuedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
