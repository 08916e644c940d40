package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shodhsrija/foundation-backend/internal/models"
)

type MembershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) ListTiers(ctx context.Context) ([]models.MembershipTier, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, display_name, description, price_2_months, price_4_months,
			benefits, is_active, display_order
		FROM membership_tiers WHERE is_active = TRUE
		ORDER BY display_order, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []models.MembershipTier
	for rows.Next() {
		var t models.MembershipTier
		if err := rows.Scan(&t.ID, &t.Name, &t.DisplayName, &t.Description,
			&t.Price2Months, &t.Price4Months, &t.Benefits, &t.IsActive, &t.Order); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (r *MembershipRepository) GetTier(ctx context.Context, id string) (*models.MembershipTier, error) {
	var t models.MembershipTier
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, display_name, description, price_2_months, price_4_months,
			benefits, is_active, display_order
		FROM membership_tiers WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.DisplayName, &t.Description,
		&t.Price2Months, &t.Price4Months, &t.Benefits, &t.IsActive, &t.Order)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *MembershipRepository) CreateApplication(ctx context.Context, a *models.MembershipApplication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO membership_applications (id, user_id, tier_id, duration_months, status,
			full_name, phone, address, city, state, postal_code, motivation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, a.ID, a.UserID, a.TierID, a.DurationMonths, a.Status,
		a.FullName, a.Phone, a.Address, a.City, a.State, a.PostalCode, a.Motivation, a.CreatedAt)
	return err
}

const applicationColumns = `id, user_id, tier_id, duration_months, status, full_name, phone,
	address, city, state, postal_code, motivation, reviewed_by, reviewed_at, admin_notes,
	rejection_reason, approved_at, membership_start_date, membership_end_date, created_at`

func scanApplication(row interface{ Scan(...any) error }) (*models.MembershipApplication, error) {
	var a models.MembershipApplication
	var reviewedBy sql.NullString
	var reviewedAt, approvedAt, startDate, endDate sql.NullTime
	err := row.Scan(&a.ID, &a.UserID, &a.TierID, &a.DurationMonths, &a.Status,
		&a.FullName, &a.Phone, &a.Address, &a.City, &a.State, &a.PostalCode, &a.Motivation,
		&reviewedBy, &reviewedAt, &a.AdminNotes, &a.RejectionReason,
		&approvedAt, &startDate, &endDate, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if reviewedBy.Valid {
		a.ReviewedBy = reviewedBy.String
	}
	for dst, src := range map[**time.Time]sql.NullTime{
		&a.ReviewedAt: reviewedAt,
		&a.ApprovedAt: approvedAt,
		&a.StartDate:  startDate,
		&a.EndDate:    endDate,
	} {
		if src.Valid {
			t := src.Time
			*dst = &t
		}
	}
	return &a, nil
}

func (r *MembershipRepository) GetApplication(ctx context.Context, id string) (*models.MembershipApplication, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *MembershipRepository) ListApplicationsByUser(ctx context.Context, userID string) ([]models.MembershipApplication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.MembershipApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// Review moves a pending application to approved or rejected. The WHERE
// clause pins the current status so two staff reviews cannot overlap.
func (r *MembershipRepository) Review(ctx context.Context, id, reviewerID string, to models.ApplicationStatus, notes, rejectionReason string, at time.Time) error {
	var approvedAt any
	if to == models.ApplicationApproved {
		approvedAt = at
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE membership_applications
		SET status = $1, reviewed_by = $2, reviewed_at = $3, admin_notes = $4,
			rejection_reason = $5, approved_at = $6
		WHERE id = $7 AND status = $8
	`, to, reviewerID, at, notes, rejectionReason, approvedAt, id, models.ApplicationPending)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Activate sets the membership window exactly once. The status guard makes
// repeat activation from a re-verified payment a no-op.
func (r *MembershipRepository) Activate(ctx context.Context, id string, start, end time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE membership_applications
		SET status = $1, membership_start_date = $2, membership_end_date = $3
		WHERE id = $4 AND status IN ($5, $6)
	`, models.ApplicationActive, start, end, id,
		models.ApplicationApproved, models.ApplicationPaymentCompleted)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
