package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shodhsrija/foundation-backend/internal/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `payment_id, razorpay_order_id, razorpay_payment_id, razorpay_signature,
	amount, currency, user_id, payment_type, status, membership_application_id,
	gateway_response, initiated_at, completed_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	var appID sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(&p.PaymentID, &p.RazorpayOrderID, &p.RazorpayPaymentID, &p.RazorpaySignature,
		&p.Amount, &p.Currency, &p.UserID, &p.PaymentType, &p.Status, &appID,
		&p.GatewayResponse, &p.InitiatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if appID.Valid {
		p.ApplicationID = appID.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}
	return &p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	var appID any
	if p.ApplicationID != "" {
		appID = p.ApplicationID
	}
	raw := p.GatewayResponse
	if len(raw) == 0 {
		raw = []byte(`{}`)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (payment_id, razorpay_order_id, amount, currency, user_id,
			payment_type, status, membership_application_id, gateway_response, initiated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.PaymentID, p.RazorpayOrderID, p.Amount, p.Currency, p.UserID,
		p.PaymentType, p.Status, appID, raw, p.InitiatedAt)
	return err
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID)
	return scanPayment(row)
}

func (r *PaymentRepository) GetForUser(ctx context.Context, paymentID, userID string) (*models.Payment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1 AND user_id = $2`,
		paymentID, userID)
	return scanPayment(row)
}

// MarkCompleted performs the forward-only transition to completed in one
// conditional UPDATE. Concurrent verifications race on the WHERE clause; the
// loser sees zero rows and reports already-settled.
func (r *PaymentRepository) MarkCompleted(ctx context.Context, paymentID, gatewayPaymentID, signature string, raw []byte, completedAt time.Time) (bool, error) {
	if len(raw) == 0 {
		raw = []byte(`{}`)
	}
	result, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET razorpay_payment_id = $1, razorpay_signature = $2, status = $3,
			gateway_response = $4, completed_at = $5
		WHERE payment_id = $6 AND status NOT IN ($7, $8, $9)
	`, gatewayPaymentID, signature, models.PaymentCompleted,
		raw, completedAt, paymentID,
		models.PaymentCompleted, models.PaymentFailed, models.PaymentRefunded)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, paymentID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1
		WHERE payment_id = $2 AND status NOT IN ($3, $4)
	`, models.PaymentFailed, paymentID, models.PaymentCompleted, models.PaymentRefunded)
	return err
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments
		 WHERE user_id = $1 ORDER BY initiated_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
