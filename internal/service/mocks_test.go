package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shodhsrija/foundation-backend/internal/interfaces"
	"github.com/shodhsrija/foundation-backend/internal/models"
)

var errMockRepo = errors.New("mock repository error")

type mockPaymentRepo struct {
	CreateFunc         func(ctx context.Context, p *models.Payment) error
	GetByPaymentIDFunc func(ctx context.Context, paymentID string) (*models.Payment, error)
	GetForUserFunc     func(ctx context.Context, paymentID, userID string) (*models.Payment, error)
	MarkCompletedFunc  func(ctx context.Context, paymentID, gatewayPaymentID, signature string, raw []byte, at time.Time) (bool, error)
	MarkFailedFunc     func(ctx context.Context, paymentID string) error

	Created      []*models.Payment
	FailedIDs    []string
	CompletedIDs []string
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	m.Created = append(m.Created, p)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPaymentRepo) GetByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	if m.GetByPaymentIDFunc != nil {
		return m.GetByPaymentIDFunc(ctx, paymentID)
	}
	return nil, sql.ErrNoRows
}

func (m *mockPaymentRepo) GetForUser(ctx context.Context, paymentID, userID string) (*models.Payment, error) {
	if m.GetForUserFunc != nil {
		return m.GetForUserFunc(ctx, paymentID, userID)
	}
	return nil, sql.ErrNoRows
}

func (m *mockPaymentRepo) MarkCompleted(ctx context.Context, paymentID, gatewayPaymentID, signature string, raw []byte, at time.Time) (bool, error) {
	m.CompletedIDs = append(m.CompletedIDs, paymentID)
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, paymentID, gatewayPaymentID, signature, raw, at)
	}
	return true, nil
}

func (m *mockPaymentRepo) MarkFailed(ctx context.Context, paymentID string) error {
	m.FailedIDs = append(m.FailedIDs, paymentID)
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, paymentID)
	}
	return nil
}

func (m *mockPaymentRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Payment, error) {
	return nil, nil
}

type mockMembershipRepo struct {
	GetTierFunc        func(ctx context.Context, id string) (*models.MembershipTier, error)
	GetApplicationFunc func(ctx context.Context, id string) (*models.MembershipApplication, error)
	ActivateFunc       func(ctx context.Context, id string, start, end time.Time) (bool, error)
	ReviewFunc         func(ctx context.Context, id, reviewerID string, to models.ApplicationStatus, notes, reason string, at time.Time) error

	CreatedApps []*models.MembershipApplication
	Activated   []string
}

func (m *mockMembershipRepo) ListTiers(ctx context.Context) ([]models.MembershipTier, error) {
	return nil, nil
}

func (m *mockMembershipRepo) GetTier(ctx context.Context, id string) (*models.MembershipTier, error) {
	if m.GetTierFunc != nil {
		return m.GetTierFunc(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (m *mockMembershipRepo) CreateApplication(ctx context.Context, app *models.MembershipApplication) error {
	m.CreatedApps = append(m.CreatedApps, app)
	return nil
}

func (m *mockMembershipRepo) GetApplication(ctx context.Context, id string) (*models.MembershipApplication, error) {
	if m.GetApplicationFunc != nil {
		return m.GetApplicationFunc(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (m *mockMembershipRepo) ListApplicationsByUser(ctx context.Context, userID string) ([]models.MembershipApplication, error) {
	return nil, nil
}

func (m *mockMembershipRepo) Review(ctx context.Context, id, reviewerID string, to models.ApplicationStatus, notes, reason string, at time.Time) error {
	if m.ReviewFunc != nil {
		return m.ReviewFunc(ctx, id, reviewerID, to, notes, reason, at)
	}
	return nil
}

func (m *mockMembershipRepo) Activate(ctx context.Context, id string, start, end time.Time) (bool, error) {
	m.Activated = append(m.Activated, id)
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, id, start, end)
	}
	return true, nil
}

type mockDonationRepo struct {
	GetByDonationIDFunc  func(ctx context.Context, donationID string) (*models.Donation, error)
	GetByPaymentIDFunc   func(ctx context.Context, paymentID string) (*models.Donation, error)
	MarkCompletedFunc    func(ctx context.Context, donationID string, at time.Time) (bool, error)
	IssueCertificateFunc func(ctx context.Context, donationID, fy string, at time.Time) (*models.DonationCertificate, error)

	Created      []*models.Donation
	CompletedIDs []string
	FailedIDs    []string
	Certificates []string
}

func (m *mockDonationRepo) Create(ctx context.Context, d *models.Donation) error {
	m.Created = append(m.Created, d)
	return nil
}

func (m *mockDonationRepo) GetByDonationID(ctx context.Context, donationID string) (*models.Donation, error) {
	if m.GetByDonationIDFunc != nil {
		return m.GetByDonationIDFunc(ctx, donationID)
	}
	return nil, sql.ErrNoRows
}

func (m *mockDonationRepo) GetByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	if m.GetByPaymentIDFunc != nil {
		return m.GetByPaymentIDFunc(ctx, paymentID)
	}
	return nil, sql.ErrNoRows
}

func (m *mockDonationRepo) MarkCompleted(ctx context.Context, donationID string, at time.Time) (bool, error) {
	m.CompletedIDs = append(m.CompletedIDs, donationID)
	if m.MarkCompletedFunc != nil {
		return m.MarkCompletedFunc(ctx, donationID, at)
	}
	return true, nil
}

func (m *mockDonationRepo) MarkFailed(ctx context.Context, donationID string) error {
	m.FailedIDs = append(m.FailedIDs, donationID)
	return nil
}

func (m *mockDonationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Donation, error) {
	return nil, nil
}

func (m *mockDonationRepo) IssueCertificate(ctx context.Context, donationID, fy string, at time.Time) (*models.DonationCertificate, error) {
	m.Certificates = append(m.Certificates, donationID)
	if m.IssueCertificateFunc != nil {
		return m.IssueCertificateFunc(ctx, donationID, fy, at)
	}
	return &models.DonationCertificate{
		CertificateNumber: models.CertificateNumber(fy, 1),
		FinancialYear:     fy,
		DonationID:        donationID,
		IssuedAt:          at,
	}, nil
}

func (m *mockDonationRepo) GetCertificate(ctx context.Context, donationID string) (*models.DonationCertificate, error) {
	return nil, sql.ErrNoRows
}

type mockGateway struct {
	CreateOrderFunc     func(ctx context.Context, amountPaise int64, currency, receipt string) (*interfaces.GatewayOrder, error)
	VerifySignatureFunc func(orderID, paymentID, signature string) bool

	OrderedPaise []int64
}

func (m *mockGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*interfaces.GatewayOrder, error) {
	m.OrderedPaise = append(m.OrderedPaise, amountPaise)
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amountPaise, currency, receipt)
	}
	return &interfaces.GatewayOrder{
		OrderID:  "order_TEST123",
		Amount:   decimal.NewFromInt(amountPaise).Div(decimal.NewFromInt(100)),
		Currency: currency,
		Raw:      []byte(`{"id":"order_TEST123"}`),
	}, nil
}

func (m *mockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if m.VerifySignatureFunc != nil {
		return m.VerifySignatureFunc(orderID, paymentID, signature)
	}
	return signature == "valid"
}

func (m *mockGateway) KeyID() string { return "rzp_test_key" }

type mockPublisher struct {
	StateChanges []string
	CertRequests []string
}

func (m *mockPublisher) PaymentStateChanged(ctx context.Context, paymentID, previous, current string) error {
	m.StateChanges = append(m.StateChanges, paymentID+":"+previous+"->"+current)
	return nil
}

func (m *mockPublisher) CertificateRequested(ctx context.Context, donationID, certificateNumber string) error {
	m.CertRequests = append(m.CertRequests, donationID+":"+certificateNumber)
	return nil
}
