package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

type PaymentType string

const (
	PaymentTypeMembership PaymentType = "membership"
	PaymentTypeDonation   PaymentType = "donation"
)

// paymentTransitions is the forward-only state machine. A status absent from
// the map is terminal except for completed -> refunded.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:    {PaymentProcessing, PaymentCompleted, PaymentFailed},
	PaymentProcessing: {PaymentCompleted, PaymentFailed},
	PaymentCompleted:  {PaymentRefunded},
}

// CanTransition reports whether a payment may move from one status to another.
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, next := range paymentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether money movement is settled for this status.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentCompleted || s == PaymentFailed || s == PaymentRefunded
}

func ParsePaymentType(v string) (PaymentType, error) {
	switch PaymentType(v) {
	case PaymentTypeMembership, PaymentTypeDonation:
		return PaymentType(v), nil
	}
	return "", fmt.Errorf("invalid payment type %q", v)
}

// Payment is the single source of truth for whether money moved. Rows are
// never deleted; status only moves forward.
type Payment struct {
	PaymentID         string          `json:"payment_id"`
	RazorpayOrderID   string          `json:"razorpay_order_id"`
	RazorpayPaymentID string          `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string          `json:"-"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	UserID            string          `json:"user_id"`
	PaymentType       PaymentType     `json:"payment_type"`
	Status            PaymentStatus   `json:"status"`
	ApplicationID     string          `json:"membership_application_id,omitempty"`
	GatewayResponse   json.RawMessage `json:"-"`
	InitiatedAt       time.Time       `json:"initiated_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

// NewPaymentID returns a fresh human-inspectable payment reference.
func NewPaymentID() string {
	return "PAY_" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// AmountInPaise converts the major-unit amount to Razorpay's integer minor
// units, truncating sub-paise fractions.
func (p *Payment) AmountInPaise() int64 {
	return p.Amount.Mul(decimal.NewFromInt(100)).IntPart()
}
