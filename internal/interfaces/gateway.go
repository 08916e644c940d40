package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// GatewayOrder is an order opened at the payment gateway.
type GatewayOrder struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Raw      []byte
}

// PaymentGateway is the contract this service requires from the external
// payment processor.
type PaymentGateway interface {
	// CreateOrder opens a gateway order. The amount is integer minor units
	// (paise); callers convert via Payment.AmountInPaise.
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error)
	// VerifySignature reports whether a checkout callback signature is
	// authentic for the order/payment pair.
	VerifySignature(orderID, paymentID, signature string) bool
	// KeyID is the public key safe to hand to browser checkout.
	KeyID() string
}

// EventPublisher fans out lifecycle events to downstream collaborators
// (ledger/email/certificate renderer). Publish failures must never roll back
// a settled payment.
type EventPublisher interface {
	PaymentStateChanged(ctx context.Context, paymentID string, previous, current string) error
	CertificateRequested(ctx context.Context, donationID, certificateNumber string) error
}
