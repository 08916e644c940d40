package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/shodhsrija/foundation-backend/internal/interfaces"
)

const defaultAPIBase = "https://api.razorpay.com/v1"

// RazorpayGateway talks to the Razorpay orders API and verifies checkout
// signatures. The key secret never leaves this package.
type RazorpayGateway struct {
	keyID         string
	keySecret     string
	webhookSecret string
	client        *resty.Client
}

type orderResponse struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func NewRazorpayGateway(keyID, keySecret, webhookSecret string) *RazorpayGateway {
	client := resty.New().
		SetBaseURL(defaultAPIBase).
		SetTimeout(10*time.Second).
		SetBasicAuth(keyID, keySecret)

	return &RazorpayGateway{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		client:        client,
	}
}

// SetBaseURL points the client at a different API host. Used by tests.
func (g *RazorpayGateway) SetBaseURL(url string) {
	g.client.SetBaseURL(url)
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder opens a gateway order. Razorpay takes the amount already
// converted to integer paise.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*interfaces.GatewayOrder, error) {
	body := map[string]any{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	var order orderResponse
	var errResp apiError

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&order).
		SetError(&errResp).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("could not reach payment gateway: %w", err)
	}
	if resp.IsError() {
		if errResp.Error.Description != "" {
			return nil, fmt.Errorf("razorpay order creation failed: %s", errResp.Error.Description)
		}
		return nil, fmt.Errorf("razorpay order creation failed: status %s", resp.Status())
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay returned no order id")
	}

	return &interfaces.GatewayOrder{
		OrderID:  order.ID,
		Amount:   decimal.NewFromInt(order.Amount).Div(decimal.NewFromInt(100)),
		Currency: order.Currency,
		Raw:      resp.Body(),
	}, nil
}

// VerifySignature checks a checkout callback: the expected signature is
// HMAC-SHA256 over "order_id|payment_id" keyed by the key secret. The compare
// is constant time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header over a raw
// webhook body. Returns false when no webhook secret is configured.
func (g *RazorpayGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	if g.webhookSecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
