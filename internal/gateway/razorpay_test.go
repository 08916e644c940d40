package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func sign(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "secret123", "")

	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"
	good := sign("secret123", orderID+"|"+paymentID)

	if !g.VerifySignature(orderID, paymentID, good) {
		t.Error("valid signature rejected")
	}
	if g.VerifySignature(orderID, paymentID, good[:len(good)-1]+"0") {
		t.Error("tampered signature accepted")
	}
	if g.VerifySignature(orderID, "pay_OTHER", good) {
		t.Error("signature accepted for a different payment id")
	}
	if g.VerifySignature(orderID, paymentID, "") {
		t.Error("empty signature accepted")
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "secret123", "whsecret")
	body := []byte(`{"event":"payment.captured"}`)

	if !g.VerifyWebhookSignature(body, sign("whsecret", string(body))) {
		t.Error("valid webhook signature rejected")
	}
	if g.VerifyWebhookSignature(body, sign("wrong", string(body))) {
		t.Error("wrong-secret webhook signature accepted")
	}

	noSecret := NewRazorpayGateway("rzp_test_key", "secret123", "")
	if noSecret.VerifyWebhookSignature(body, sign("whsecret", string(body))) {
		t.Error("webhook signature accepted with no secret configured")
	}
}

func TestCreateOrder(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "secret123" {
			t.Error("missing or wrong basic auth")
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_ABC123",
			"entity":   "order",
			"amount":   gotBody["amount"],
			"currency": "INR",
			"status":   "created",
		})
	}))
	defer srv.Close()

	g := NewRazorpayGateway("rzp_test_key", "secret123", "")
	g.SetBaseURL(srv.URL)

	order, err := g.CreateOrder(context.Background(), 49950, "INR", "PAY_ABC")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.OrderID != "order_ABC123" {
		t.Errorf("order id = %q", order.OrderID)
	}
	if gotBody["amount"].(float64) != 49950 {
		t.Errorf("wire amount = %v, want 49950 paise", gotBody["amount"])
	}
	if gotBody["payment_capture"].(float64) != 1 {
		t.Errorf("payment_capture = %v, want 1", gotBody["payment_capture"])
	}
	if gotBody["receipt"] != "PAY_ABC" {
		t.Errorf("receipt = %v", gotBody["receipt"])
	}
	if !order.Amount.Equal(decimal.RequireFromString("499.5")) {
		t.Errorf("order amount = %s", order.Amount)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":        "BAD_REQUEST_ERROR",
				"description": "amount must be at least INR 1.00",
			},
		})
	}))
	defer srv.Close()

	g := NewRazorpayGateway("rzp_test_key", "secret123", "")
	g.SetBaseURL(srv.URL)

	_, err := g.CreateOrder(context.Background(), 50, "INR", "PAY_X")
	if err == nil {
		t.Fatal("expected error from gateway")
	}
}
