package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

type RazorpayProvider struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	client := razorpay.NewClient(keyID, keySecret)

	return &RazorpayProvider{
		client:    client,
		keySecret: keySecret,
	}
}

func (r *RazorpayProvider) CreateOrder(ctx context.Context, request *OrderRequest) (*OrderResponse, error) {
	orderData := map[string]interface{}{
		"amount":   int(request.Amount * 100), // amount in paise
		"currency": request.Currency,
		"receipt":  request.Receipt,
		"notes":    request.Notes,
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &OrderResponse{
		OrderID:   order["id"].(string),
		Status:    order["status"].(string),
		Amount:    asFloat64(order["amount"]) / 100,
		Currency:  order["currency"].(string),
		CreatedAt: int64(asFloat64(order["created_at"])),
	}, nil
}

// VerifyPaymentSignature checks the Razorpay checkout signature:
// HMAC-SHA256(order_id + "|" + payment_id) keyed with the API secret.
func (r *RazorpayProvider) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(r.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// Razorpay's SDK decodes JSON numbers as float64 but documents integers.
func asFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
