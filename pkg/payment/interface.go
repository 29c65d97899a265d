package payment

import "context"

// PaymentProvider is the gateway adapter. The booking core records gateway
// confirmations as given; order creation and signature verification happen at
// this boundary, not inside the state machine.
type PaymentProvider interface {
	CreateOrder(ctx context.Context, request *OrderRequest) (*OrderResponse, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

type OrderRequest struct {
	Amount   float64                `json:"amount"`
	Currency string                 `json:"currency"`
	Receipt  string                 `json:"receipt"`
	Notes    map[string]interface{} `json:"notes,omitempty"`
}

type OrderResponse struct {
	OrderID   string  `json:"order_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt int64   `json:"created_at"`
}
