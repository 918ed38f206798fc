package services

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder is a payment-gateway order as reported by Razorpay. The
// receipt round-trips the local order id so verification can correlate the
// gateway order back to ours.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewayOrderAPI is the gateway order creator/fetcher collaborator consumed
// by the order service.
type GatewayOrderAPI interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error)
	FetchOrder(ctx context.Context, gatewayOrderID string) (*GatewayOrder, error)
}

type RazorpayService struct {
	client *razorpay.Client
}

func NewRazorpayService(keyID, keySecret string) *RazorpayService {
	return &RazorpayService{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder creates a gateway order for the given amount (smallest currency
// unit). The SDK does not accept a context; the ctx parameter keeps the
// interface uniform for callers and test doubles.
func (s *RazorpayService) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}
	return gatewayOrderFromMap(body)
}

func (s *RazorpayService) FetchOrder(_ context.Context, gatewayOrderID string) (*GatewayOrder, error) {
	body, err := s.client.Order.Fetch(gatewayOrderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order fetch failed: %w", err)
	}
	return gatewayOrderFromMap(body)
}

func gatewayOrderFromMap(body map[string]interface{}) (*GatewayOrder, error) {
	order := &GatewayOrder{}
	var ok bool
	if order.ID, ok = body["id"].(string); !ok {
		return nil, fmt.Errorf("razorpay response missing order id")
	}
	order.Status, _ = body["status"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Currency, _ = body["currency"].(string)
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	return order, nil
}
