package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"pageturn/internal/config"

	razorpay "github.com/razorpay/razorpay-go"
)

type RazorpayClient interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error)
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type razorpayClientImpl struct {
	client *razorpay.Client
}

func NewRazorpayClient(cfg *config.Razorpay) RazorpayClient {
	return &razorpayClientImpl{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
	}
}

func (c *razorpayClientImpl) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	resp, err := c.client.Order.Create(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}

	return parseGatewayOrder(resp)
}

func parseGatewayOrder(resp map[string]interface{}) (*GatewayOrder, error) {
	id, _ := resp["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order response without id")
	}

	order := &GatewayOrder{ID: id}
	order.Currency, _ = resp["currency"].(string)
	order.Status, _ = resp["status"].(string)

	switch v := resp["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	case int:
		order.Amount = int64(v)
	}

	return order, nil
}

// PaymentSignature is the signature the gateway attaches to a successful
// checkout: hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
func PaymentSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyPaymentSignature(secret, orderID, paymentID, signature string) bool {
	expected := PaymentSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
