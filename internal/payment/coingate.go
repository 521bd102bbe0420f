package payment

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// CoinGate environment API bases.
const (
	coingateLiveBase    = "https://api.coingate.com/v2"
	coingateSandboxBase = "https://api-sandbox.coingate.com/v2"
)

// SupportedCryptoCurrencies lists what the checkout page offers.
var SupportedCryptoCurrencies = []string{
	"USDT (TRC20)", "USDT (ERC20)", "USDT (BEP20)", "BTC", "ETH",
}

// CoinGateConfig carries CoinGate credentials.
type CoinGateConfig struct {
	APIKey  string
	Mode    string // "sandbox" or "live"
	BaseURL string
}

// CoinGateClient drives the CoinGate v2 orders API for crypto payments.
type CoinGateClient struct {
	http   *resty.Client
	config CoinGateConfig
}

// NewCoinGateClient builds a CoinGate client. An empty API key yields an
// unconfigured client.
func NewCoinGateClient(config CoinGateConfig) *CoinGateClient {
	if config.Mode == "" {
		config.Mode = "sandbox"
	}
	if config.BaseURL == "" {
		if config.Mode == "live" {
			config.BaseURL = coingateLiveBase
		} else {
			config.BaseURL = coingateSandboxBase
		}
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Authorization", "Token "+config.APIKey)

	return &CoinGateClient{http: client, config: config}
}

// IsConfigured reports whether credentials are present.
func (c *CoinGateClient) IsConfigured() bool {
	return c.config.APIKey != ""
}

// CoinGateOrder is a created crypto payment order.
type CoinGateOrder struct {
	CoinGateID int64  `json:"coingate_id"`
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	PaymentURL string `json:"payment_url"`
}

// CreateOrder creates a crypto payment order. orderID is our internal
// order reference; CoinGate echoes it back on the callback.
func (c *CoinGateClient) CreateOrder(ctx context.Context, email, orderID, successURL, cancelURL, callbackURL string) (*CoinGateOrder, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"order_id":         orderID,
			"price_amount":     fmt.Sprintf("%.2f", PriceUSD),
			"price_currency":   "USD",
			"receive_currency": "USD",
			"title":            ProductName,
			"description":      "Lifetime access for " + email,
			"callback_url":     callbackURL,
			"cancel_url":       cancelURL,
			"success_url":      successURL,
			"purchaser_email":  email,
		}).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("coingate request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingate returned status %d: %s", resp.StatusCode(), resp.String())
	}

	body := resp.Body()
	order := &CoinGateOrder{
		CoinGateID: gjson.GetBytes(body, "id").Int(),
		OrderID:    gjson.GetBytes(body, "order_id").String(),
		Status:     gjson.GetBytes(body, "status").String(),
		PaymentURL: gjson.GetBytes(body, "payment_url").String(),
	}
	if order.CoinGateID == 0 {
		return nil, fmt.Errorf("coingate returned no order id")
	}
	return order, nil
}

// GetOrder fetches current order state from CoinGate.
func (c *CoinGateClient) GetOrder(ctx context.Context, coingateID int64) (*CoinGateOrder, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/orders/%d", coingateID))
	if err != nil {
		return nil, fmt.Errorf("coingate request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingate returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	return &CoinGateOrder{
		CoinGateID: gjson.GetBytes(body, "id").Int(),
		OrderID:    gjson.GetBytes(body, "order_id").String(),
		Status:     gjson.GetBytes(body, "status").String(),
		PaymentURL: gjson.GetBytes(body, "payment_url").String(),
	}, nil
}

// CoinGateCallback is the form payload CoinGate posts to the callback URL.
type CoinGateCallback struct {
	CoinGateID  string
	OrderID     string
	Status      string
	PayCurrency string
	PayAmount   string
}

// ParseCallback validates and extracts a CoinGate callback. CoinGate
// authenticates callbacks by source IP in production; here we require the
// identifying fields to be present.
func ParseCallback(form url.Values) (*CoinGateCallback, error) {
	cb := &CoinGateCallback{
		CoinGateID:  form.Get("id"),
		OrderID:     form.Get("order_id"),
		Status:      form.Get("status"),
		PayCurrency: form.Get("pay_currency"),
		PayAmount:   form.Get("pay_amount"),
	}
	if cb.CoinGateID == "" || cb.OrderID == "" || cb.Status == "" {
		return nil, fmt.Errorf("callback missing required fields")
	}
	return cb, nil
}

// IsPaymentSuccessful reports whether a CoinGate status means the payment
// went through. "confirming" counts: funds are on-chain awaiting
// confirmations.
func IsPaymentSuccessful(status string) bool {
	return status == "paid" || status == "confirming"
}

// IsPaymentFailed reports whether a CoinGate status is terminal failure.
func IsPaymentFailed(status string) bool {
	switch status {
	case "expired", "canceled", "invalid":
		return true
	}
	return false
}
