package payment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// PayPal environment API bases.
const (
	paypalLiveBase    = "https://api-m.paypal.com"
	paypalSandboxBase = "https://api-m.sandbox.paypal.com"
)

// PayPalConfig carries PayPal credentials.
type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	Mode         string // "sandbox" or "live"
	BaseURL      string
}

// PayPalClient drives the PayPal Orders v2 API.
type PayPalClient struct {
	http   *resty.Client
	config PayPalConfig
}

// NewPayPalClient builds a PayPal client. Missing credentials yield an
// unconfigured client.
func NewPayPalClient(config PayPalConfig) *PayPalClient {
	if config.Mode == "" {
		config.Mode = "sandbox"
	}
	if config.BaseURL == "" {
		if config.Mode == "live" {
			config.BaseURL = paypalLiveBase
		} else {
			config.BaseURL = paypalSandboxBase
		}
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(30 * time.Second)

	return &PayPalClient{http: client, config: config}
}

// IsConfigured reports whether credentials are present.
func (p *PayPalClient) IsConfigured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

// Mode returns "sandbox" or "live" for the frontend SDK.
func (p *PayPalClient) Mode() string {
	return p.config.Mode
}

// ClientID returns the public client ID for the frontend SDK.
func (p *PayPalClient) ClientID() string {
	return p.config.ClientID
}

func (p *PayPalClient) accessToken(ctx context.Context) (string, error) {
	resp, err := p.http.R().
		SetContext(ctx).
		SetBasicAuth(p.config.ClientID, p.config.ClientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		Post("/v1/oauth2/token")
	if err != nil {
		return "", fmt.Errorf("paypal auth request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("paypal auth returned status %d", resp.StatusCode())
	}

	token := gjson.GetBytes(resp.Body(), "access_token").String()
	if token == "" {
		return "", fmt.Errorf("paypal auth returned no token")
	}
	return token, nil
}

// PayPalOrder is a created PayPal order awaiting buyer approval.
type PayPalOrder struct {
	OrderID     string `json:"order_id"`
	ApprovalURL string `json:"approval_url"`
	Status      string `json:"status"`
}

// CreateOrder creates a one-time payment order and returns the approval
// link the buyer must visit.
func (p *PayPalClient) CreateOrder(ctx context.Context, email, returnURL, cancelURL string) (*PayPalOrder, error) {
	if !p.IsConfigured() {
		return nil, ErrNotConfigured
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"intent": "CAPTURE",
			"purchase_units": []map[string]any{{
				"amount": map[string]string{
					"currency_code": "USD",
					"value":         fmt.Sprintf("%.2f", PriceUSD),
				},
				"description": ProductName,
				"custom_id":   email,
			}},
			"application_context": map[string]string{
				"brand_name":   "Resume Maker",
				"landing_page": "BILLING",
				"user_action":  "PAY_NOW",
				"return_url":   returnURL,
				"cancel_url":   cancelURL,
			},
		}).
		Post("/v2/checkout/orders")
	if err != nil {
		return nil, fmt.Errorf("paypal order request failed: %w", err)
	}
	if resp.IsError() {
		log.Printf("[PAY] paypal order error: %s", resp.String())
		return nil, fmt.Errorf("paypal returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	order := &PayPalOrder{
		OrderID: gjson.GetBytes(body, "id").String(),
		Status:  gjson.GetBytes(body, "status").String(),
	}
	for _, link := range gjson.GetBytes(body, "links").Array() {
		if link.Get("rel").String() == "approve" {
			order.ApprovalURL = link.Get("href").String()
			break
		}
	}
	if order.OrderID == "" {
		return nil, fmt.Errorf("paypal returned no order id")
	}
	return order, nil
}

// PayPalCapture is the result of capturing an approved order.
type PayPalCapture struct {
	OrderID    string
	Status     string
	PayerEmail string
	CustomID   string
}

// Completed reports whether the capture settled the payment.
func (c *PayPalCapture) Completed() bool {
	return c.Status == "COMPLETED"
}

// CaptureOrder captures an approved order, completing the payment.
func (p *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*PayPalCapture, error) {
	if !p.IsConfigured() {
		return nil, ErrNotConfigured
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		Post("/v2/checkout/orders/" + orderID + "/capture")
	if err != nil {
		return nil, fmt.Errorf("paypal capture request failed: %w", err)
	}
	if resp.IsError() {
		log.Printf("[PAY] paypal capture error: %s", resp.String())
		return nil, fmt.Errorf("paypal returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	return &PayPalCapture{
		OrderID:    gjson.GetBytes(body, "id").String(),
		Status:     gjson.GetBytes(body, "status").String(),
		PayerEmail: gjson.GetBytes(body, "payer.email_address").String(),
		CustomID:   gjson.GetBytes(body, "purchase_units.0.custom_id").String(),
	}, nil
}
