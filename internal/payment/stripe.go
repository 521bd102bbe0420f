package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const stripeAPIBase = "https://api.stripe.com"

// stripeSignatureTolerance bounds how old a webhook timestamp may be.
const stripeSignatureTolerance = 5 * time.Minute

// StripeConfig carries Stripe credentials.
type StripeConfig struct {
	SecretKey     string
	PublicKey     string
	WebhookSecret string
	BaseURL       string
}

// StripeClient drives Stripe Checkout over the REST API.
type StripeClient struct {
	http   *resty.Client
	config StripeConfig
	now    func() time.Time
}

// NewStripeClient builds a Stripe client. An empty secret key yields an
// unconfigured client whose operations return ErrNotConfigured.
func NewStripeClient(config StripeConfig) *StripeClient {
	if config.BaseURL == "" {
		config.BaseURL = stripeAPIBase
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Authorization", "Bearer "+config.SecretKey)

	return &StripeClient{http: client, config: config, now: time.Now}
}

// IsConfigured reports whether credentials are present.
func (s *StripeClient) IsConfigured() bool {
	return s.config.SecretKey != ""
}

// PublicKey returns the publishable key for the frontend.
func (s *StripeClient) PublicKey() string {
	return s.config.PublicKey
}

// CheckoutSession is a created Stripe Checkout session.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
	PublicKey   string `json:"public_key"`
}

// CreateCheckoutSession creates a one-time card payment session. Stripe
// substitutes the session ID into the success URL placeholder on redirect.
func (s *StripeClient) CreateCheckoutSession(ctx context.Context, email, successURL, cancelURL string) (*CheckoutSession, error) {
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"mode":                                             "payment",
			"payment_method_types[0]":                          "card",
			"line_items[0][quantity]":                          "1",
			"line_items[0][price_data][currency]":              "usd",
			"line_items[0][price_data][unit_amount]":           strconv.Itoa(int(PriceUSD * 100)),
			"line_items[0][price_data][product_data][name]":    ProductName,
			"line_items[0][price_data][product_data][description]": ProductDescription,
			"success_url":                                      successURL + "?session_id={CHECKOUT_SESSION_ID}",
			"cancel_url":                                       cancelURL,
			"customer_email":                                   email,
			"metadata[user_email]":                             email,
			"metadata[product]":                                "lifetime_access",
		}).
		Post("/v1/checkout/sessions")
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stripe returned status %d: %s", resp.StatusCode(), gjson.GetBytes(resp.Body(), "error.message").String())
	}

	body := resp.Body()
	session := &CheckoutSession{
		SessionID:   gjson.GetBytes(body, "id").String(),
		CheckoutURL: gjson.GetBytes(body, "url").String(),
		PublicKey:   s.config.PublicKey,
	}
	if session.SessionID == "" {
		return nil, fmt.Errorf("stripe returned no session id")
	}
	return session, nil
}

// WebhookEvent is a verified Stripe webhook payload.
type WebhookEvent struct {
	Type          string
	SessionID     string
	CustomerEmail string
	PaymentStatus string
}

// VerifyWebhook checks the Stripe-Signature header against the raw payload
// and parses the event. The header carries a timestamp and one or more v1
// HMAC-SHA256 signatures over "<timestamp>.<payload>".
func (s *StripeClient) VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	if s.config.WebhookSecret == "" {
		return nil, ErrNotConfigured
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(signatureHeader, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return nil, fmt.Errorf("malformed signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed signature timestamp")
	}
	age := s.now().Sub(time.Unix(ts, 0))
	if age > stripeSignatureTolerance || age < -stripeSignatureTolerance {
		return nil, fmt.Errorf("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(s.config.WebhookSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	verified := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, fmt.Errorf("signature verification failed")
	}

	object := gjson.GetBytes(payload, "data.object")
	email := object.Get("customer_email").String()
	if email == "" {
		email = object.Get("metadata.user_email").String()
	}
	return &WebhookEvent{
		Type:          gjson.GetBytes(payload, "type").String(),
		SessionID:     object.Get("id").String(),
		CustomerEmail: email,
		PaymentStatus: object.Get("payment_status").String(),
	}, nil
}

// SessionStatus is the state of a checkout session after redirect.
type SessionStatus struct {
	ID            string
	PaymentStatus string
	CustomerEmail string
	AmountTotal   float64
}

// GetSession retrieves a checkout session for post-redirect verification.
func (s *StripeClient) GetSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}

	resp, err := s.http.R().
		SetContext(ctx).
		Get("/v1/checkout/sessions/" + sessionID)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stripe returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	email := gjson.GetBytes(body, "customer_email").String()
	if email == "" {
		email = gjson.GetBytes(body, "metadata.user_email").String()
	}
	return &SessionStatus{
		ID:            gjson.GetBytes(body, "id").String(),
		PaymentStatus: gjson.GetBytes(body, "payment_status").String(),
		CustomerEmail: email,
		AmountTotal:   gjson.GetBytes(body, "amount_total").Float() / 100,
	}, nil
}
