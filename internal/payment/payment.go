// Package payment integrates the hosted checkout flows of Stripe, PayPal,
// and CoinGate. All credentials are injected through configuration; a
// provider with no credentials reports itself as not configured and its
// endpoints stay disabled.
package payment

import "errors"

// PriceUSD is the one-time price for lifetime access.
const PriceUSD = 25.00

// ProductName appears on provider checkout pages.
const ProductName = "Resume Maker - Lifetime Access"

// ProductDescription appears on provider checkout pages.
const ProductDescription = "Unlimited AI-powered resume generation forever"

// Provider identifiers stored on payment records.
const (
	ProviderStripe   = "stripe"
	ProviderPayPal   = "paypal"
	ProviderCoinGate = "coingate"
)

// ErrNotConfigured is returned by providers missing credentials.
var ErrNotConfigured = errors.New("payment provider is not configured")
