package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/resume-maker/internal/db"
	"github.com/jonathan/resume-maker/internal/payment"
)

// handlePaymentConfig tells the frontend which providers are available.
func (s *Server) handlePaymentConfig(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"price":    payment.PriceUSD,
		"currency": "USD",
		"providers": map[string]any{
			"stripe": map[string]any{
				"enabled":    s.stripe.IsConfigured(),
				"public_key": s.stripe.PublicKey(),
			},
			"paypal": map[string]any{
				"enabled":   s.paypal.IsConfigured(),
				"client_id": s.paypal.ClientID(),
				"mode":      s.paypal.Mode(),
			},
			"coingate": map[string]any{
				"enabled":    s.coingate.IsConfigured(),
				"currencies": payment.SupportedCryptoCurrencies,
			},
		},
	})
}

// payingUser resolves the account and rejects emails that already hold
// lifetime access.
func (s *Server) payingUser(w http.ResponseWriter, r *http.Request) (*db.User, bool) {
	var req emailRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return nil, false
	}

	user, err := s.store.GetOrCreateUser(r.Context(), req.Email)
	if err != nil {
		log.Printf("[ERROR] resolving user for payment: %v", err)
		s.errorResponse(w, err)
		return nil, false
	}
	if user.IsPaid {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "You already have lifetime access!",
		})
		return nil, false
	}
	return user, true
}

// completePayment finishes a payment record and logs the conversion.
func (s *Server) completePayment(r *http.Request, p *db.Payment, email, provider string) {
	if err := s.store.CompletePayment(r.Context(), p.ID); err != nil {
		log.Printf("[ERROR] completing %s payment %s: %v", provider, p.ID, err)
		return
	}
	log.Printf("[INFO] %s payment completed for %s", provider, email)
	if err := s.store.LogUsageEvent(r.Context(), db.EventPaymentCompleted, email,
		`{"provider":"`+provider+`"}`); err != nil {
		log.Printf("[WARN] logging payment event: %v", err)
	}
}

func (s *Server) logPaymentStarted(r *http.Request, email, provider string) {
	if err := s.store.LogUsageEvent(r.Context(), db.EventPaymentStarted, email,
		`{"provider":"`+provider+`"}`); err != nil {
		log.Printf("[WARN] logging payment event: %v", err)
	}
}

// handleStripeCreateSession starts a Stripe Checkout session.
func (s *Server) handleStripeCreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.stripe.IsConfigured() {
		s.errorResponse(w, &ErrProviderUnavailable{Provider: "Stripe"})
		return
	}

	user, ok := s.payingUser(w, r)
	if !ok {
		return
	}

	session, err := s.stripe.CreateCheckoutSession(r.Context(), user.Email,
		s.baseURL+"/payment-success", s.baseURL+"/payment-cancelled")
	if err != nil {
		log.Printf("[ERROR] creating stripe session: %v", err)
		s.errorResponse(w, err)
		return
	}

	_, err = s.store.CreatePayment(r.Context(), db.CreatePaymentParams{
		UserID:            user.ID,
		Amount:            payment.PriceUSD,
		Provider:          payment.ProviderStripe,
		ProviderPaymentID: session.SessionID,
	})
	if err != nil {
		log.Printf("[ERROR] recording stripe payment: %v", err)
		s.errorResponse(w, err)
		return
	}
	s.logPaymentStarted(r, user.Email, payment.ProviderStripe)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"session_id":   session.SessionID,
		"checkout_url": session.CheckoutURL,
		"public_key":   session.PublicKey,
	})
}

// handleStripeWebhook processes signed Stripe events.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "unreadable payload"})
		return
	}

	event, err := s.stripe.VerifyWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("[WARN] stripe webhook rejected: %v", err)
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{"error": "Invalid signature"})
		return
	}

	if event.Type == "checkout.session.completed" {
		s.settleStripeSession(r, event.SessionID, event.CustomerEmail)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"received": true})
}

// settleStripeSession completes the pending payment for a session, creating
// the record first when the webhook beat session creation persistence.
func (s *Server) settleStripeSession(r *http.Request, sessionID, email string) {
	p, err := s.store.GetPaymentByProviderPayment(r.Context(), payment.ProviderStripe, sessionID)
	if errors.Is(err, db.ErrPaymentNotFound) && email != "" {
		user, uerr := s.store.GetOrCreateUser(r.Context(), email)
		if uerr != nil {
			log.Printf("[ERROR] resolving stripe payer: %v", uerr)
			return
		}
		p, err = s.store.CreatePayment(r.Context(), db.CreatePaymentParams{
			UserID:            user.ID,
			Amount:            payment.PriceUSD,
			Provider:          payment.ProviderStripe,
			ProviderPaymentID: sessionID,
		})
	}
	if err != nil {
		log.Printf("[ERROR] locating stripe payment %s: %v", sessionID, err)
		return
	}

	s.completePayment(r, p, email, payment.ProviderStripe)
}

type stripeVerifyRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// handleStripeVerify confirms payment state after the success redirect.
func (s *Server) handleStripeVerify(w http.ResponseWriter, r *http.Request) {
	var req stripeVerifyRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	session, err := s.stripe.GetSession(r.Context(), req.SessionID)
	if err != nil {
		log.Printf("[ERROR] retrieving stripe session: %v", err)
		s.errorResponse(w, &ErrNotFound{Resource: "session"})
		return
	}

	if session.PaymentStatus != "paid" {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success": true,
			"paid":    false,
			"status":  session.PaymentStatus,
		})
		return
	}

	s.settleStripeSession(r, session.ID, session.CustomerEmail)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"paid":    true,
		"email":   session.CustomerEmail,
	})
}

// handlePayPalCreateOrder starts a PayPal order.
func (s *Server) handlePayPalCreateOrder(w http.ResponseWriter, r *http.Request) {
	if !s.paypal.IsConfigured() {
		s.errorResponse(w, &ErrProviderUnavailable{Provider: "PayPal"})
		return
	}

	user, ok := s.payingUser(w, r)
	if !ok {
		return
	}

	order, err := s.paypal.CreateOrder(r.Context(), user.Email,
		s.baseURL+"/payment-success?provider=paypal", s.baseURL+"/payment-cancelled")
	if err != nil {
		log.Printf("[ERROR] creating paypal order: %v", err)
		s.errorResponse(w, err)
		return
	}

	_, err = s.store.CreatePayment(r.Context(), db.CreatePaymentParams{
		UserID:          user.ID,
		Amount:          payment.PriceUSD,
		Provider:        payment.ProviderPayPal,
		ProviderOrderID: order.OrderID,
	})
	if err != nil {
		log.Printf("[ERROR] recording paypal payment: %v", err)
		s.errorResponse(w, err)
		return
	}
	s.logPaymentStarted(r, user.Email, payment.ProviderPayPal)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"order_id":     order.OrderID,
		"approval_url": order.ApprovalURL,
	})
}

type paypalCaptureRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// handlePayPalCaptureOrder captures an approved PayPal order.
func (s *Server) handlePayPalCaptureOrder(w http.ResponseWriter, r *http.Request) {
	var req paypalCaptureRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	capture, err := s.paypal.CaptureOrder(r.Context(), req.OrderID)
	if err != nil || !capture.Completed() {
		if err != nil {
			log.Printf("[ERROR] capturing paypal order: %v", err)
		}
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Payment capture failed",
		})
		return
	}

	email := capture.CustomID
	if email == "" {
		email = capture.PayerEmail
	}

	p, err := s.store.GetPaymentByProviderOrder(r.Context(), payment.ProviderPayPal, req.OrderID)
	if errors.Is(err, db.ErrPaymentNotFound) && email != "" {
		user, uerr := s.store.GetOrCreateUser(r.Context(), email)
		if uerr != nil {
			log.Printf("[ERROR] resolving paypal payer: %v", uerr)
			s.errorResponse(w, uerr)
			return
		}
		p, err = s.store.CreatePayment(r.Context(), db.CreatePaymentParams{
			UserID:          user.ID,
			Amount:          payment.PriceUSD,
			Provider:        payment.ProviderPayPal,
			ProviderOrderID: req.OrderID,
		})
	}
	if err != nil {
		log.Printf("[ERROR] locating paypal payment %s: %v", req.OrderID, err)
		s.errorResponse(w, err)
		return
	}

	s.completePayment(r, p, email, payment.ProviderPayPal)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"paid":    true,
		"email":   email,
	})
}

// handleCoinGateCreateOrder starts a crypto payment order.
func (s *Server) handleCoinGateCreateOrder(w http.ResponseWriter, r *http.Request) {
	if !s.coingate.IsConfigured() {
		s.errorResponse(w, &ErrProviderUnavailable{Provider: "Crypto payments"})
		return
	}

	user, ok := s.payingUser(w, r)
	if !ok {
		return
	}

	internalOrderID := "RM-" + user.ID.String() + "-" + uuid.New().String()[:8]

	order, err := s.coingate.CreateOrder(r.Context(), user.Email, internalOrderID,
		s.baseURL+"/payment-success?provider=coingate",
		s.baseURL+"/payment-cancelled",
		s.baseURL+"/api/payment/coingate/webhook")
	if err != nil {
		log.Printf("[ERROR] creating coingate order: %v", err)
		s.errorResponse(w, err)
		return
	}

	_, err = s.store.CreatePayment(r.Context(), db.CreatePaymentParams{
		UserID:            user.ID,
		Amount:            payment.PriceUSD,
		Provider:          payment.ProviderCoinGate,
		ProviderPaymentID: strconv.FormatInt(order.CoinGateID, 10),
		ProviderOrderID:   internalOrderID,
	})
	if err != nil {
		log.Printf("[ERROR] recording coingate payment: %v", err)
		s.errorResponse(w, err)
		return
	}
	s.logPaymentStarted(r, user.Email, payment.ProviderCoinGate)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":     true,
		"payment_url": order.PaymentURL,
		"order_id":    internalOrderID,
		"coingate_id": order.CoinGateID,
	})
}

// handleCoinGateWebhook processes CoinGate form callbacks.
func (s *Server) handleCoinGateWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "unreadable form"})
		return
	}

	cb, err := payment.ParseCallback(r.PostForm)
	if err != nil {
		log.Printf("[WARN] coingate callback rejected: %v", err)
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{"error": "Invalid callback"})
		return
	}

	p, err := s.store.GetPaymentByProviderPayment(r.Context(), payment.ProviderCoinGate, cb.CoinGateID)
	if errors.Is(err, db.ErrPaymentNotFound) {
		p, err = s.store.GetPaymentByProviderOrder(r.Context(), payment.ProviderCoinGate, cb.OrderID)
	}
	if err != nil {
		log.Printf("[WARN] coingate payment not found: %s / %s", cb.CoinGateID, cb.OrderID)
		s.errorResponse(w, &ErrNotFound{Resource: "payment"})
		return
	}

	switch {
	case payment.IsPaymentSuccessful(cb.Status):
		s.completePayment(r, p, "", payment.ProviderCoinGate)
	case payment.IsPaymentFailed(cb.Status):
		if err := s.store.FailPayment(r.Context(), p.ID); err != nil {
			log.Printf("[ERROR] failing coingate payment: %v", err)
		}
		log.Printf("[INFO] coingate payment failed: %s", cb.Status)
	default:
		// new / pending / confirming-adjacent states need no action.
		log.Printf("[INFO] coingate payment %s status: %s", cb.OrderID, cb.Status)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"received": true})
}

type coingateCheckRequest struct {
	CoinGateID int64 `json:"coingate_id" validate:"required"`
}

// handleCoinGateCheck polls CoinGate for order state.
func (s *Server) handleCoinGateCheck(w http.ResponseWriter, r *http.Request) {
	var req coingateCheckRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	order, err := s.coingate.GetOrder(r.Context(), req.CoinGateID)
	if err != nil {
		log.Printf("[ERROR] checking coingate order: %v", err)
		s.errorResponse(w, &ErrNotFound{Resource: "order"})
		return
	}

	if payment.IsPaymentSuccessful(order.Status) {
		p, perr := s.store.GetPaymentByProviderPayment(r.Context(), payment.ProviderCoinGate,
			strconv.FormatInt(req.CoinGateID, 10))
		if perr == nil {
			s.completePayment(r, p, "", payment.ProviderCoinGate)
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success": true,
			"paid":    true,
			"status":  order.Status,
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"paid":    false,
		"status":  order.Status,
	})
}
