package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-maker/internal/db"
	"github.com/jonathan/resume-maker/internal/generation"
	"github.com/jonathan/resume-maker/internal/payment"
	"github.com/jonathan/resume-maker/internal/rendering"
	"github.com/jonathan/resume-maker/internal/server/ratelimit"
	"github.com/jonathan/resume-maker/internal/skills"
	"github.com/jonathan/resume-maker/internal/snapshot"
	"github.com/jonathan/resume-maker/internal/types"
)

// Store is the persistence surface the handlers need. *db.DB implements it.
type Store interface {
	GetOrCreateUser(ctx context.Context, email string) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	ConsumeGeneration(ctx context.Context, email string) (bool, error)
	RefundGeneration(ctx context.Context, email string) error
	MarkUserPaid(ctx context.Context, userID uuid.UUID) error

	CreatePayment(ctx context.Context, params db.CreatePaymentParams) (*db.Payment, error)
	GetPaymentByProviderOrder(ctx context.Context, provider, orderID string) (*db.Payment, error)
	GetPaymentByProviderPayment(ctx context.Context, provider, paymentID string) (*db.Payment, error)
	CompletePayment(ctx context.Context, paymentID uuid.UUID) error
	FailPayment(ctx context.Context, paymentID uuid.UUID) error

	LogPageView(ctx context.Context, path, ipHash, userAgent, referrer string) error
	LogUsageEvent(ctx context.Context, eventType, userEmail, metadata string) error
	GetPageViewStats(ctx context.Context, days int) (*db.PageViewStats, error)
	GetEventStats(ctx context.Context, days int) (*db.EventStats, error)
	GetUserStats(ctx context.Context) (*db.UserStats, error)
	GetRevenueStats(ctx context.Context) (*db.RevenueStats, error)
}

// resumeGenerator produces complete resume content for a profile.
type resumeGenerator interface {
	Generate(ctx context.Context, profile *types.UserProfile, jobDescription string, strategy generation.Strategy) *types.ResumeRecord
}

// pdfRenderer turns a resume record into a PDF on disk.
type pdfRenderer interface {
	Render(ctx context.Context, record *types.ResumeRecord) (*rendering.Result, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server

	store     Store
	snapshots *snapshot.Store
	skills    *skills.Database
	generator resumeGenerator
	renderer  pdfRenderer

	stripe   *payment.StripeClient
	paypal   *payment.PayPalClient
	coingate *payment.CoinGateClient

	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate

	adminKey string
	baseURL  string
}

// Config holds server configuration and wired dependencies
type Config struct {
	Port    int
	BaseURL string

	Store     Store
	Snapshots *snapshot.Store
	Skills    *skills.Database
	Generator resumeGenerator
	Renderer  pdfRenderer

	Stripe   *payment.StripeClient
	PayPal   *payment.PayPalClient
	CoinGate *payment.CoinGateClient

	AdminKey string
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		store:     cfg.Store,
		snapshots: cfg.Snapshots,
		skills:    cfg.Skills,
		generator: cfg.Generator,
		renderer:  cfg.Renderer,
		stripe:    cfg.Stripe,
		paypal:    cfg.PayPal,
		coingate:  cfg.CoinGate,
		adminKey:  cfg.AdminKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		validate:  validator.New(),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation waits on the AI provider and Chrome
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler builds the routed and middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	// Profile snapshot
	mux.HandleFunc("POST /api/save-data", s.handleSaveData)
	mux.HandleFunc("GET /api/load-data", s.handleLoadData)

	// Job analysis and generation
	mux.HandleFunc("POST /api/analyze-job", s.handleAnalyzeJob)
	mux.HandleFunc("GET /api/all-keywords", s.handleAllKeywords)
	mux.HandleFunc("POST /api/generate-resume", s.handleGenerateResume)

	// User accounts
	mux.HandleFunc("POST /api/user/register", s.handleRegisterUser)
	mux.HandleFunc("POST /api/user/status", s.handleUserStatus)
	mux.HandleFunc("POST /api/user/check-access", s.handleCheckAccess)

	// Payments
	mux.HandleFunc("GET /api/payment/config", s.handlePaymentConfig)
	mux.HandleFunc("POST /api/payment/stripe/create-session", s.handleStripeCreateSession)
	mux.HandleFunc("POST /api/payment/stripe/webhook", s.handleStripeWebhook)
	mux.HandleFunc("POST /api/payment/stripe/verify", s.handleStripeVerify)
	mux.HandleFunc("POST /api/payment/paypal/create-order", s.handlePayPalCreateOrder)
	mux.HandleFunc("POST /api/payment/paypal/capture-order", s.handlePayPalCaptureOrder)
	mux.HandleFunc("POST /api/payment/coingate/create-order", s.handleCoinGateCreateOrder)
	mux.HandleFunc("POST /api/payment/coingate/webhook", s.handleCoinGateWebhook)
	mux.HandleFunc("POST /api/payment/coingate/check", s.handleCoinGateCheck)

	// Analytics
	mux.HandleFunc("POST /api/analytics/track", s.handleTrackPageView)
	mux.HandleFunc("POST /api/analytics/event", s.handleTrackEvent)
	mux.HandleFunc("GET /api/analytics/stats", s.handleAnalyticsStats)
	mux.HandleFunc("GET /api/analytics/dashboard", s.handleDashboard)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[INFO] server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[ERROR] server error: %v", err)
		}
	}()

	<-stop
	log.Println("[INFO] shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("[INFO] server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.clientIP(r), r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Resume Generator API is running",
	})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to RemoteAddr.
func (s *Server) clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// hashIP reduces an IP to a short one-way hash before storage.
func hashIP(ip string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])[:16]
}

// decodeJSON reads a JSON body into dst and validates struct tags.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := s.validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return &ErrValidation{Field: verrs[0].Field(), Message: "failed " + verrs[0].Tag() + " validation"}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}

// setRateLimitHeaders exposes the limit state on every response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 with retry information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
