package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-maker/internal/db"
	"github.com/jonathan/resume-maker/internal/generation"
	"github.com/jonathan/resume-maker/internal/payment"
	"github.com/jonathan/resume-maker/internal/rendering"
	"github.com/jonathan/resume-maker/internal/skills"
	"github.com/jonathan/resume-maker/internal/snapshot"
	"github.com/jonathan/resume-maker/internal/types"
)

type loggedEvent struct {
	Type     string
	Email    string
	Metadata string
}

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]*db.User
	payments  map[uuid.UUID]*db.Payment
	events    []loggedEvent
	pageViews int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*db.User),
		payments: make(map[uuid.UUID]*db.Payment),
	}
}

func (f *fakeStore) GetOrCreateUser(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = db.NormalizeEmail(email)
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	u := &db.User{ID: uuid.New(), Email: email}
	f.users[email] = u
	return u, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[db.NormalizeEmail(email)]; ok {
		return u, nil
	}
	return nil, db.ErrUserNotFound
}

func (f *fakeStore) ConsumeGeneration(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[db.NormalizeEmail(email)]
	if !ok {
		return false, nil
	}
	if !u.IsPaid && u.FreeGenerationsUsed >= db.FreeGenerationLimit {
		return false, nil
	}
	if !u.IsPaid {
		u.FreeGenerationsUsed++
	}
	u.TotalGenerations++
	return true, nil
}

func (f *fakeStore) RefundGeneration(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[db.NormalizeEmail(email)]
	if !ok {
		return nil
	}
	if !u.IsPaid && u.FreeGenerationsUsed > 0 {
		u.FreeGenerationsUsed--
	}
	if u.TotalGenerations > 0 {
		u.TotalGenerations--
	}
	return nil
}

func (f *fakeStore) MarkUserPaid(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == userID {
			u.IsPaid = true
		}
	}
	return nil
}

func (f *fakeStore) CreatePayment(_ context.Context, params db.CreatePaymentParams) (*db.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &db.Payment{
		ID:                uuid.New(),
		UserID:            params.UserID,
		Amount:            params.Amount,
		Currency:          "USD",
		Provider:          params.Provider,
		ProviderPaymentID: params.ProviderPaymentID,
		ProviderOrderID:   params.ProviderOrderID,
		Status:            db.PaymentPending,
	}
	f.payments[p.ID] = p
	return p, nil
}

func (f *fakeStore) GetPaymentByProviderOrder(_ context.Context, provider, orderID string) (*db.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.Provider == provider && p.ProviderOrderID == orderID {
			return p, nil
		}
	}
	return nil, db.ErrPaymentNotFound
}

func (f *fakeStore) GetPaymentByProviderPayment(_ context.Context, provider, paymentID string) (*db.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.Provider == provider && p.ProviderPaymentID == paymentID {
			return p, nil
		}
	}
	return nil, db.ErrPaymentNotFound
}

func (f *fakeStore) CompletePayment(ctx context.Context, paymentID uuid.UUID) error {
	f.mu.Lock()
	p, ok := f.payments[paymentID]
	if ok && p.Status != db.PaymentCompleted {
		p.Status = db.PaymentCompleted
	}
	userID := uuid.Nil
	if ok {
		userID = p.UserID
	}
	f.mu.Unlock()
	if ok {
		return f.MarkUserPaid(ctx, userID)
	}
	return nil
}

func (f *fakeStore) FailPayment(_ context.Context, paymentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.payments[paymentID]; ok {
		p.Status = db.PaymentFailed
	}
	return nil
}

func (f *fakeStore) LogPageView(_ context.Context, _, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageViews++
	return nil
}

func (f *fakeStore) LogUsageEvent(_ context.Context, eventType, userEmail, metadata string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, loggedEvent{Type: eventType, Email: userEmail, Metadata: metadata})
	return nil
}

func (f *fakeStore) GetPageViewStats(_ context.Context, _ int) (*db.PageViewStats, error) {
	return &db.PageViewStats{TotalViews: 42, UniqueVisitors: 7, ViewsByDay: []db.DayCount{}, TopReferrers: []db.ReferrerCount{}}, nil
}

func (f *fakeStore) GetEventStats(_ context.Context, _ int) (*db.EventStats, error) {
	return &db.EventStats{EventCounts: map[string]int{db.EventResumeGenerated: 5}, EventsByDay: []db.EventDayCount{}}, nil
}

func (f *fakeStore) GetUserStats(_ context.Context) (*db.UserStats, error) {
	return &db.UserStats{Total: 10, Paid: 2, ConversionRate: 20}, nil
}

func (f *fakeStore) GetRevenueStats(_ context.Context) (*db.RevenueStats, error) {
	return &db.RevenueStats{Total: 50, PaymentsCount: 2, AveragePayment: 25}, nil
}

func (f *fakeStore) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

// stubPDF writes a placeholder PDF so the download path exists on disk.
type stubPDF struct{}

func (stubPDF) RenderPDF(_ context.Context, _ string, _ rendering.StylePreset) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

type testEnv struct {
	server *Server
	store  *fakeStore
}

func newTestEnv(t *testing.T, opts ...func(*Config)) *testEnv {
	t.Helper()
	dir := t.TempDir()

	store := newFakeStore()
	cfg := Config{
		Port:      0,
		BaseURL:   "https://app.example.com",
		Store:     store,
		Snapshots: snapshot.NewStore(filepath.Join(dir, "user_data.json")),
		Skills:    skills.NewDatabase(),
		Generator: generation.NewGenerator(nil, skills.NewDatabase()),
		Renderer:  rendering.NewRenderer(rendering.FixedStylePicker{}, stubPDF{}, filepath.Join(dir, "output")),
		Stripe:    payment.NewStripeClient(payment.StripeConfig{}),
		PayPal:    payment.NewPayPalClient(payment.PayPalConfig{}),
		CoinGate:  payment.NewCoinGateClient(payment.CoinGateConfig{}),
		AdminKey:  "test-admin",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := New(cfg)
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return &testEnv{server: s, store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
}

func TestSaveAndLoadData(t *testing.T) {
	env := newTestEnv(t)

	profile := types.UserProfile{
		PersonalInfo: types.PersonalInfo{Name: "Jordan Smith", Email: "jordan@example.com"},
		Skills:       []string{"Go"},
	}
	w := env.do(t, http.MethodPost, "/api/save-data", profile)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Data saved successfully", decodeBody(t, w)["message"])

	w = env.do(t, http.MethodGet, "/api/load-data", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Jordan Smith", data["personal_info"].(map[string]any)["name"])
}

func TestLoadDataEmpty(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/load-data", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "", data["personal_info"].(map[string]any)["name"])
}

func TestAnalyzeJob(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/analyze-job", map[string]string{
		"job_description": "Looking for a React developer with AWS and Docker experience.",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["keywords"])
	assert.NotEmpty(t, body["suggested_skills"])
	assert.Contains(t, env.store.eventTypes(), db.EventJobAnalyzed)
}

func TestAnalyzeJobMissingDescription(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/analyze-job", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllKeywords(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/all-keywords", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	total := int(body["total"].(float64))
	assert.Greater(t, total, 300)
	keywords := body["keywords"].([]any)
	assert.Len(t, keywords, total)
}

func TestGenerateResume(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/generate-resume", map[string]any{
		"email":           "jordan@example.com",
		"job_description": "Senior Go developer role with PostgreSQL and AWS.",
		"user_data": types.UserProfile{
			PersonalInfo: types.PersonalInfo{Name: "Jordan Smith", Email: "jordan@example.com"},
			WorkExperience: []types.WorkExperience{
				{Company: "Initech", StartDate: "2020", EndDate: "Present", Location: "Remote"},
			},
		},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Resume_Jordan_Smith_")
	assert.Contains(t, w.Body.String(), "%PDF")

	user := env.store.users["jordan@example.com"]
	require.NotNil(t, user)
	assert.Equal(t, 1, user.FreeGenerationsUsed)
	assert.Contains(t, env.store.eventTypes(), db.EventResumeGenerated)
}

// brokenPDF fails every render, like a missing Chrome install.
type brokenPDF struct{}

func (brokenPDF) RenderPDF(_ context.Context, _ string, _ rendering.StylePreset) ([]byte, error) {
	return nil, errors.New("chrome exited")
}

func TestGenerateResumeRenderFailureRefundsSlot(t *testing.T) {
	env := newTestEnv(t, func(cfg *Config) {
		cfg.Renderer = rendering.NewRenderer(rendering.FixedStylePicker{}, brokenPDF{}, t.TempDir())
	})

	w := env.do(t, http.MethodPost, "/api/generate-resume", map[string]any{
		"email":           "jordan@example.com",
		"job_description": "Senior Go developer role.",
		"user_data": types.UserProfile{
			PersonalInfo: types.PersonalInfo{Name: "Jordan Smith", Email: "jordan@example.com"},
		},
	})

	require.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())

	user := env.store.users["jordan@example.com"]
	require.NotNil(t, user)
	assert.Equal(t, 0, user.FreeGenerationsUsed)
	assert.Equal(t, 0, user.TotalGenerations)
	assert.NotContains(t, env.store.eventTypes(), db.EventResumeGenerated)
}

func TestGenerateResumePaymentRequired(t *testing.T) {
	env := newTestEnv(t)
	env.store.users["jordan@example.com"] = &db.User{
		ID:                  uuid.New(),
		Email:               "jordan@example.com",
		FreeGenerationsUsed: db.FreeGenerationLimit,
	}

	w := env.do(t, http.MethodPost, "/api/generate-resume", map[string]any{
		"email":           "jordan@example.com",
		"job_description": "Any role.",
	})

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["needs_payment"])
	assert.Equal(t, payment.PriceUSD, body["price"])
	assert.NotContains(t, env.store.eventTypes(), db.EventResumeGenerated)
}

func TestGenerateResumeValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/generate-resume", map[string]any{
		"email":           "not-an-email",
		"job_description": "Any role.",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/user/register", map[string]string{"email": "Jordan@Example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "jordan@example.com", user["email"])
	assert.Equal(t, float64(db.FreeGenerationLimit), user["free_generations_remaining"])

	w = env.do(t, http.MethodPost, "/api/user/register", map[string]string{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserStatusUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/user/status", map[string]string{"email": "new@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, false, user["exists"])
	assert.Equal(t, true, user["can_generate"])
}

func TestCheckAccess(t *testing.T) {
	env := newTestEnv(t)

	// Unknown user gets the full free allowance.
	w := env.do(t, http.MethodPost, "/api/user/check-access", map[string]string{"email": "new@example.com"})
	body := decodeBody(t, w)
	assert.Equal(t, true, body["can_generate"])
	assert.Equal(t, float64(db.FreeGenerationLimit), body["free_tries_remaining"])

	// Paid user.
	env.store.users["paid@example.com"] = &db.User{ID: uuid.New(), Email: "paid@example.com", IsPaid: true}
	w = env.do(t, http.MethodPost, "/api/user/check-access", map[string]string{"email": "paid@example.com"})
	body = decodeBody(t, w)
	assert.Equal(t, true, body["can_generate"])
	assert.Equal(t, "Lifetime access active", body["message"])

	// Exhausted free tier.
	env.store.users["used@example.com"] = &db.User{
		ID: uuid.New(), Email: "used@example.com", FreeGenerationsUsed: db.FreeGenerationLimit,
	}
	w = env.do(t, http.MethodPost, "/api/user/check-access", map[string]string{"email": "used@example.com"})
	body = decodeBody(t, w)
	assert.Equal(t, false, body["can_generate"])
	assert.Equal(t, true, body["needs_payment"])
}

func TestPaymentConfigUnconfigured(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/payment/config", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, payment.PriceUSD, body["price"])
	providers := body["providers"].(map[string]any)
	assert.Equal(t, false, providers["stripe"].(map[string]any)["enabled"])

	w = env.do(t, http.MethodPost, "/api/payment/stripe/create-session", map[string]string{"email": "a@b.co"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStripeCreateSessionFlow(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"cs_test_1","url":"https://checkout.stripe.com/pay/cs_test_1"}`)
	}))
	defer backend.Close()

	env := newTestEnv(t, func(cfg *Config) {
		cfg.Stripe = payment.NewStripeClient(payment.StripeConfig{
			SecretKey: "sk_test", PublicKey: "pk_test", BaseURL: backend.URL,
		})
	})

	w := env.do(t, http.MethodPost, "/api/payment/stripe/create-session", map[string]string{"email": "jordan@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "cs_test_1", body["session_id"])

	p, err := env.store.GetPaymentByProviderPayment(context.Background(), payment.ProviderStripe, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, db.PaymentPending, p.Status)
	assert.Contains(t, env.store.eventTypes(), db.EventPaymentStarted)

	// Already-paid users are rejected.
	env.store.users["jordan@example.com"].IsPaid = true
	w = env.do(t, http.MethodPost, "/api/payment/stripe/create-session", map[string]string{"email": "jordan@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func signStripe(secret string, ts int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestStripeWebhookCompletesPayment(t *testing.T) {
	env := newTestEnv(t, func(cfg *Config) {
		cfg.Stripe = payment.NewStripeClient(payment.StripeConfig{
			SecretKey: "sk_test", WebhookSecret: "whsec_test",
		})
	})

	user, err := env.store.GetOrCreateUser(context.Background(), "jordan@example.com")
	require.NoError(t, err)
	_, err = env.store.CreatePayment(context.Background(), db.CreatePaymentParams{
		UserID: user.ID, Amount: payment.PriceUSD,
		Provider: payment.ProviderStripe, ProviderPaymentID: "cs_test_1",
	})
	require.NoError(t, err)

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","customer_email":"jordan@example.com","payment_status":"paid"}}}`)
	ts := time.Now().Unix()

	req := httptest.NewRequest(http.MethodPost, "/api/payment/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", ts, signStripe("whsec_test", ts, payload)))
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p, err := env.store.GetPaymentByProviderPayment(context.Background(), payment.ProviderStripe, "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, db.PaymentCompleted, p.Status)
	assert.True(t, env.store.users["jordan@example.com"].IsPaid)
	assert.Contains(t, env.store.eventTypes(), db.EventPaymentCompleted)
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	env := newTestEnv(t, func(cfg *Config) {
		cfg.Stripe = payment.NewStripeClient(payment.StripeConfig{
			SecretKey: "sk_test", WebhookSecret: "whsec_test",
		})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/payment/stripe/webhook",
		strings.NewReader(`{"type":"checkout.session.completed"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCoinGateWebhook(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.store.GetOrCreateUser(context.Background(), "jordan@example.com")
	require.NoError(t, err)
	_, err = env.store.CreatePayment(context.Background(), db.CreatePaymentParams{
		UserID: user.ID, Amount: payment.PriceUSD,
		Provider: payment.ProviderCoinGate, ProviderPaymentID: "9001", ProviderOrderID: "RM-1",
	})
	require.NoError(t, err)

	form := url.Values{"id": {"9001"}, "order_id": {"RM-1"}, "status": {"paid"}}
	req := httptest.NewRequest(http.MethodPost, "/api/payment/coingate/webhook",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, env.store.users["jordan@example.com"].IsPaid)

	// Missing fields are rejected.
	req = httptest.NewRequest(http.MethodPost, "/api/payment/coingate/webhook",
		strings.NewReader("id=9001"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsTrackAndEvent(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/analytics/track", map[string]string{
		"path": "/", "referrer": "https://news.ycombinator.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.store.pageViews)

	w = env.do(t, http.MethodPost, "/api/analytics/event", map[string]any{
		"event": "job_analyzed", "email": "jordan@example.com", "metadata": map[string]int{"chars": 120},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, env.store.events)
	last := env.store.events[len(env.store.events)-1]
	assert.Equal(t, "job_analyzed", last.Type)
	assert.JSONEq(t, `{"chars":120}`, last.Metadata)
}

func TestAnalyticsStatsAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/analytics/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/stats?days=7", nil)
	req.Header.Set("X-Admin-Key", "test-admin")
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(7), body["period_days"])
	assert.NotNil(t, body["page_views"])
	assert.NotNil(t, body["revenue"])
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/analytics/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Enter admin key")

	w = env.do(t, http.MethodGet, "/api/analytics/dashboard?key=test-admin", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Resume Maker Analytics")
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/generate-resume", nil)
	w := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGeneratedPDFOnDisk(t *testing.T) {
	dir := t.TempDir()
	env := newTestEnv(t, func(cfg *Config) {
		cfg.Renderer = rendering.NewRenderer(rendering.FixedStylePicker{}, stubPDF{}, filepath.Join(dir, "out"))
	})

	w := env.do(t, http.MethodPost, "/api/generate-resume", map[string]any{
		"email":           "jordan@example.com",
		"job_description": "Go developer.",
		"user_data": types.UserProfile{
			PersonalInfo: types.PersonalInfo{Name: "Jordan Smith"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
