package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
)

//go:embed dashboard.html
var dashboardFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(dashboardFS, "dashboard.html"))

const maxTrackedFieldLen = 500

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

type trackRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

// handleTrackPageView records a page view with a hashed visitor IP.
func (s *Server) handleTrackPageView(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	// The tracking beacon may post an empty body.
	_ = json.NewDecoder(r.Body).Decode(&req)

	referrer := req.Referrer
	if referrer == "" {
		referrer = r.Header.Get("Referer")
	}

	err := s.store.LogPageView(r.Context(),
		req.Path,
		hashIP(s.clientIP(r)),
		truncate(r.Header.Get("User-Agent"), maxTrackedFieldLen),
		truncate(referrer, maxTrackedFieldLen),
	)
	if err != nil {
		log.Printf("[ERROR] tracking page view: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

type eventRequest struct {
	Event    string `json:"event"`
	Email    string `json:"email"`
	Metadata any    `json:"metadata"`
}

// handleTrackEvent records a usage event.
func (s *Server) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Event == "" {
		req.Event = "unknown"
	}

	var metadata string
	if req.Metadata != nil {
		if encoded, err := json.Marshal(req.Metadata); err == nil {
			metadata = string(encoded)
		}
	}

	if err := s.store.LogUsageEvent(r.Context(), req.Event, req.Email, metadata); err != nil {
		log.Printf("[ERROR] tracking event: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

// authorizeAdmin checks the admin key from header or query string. An
// empty configured key disables admin endpoints entirely.
func (s *Server) authorizeAdmin(r *http.Request) bool {
	if s.adminKey == "" {
		return false
	}
	key := r.Header.Get("X-Admin-Key")
	if key == "" {
		key = r.URL.Query().Get("key")
	}
	return key == s.adminKey
}

// handleAnalyticsStats returns the aggregated dashboard numbers.
func (s *Server) handleAnalyticsStats(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeAdmin(r) {
		s.errorResponse(w, &ErrUnauthorized{})
		return
	}

	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	ctx := r.Context()
	pageViews, err := s.store.GetPageViewStats(ctx, days)
	if err != nil {
		log.Printf("[ERROR] page view stats: %v", err)
		s.errorResponse(w, err)
		return
	}
	events, err := s.store.GetEventStats(ctx, days)
	if err != nil {
		log.Printf("[ERROR] event stats: %v", err)
		s.errorResponse(w, err)
		return
	}
	users, err := s.store.GetUserStats(ctx)
	if err != nil {
		log.Printf("[ERROR] user stats: %v", err)
		s.errorResponse(w, err)
		return
	}
	revenue, err := s.store.GetRevenueStats(ctx)
	if err != nil {
		log.Printf("[ERROR] revenue stats: %v", err)
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":     true,
		"period_days": days,
		"page_views":  pageViews,
		"events":      events,
		"users":       users,
		"revenue":     revenue,
	})
}

// handleDashboard serves the admin HTML dashboard. Without a valid key it
// renders the login form.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := dashboardTmpl.Execute(w, map[string]any{
		"Authorized": s.authorizeAdmin(r),
		"APIKey":     r.URL.Query().Get("key"),
	})
	if err != nil {
		log.Printf("[ERROR] rendering dashboard: %v", err)
	}
}
