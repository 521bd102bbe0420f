package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-maker/internal/db"
)

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// handleRegisterUser registers or identifies a user by email.
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	user, err := s.store.GetOrCreateUser(r.Context(), req.Email)
	if err != nil {
		log.Printf("[ERROR] registering user: %v", err)
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user.Status(),
	})
}

type userStatusResponse struct {
	db.UserStatus
	Exists bool `json:"exists"`
}

// handleUserStatus reports payment status and usage for an email. Unknown
// emails get a fresh-user view rather than an error.
func (s *Server) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, db.ErrUserNotFound) {
		fresh := db.User{Email: db.NormalizeEmail(req.Email)}
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    userStatusResponse{UserStatus: fresh.Status(), Exists: false},
		})
		return
	}
	if err != nil {
		log.Printf("[ERROR] fetching user status: %v", err)
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    userStatusResponse{UserStatus: user.Status(), Exists: true},
	})
}

// handleCheckAccess reports whether the user may generate a resume.
func (s *Server) handleCheckAccess(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, db.ErrUserNotFound) {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success":              true,
			"can_generate":         true,
			"is_paid":              false,
			"is_free":              true,
			"free_tries_remaining": db.FreeGenerationLimit,
			"message":              fmt.Sprintf("You have %d free generations!", db.FreeGenerationLimit),
		})
		return
	}
	if err != nil {
		log.Printf("[ERROR] checking access: %v", err)
		s.errorResponse(w, err)
		return
	}

	if user.IsPaid {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success":      true,
			"can_generate": true,
			"is_paid":      true,
			"is_free":      false,
			"message":      "Lifetime access active",
		})
		return
	}

	remaining := user.RemainingFreeTries()
	if remaining > 0 {
		plural := ""
		if remaining > 1 {
			plural = "s"
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success":              true,
			"can_generate":         true,
			"is_paid":              false,
			"is_free":              true,
			"free_tries_remaining": remaining,
			"message":              fmt.Sprintf("You have %d free generation%s left!", remaining, plural),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":              true,
		"can_generate":         false,
		"is_paid":              false,
		"is_free":              false,
		"free_tries_remaining": 0,
		"needs_payment":        true,
		"message":              "Payment required for unlimited access",
	})
}
