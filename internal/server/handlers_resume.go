package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/jonathan/resume-maker/internal/db"
	"github.com/jonathan/resume-maker/internal/generation"
	"github.com/jonathan/resume-maker/internal/payment"
	"github.com/jonathan/resume-maker/internal/types"
)

// handleSaveData persists the submitted profile snapshot.
func (s *Server) handleSaveData(w http.ResponseWriter, r *http.Request) {
	var profile types.UserProfile
	if err := s.decodeJSON(r, &profile); err != nil {
		s.errorResponse(w, err)
		return
	}

	if err := s.snapshots.Save(&profile); err != nil {
		log.Printf("[ERROR] saving profile: %v", err)
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Data saved successfully",
	})
}

// handleLoadData returns the saved profile, or an empty template.
func (s *Server) handleLoadData(w http.ResponseWriter, _ *http.Request) {
	profile, err := s.snapshots.Load()
	if err != nil {
		log.Printf("[ERROR] loading profile: %v", err)
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    profile,
	})
}

type analyzeJobRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
}

// handleAnalyzeJob extracts ATS keywords and suggested skills from a job
// description.
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	var req analyzeJobRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	if err := s.store.LogUsageEvent(r.Context(), db.EventJobAnalyzed, req.Email, ""); err != nil {
		log.Printf("[WARN] logging analysis event: %v", err)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":          true,
		"keywords":         s.skills.ExtractKeywords(req.JobDescription),
		"suggested_skills": s.skills.RelevantSkills(req.JobDescription),
	})
}

// handleAllKeywords lists every known skill term.
func (s *Server) handleAllKeywords(w http.ResponseWriter, _ *http.Request) {
	terms := s.skills.Terms()
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.Strings(sorted)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":  true,
		"keywords": sorted,
		"total":    len(sorted),
	})
}

type generateResumeRequest struct {
	Email          string            `json:"email" validate:"required,email"`
	JobDescription string            `json:"job_description" validate:"required"`
	UserData       types.UserProfile `json:"user_data"`
	Strategy       string            `json:"strategy"`
}

// handleGenerateResume runs the full pipeline: access check, content
// generation, PDF rendering, and file delivery.
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	var req generateResumeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	ctx := r.Context()
	if _, err := s.store.GetOrCreateUser(ctx, req.Email); err != nil {
		log.Printf("[ERROR] resolving user: %v", err)
		s.errorResponse(w, err)
		return
	}

	// The conditional update is the access check. Losing a race for the
	// last free slot lands here too.
	allowed, err := s.store.ConsumeGeneration(ctx, req.Email)
	if err != nil {
		log.Printf("[ERROR] consuming generation: %v", err)
		s.errorResponse(w, err)
		return
	}
	if !allowed {
		s.jsonResponse(w, http.StatusPaymentRequired, map[string]any{
			"success":       false,
			"needs_payment": true,
			"error":         "Payment required for unlimited access",
			"price":         payment.PriceUSD,
		})
		return
	}

	log.Printf("[INFO] generating resume, job description %d chars", len(req.JobDescription))

	record := s.generator.Generate(ctx, &req.UserData, req.JobDescription, generation.ParseStrategy(req.Strategy))

	result, err := s.renderer.Render(ctx, record)
	if err != nil {
		log.Printf("[ERROR] rendering PDF: %v", err)
		// No document was delivered, so the slot goes back.
		if refundErr := s.store.RefundGeneration(ctx, req.Email); refundErr != nil {
			log.Printf("[ERROR] refunding generation: %v", refundErr)
		}
		s.errorResponse(w, errors.New("failed to generate PDF"))
		return
	}

	if err := s.store.LogUsageEvent(ctx, db.EventResumeGenerated, req.Email,
		fmt.Sprintf(`{"style":%q}`, result.StyleName)); err != nil {
		log.Printf("[WARN] logging generation event: %v", err)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.DownloadName))
	http.ServeFile(w, r, result.Path)
}
