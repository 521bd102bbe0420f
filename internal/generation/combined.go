package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jonathan/resume-maker/internal/llm"
	"github.com/jonathan/resume-maker/internal/prompts"
	"github.com/jonathan/resume-maker/internal/schemas"
	"github.com/jonathan/resume-maker/internal/types"
)

// combinedContent is the payload shape of the single-call strategy.
type combinedContent struct {
	ProfessionalTitle   string `json:"professional_title"`
	ProfessionalSummary string `json:"professional_summary"`
	WorkExperiences     []struct {
		JobTitle    string `json:"job_title"`
		Company     string `json:"company"`
		Description string `json:"description"`
	} `json:"work_experiences"`
}

// generateCombined produces all resume content in one model call. The reply
// is schema-validated before decoding; any failure returns an error so the
// caller can fall back to per-field calls.
func (g *Generator) generateCombined(ctx context.Context, jobDescription string, years int, history []types.WorkExperience) (*combinedContent, error) {
	var companies []string
	for _, exp := range history {
		if exp.Company != "" {
			companies = append(companies, exp.Company)
		}
	}

	var details strings.Builder
	for idx, exp := range history {
		tier := types.SeniorityForPosition(idx)
		fmt.Fprintf(&details, "\nPosition %d (%s):\n- Company: %s\n- Location: %s\n- Dates: %s - %s\n- Seniority: %s\n- Description length: %s\n",
			idx+1, recencyLabel(idx), exp.Company, exp.Location, exp.StartDate, exp.EndDate,
			tier.TitlePrefix(), wordCountForPosition(idx))
	}

	firstCompany := ""
	if len(history) > 0 {
		firstCompany = history[0].Company
	}

	prompt := prompts.Format(prompts.MustGet("generation.json", "combined_resume"), map[string]string{
		"JobDescription": jobDescription,
		"Years":          strconv.Itoa(years),
		"Companies":      strings.Join(companies, ", "),
		"WorkHistory":    details.String(),
		"FirstCompany":   firstCompany,
	})

	log.Printf("[AI] generating all resume content in one call")
	reply, err := g.client.CompleteJSON(ctx, prompt, llm.CallOptions{MaxTokens: 4000, Temperature: 0.7})
	if err != nil {
		return nil, fmt.Errorf("combined generation failed: %w", err)
	}

	if err := schemas.ValidateCombinedContent(reply); err != nil {
		return nil, fmt.Errorf("combined content rejected by schema: %w", err)
	}

	var content combinedContent
	if err := json.Unmarshal([]byte(reply), &content); err != nil {
		return nil, fmt.Errorf("failed to decode combined content: %w", err)
	}
	return &content, nil
}
