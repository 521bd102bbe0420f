package generation

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jonathan/resume-maker/internal/llm"
	"github.com/jonathan/resume-maker/internal/prompts"
	"github.com/jonathan/resume-maker/internal/types"
)

// wordCountForPosition returns the target description length. The two most
// recent positions get the longer treatment.
func wordCountForPosition(index int) string {
	if index < 2 {
		return "600-800 words"
	}
	return "400-600 words"
}

func seniorityInstruction(s types.Seniority) string {
	switch s {
	case types.SenioritySenior:
		return "This is the MOST RECENT position. Use SENIOR level title (Senior, Lead, Principal, Staff)"
	case types.SeniorityMid:
		return "This is a MID-CAREER position. Use MID-LEVEL title (no Senior prefix, no Junior prefix)"
	default:
		return "This is the EARLIEST/OLDEST position (career start). MUST use JUNIOR level title (Junior, Associate, Software Engineer I/II, or just the role without Senior/Lead)"
	}
}

func recencyLabel(index int) string {
	if index == 0 {
		return "most recent position"
	}
	return fmt.Sprintf("position %d (older/earlier role)", index+1)
}

// professionalTitle asks the model for a resume headline. Any failure falls
// back to a generic senior title so generation never stalls on one call.
func (g *Generator) professionalTitle(ctx context.Context, jobDescription string, years int) string {
	prompt := prompts.Format(prompts.MustGet("generation.json", "professional_title"), map[string]string{
		"JobDescription": jobDescription,
		"Years":          strconv.Itoa(years),
	})

	reply, err := g.client.Complete(ctx, prompt, llm.CallOptions{MaxTokens: 100, Temperature: 0.7})
	if err != nil {
		log.Printf("[ERROR] title generation failed: %v", err)
		return fmt.Sprintf("Senior Professional with %d+ Years Experience", years)
	}
	return llm.CleanPreamble(strings.Trim(reply, `"`))
}

// professionalSummary generates the summary paragraph, naming up to four
// previous employers for context.
func (g *Generator) professionalSummary(ctx context.Context, jobDescription string, years int, history []types.WorkExperience) string {
	var companies []string
	for _, exp := range history {
		if exp.Company != "" {
			companies = append(companies, exp.Company)
		}
		if len(companies) == 4 {
			break
		}
	}

	prompt := prompts.Format(prompts.MustGet("generation.json", "professional_summary"), map[string]string{
		"JobDescription": jobDescription,
		"Years":          strconv.Itoa(years),
		"Companies":      strings.Join(companies, ", "),
	})

	reply, err := g.client.Complete(ctx, prompt, llm.CallOptions{MaxTokens: 250, Temperature: 0.7})
	if err != nil {
		log.Printf("[ERROR] summary generation failed: %v", err)
		return fmt.Sprintf("Experienced professional with %d+ years in the industry, bringing expertise across various domains and technologies.", years)
	}
	return llm.CleanPreamble(reply)
}

// positionTitle generates a job title for one work-history entry, holding the
// model to the seniority tier implied by the entry's position.
func (g *Generator) positionTitle(ctx context.Context, jobDescription string, exp types.WorkExperience, index, tenure int) string {
	tier := types.SeniorityForPosition(index)

	prompt := prompts.Format(prompts.MustGet("generation.json", "position_title"), map[string]string{
		"JobDescription":       jobDescription,
		"Company":              exp.Company,
		"Recency":              recencyLabel(index),
		"YearsAtCompany":       strconv.Itoa(tenure),
		"PositionNumber":       strconv.Itoa(index + 1),
		"SeniorityInstruction": seniorityInstruction(tier),
	})

	reply, err := g.client.Complete(ctx, prompt, llm.CallOptions{MaxTokens: 50, Temperature: 0.7})
	if err != nil {
		log.Printf("[ERROR] job title generation failed for %s: %v", exp.Company, err)
		return tier.TitlePrefix() + " Professional"
	}
	return llm.CleanPreamble(strings.Trim(reply, `"'`))
}

// workDescription generates the flowing-paragraph description for one
// position. The canned fallback keeps the resume structurally complete when
// the model is unavailable.
func (g *Generator) workDescription(ctx context.Context, jobDescription string, exp types.WorkExperience, title string, index int) string {
	prompt := prompts.Format(prompts.MustGet("generation.json", "work_description"), map[string]string{
		"JobDescription": jobDescription,
		"Company":        exp.Company,
		"Title":          title,
		"StartDate":      exp.StartDate,
		"EndDate":        exp.EndDate,
		"WordCount":      wordCountForPosition(index),
	})

	reply, err := g.client.Complete(ctx, prompt, llm.CallOptions{MaxTokens: 1200, Temperature: 0.7})
	if err != nil {
		log.Printf("[ERROR] description generation failed for %s: %v", exp.Company, err)
		return fmt.Sprintf("At %s, I contributed to various projects and initiatives, applying technical and professional skills to deliver results.", exp.Company)
	}

	description := llm.CleanPreamble(reply)
	description = strings.ReplaceAll(description, "\n\n", " ")
	description = strings.ReplaceAll(description, "\n", " ")
	description = strings.ReplaceAll(description, "***", "")
	description = strings.ReplaceAll(description, "**", "")
	return strings.TrimSpace(description)
}
