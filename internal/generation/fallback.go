package generation

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-maker/internal/types"
)

// Heuristic content used when no model client is configured or every model
// call has failed. The output is generic but structurally complete, so a
// resume can always be rendered.

func fallbackTitle(jobDescription string) string {
	lower := strings.ToLower(jobDescription)

	var role, specs string
	switch {
	case containsAny(lower, "liquidity", "treasury", "cash management"):
		role, specs = "Liquidity Manager", "Treasury & Risk Management | FX & Crypto Trading"
	case containsAny(lower, "data scien", "machine learning", "ml engineer"):
		role, specs = "Data Scientist", "Machine Learning | Analytics | AI"
	case containsAny(lower, "product manager", "product owner"):
		role, specs = "Product Manager", "Strategy | Roadmap | Stakeholder Management"
	case strings.Contains(lower, "full stack"):
		role, specs = "Full Stack Developer", "Frontend & Backend | Cloud Architecture"
	default:
		role, specs = "Professional", "Leadership | Strategy | Operations"
	}
	return fmt.Sprintf("Senior %s | %s", role, specs)
}

func fallbackSummary(jobDescription string, years int) string {
	lower := strings.ToLower(jobDescription)

	var stack []string
	if strings.Contains(lower, "angular") {
		stack = append(stack, "Angular")
	}
	if strings.Contains(lower, ".net") || strings.Contains(lower, "c#") {
		stack = append(stack, ".NET (C#)")
	}
	if strings.Contains(lower, "react") {
		stack = append(stack, "React")
	}
	if strings.Contains(lower, "node") {
		stack = append(stack, "Node.js")
	}
	techText := "modern technologies"
	if len(stack) > 0 {
		techText = strings.Join(stack, " and ")
	}

	var industries []string
	if containsAny(lower, "insurance", "financial", "finance", "banking") {
		industries = append(industries, "finance", "insurance")
	}
	if containsAny(lower, "healthcare", "health", "medical") {
		industries = append(industries, "healthcare")
	}
	if containsAny(lower, "ecommerce", "e-commerce", "retail") {
		industries = append(industries, "e-commerce")
	}
	if containsAny(lower, "gaming", "game") {
		industries = append(industries, "gaming")
	}
	if len(industries) == 0 {
		industries = []string{"finance", "healthcare", "gaming", "enterprise"}
	}
	if len(industries) > 4 {
		industries = industries[:4]
	}

	var focus []string
	if strings.Contains(lower, "responsive") || strings.Contains(lower, "ui") {
		focus = append(focus, "responsive, high-performance web applications")
	}
	if containsAny(lower, "accessible", "accessibility") {
		focus = append(focus, "accessible user interfaces")
	}
	if strings.Contains(lower, "scalable") || strings.Contains(lower, "api") {
		focus = append(focus, "scalable backend APIs")
	}
	if strings.Contains(lower, "architecture") || strings.Contains(lower, "design") {
		focus = append(focus, "clean, maintainable architectures")
	}
	focusText := "responsive, high-performance web applications"
	if len(focus) > 0 {
		focusText = strings.Join(focus, ", ")
	}

	cloudText := "cloud-ready solutions"
	switch {
	case strings.Contains(lower, "aws") || strings.Contains(lower, "amazon web services"):
		cloudText = "cloud-ready solutions on AWS"
	case strings.Contains(lower, "azure"):
		cloudText = "cloud-ready solutions on Azure"
	case strings.Contains(lower, "gcp") || strings.Contains(lower, "google cloud"):
		cloudText = "cloud-ready solutions on Google Cloud"
	}

	return fmt.Sprintf(
		"Full Stack Developer with over %d+ years of experience building %s using %s. "+
			"Skilled in designing %s, and clean, maintainable architectures. "+
			"Strong background in system design and cross-team collaboration, "+
			"with a track record of delivering %s across %s platforms used by millions of users.",
		years, focusText, techText, focusText, cloudText, strings.Join(industries, ", "))
}

func fallbackPositionTitle(index int) string {
	switch {
	case index <= 1:
		return "Senior Professional"
	case index == 2:
		return "Professional"
	default:
		return "Associate Professional"
	}
}

func fallbackDescription(company string) string {
	return fmt.Sprintf("At %s, I contributed to various projects and initiatives, applying technical and professional skills to deliver results.", company)
}

// defaultCertifications picks certifications matching the job's platform and
// framework mentions.
func defaultCertifications(jobDescription string, now time.Time) []types.Certification {
	lower := strings.ToLower(jobDescription)
	year := now.Year()

	var certs []types.Certification
	switch {
	case strings.Contains(lower, "azure") || strings.Contains(lower, "microsoft"):
		certs = append(certs, types.Certification{
			Name: "Microsoft Certified: Azure Developer Associate (AZ-204)",
			Date: fmt.Sprintf("August, %d", year-1),
		})
	case strings.Contains(lower, "aws"):
		certs = append(certs, types.Certification{
			Name: "AWS Certified Solutions Architect – Professional",
			Date: fmt.Sprintf("September, %d", year-1),
		})
	}

	if strings.Contains(lower, "angular") {
		certs = append(certs, types.Certification{
			Name: "Angular – The Complete Guide (Udemy)",
			Date: fmt.Sprintf("May %d", year-2),
		})
	}

	if len(certs) == 0 {
		certs = []types.Certification{
			{Name: "Microsoft Certified: Azure Developer Associate (AZ-204)", Date: fmt.Sprintf("August, %d", year-1)},
			{Name: "Angular – The Complete Guide (Udemy)", Date: fmt.Sprintf("May %d", year-2)},
		}
	}
	return certs
}

// enhanceEducation fills in honors and focus lines by degree level.
func enhanceEducation(education []types.Education) []types.Education {
	enhanced := make([]types.Education, 0, len(education))
	for _, edu := range education {
		switch edu.Level {
		case "masters":
			edu.Honors = "Merit (GPA: 3.7/4.0)"
			edu.Focus = "Focus on Web Application Development, Scalable Architectures, and Cloud-Based Systems"
		case "bachelors":
			edu.Honors = "First-Class Honours (GPA: 3.8/4.0)"
			edu.Focus = "Focus on Software Engineering, Distributed Systems, and Security"
		}
		enhanced = append(enhanced, edu)
	}
	return enhanced
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
