package skills

import (
	"regexp"
	"sort"
	"strings"
)

const maxExtractedKeywords = 50

// capitalizedTerm matches capitalized words, acronyms, and multi-word proper
// phrases such as "Entity Framework" or "Vue.js".
var capitalizedTerm = regexp.MustCompile(`\b[A-Z][A-Za-z0-9+#.]*(?:\s+[A-Z][a-z]*)*\b`)

// ExtractKeywords pulls the notable keywords out of a job description:
// database terms found by case-insensitive substring match plus capitalized
// tokens from the text itself. The result is sorted, deduplicated, and
// capped at 50 entries.
func (d *Database) ExtractKeywords(jobDescription string) []string {
	lower := strings.ToLower(jobDescription)

	seen := make(map[string]struct{})
	var keywords []string
	add := func(term string) {
		if _, ok := seen[term]; !ok {
			seen[term] = struct{}{}
			keywords = append(keywords, term)
		}
	}

	for _, term := range d.terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			add(term)
		}
	}
	for _, word := range capitalizedTerm.FindAllString(jobDescription, -1) {
		add(word)
	}

	sort.Strings(keywords)
	if len(keywords) > maxExtractedKeywords {
		keywords = keywords[:maxExtractedKeywords]
	}
	return keywords
}

// RelevantSkills returns every skill the job description calls for: database
// matches first, then capitalized technical tokens from the text, then
// ecosystem skills implied by what was found. Duplicates keep their first
// position.
func (d *Database) RelevantSkills(jobDescription string) []string {
	lower := strings.ToLower(jobDescription)

	var matches []string
	for _, term := range d.terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			matches = append(matches, term)
		}
	}

	var extra []string
	for _, word := range capitalizedTerm.FindAllString(jobDescription, -1) {
		if len(word) > 2 && !stopWords[word] {
			extra = append(extra, word)
		}
	}

	related := relatedSkills(matches, lower)
	return dedupeFirstSeen(append(append(matches, extra...), related...))
}

// relatedSkills expands found skills into their surrounding ecosystems so a
// posting that names Angular also surfaces TypeScript, RxJS, and the rest of
// the usual toolchain.
func relatedSkills(found []string, lowerText string) []string {
	has := make(map[string]bool, len(found))
	for _, s := range found {
		has[s] = true
	}

	var related []string

	if has["Angular"] || has["React"] || has["Vue.js"] || has["Vue"] {
		related = append(related,
			"TypeScript", "JavaScript", "HTML5", "CSS3", "SCSS", "Webpack",
			"npm", "Node.js", "REST", "API", "Git", "Responsive Design",
			"Component Architecture", "State Management", "RxJS", "Redux",
			"Single Page Applications", "SPA", "Progressive Web Apps", "PWA",
		)
	}

	if has[".NET"] || has["ASP.NET"] || has["C#"] {
		related = append(related,
			"C#", ".NET Core", ".NET Framework", "ASP.NET Core", "ASP.NET MVC",
			"Entity Framework", "LINQ", "SQL Server", "Azure", "REST",
			"Web API", "Microservices", "Docker", "Kubernetes",
		)
	}

	if has["Node.js"] || has["Express"] || has["JavaScript"] {
		related = append(related,
			"Node.js", "Express.js", "JavaScript", "TypeScript", "MongoDB",
			"PostgreSQL", "REST", "GraphQL", "Docker", "AWS", "Microservices",
		)
	}

	if has["AWS"] || strings.Contains(lowerText, "aws") {
		related = append(related,
			"AWS", "EC2", "S3", "Lambda", "RDS", "CloudFront", "API Gateway",
			"CloudFormation", "Terraform", "Docker", "Kubernetes", "DevOps",
		)
	}

	if has["Azure"] || strings.Contains(lowerText, "azure") {
		related = append(related,
			"Azure", "Azure DevOps", "Azure Functions", "Azure App Services",
			"Azure SQL Database", "Application Insights", "ARM Templates", "Docker",
		)
	}

	if has["Docker"] || has["Kubernetes"] || has["CI/CD"] {
		related = append(related,
			"Docker", "Kubernetes", "Jenkins", "GitHub Actions", "GitLab CI",
			"Terraform", "Ansible", "Monitoring", "Logging", "Infrastructure as Code",
		)
	}

	return related
}

func dedupeFirstSeen(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

var stopWords = func() map[string]bool {
	words := []string{
		"The", "This", "That", "These", "Those", "What", "When", "Where", "Who", "Why", "How",
		"Are", "Were", "Was", "Is", "Be", "Been", "Being", "Have", "Has", "Had", "Do", "Does",
		"Did", "Will", "Would", "Should", "Could", "May", "Might", "Must", "Can", "Our", "Your",
		"Their", "His", "Her", "Its", "We", "You", "They", "He", "She", "It", "Send", "Get",
		"Make", "Take", "Give", "Find", "Use", "Work", "Call", "Try", "Ask", "Need", "Feel",
		"Want", "Know", "Put", "Mean", "Keep", "Let", "Begin", "Start", "Show", "Turn", "Follow",
		"Play", "Run", "Move", "Live", "Believe", "Hold", "Bring", "Write", "Provide", "Sit",
		"Stand", "Lose", "Pay", "Meet", "Include", "Continue", "Set", "Learn", "Change", "Lead",
		"And", "Or", "But", "If", "Then", "Because", "As", "Until", "While", "Of", "At", "By",
		"For", "With", "About", "Against", "Between", "Into", "Through", "During", "Before", "After",
		"Above", "Below", "To", "From", "Up", "Down", "In", "Out", "On", "Off", "Over", "Under",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()
