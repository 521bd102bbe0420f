package llm

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/resume-maker/internal/prompts"
)

const maxExtractedSkills = 200

// garbageWords are tokens that slip into comma lists despite the prompt's
// exclusion rules.
var garbageWords = map[string]bool{
	"strong": true, "able": true, "comfortable": true, "bonus": true, "how": true,
	"send": true, "two": true, "the": true, "you": true, "they": true, "what": true,
	"who": true, "when": true, "where": true, "why": true, "this": true, "that": true,
	"location": true, "remote": true, "salary": true, "interview": true, "process": true,
	"details": true, "start": true, "date": true, "asap": true, "industry": true,
	"work": true, "expect": true, "applying": true,
}

// SkillExtractor asks the model for a comprehensive comma-separated skill
// list matching a job description.
type SkillExtractor struct {
	client Client
}

// NewSkillExtractor returns an extractor backed by the given client.
func NewSkillExtractor(client Client) *SkillExtractor {
	return &SkillExtractor{client: client}
}

// ExtractSkills returns up to 200 cleaned skills for the job description.
// A thin result is padded from the common-skill list, and any model failure
// falls back to that list entirely, so the result is never empty.
func (e *SkillExtractor) ExtractSkills(ctx context.Context, jobDescription string) []string {
	prompt := prompts.Format(prompts.MustGet("generation.json", "skills_extraction"), map[string]string{
		"JobDescription": jobDescription,
	})

	log.Printf("[AI] extracting skills list from job description")
	reply, err := e.client.Complete(ctx, prompt, CallOptions{MaxTokens: 2000, Temperature: 0.4})
	if err != nil {
		log.Printf("[ERROR] skill extraction failed, using fallback list: %v", err)
		return fallbackSkills()
	}

	skills := ParseSkillList(reply)
	if len(skills) < 50 {
		log.Printf("[INFO] only %d skills extracted, padding with common skills", len(skills))
		skills = padSkills(skills, commonTechSkills)
	}
	return skills
}

// ParseSkillList turns a comma-separated model reply into a cleaned skill
// slice: preamble stripped, garbage words removed, capped at 200 entries.
func ParseSkillList(reply string) []string {
	cleaned := CleanPreamble(reply)

	var skills []string
	for _, part := range strings.Split(cleaned, ",") {
		s := strings.TrimSpace(part)
		if len(s) <= 1 || garbageWords[strings.ToLower(s)] {
			continue
		}
		skills = append(skills, s)
	}

	if len(skills) > maxExtractedSkills {
		log.Printf("[INFO] model returned %d skills, capping at %d", len(skills), maxExtractedSkills)
		skills = skills[:maxExtractedSkills]
	}
	return skills
}

func padSkills(skills []string, extra []string) []string {
	have := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		have[s] = struct{}{}
	}
	for _, s := range extra {
		if len(skills) >= maxExtractedSkills {
			break
		}
		if _, ok := have[s]; ok {
			continue
		}
		have[s] = struct{}{}
		skills = append(skills, s)
	}
	return skills
}

func fallbackSkills() []string {
	out := commonTechSkills
	if len(out) > maxExtractedSkills {
		out = out[:maxExtractedSkills]
	}
	cp := make([]string, len(out))
	copy(cp, out)
	return cp
}

// commonTechSkills is the padding and fallback list, broad enough to keep a
// resume useful when the model is unavailable.
var commonTechSkills = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C#", "C++", "Go", "Rust", "Ruby", "PHP",
	"Swift", "Kotlin", "Scala", "R", "SQL", "HTML5", "CSS3", "SCSS", "SASS",
	"React", "Angular", "Vue.js", "Next.js", "Nuxt.js", "Svelte", "Redux", "MobX", "Vuex",
	"React Router", "React Hooks", "Context API", "JSX", "Webpack", "Vite", "Babel",
	"Tailwind CSS", "Bootstrap", "Material UI", "Styled Components", "jQuery",
	"Node.js", "Express.js", "Nest.js", "Django", "Flask", "FastAPI", "Spring Boot",
	"ASP.NET Core", ".NET Framework", "Entity Framework", "Ruby on Rails", "Laravel",
	"PostgreSQL", "MySQL", "SQL Server", "MongoDB", "Redis", "Elasticsearch", "DynamoDB",
	"Cassandra", "Oracle", "SQLite", "Firebase", "Neo4j", "CouchDB",
	"AWS", "Azure", "Google Cloud Platform", "GCP", "Heroku", "Vercel", "Netlify",
	"EC2", "S3", "Lambda", "RDS", "CloudFront", "API Gateway", "CloudFormation",
	"Azure Functions", "Azure DevOps", "Cloud Functions", "BigQuery",
	"Docker", "Kubernetes", "Jenkins", "GitHub Actions", "GitLab CI", "CircleCI",
	"Terraform", "Ansible", "Chef", "Puppet", "Helm", "Docker Compose",
	"Git", "GitHub", "GitLab", "Bitbucket", "SVN", "Mercurial",
	"REST API", "RESTful Services", "GraphQL", "gRPC", "SOAP", "WebSockets",
	"Microservices", "Serverless Architecture", "Event-Driven Architecture",
	"Domain-Driven Design", "Clean Architecture", "MVC", "MVVM",
	"Jest", "Mocha", "Chai", "Jasmine", "Cypress", "Selenium", "Playwright",
	"JUnit", "TestNG", "PyTest", "Unit Testing", "Integration Testing", "E2E Testing",
	"Test-Driven Development", "TDD", "Behavior-Driven Development", "BDD",
	"Prometheus", "Grafana", "ELK Stack", "Logstash", "Kibana",
	"CloudWatch", "Application Insights", "New Relic", "DataDog", "Sentry",
	"OAuth", "OAuth2", "JWT", "SAML", "SSL/TLS", "HTTPS", "Encryption",
	"Authentication", "Authorization", "RBAC", "OWASP", "Security Best Practices",
	"Agile", "Scrum", "Kanban", "DevOps", "CI/CD", "Continuous Integration",
	"Continuous Deployment", "Code Review", "Pair Programming",
	"Team Leadership", "Mentoring", "Cross-Functional Collaboration",
	"Technical Documentation", "Problem Solving", "System Design",
	"Performance Optimization", "Code Quality", "Best Practices",
	"npm", "yarn", "pip", "Maven", "Gradle", "Postman", "Swagger", "Jira",
	"Confluence", "Slack", "VS Code", "IntelliJ IDEA", "Visual Studio",
}
