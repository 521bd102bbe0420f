// Package generation orchestrates resume content generation: skill
// assembly, AI content calls with fallbacks, and the final record handed to
// the renderer.
package generation

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-maker/internal/llm"
	"github.com/jonathan/resume-maker/internal/skills"
	"github.com/jonathan/resume-maker/internal/types"
)

// Strategy selects how AI content calls are issued.
type Strategy string

const (
	// StrategyParallel fans out every content call at once. Default.
	StrategyParallel Strategy = "parallel"
	// StrategySequential issues content calls one at a time.
	StrategySequential Strategy = "sequential"
	// StrategyCombined builds everything in a single JSON call, falling
	// back to parallel when the payload is unusable.
	StrategyCombined Strategy = "combined"
)

// maxParallelCalls caps in-flight upstream calls in parallel mode so a long
// work history cannot flood the AI provider.
const maxParallelCalls = 8

// ParseStrategy maps a request string to a Strategy, defaulting to parallel.
func ParseStrategy(s string) Strategy {
	switch Strategy(s) {
	case StrategySequential:
		return StrategySequential
	case StrategyCombined:
		return StrategyCombined
	default:
		return StrategyParallel
	}
}

// Generator builds complete resume records from a user profile and a target
// job description.
type Generator struct {
	client    llm.Client // nil means heuristic-only generation
	database  *skills.Database
	extractor *llm.SkillExtractor
	now       func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for year calculations. For tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator. A nil client disables AI calls entirely
// and every piece of content comes from the heuristic fallbacks.
func NewGenerator(client llm.Client, database *skills.Database, opts ...Option) *Generator {
	g := &Generator{
		client:   client,
		database: database,
		now:      time.Now,
	}
	if client != nil {
		g.extractor = llm.NewSkillExtractor(client)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// YearsOfExperience exposes the experience calculation used in prompts.
func (g *Generator) YearsOfExperience(history []types.WorkExperience) int {
	return yearsOfExperience(history, g.now())
}

// Generate produces the full resume record for a profile and target job
// description. It never fails outright: every content field has a heuristic
// fallback, so the worst case is a generic but complete record.
func (g *Generator) Generate(ctx context.Context, profile *types.UserProfile, jobDescription string, strategy Strategy) *types.ResumeRecord {
	history := profile.WorkExperience
	years := yearsOfExperience(history, g.now())

	resumeSkills := g.assembleSkills(ctx, jobDescription, profile.Skills)

	var title, summary string
	var experiences []types.GeneratedExperience

	switch {
	case g.client == nil:
		title, summary, experiences = g.generateHeuristic(jobDescription, years, history)
	case strategy == StrategyCombined:
		content, err := g.generateCombined(ctx, jobDescription, years, history)
		if err != nil {
			log.Printf("[WARN] combined strategy failed, falling back to parallel: %v", err)
			title, summary, experiences = g.generateParallel(ctx, jobDescription, years, history)
		} else {
			title, summary, experiences = g.applyCombined(content, history)
		}
	case strategy == StrategySequential:
		title, summary, experiences = g.generateSequential(ctx, jobDescription, years, history)
	default:
		title, summary, experiences = g.generateParallel(ctx, jobDescription, years, history)
	}

	personal := profile.PersonalInfo
	personal.Title = title

	languages := profile.Languages
	if len(languages) == 0 {
		languages = []string{"English (Professional)"}
	}

	projects := profile.Projects
	if projects == nil {
		projects = []types.Project{}
	}

	return &types.ResumeRecord{
		PersonalInfo:        personal,
		ProfessionalSummary: summary,
		Skills:              resumeSkills,
		WorkExperience:      experiences,
		Certifications:      defaultCertifications(jobDescription, g.now()),
		Education:           enhanceEducation(profile.Education),
		Languages:           languages,
		Projects:            projects,
	}
}

// assembleSkills builds the skills section: AI extraction plus the user's
// own skills when a client is available, otherwise database matching with
// the merge ordering.
func (g *Generator) assembleSkills(ctx context.Context, jobDescription string, userSkills []string) []string {
	if g.extractor != nil {
		extracted := g.extractor.ExtractSkills(ctx, jobDescription)
		have := make(map[string]struct{}, len(extracted))
		for _, s := range extracted {
			have[s] = struct{}{}
		}
		for _, s := range userSkills {
			if _, ok := have[s]; !ok {
				extracted = append(extracted, s)
			}
		}
		return extracted
	}
	return skills.MergeForResume(g.database.RelevantSkills(jobDescription), userSkills)
}

// generateParallel fans out the title, summary, and every position's content
// simultaneously. Individual call failures degrade to fallback text inside
// each call, so the group never aborts.
func (g *Generator) generateParallel(ctx context.Context, jobDescription string, years int, history []types.WorkExperience) (string, string, []types.GeneratedExperience) {
	log.Printf("[AI] parallel mode: issuing all content calls simultaneously")
	start := time.Now()

	var title, summary string
	experiences := make([]types.GeneratedExperience, len(history))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelCalls)

	eg.Go(func() error {
		title = g.professionalTitle(egCtx, jobDescription, years)
		return nil
	})
	eg.Go(func() error {
		summary = g.professionalSummary(egCtx, jobDescription, years, history)
		return nil
	})

	for idx, exp := range history {
		eg.Go(func() error {
			experiences[idx] = g.generatePosition(egCtx, jobDescription, exp, idx)
			return nil
		})
	}

	_ = eg.Wait()
	log.Printf("[AI] parallel mode completed in %.2fs (%d experiences)", time.Since(start).Seconds(), len(experiences))
	return title, summary, experiences
}

func (g *Generator) generateSequential(ctx context.Context, jobDescription string, years int, history []types.WorkExperience) (string, string, []types.GeneratedExperience) {
	title := g.professionalTitle(ctx, jobDescription, years)
	summary := g.professionalSummary(ctx, jobDescription, years, history)

	experiences := make([]types.GeneratedExperience, len(history))
	for idx, exp := range history {
		experiences[idx] = g.generatePosition(ctx, jobDescription, exp, idx)
	}
	return title, summary, experiences
}

// generatePosition produces the title and description for one entry, title
// first so the description prompt can reference it.
func (g *Generator) generatePosition(ctx context.Context, jobDescription string, exp types.WorkExperience, index int) types.GeneratedExperience {
	tenure := yearsAtCompany(exp, g.now())
	title := g.positionTitle(ctx, jobDescription, exp, index, tenure)
	description := g.workDescription(ctx, jobDescription, exp, title, index)

	return types.GeneratedExperience{
		Title:       title,
		Company:     exp.Company,
		Location:    exp.Location,
		StartDate:   exp.StartDate,
		EndDate:     exp.EndDate,
		Description: description,
	}
}

// applyCombined maps a validated single-call payload onto the work history,
// keeping caller-supplied companies and dates authoritative.
func (g *Generator) applyCombined(content *combinedContent, history []types.WorkExperience) (string, string, []types.GeneratedExperience) {
	var experiences []types.GeneratedExperience
	for idx, gen := range content.WorkExperiences {
		if idx >= len(history) {
			break
		}
		experiences = append(experiences, types.GeneratedExperience{
			Title:       gen.JobTitle,
			Company:     history[idx].Company,
			Location:    history[idx].Location,
			StartDate:   history[idx].StartDate,
			EndDate:     history[idx].EndDate,
			Description: gen.Description,
		})
	}
	return content.ProfessionalTitle, content.ProfessionalSummary, experiences
}

// generateHeuristic builds everything from templates, for when no model
// client is configured.
func (g *Generator) generateHeuristic(jobDescription string, years int, history []types.WorkExperience) (string, string, []types.GeneratedExperience) {
	title := fallbackTitle(jobDescription)
	summary := fallbackSummary(jobDescription, years)

	experiences := make([]types.GeneratedExperience, len(history))
	for idx, exp := range history {
		experiences[idx] = types.GeneratedExperience{
			Title:       fallbackPositionTitle(idx),
			Company:     exp.Company,
			Location:    exp.Location,
			StartDate:   exp.StartDate,
			EndDate:     exp.EndDate,
			Description: fallbackDescription(exp.Company),
		}
	}
	return title, summary, experiences
}
