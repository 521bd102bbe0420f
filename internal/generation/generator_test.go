package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-maker/internal/llm"
	"github.com/jonathan/resume-maker/internal/skills"
	"github.com/jonathan/resume-maker/internal/types"
)

// scriptedClient answers prompts by matching on marker text, so one fake
// serves every call the generator makes.
type scriptedClient struct {
	mu    sync.Mutex
	calls int
	err   error
	json  string
}

func (c *scriptedClient) Complete(_ context.Context, prompt string, _ llm.CallOptions) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.err != nil {
		return "", c.err
	}
	switch {
	case strings.Contains(prompt, "professional resume title"):
		return "Senior Platform Engineer | Cloud | Kubernetes", nil
	case strings.Contains(prompt, "professional summary for this job"):
		return "Platform engineer with a decade of cloud experience.", nil
	case strings.Contains(prompt, "Generate a job title for this position"):
		return "Platform Engineer", nil
	case strings.Contains(prompt, "professional job summary"):
		return "At Initech, I built the deployment platform used by every product team.", nil
	default:
		return "ok", nil
	}
}

func (c *scriptedClient) CompleteJSON(ctx context.Context, prompt string, opts llm.CallOptions) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.err != nil {
		return "", c.err
	}
	return c.json, nil
}

func (c *scriptedClient) Model() string { return "scripted" }

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
}

func sampleProfile() *types.UserProfile {
	return &types.UserProfile{
		PersonalInfo: types.PersonalInfo{Name: "Jordan Reyes", Email: "jordan@example.com"},
		Skills:       []string{"Go", "PostgreSQL"},
		WorkExperience: []types.WorkExperience{
			{Company: "Initech", Location: "Austin, TX", StartDate: "Jan 2020", EndDate: "Present"},
			{Company: "Globex", Location: "Denver, CO", StartDate: "Mar 2016", EndDate: "Dec 2019"},
		},
		Education: []types.Education{
			{Degree: "BSc Computer Science", School: "State University", Level: "bachelors"},
		},
	}
}

func TestYearsOfExperience(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		history []types.WorkExperience
		want    int
	}{
		{
			name: "sums spans with present",
			history: []types.WorkExperience{
				{StartDate: "Jan 2018", EndDate: "Present"},
				{StartDate: "2010", EndDate: "2017"},
			},
			want: 14,
		},
		{
			name: "floors at ten",
			history: []types.WorkExperience{
				{StartDate: "2022", EndDate: "2024"},
			},
			want: 10,
		},
		{
			name:    "empty history floors at ten",
			history: nil,
			want:    10,
		},
		{
			name: "unparseable dates ignored",
			history: []types.WorkExperience{
				{StartDate: "a while ago", EndDate: "recently"},
			},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, yearsOfExperience(tt.history, now))
		})
	}
}

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, StrategyParallel, ParseStrategy(""))
	assert.Equal(t, StrategyParallel, ParseStrategy("bogus"))
	assert.Equal(t, StrategySequential, ParseStrategy("sequential"))
	assert.Equal(t, StrategyCombined, ParseStrategy("combined"))
}

func TestGenerateHeuristicOnly(t *testing.T) {
	g := NewGenerator(nil, skills.NewDatabase(), WithClock(fixedClock()))

	record := g.Generate(context.Background(), sampleProfile(), "Full stack role using Angular and AWS infrastructure.", StrategyParallel)

	require.NotNil(t, record)
	assert.NotEmpty(t, record.PersonalInfo.Title)
	assert.NotEmpty(t, record.ProfessionalSummary)
	require.Len(t, record.WorkExperience, 2)
	assert.Equal(t, "Senior Professional", record.WorkExperience[0].Title)
	assert.Contains(t, record.WorkExperience[0].Description, "At Initech,")
	assert.Equal(t, []string{"English (Professional)"}, record.Languages)
	assert.NotEmpty(t, record.Certifications)

	// Angular in the posting pulls ecosystem skills into the section.
	assert.Contains(t, record.Skills, "Angular")
	assert.Contains(t, record.Skills, "TypeScript")
	assert.Contains(t, record.Skills, "EC2")
}

func TestGenerateHeuristicEnhancesEducation(t *testing.T) {
	g := NewGenerator(nil, skills.NewDatabase(), WithClock(fixedClock()))

	record := g.Generate(context.Background(), sampleProfile(), "Backend role.", StrategyParallel)

	require.Len(t, record.Education, 1)
	assert.Contains(t, record.Education[0].Honors, "First-Class Honours")
	assert.NotEmpty(t, record.Education[0].Focus)
}

func TestGenerateParallelUsesClient(t *testing.T) {
	client := &scriptedClient{}
	g := NewGenerator(client, skills.NewDatabase(), WithClock(fixedClock()))

	record := g.Generate(context.Background(), sampleProfile(), "Platform engineering role.", StrategyParallel)

	assert.Equal(t, "Senior Platform Engineer | Cloud | Kubernetes", record.PersonalInfo.Title)
	assert.Equal(t, "Platform engineer with a decade of cloud experience.", record.ProfessionalSummary)
	require.Len(t, record.WorkExperience, 2)
	assert.Equal(t, "Platform Engineer", record.WorkExperience[0].Title)
	assert.Equal(t, "Initech", record.WorkExperience[0].Company)
	assert.Equal(t, "Jan 2020", record.WorkExperience[0].StartDate)
}

// countingClient tracks how many calls are in flight at once.
type countingClient struct {
	mu       sync.Mutex
	inFlight int
	peak     int
}

func (c *countingClient) enter() {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.peak {
		c.peak = c.inFlight
	}
	c.mu.Unlock()
}

func (c *countingClient) leave() {
	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()
}

func (c *countingClient) Complete(_ context.Context, _ string, _ llm.CallOptions) (string, error) {
	c.enter()
	defer c.leave()
	time.Sleep(2 * time.Millisecond)
	return "ok", nil
}

func (c *countingClient) CompleteJSON(ctx context.Context, prompt string, opts llm.CallOptions) (string, error) {
	return c.Complete(ctx, prompt, opts)
}

func (c *countingClient) Model() string { return "counting" }

func TestGenerateParallelBoundsConcurrency(t *testing.T) {
	client := &countingClient{}
	g := NewGenerator(client, skills.NewDatabase(), WithClock(fixedClock()))

	profile := sampleProfile()
	profile.WorkExperience = make([]types.WorkExperience, 40)
	for i := range profile.WorkExperience {
		profile.WorkExperience[i] = types.WorkExperience{
			Company:   fmt.Sprintf("Company %d", i),
			StartDate: "Jan 2016",
			EndDate:   "Present",
		}
	}

	record := g.Generate(context.Background(), profile, "Backend role using Go.", StrategyParallel)

	require.Len(t, record.WorkExperience, 40)
	assert.LessOrEqual(t, client.peak, maxParallelCalls)
	assert.Positive(t, client.peak)
}

func TestGenerateClientFailureFallsBackNonEmpty(t *testing.T) {
	client := &scriptedClient{err: errors.New("provider down")}
	g := NewGenerator(client, skills.NewDatabase(), WithClock(fixedClock()))

	record := g.Generate(context.Background(), sampleProfile(), "Backend role using Go.", StrategySequential)

	assert.NotEmpty(t, record.PersonalInfo.Title)
	assert.NotEmpty(t, record.ProfessionalSummary)
	require.Len(t, record.WorkExperience, 2)
	for _, exp := range record.WorkExperience {
		assert.NotEmpty(t, exp.Title)
		assert.NotEmpty(t, exp.Description)
	}
	assert.NotEmpty(t, record.Skills)
}

func TestGenerateCombinedStrategy(t *testing.T) {
	client := &scriptedClient{json: `{
		"professional_title": "Senior Engineer | Cloud",
		"professional_summary": "Cloud engineer.",
		"work_experiences": [
			{"job_title": "Senior Engineer", "company": "Initech", "description": "At Initech, I led the cloud platform."},
			{"job_title": "Engineer", "company": "Globex", "description": "At Globex, I built services."}
		]
	}`}
	g := NewGenerator(client, skills.NewDatabase(), WithClock(fixedClock()))

	record := g.Generate(context.Background(), sampleProfile(), "Cloud role.", StrategyCombined)

	assert.Equal(t, "Senior Engineer | Cloud", record.PersonalInfo.Title)
	require.Len(t, record.WorkExperience, 2)
	// Caller-supplied companies and dates stay authoritative.
	assert.Equal(t, "Globex", record.WorkExperience[1].Company)
	assert.Equal(t, "Mar 2016", record.WorkExperience[1].StartDate)
}

func TestGenerateCombinedFallsBackOnBadPayload(t *testing.T) {
	client := &scriptedClient{json: `{"professional_title": "only a title"}`}
	g := NewGenerator(client, skills.NewDatabase(), WithClock(fixedClock()))

	record := g.Generate(context.Background(), sampleProfile(), "Cloud role.", StrategyCombined)

	// Parallel fallback kicks in and still produces full content.
	assert.Equal(t, "Senior Platform Engineer | Cloud | Kubernetes", record.PersonalInfo.Title)
	require.Len(t, record.WorkExperience, 2)
}
