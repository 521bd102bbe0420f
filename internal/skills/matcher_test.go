package skills

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKeywordsFindsDatabaseTerms(t *testing.T) {
	db := NewDatabase()

	jd := "We are looking for an engineer with strong python and PostgreSQL experience, plus docker."
	keywords := db.ExtractKeywords(jd)

	assert.Contains(t, keywords, "Python")
	assert.Contains(t, keywords, "PostgreSQL")
	assert.Contains(t, keywords, "Docker")
}

func TestExtractKeywordsSortedCappedUnique(t *testing.T) {
	db := NewDatabase()

	// Mention enough database terms to overflow the cap.
	jd := strings.Join(defaultTerms[:120], ", ")
	keywords := db.ExtractKeywords(jd)

	assert.LessOrEqual(t, len(keywords), 50)
	assert.True(t, sort.StringsAreSorted(keywords))

	seen := make(map[string]int)
	for _, k := range keywords {
		seen[k]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "duplicate keyword %q", k)
	}
}

func TestExtractKeywordsCapturesCapitalizedTokens(t *testing.T) {
	db := NewDatabase()

	keywords := db.ExtractKeywords("Experience with Snowflake and Databricks required.")

	assert.Contains(t, keywords, "Snowflake")
	assert.Contains(t, keywords, "Databricks")
}

func TestRelevantSkillsAngularEcosystem(t *testing.T) {
	db := NewDatabase()

	relevant := db.RelevantSkills("Angular developer needed for a frontend team.")

	assert.Contains(t, relevant, "Angular")
	assert.Contains(t, relevant, "TypeScript")
	assert.Contains(t, relevant, "RxJS")
	assert.Contains(t, relevant, "Redux")
}

func TestRelevantSkillsAWSLowercaseTrigger(t *testing.T) {
	db := NewDatabase()

	// "aws" appears only in lowercase prose, never as a matched skill.
	relevant := db.RelevantSkills("the role involves deploying services to aws infrastructure")

	assert.Contains(t, relevant, "EC2")
	assert.Contains(t, relevant, "CloudFormation")
}

func TestRelevantSkillsFiltersStopWords(t *testing.T) {
	db := NewDatabase()

	relevant := db.RelevantSkills("The Kubernetes administrator Should Provide support")

	assert.Contains(t, relevant, "Kubernetes")
	assert.NotContains(t, relevant, "The")
	assert.NotContains(t, relevant, "Should")
	assert.NotContains(t, relevant, "Provide")
}

func TestRelevantSkillsDatabaseMatchesComeFirst(t *testing.T) {
	db := NewDatabase()

	relevant := db.RelevantSkills("Zephyr project using React and Docker")
	require.NotEmpty(t, relevant)

	idx := func(s string) int {
		for i, v := range relevant {
			if v == s {
				return i
			}
		}
		return -1
	}
	require.GreaterOrEqual(t, idx("React"), 0)
	require.GreaterOrEqual(t, idx("Zephyr"), 0)
	assert.Less(t, idx("React"), idx("Zephyr"))
}

func TestMergeForResumeOrdering(t *testing.T) {
	relevant := []string{"React", "TypeScript", "AWS", "Docker"}
	user := []string{"Photoshop", "React", "Docker", "Excel"}

	merged := MergeForResume(relevant, user)

	// Shared skills first in relevant order, then job-only, then user-only.
	assert.Equal(t, []string{"React", "Docker", "TypeScript", "AWS", "Photoshop", "Excel"}, merged)
}

func TestMergeForResumeNoDuplicates(t *testing.T) {
	merged := MergeForResume([]string{"Go", "Go", "SQL"}, []string{"SQL", "Go"})

	assert.Equal(t, []string{"Go", "SQL"}, merged)
}

func TestMergeForResumeEmptyInputs(t *testing.T) {
	assert.Empty(t, MergeForResume(nil, nil))
	assert.Equal(t, []string{"Go"}, MergeForResume(nil, []string{"Go"}))
	assert.Equal(t, []string{"Go"}, MergeForResume([]string{"Go"}, nil))
}
