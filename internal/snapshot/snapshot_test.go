package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-maker/internal/types"
)

func TestLoadMissingReturnsEmptyTemplate(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "data", "user_data.json"))

	profile, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, profile.PersonalInfo.Name)
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.WorkExperience)
	assert.NotNil(t, profile.Education)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "user_data.json")
	store := NewStore(path)

	profile := &types.UserProfile{
		PersonalInfo: types.PersonalInfo{
			Name:  "Jordan Smith",
			Email: "jordan@example.com",
		},
		Skills: []string{"Go", "PostgreSQL"},
		WorkExperience: []types.WorkExperience{
			{Company: "Initech", StartDate: "2020", EndDate: "Present"},
		},
	}
	require.NoError(t, store.Save(profile))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Jordan Smith", loaded.PersonalInfo.Name)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, loaded.Skills)
	require.Len(t, loaded.WorkExperience, 1)
	assert.Equal(t, "Initech", loaded.WorkExperience[0].Company)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	store := NewStore(path)

	require.NoError(t, store.Save(&types.UserProfile{PersonalInfo: types.PersonalInfo{Name: "First"}}))
	require.NoError(t, store.Save(&types.UserProfile{PersonalInfo: types.PersonalInfo{Name: "Second"}}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Second", loaded.PersonalInfo.Name)

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
