package storeconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("DYNAMO_ENDPOINT", "")
	t.Setenv("TEAMS_TABLE", "")
	t.Setenv("VOTES_TABLE", "")

	cfg := NewConfigFromEnv()

	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Empty(t, cfg.Endpoint)
	assert.Equal(t, "voteboard-teams", cfg.TeamsTable)
	assert.Equal(t, "voteboard-judges", cfg.JudgesTable)
	assert.Equal(t, "voteboard-votes", cfg.VotesTable)
	assert.Equal(t, "voteboard-criteria", cfg.CriteriaTable)
	assert.Equal(t, "voteboard-settings", cfg.SettingsTable)
}

func TestNewConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("DYNAMO_ENDPOINT", "http://localhost:8000")
	t.Setenv("VOTES_TABLE", "event-votes")

	cfg := NewConfigFromEnv()

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
	assert.Equal(t, "event-votes", cfg.VotesTable)
	assert.Equal(t, "voteboard-teams", cfg.TeamsTable)
}
