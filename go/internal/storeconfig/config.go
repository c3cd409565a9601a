package storeconfig

import (
	"os"
)

// Config holds DynamoDB table names and connection settings.
type Config struct {
	Region   string
	Endpoint string // optional override for local development

	TeamsTable    string
	JudgesTable   string
	VotesTable    string
	CriteriaTable string
	SettingsTable string
}

// NewConfigFromEnv reads store settings from environment variables (with defaults).
func NewConfigFromEnv() Config {
	return Config{
		Region:        getEnv("AWS_REGION", "us-east-1"),
		Endpoint:      os.Getenv("DYNAMO_ENDPOINT"),
		TeamsTable:    getEnv("TEAMS_TABLE", "voteboard-teams"),
		JudgesTable:   getEnv("JUDGES_TABLE", "voteboard-judges"),
		VotesTable:    getEnv("VOTES_TABLE", "voteboard-votes"),
		CriteriaTable: getEnv("CRITERIA_TABLE", "voteboard-criteria"),
		SettingsTable: getEnv("SETTINGS_TABLE", "voteboard-settings"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
