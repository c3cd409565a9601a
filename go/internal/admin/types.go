package admin

import "github.com/mcastro/voteboard/go/internal/models"

// Setting is one key/value marker in the settings table
type Setting struct {
	Key   string `json:"key" dynamodbav:"key"`
	Value string `json:"value" dynamodbav:"value"`
}

// ClearAllDataResult reports what a full reset removed
type ClearAllDataResult struct {
	DeletedTeams    int `json:"deleted_teams"`
	DeletedJudges   int `json:"deleted_judges"`
	DeletedVotes    int `json:"deleted_votes"`
	DeletedCriteria int `json:"deleted_criteria"`
}

// SnapshotCounts summarizes table sizes
type SnapshotCounts struct {
	Teams    int `json:"teams"`
	Judges   int `json:"judges"`
	Criteria int `json:"criteria"`
	Votes    int `json:"votes"`
}

// Snapshot is a full dump of the database state for inspection
type Snapshot struct {
	Teams    []models.Team      `json:"teams"`
	Judges   []models.Judge     `json:"judges"`
	Criteria []models.Criterion `json:"criteria"`
	Votes    []models.Vote      `json:"votes"`
	Settings []Setting          `json:"settings"`
	Counts   SnapshotCounts     `json:"counts"`
}
