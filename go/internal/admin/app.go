package admin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mcastro/voteboard/go/internal/models"
)

// Marker keys written to the settings table on a full reset. Their presence
// tells the seeding tooling that the data set is user managed.
const (
	settingDataCleared   = "sample_data_cleared"
	settingDataClearedAt = "data_cleared_at"
	settingUserManaged   = "user_managed"
)

// TeamsStore defines what the admin app needs from the teams repository
type TeamsStore interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	DeleteAllTeams(ctx context.Context) (int, error)
}

// JudgesStore defines what the admin app needs from the judges repository
type JudgesStore interface {
	ListJudges(ctx context.Context) ([]models.Judge, error)
	DeleteAllJudges(ctx context.Context) (int, error)
}

// CriteriaStore defines what the admin app needs from the criteria repository
type CriteriaStore interface {
	ListCriteria(ctx context.Context) ([]models.Criterion, error)
	DeleteAllCriteria(ctx context.Context) (int, error)
}

// VotesStore defines what the admin app needs from the votes repository
type VotesStore interface {
	ListVotes(ctx context.Context) ([]models.Vote, error)
	DeleteAllVotes(ctx context.Context) (int, error)
}

// SettingsRepository stores reset markers
type SettingsRepository interface {
	PutSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) ([]Setting, error)
}

// App handles destructive operational actions and state inspection
type App struct {
	teams    TeamsStore
	judges   JudgesStore
	criteria CriteriaStore
	votes    VotesStore
	settings SettingsRepository
	clock    clockwork.Clock
}

// NewApp creates a new admin App
func NewApp(teams TeamsStore, judges JudgesStore, criteria CriteriaStore, votes VotesStore, settings SettingsRepository, clock clockwork.Clock) *App {
	return &App{
		teams:    teams,
		judges:   judges,
		criteria: criteria,
		votes:    votes,
		settings: settings,
		clock:    clock,
	}
}

// ClearAllData wipes every table and records reset markers so criteria can be
// re-seeded. Votes go first so no vote ever references a deleted entity.
func (a *App) ClearAllData(ctx context.Context) (*ClearAllDataResult, error) {
	votes, err := a.votes.DeleteAllVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to clear votes: %w", err)
	}
	teams, err := a.teams.DeleteAllTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to clear teams: %w", err)
	}
	judges, err := a.judges.DeleteAllJudges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to clear judges: %w", err)
	}
	criteria, err := a.criteria.DeleteAllCriteria(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to clear criteria: %w", err)
	}

	markers := map[string]string{
		settingDataCleared:   "true",
		settingDataClearedAt: a.clock.Now().UTC().Format(time.RFC3339),
		settingUserManaged:   "true",
	}
	for key, value := range markers {
		if err := a.settings.PutSetting(ctx, key, value); err != nil {
			return nil, fmt.Errorf("failed to record reset marker: %w", err)
		}
	}

	log.Printf("Cleared all data: %d teams, %d judges, %d votes, %d criteria", teams, judges, votes, criteria)
	return &ClearAllDataResult{
		DeletedTeams:    teams,
		DeletedJudges:   judges,
		DeletedVotes:    votes,
		DeletedCriteria: criteria,
	}, nil
}

// SnapshotState dumps every table with counts for debugging
func (a *App) SnapshotState(ctx context.Context) (*Snapshot, error) {
	teams, err := a.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot teams: %w", err)
	}
	judges, err := a.judges.ListJudges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot judges: %w", err)
	}
	criteria, err := a.criteria.ListCriteria(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot criteria: %w", err)
	}
	votes, err := a.votes.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot votes: %w", err)
	}
	settings, err := a.settings.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot settings: %w", err)
	}

	return &Snapshot{
		Teams:    teams,
		Judges:   judges,
		Criteria: criteria,
		Votes:    votes,
		Settings: settings,
		Counts: SnapshotCounts{
			Teams:    len(teams),
			Judges:   len(judges),
			Criteria: len(criteria),
			Votes:    len(votes),
		},
	}, nil
}
