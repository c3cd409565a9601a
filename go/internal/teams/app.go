package teams

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mcastro/voteboard/go/internal/models"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

// VotePurger removes ballot entries that reference a team being deleted
type VotePurger interface {
	DeleteVotesByTeam(ctx context.Context, teamID uuid.UUID) (int, error)
}

// App handles teams business logic
type App struct {
	repo     TeamsRepository
	votes    VotePurger
	validate *validator.Validate
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, votes VotePurger) *App {
	return &App{
		repo:     repo,
		votes:    votes,
		validate: validator.New(),
	}
}

// CreateTeam creates a new team with validation
func (a *App) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	team, err := a.repo.CreateTeam(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	log.Printf("Created team: %s (%s)", team.Name, team.ID)
	return team, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// ListTeams retrieves all registered teams
func (a *App) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := a.repo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// UpdateTeam updates an existing team with validation
func (a *App) UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	team, err := a.repo.UpdateTeam(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	log.Printf("Updated team: %s (%s)", team.Name, team.ID)
	return team, nil
}

// DeleteTeam deletes a team and purges every vote cast for it
func (a *App) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if _, err := a.repo.GetTeam(ctx, id); err != nil {
		return fmt.Errorf("failed to get team: %w", err)
	}

	purged, err := a.votes.DeleteVotesByTeam(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to purge votes for team: %w", err)
	}

	if err := a.repo.DeleteTeam(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	log.Printf("Deleted team %s and %d associated votes", id, purged)
	return nil
}
