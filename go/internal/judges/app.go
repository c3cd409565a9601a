package judges

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mcastro/voteboard/go/internal/models"
)

// JudgesRepository defines what the app layer needs from the repository
type JudgesRepository interface {
	CreateJudge(ctx context.Context, req CreateJudgeRequest) (*models.Judge, error)
	GetJudge(ctx context.Context, id uuid.UUID) (*models.Judge, error)
	ListJudges(ctx context.Context) ([]models.Judge, error)
	UpdateJudge(ctx context.Context, id uuid.UUID, req UpdateJudgeRequest) (*models.Judge, error)
	DeleteJudge(ctx context.Context, id uuid.UUID) error
}

// VotePurger removes ballot entries cast by a judge being deleted
type VotePurger interface {
	DeleteVotesByJudge(ctx context.Context, judgeID uuid.UUID) (int, error)
}

// App handles judges business logic
type App struct {
	repo     JudgesRepository
	votes    VotePurger
	validate *validator.Validate
}

// NewApp creates a new judges App
func NewApp(repo JudgesRepository, votes VotePurger) *App {
	return &App{
		repo:     repo,
		votes:    votes,
		validate: validator.New(),
	}
}

// CreateJudge creates a new judge with validation
func (a *App) CreateJudge(ctx context.Context, req CreateJudgeRequest) (*models.Judge, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	judge, err := a.repo.CreateJudge(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create judge: %w", err)
	}

	log.Printf("Created judge: %s (%s)", judge.Name, judge.Email)
	return judge, nil
}

// GetJudge retrieves a judge by ID
func (a *App) GetJudge(ctx context.Context, id uuid.UUID) (*models.Judge, error) {
	judge, err := a.repo.GetJudge(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get judge: %w", err)
	}
	return judge, nil
}

// ListJudges retrieves all registered judges
func (a *App) ListJudges(ctx context.Context) ([]models.Judge, error) {
	judges, err := a.repo.ListJudges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list judges: %w", err)
	}
	return judges, nil
}

// UpdateJudge updates an existing judge with validation
func (a *App) UpdateJudge(ctx context.Context, id uuid.UUID, req UpdateJudgeRequest) (*models.Judge, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		req.Email = &trimmed
	}
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	judge, err := a.repo.UpdateJudge(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update judge: %w", err)
	}

	log.Printf("Updated judge: %s (%s)", judge.Name, judge.ID)
	return judge, nil
}

// DeleteJudge deletes a judge and purges every vote they cast
func (a *App) DeleteJudge(ctx context.Context, id uuid.UUID) error {
	if _, err := a.repo.GetJudge(ctx, id); err != nil {
		return fmt.Errorf("failed to get judge: %w", err)
	}

	purged, err := a.votes.DeleteVotesByJudge(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to purge votes for judge: %w", err)
	}

	if err := a.repo.DeleteJudge(ctx, id); err != nil {
		return fmt.Errorf("failed to delete judge: %w", err)
	}

	log.Printf("Deleted judge %s and %d associated votes", id, purged)
	return nil
}
