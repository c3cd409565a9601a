package criteria

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mcastro/voteboard/go/internal/models"
)

// CriteriaRepository defines what the app layer needs from the repository
type CriteriaRepository interface {
	CreateCriterion(ctx context.Context, req CreateCriterionRequest) (*models.Criterion, error)
	GetCriterion(ctx context.Context, id uuid.UUID) (*models.Criterion, error)
	ListCriteria(ctx context.Context) ([]models.Criterion, error)
	UpdateCriterion(ctx context.Context, id uuid.UUID, req UpdateCriterionRequest) (*models.Criterion, error)
	DeleteCriterion(ctx context.Context, id uuid.UUID) error
}

// VotePurger removes ballot entries recorded under a criterion being deleted
type VotePurger interface {
	DeleteVotesByCriterion(ctx context.Context, criterionID uuid.UUID) (int, error)
}

// App handles criteria business logic
type App struct {
	repo     CriteriaRepository
	votes    VotePurger
	validate *validator.Validate
}

// NewApp creates a new criteria App
func NewApp(repo CriteriaRepository, votes VotePurger) *App {
	return &App{
		repo:     repo,
		votes:    votes,
		validate: validator.New(),
	}
}

// CreateCriterion creates a new criterion with validation.
// A zero weight defaults to 1 so every criterion counts.
func (a *App) CreateCriterion(ctx context.Context, req CreateCriterionRequest) (*models.Criterion, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Weight == 0 {
		req.Weight = 1
	}
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	criterion, err := a.repo.CreateCriterion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create criterion: %w", err)
	}

	log.Printf("Created criterion: %s (weight %d)", criterion.Name, criterion.Weight)
	return criterion, nil
}

// GetCriterion retrieves a criterion by ID
func (a *App) GetCriterion(ctx context.Context, id uuid.UUID) (*models.Criterion, error) {
	criterion, err := a.repo.GetCriterion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get criterion: %w", err)
	}
	return criterion, nil
}

// ListCriteria retrieves all judging criteria
func (a *App) ListCriteria(ctx context.Context) ([]models.Criterion, error) {
	criteria, err := a.repo.ListCriteria(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	return criteria, nil
}

// UpdateCriterion updates an existing criterion with validation
func (a *App) UpdateCriterion(ctx context.Context, id uuid.UUID, req UpdateCriterionRequest) (*models.Criterion, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := a.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	criterion, err := a.repo.UpdateCriterion(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update criterion: %w", err)
	}

	log.Printf("Updated criterion: %s (%s)", criterion.Name, criterion.ID)
	return criterion, nil
}

// DeleteCriterion deletes a criterion and purges every vote recorded under it.
// Scores computed afterwards no longer include the criterion.
func (a *App) DeleteCriterion(ctx context.Context, id uuid.UUID) (*DeleteCriterionResult, error) {
	if _, err := a.repo.GetCriterion(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get criterion: %w", err)
	}

	purged, err := a.votes.DeleteVotesByCriterion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to purge votes for criterion: %w", err)
	}

	if err := a.repo.DeleteCriterion(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete criterion: %w", err)
	}

	log.Printf("Deleted criterion %s and %d associated votes", id, purged)
	return &DeleteCriterionResult{
		CriterionID:  id.String(),
		VotesDeleted: purged,
	}, nil
}
