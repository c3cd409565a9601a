package criteria

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcastro/voteboard/go/internal/models"
)

type fakeCriteriaRepo struct {
	byID map[uuid.UUID]models.Criterion
}

func newFakeCriteriaRepo() *fakeCriteriaRepo {
	return &fakeCriteriaRepo{byID: make(map[uuid.UUID]models.Criterion)}
}

func (f *fakeCriteriaRepo) CreateCriterion(_ context.Context, req CreateCriterionRequest) (*models.Criterion, error) {
	criterion := models.Criterion{ID: uuid.New(), Name: req.Name, Weight: req.Weight, Description: req.Description}
	f.byID[criterion.ID] = criterion
	return &criterion, nil
}

func (f *fakeCriteriaRepo) GetCriterion(_ context.Context, id uuid.UUID) (*models.Criterion, error) {
	criterion, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &criterion, nil
}

func (f *fakeCriteriaRepo) ListCriteria(_ context.Context) ([]models.Criterion, error) {
	out := make([]models.Criterion, 0, len(f.byID))
	for _, criterion := range f.byID {
		out = append(out, criterion)
	}
	return out, nil
}

func (f *fakeCriteriaRepo) UpdateCriterion(_ context.Context, id uuid.UUID, req UpdateCriterionRequest) (*models.Criterion, error) {
	criterion, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Weight != nil {
		criterion.Weight = *req.Weight
	}
	f.byID[id] = criterion
	return &criterion, nil
}

func (f *fakeCriteriaRepo) DeleteCriterion(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

type fakePurger struct {
	calls  int
	purged int
}

func (f *fakePurger) DeleteVotesByCriterion(_ context.Context, _ uuid.UUID) (int, error) {
	f.calls++
	return f.purged, nil
}

func TestCreateCriterionDefaultsWeight(t *testing.T) {
	app := NewApp(newFakeCriteriaRepo(), &fakePurger{})

	criterion, err := app.CreateCriterion(context.Background(), CreateCriterionRequest{Name: "Clarity"})
	require.NoError(t, err)

	assert.Equal(t, 1, criterion.Weight)
}

func TestCreateCriterionRejectsNegativeWeight(t *testing.T) {
	app := NewApp(newFakeCriteriaRepo(), &fakePurger{})

	_, err := app.CreateCriterion(context.Background(), CreateCriterionRequest{Name: "Clarity", Weight: -3})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDeleteCriterionReportsPurgedVotes(t *testing.T) {
	repo := newFakeCriteriaRepo()
	purger := &fakePurger{purged: 7}
	app := NewApp(repo, purger)

	criterion, err := app.CreateCriterion(context.Background(), CreateCriterionRequest{Name: "Clarity", Weight: 10})
	require.NoError(t, err)

	result, err := app.DeleteCriterion(context.Background(), criterion.ID)
	require.NoError(t, err)

	assert.Equal(t, criterion.ID.String(), result.CriterionID)
	assert.Equal(t, 7, result.VotesDeleted)
	assert.Equal(t, 1, purger.calls)
	assert.Empty(t, repo.byID)
}

func TestDeleteCriterionUnknownID(t *testing.T) {
	purger := &fakePurger{}
	app := NewApp(newFakeCriteriaRepo(), purger)

	_, err := app.DeleteCriterion(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, purger.calls)
}
