package teams

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcastro/voteboard/go/internal/models"
)

type fakeTeamsRepo struct {
	byID        map[uuid.UUID]models.Team
	deleteCalls int
}

func newFakeTeamsRepo() *fakeTeamsRepo {
	return &fakeTeamsRepo{byID: make(map[uuid.UUID]models.Team)}
}

func (f *fakeTeamsRepo) CreateTeam(_ context.Context, req CreateTeamRequest) (*models.Team, error) {
	team := models.Team{
		ID:               uuid.New(),
		Name:             req.Name,
		ProblemStatement: req.ProblemStatement,
		SuccessCriteria:  req.SuccessCriteria,
		Description:      req.Description,
	}
	f.byID[team.ID] = team
	return &team, nil
}

func (f *fakeTeamsRepo) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	team, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &team, nil
}

func (f *fakeTeamsRepo) ListTeams(_ context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(f.byID))
	for _, team := range f.byID {
		out = append(out, team)
	}
	return out, nil
}

func (f *fakeTeamsRepo) UpdateTeam(_ context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	team, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		team.Name = *req.Name
	}
	f.byID[id] = team
	return &team, nil
}

func (f *fakeTeamsRepo) DeleteTeam(_ context.Context, id uuid.UUID) error {
	f.deleteCalls++
	delete(f.byID, id)
	return nil
}

type fakePurger struct {
	calls  int
	lastID uuid.UUID
	purged int
	err    error
}

func (f *fakePurger) DeleteVotesByTeam(_ context.Context, teamID uuid.UUID) (int, error) {
	f.calls++
	f.lastID = teamID
	return f.purged, f.err
}

func TestCreateTeamTrimsAndValidates(t *testing.T) {
	repo := newFakeTeamsRepo()
	app := NewApp(repo, &fakePurger{})

	team, err := app.CreateTeam(context.Background(), CreateTeamRequest{Name: "  Rocket  "})
	require.NoError(t, err)
	assert.Equal(t, "Rocket", team.Name)

	_, err = app.CreateTeam(context.Background(), CreateTeamRequest{Name: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestUpdateTeamUnknownID(t *testing.T) {
	app := NewApp(newFakeTeamsRepo(), &fakePurger{})

	name := "Renamed"
	_, err := app.UpdateTeam(context.Background(), uuid.New(), UpdateTeamRequest{Name: &name})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTeamPurgesVotesFirst(t *testing.T) {
	repo := newFakeTeamsRepo()
	purger := &fakePurger{purged: 5}
	app := NewApp(repo, purger)

	team, err := app.CreateTeam(context.Background(), CreateTeamRequest{Name: "Rocket"})
	require.NoError(t, err)

	require.NoError(t, app.DeleteTeam(context.Background(), team.ID))

	assert.Equal(t, 1, purger.calls)
	assert.Equal(t, team.ID, purger.lastID)
	assert.Empty(t, repo.byID)
}

func TestDeleteTeamAbortsWhenPurgeFails(t *testing.T) {
	repo := newFakeTeamsRepo()
	purger := &fakePurger{err: errors.New("index unavailable")}
	app := NewApp(repo, purger)

	team, err := app.CreateTeam(context.Background(), CreateTeamRequest{Name: "Rocket"})
	require.NoError(t, err)

	err = app.DeleteTeam(context.Background(), team.ID)

	require.Error(t, err)
	assert.Equal(t, 0, repo.deleteCalls)
	assert.Len(t, repo.byID, 1)
}

func TestDeleteTeamUnknownID(t *testing.T) {
	purger := &fakePurger{}
	app := NewApp(newFakeTeamsRepo(), purger)

	err := app.DeleteTeam(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, purger.calls)
}
