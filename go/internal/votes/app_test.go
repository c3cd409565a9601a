package votes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcastro/voteboard/go/internal/criteria"
	"github.com/mcastro/voteboard/go/internal/judges"
	"github.com/mcastro/voteboard/go/internal/models"
	"github.com/mcastro/voteboard/go/internal/teams"
)

var submitTime = time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)

type fakeRepo struct {
	submissions  map[string]*Submission
	votes        []models.Vote
	getErr       error
	replaceErr   error
	getCalls     int
	replaceCalls int
	lastEntries  []VoteEntry
	lastPrior    *Submission
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{submissions: make(map[string]*Submission)}
}

func (f *fakeRepo) GetSubmission(_ context.Context, judgeID, teamID uuid.UUID) (*Submission, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.submissions[judgeID.String()+"#"+teamID.String()], nil
}

func (f *fakeRepo) ReplaceSubmission(_ context.Context, judgeID, teamID uuid.UUID, entries []VoteEntry, prior *Submission) (*Submission, error) {
	f.replaceCalls++
	f.lastEntries = entries
	f.lastPrior = prior
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}

	version := int64(1)
	if prior != nil {
		version = prior.Version + 1
	}
	sub := &Submission{
		JudgeID:     judgeID,
		TeamID:      teamID,
		Version:     version,
		SubmittedAt: submitTime,
	}
	for _, entry := range entries {
		sub.Votes = append(sub.Votes, models.Vote{
			JudgeID:     judgeID,
			TeamID:      teamID,
			CriterionID: entry.CriterionID,
			Value:       entry.Value,
			Comment:     entry.Comment,
			CreatedAt:   submitTime,
		})
	}
	f.submissions[judgeID.String()+"#"+teamID.String()] = sub
	return sub, nil
}

func (f *fakeRepo) ListVotes(_ context.Context) ([]models.Vote, error) {
	return f.votes, nil
}

func (f *fakeRepo) DeleteVotesByCriterion(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeRepo) DeleteVotesByTeam(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeRepo) DeleteVotesByJudge(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

type fakeJudges struct {
	byID map[uuid.UUID]models.Judge
}

func (f *fakeJudges) GetJudge(_ context.Context, id uuid.UUID) (*models.Judge, error) {
	judge, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to get judge: %w", judges.ErrNotFound)
	}
	return &judge, nil
}

func (f *fakeJudges) ListJudges(_ context.Context) ([]models.Judge, error) {
	out := make([]models.Judge, 0, len(f.byID))
	for _, j := range f.byID {
		out = append(out, j)
	}
	return out, nil
}

type fakeTeams struct {
	byID map[uuid.UUID]models.Team
}

func (f *fakeTeams) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	team, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to get team: %w", teams.ErrNotFound)
	}
	return &team, nil
}

func (f *fakeTeams) ListTeams(_ context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, t)
	}
	return out, nil
}

type fakeCriteria struct {
	byID map[uuid.UUID]models.Criterion
}

func (f *fakeCriteria) GetCriterion(_ context.Context, id uuid.UUID) (*models.Criterion, error) {
	criterion, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to get criterion: %w", criteria.ErrNotFound)
	}
	return &criterion, nil
}

func (f *fakeCriteria) ListCriteria(_ context.Context) ([]models.Criterion, error) {
	out := make([]models.Criterion, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

type fakeNotifier struct {
	calls  int
	result bool
	judge  models.Judge
	team   models.Team
	lines  []VoteLine
}

func (f *fakeNotifier) VotesSubmitted(_ context.Context, judge models.Judge, team models.Team, lines []VoteLine) bool {
	f.calls++
	f.judge = judge
	f.team = team
	f.lines = lines
	return f.result
}

type fixture struct {
	app      *App
	repo     *fakeRepo
	notifier *fakeNotifier
	judge    models.Judge
	team     models.Team
	crit1    models.Criterion
	crit2    models.Criterion
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	judge := models.Judge{ID: uuid.New(), Name: "Dana", Email: "dana@example.com"}
	team := models.Team{ID: uuid.New(), Name: "Rocket"}
	crit1 := models.Criterion{ID: uuid.New(), Name: "Problem Understanding", Weight: 15}
	crit2 := models.Criterion{ID: uuid.New(), Name: "Team Collaboration", Weight: 10}

	repo := newFakeRepo()
	notifier := &fakeNotifier{result: true}
	app := NewApp(
		repo,
		&fakeJudges{byID: map[uuid.UUID]models.Judge{judge.ID: judge}},
		&fakeTeams{byID: map[uuid.UUID]models.Team{team.ID: team}},
		&fakeCriteria{byID: map[uuid.UUID]models.Criterion{crit1.ID: crit1, crit2.ID: crit2}},
		notifier,
	)

	return &fixture{app: app, repo: repo, notifier: notifier, judge: judge, team: team, crit1: crit1, crit2: crit2}
}

func (f *fixture) request() SubmitVotesRequest {
	return SubmitVotesRequest{
		JudgeID: f.judge.ID,
		TeamID:  f.team.ID,
		Votes: []VoteEntry{
			{CriterionID: f.crit1.ID, Value: true, Comment: "solid"},
			{CriterionID: f.crit2.ID, Value: false},
		},
	}
}

func TestSubmitVotesFirstSubmission(t *testing.T) {
	f := newFixture(t)

	result, err := f.app.SubmitVotes(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, f.judge.ID, result.JudgeID)
	assert.Equal(t, f.team.ID, result.TeamID)
	assert.Equal(t, 2, result.VotesRecorded)
	assert.False(t, result.Overwrote)
	assert.True(t, result.EmailSent)
	assert.Equal(t, submitTime, result.SubmittedAt)

	assert.Equal(t, 1, f.repo.replaceCalls)
	assert.Nil(t, f.repo.lastPrior)
}

func TestSubmitVotesNotifiesOncePerSubmission(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.SubmitVotes(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, f.judge.Email, f.notifier.judge.Email)
	assert.Equal(t, f.team.Name, f.notifier.team.Name)
	require.Len(t, f.notifier.lines, 2)
	assert.Equal(t, "Problem Understanding", f.notifier.lines[0].Criterion)
	assert.True(t, f.notifier.lines[0].Value)
	assert.Equal(t, "solid", f.notifier.lines[0].Comment)
}

func TestSubmitVotesDuplicateWithoutOverwrite(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.SubmitVotes(context.Background(), f.request())
	require.NoError(t, err)

	_, err = f.app.SubmitVotes(context.Background(), f.request())

	var dup *DuplicateSubmissionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 2, dup.VoteCount)
	assert.Equal(t, submitTime, dup.SubmittedAt)
	assert.Equal(t, f.judge.ID, dup.JudgeID)
	assert.Equal(t, f.team.ID, dup.TeamID)

	// The rejected attempt must not touch the ledger.
	assert.Equal(t, 1, f.repo.replaceCalls)
	assert.Equal(t, int64(1), f.repo.submissions[f.judge.ID.String()+"#"+f.team.ID.String()].Version)
}

func TestSubmitVotesOverwriteReplaces(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.SubmitVotes(context.Background(), f.request())
	require.NoError(t, err)

	req := f.request()
	req.Overwrite = true
	req.Votes = []VoteEntry{{CriterionID: f.crit1.ID, Value: false, Comment: "changed my mind"}}

	result, err := f.app.SubmitVotes(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Overwrote)
	assert.Equal(t, 1, result.VotesRecorded)
	require.NotNil(t, f.repo.lastPrior)
	assert.Equal(t, int64(1), f.repo.lastPrior.Version)

	stored := f.repo.submissions[f.judge.ID.String()+"#"+f.team.ID.String()]
	assert.Equal(t, int64(2), stored.Version)
	require.Len(t, stored.Votes, 1)
	assert.False(t, stored.Votes[0].Value)
}

func TestSubmitVotesUnknownReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fixture, *SubmitVotesRequest)
	}{
		{"unknown judge", func(_ *fixture, req *SubmitVotesRequest) { req.JudgeID = uuid.New() }},
		{"unknown team", func(_ *fixture, req *SubmitVotesRequest) { req.TeamID = uuid.New() }},
		{"unknown criterion", func(_ *fixture, req *SubmitVotesRequest) { req.Votes[0].CriterionID = uuid.New() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request()
			tt.mutate(f, &req)

			_, err := f.app.SubmitVotes(context.Background(), req)

			assert.ErrorIs(t, err, ErrUnknownReference)
			assert.Equal(t, 0, f.repo.replaceCalls)
			assert.Equal(t, 0, f.notifier.calls)
		})
	}
}

func TestSubmitVotesValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fixture, *SubmitVotesRequest)
	}{
		{"missing judge id", func(_ *fixture, req *SubmitVotesRequest) { req.JudgeID = uuid.Nil }},
		{"missing team id", func(_ *fixture, req *SubmitVotesRequest) { req.TeamID = uuid.Nil }},
		{"empty votes", func(_ *fixture, req *SubmitVotesRequest) { req.Votes = nil }},
		{"missing criterion id", func(_ *fixture, req *SubmitVotesRequest) { req.Votes[0].CriterionID = uuid.Nil }},
		{"duplicate criterion in batch", func(f *fixture, req *SubmitVotesRequest) {
			req.Votes[1].CriterionID = f.crit1.ID
		}},
		{"comment too long", func(_ *fixture, req *SubmitVotesRequest) {
			req.Votes[0].Comment = strings.Repeat("x", 2001)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request()
			tt.mutate(f, &req)

			_, err := f.app.SubmitVotes(context.Background(), req)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			// Validation rejects before any store access.
			assert.Equal(t, 0, f.repo.getCalls)
			assert.Equal(t, 0, f.repo.replaceCalls)
		})
	}
}

func TestSubmitVotesVersionConflictReportsDuplicate(t *testing.T) {
	f := newFixture(t)
	f.repo.replaceErr = ErrVersionConflict
	f.repo.submissions[f.judge.ID.String()+"#"+f.team.ID.String()] = &Submission{
		JudgeID:     f.judge.ID,
		TeamID:      f.team.ID,
		Votes:       []models.Vote{{CriterionID: f.crit1.ID}, {CriterionID: f.crit2.ID}},
		Version:     4,
		SubmittedAt: submitTime,
	}

	req := f.request()
	req.Overwrite = true
	_, err := f.app.SubmitVotes(context.Background(), req)

	var dup *DuplicateSubmissionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 2, dup.VoteCount)
	assert.Equal(t, 0, f.notifier.calls)
}

func TestSubmitVotesStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.replaceErr = errors.New("throughput exceeded")

	_, err := f.app.SubmitVotes(context.Background(), f.request())

	var dep *DependencyError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, "replace submission", dep.Op)
	assert.Equal(t, 0, f.notifier.calls)
}

func TestSubmitVotesEmailFailureDoesNotFailSubmission(t *testing.T) {
	f := newFixture(t)
	f.notifier.result = false

	result, err := f.app.SubmitVotes(context.Background(), f.request())

	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Equal(t, 2, result.VotesRecorded)
}

func TestSubmitVotesNilNotifier(t *testing.T) {
	f := newFixture(t)
	f.app.notifier = nil

	result, err := f.app.SubmitVotes(context.Background(), f.request())

	require.NoError(t, err)
	assert.False(t, result.EmailSent)
}

func TestListVotesEnrichesNames(t *testing.T) {
	f := newFixture(t)
	deletedCriterion := uuid.New()
	f.repo.votes = []models.Vote{
		{JudgeID: f.judge.ID, TeamID: f.team.ID, CriterionID: f.crit1.ID, Value: true},
		{JudgeID: f.judge.ID, TeamID: f.team.ID, CriterionID: deletedCriterion, Value: false},
	}

	enriched, err := f.app.ListVotes(context.Background())
	require.NoError(t, err)
	require.Len(t, enriched, 2)

	assert.Equal(t, "Dana", enriched[0].JudgeName)
	assert.Equal(t, "Rocket", enriched[0].TeamName)
	assert.Equal(t, "Problem Understanding", enriched[0].CriterionName)
	assert.Empty(t, enriched[1].CriterionName)
}
