package votes

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcastro/voteboard/go/internal/criteria"
	"github.com/mcastro/voteboard/go/internal/judges"
	"github.com/mcastro/voteboard/go/internal/models"
	"github.com/mcastro/voteboard/go/internal/teams"
)

// VotesRepository defines what the app layer needs from the repository
type VotesRepository interface {
	GetSubmission(ctx context.Context, judgeID, teamID uuid.UUID) (*Submission, error)
	ReplaceSubmission(ctx context.Context, judgeID, teamID uuid.UUID, entries []VoteEntry, prior *Submission) (*Submission, error)
	ListVotes(ctx context.Context) ([]models.Vote, error)
	DeleteVotesByCriterion(ctx context.Context, criterionID uuid.UUID) (int, error)
	DeleteVotesByTeam(ctx context.Context, teamID uuid.UUID) (int, error)
	DeleteVotesByJudge(ctx context.Context, judgeID uuid.UUID) (int, error)
}

// JudgeSource resolves judge references
type JudgeSource interface {
	GetJudge(ctx context.Context, id uuid.UUID) (*models.Judge, error)
	ListJudges(ctx context.Context) ([]models.Judge, error)
}

// TeamSource resolves team references
type TeamSource interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
}

// CriterionSource resolves criterion references
type CriterionSource interface {
	GetCriterion(ctx context.Context, id uuid.UUID) (*models.Criterion, error)
	ListCriteria(ctx context.Context) ([]models.Criterion, error)
}

// VoteLine is one formatted line of a submission summary handed to the notifier
type VoteLine struct {
	Criterion string
	Value     bool
	Comment   string
}

// Notifier sends the post-submission confirmation. Implementations report
// whether the message went out; they never return an error to the vote path.
type Notifier interface {
	VotesSubmitted(ctx context.Context, judge models.Judge, team models.Team, lines []VoteLine) bool
}

// App handles vote ledger business logic
type App struct {
	repo     VotesRepository
	judges   JudgeSource
	teams    TeamSource
	criteria CriterionSource
	notifier Notifier
	validate *validator.Validate
}

// NewApp creates a new votes App. The notifier may be nil when confirmation
// email is disabled.
func NewApp(repo VotesRepository, judges JudgeSource, teams TeamSource, criteria CriterionSource, notifier Notifier) *App {
	return &App{
		repo:     repo,
		judges:   judges,
		teams:    teams,
		criteria: criteria,
		notifier: notifier,
		validate: validator.New(),
	}
}

// SubmitVotes records one judge's batch of votes for one team. A prior
// submission for the pair rejects the batch with DuplicateSubmissionError
// unless Overwrite is set, in which case the whole pair is replaced. All
// validation and reference resolution happens before any write.
func (a *App) SubmitVotes(ctx context.Context, req SubmitVotesRequest) (*SubmitVotesResult, error) {
	if err := a.validateSubmitVotesRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	judge, err := a.judges.GetJudge(ctx, req.JudgeID)
	if errors.Is(err, judges.ErrNotFound) {
		return nil, fmt.Errorf("%w: judge %s", ErrUnknownReference, req.JudgeID)
	}
	if err != nil {
		return nil, &DependencyError{Op: "resolve judge", Err: err}
	}
	team, err := a.teams.GetTeam(ctx, req.TeamID)
	if errors.Is(err, teams.ErrNotFound) {
		return nil, fmt.Errorf("%w: team %s", ErrUnknownReference, req.TeamID)
	}
	if err != nil {
		return nil, &DependencyError{Op: "resolve team", Err: err}
	}

	lines := make([]VoteLine, 0, len(req.Votes))
	for _, entry := range req.Votes {
		criterion, err := a.criteria.GetCriterion(ctx, entry.CriterionID)
		if errors.Is(err, criteria.ErrNotFound) {
			return nil, fmt.Errorf("%w: criterion %s", ErrUnknownReference, entry.CriterionID)
		}
		if err != nil {
			return nil, &DependencyError{Op: "resolve criterion", Err: err}
		}
		lines = append(lines, VoteLine{
			Criterion: criterion.Name,
			Value:     entry.Value,
			Comment:   entry.Comment,
		})
	}

	prior, err := a.repo.GetSubmission(ctx, req.JudgeID, req.TeamID)
	if err != nil {
		return nil, &DependencyError{Op: "load submission", Err: err}
	}
	if prior != nil && len(prior.Votes) > 0 && !req.Overwrite {
		return nil, &DuplicateSubmissionError{
			JudgeID:     req.JudgeID,
			TeamID:      req.TeamID,
			VoteCount:   len(prior.Votes),
			SubmittedAt: prior.SubmittedAt,
		}
	}

	sub, err := a.repo.ReplaceSubmission(ctx, req.JudgeID, req.TeamID, req.Votes, prior)
	if errors.Is(err, ErrVersionConflict) {
		// A concurrent submission for the same pair won the conditional
		// write. Surface it as a duplicate so the caller reconfirms
		// against the fresh state.
		return nil, a.duplicateFromCurrentState(ctx, req.JudgeID, req.TeamID)
	}
	if err != nil {
		return nil, &DependencyError{Op: "replace submission", Err: err}
	}

	emailSent := false
	if a.notifier != nil {
		emailSent = a.notifier.VotesSubmitted(ctx, *judge, *team, lines)
	}

	log.Info().
		Str("judge_id", req.JudgeID.String()).
		Str("team_id", req.TeamID.String()).
		Int("votes", len(sub.Votes)).
		Bool("overwrote", prior != nil && len(prior.Votes) > 0).
		Bool("email_sent", emailSent).
		Msg("recorded vote submission")

	return &SubmitVotesResult{
		JudgeID:       req.JudgeID,
		TeamID:        req.TeamID,
		VotesRecorded: len(sub.Votes),
		Overwrote:     prior != nil && len(prior.Votes) > 0,
		EmailSent:     emailSent,
		SubmittedAt:   sub.SubmittedAt,
	}, nil
}

// duplicateFromCurrentState re-reads the pair after a lost conditional write
// and reports the winner's submission as the duplicate.
func (a *App) duplicateFromCurrentState(ctx context.Context, judgeID, teamID uuid.UUID) error {
	current, err := a.repo.GetSubmission(ctx, judgeID, teamID)
	if err != nil {
		return &DependencyError{Op: "load submission", Err: err}
	}
	dup := &DuplicateSubmissionError{JudgeID: judgeID, TeamID: teamID}
	if current != nil {
		dup.VoteCount = len(current.Votes)
		dup.SubmittedAt = current.SubmittedAt
	}
	return dup
}

// ListVotes returns every vote enriched with judge, team, and criterion names.
// Votes whose references were deleted out from under them keep empty names.
func (a *App) ListVotes(ctx context.Context) ([]EnrichedVote, error) {
	raw, err := a.repo.ListVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	judgeNames, teamNames, criterionNames, err := a.referenceNames(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedVote, 0, len(raw))
	for _, vote := range raw {
		enriched = append(enriched, EnrichedVote{
			Vote:          vote,
			JudgeName:     judgeNames[vote.JudgeID],
			TeamName:      teamNames[vote.TeamID],
			CriterionName: criterionNames[vote.CriterionID],
		})
	}
	return enriched, nil
}

func (a *App) referenceNames(ctx context.Context) (map[uuid.UUID]string, map[uuid.UUID]string, map[uuid.UUID]string, error) {
	allJudges, err := a.judges.ListJudges(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list judges: %w", err)
	}
	allTeams, err := a.teams.ListTeams(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list teams: %w", err)
	}
	allCriteria, err := a.criteria.ListCriteria(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list criteria: %w", err)
	}

	judgeNames := make(map[uuid.UUID]string, len(allJudges))
	for _, j := range allJudges {
		judgeNames[j.ID] = j.Name
	}
	teamNames := make(map[uuid.UUID]string, len(allTeams))
	for _, t := range allTeams {
		teamNames[t.ID] = t.Name
	}
	criterionNames := make(map[uuid.UUID]string, len(allCriteria))
	for _, c := range allCriteria {
		criterionNames[c.ID] = c.Name
	}
	return judgeNames, teamNames, criterionNames, nil
}

// DeleteVotesForCriterion removes every vote referencing a criterion
func (a *App) DeleteVotesForCriterion(ctx context.Context, criterionID uuid.UUID) (int, error) {
	deleted, err := a.repo.DeleteVotesByCriterion(ctx, criterionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes for criterion: %w", err)
	}
	log.Info().Str("criterion_id", criterionID.String()).Int("deleted", deleted).Msg("purged criterion votes")
	return deleted, nil
}

// DeleteVotesForTeam removes every vote cast for a team
func (a *App) DeleteVotesForTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	deleted, err := a.repo.DeleteVotesByTeam(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes for team: %w", err)
	}
	log.Info().Str("team_id", teamID.String()).Int("deleted", deleted).Msg("purged team votes")
	return deleted, nil
}

// DeleteVotesForJudge removes every vote cast by a judge
func (a *App) DeleteVotesForJudge(ctx context.Context, judgeID uuid.UUID) (int, error) {
	deleted, err := a.repo.DeleteVotesByJudge(ctx, judgeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes for judge: %w", err)
	}
	log.Info().Str("judge_id", judgeID.String()).Int("deleted", deleted).Msg("purged judge votes")
	return deleted, nil
}

// validateSubmitVotesRequest rejects malformed batches before any store access
func (a *App) validateSubmitVotesRequest(req SubmitVotesRequest) error {
	if req.JudgeID == uuid.Nil {
		return fmt.Errorf("judge_id is required")
	}
	if req.TeamID == uuid.Nil {
		return fmt.Errorf("team_id is required")
	}
	if len(req.Votes) == 0 {
		return fmt.Errorf("votes list is empty")
	}
	if err := a.validate.Struct(req); err != nil {
		return err
	}

	seen := make(map[uuid.UUID]struct{}, len(req.Votes))
	for _, entry := range req.Votes {
		if entry.CriterionID == uuid.Nil {
			return fmt.Errorf("criterion_id is required on every vote")
		}
		if _, dup := seen[entry.CriterionID]; dup {
			return fmt.Errorf("criterion %s appears more than once in the batch", entry.CriterionID)
		}
		seen[entry.CriterionID] = struct{}{}
	}
	return nil
}
