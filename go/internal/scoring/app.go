package scoring

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mcastro/voteboard/go/internal/models"
)

// VoteSource reads raw votes from the ledger
type VoteSource interface {
	QueryVotesByTeam(ctx context.Context, teamID uuid.UUID) ([]models.Vote, error)
}

// TeamSource lists the teams to rank
type TeamSource interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
}

// CriterionSource lists the criteria in force at query time
type CriterionSource interface {
	ListCriteria(ctx context.Context) ([]models.Criterion, error)
}

// App computes scores at read time from the raw vote ledger. Nothing here is
// cached or stored; every call reflects the ledger as it stands.
type App struct {
	votes    VoteSource
	teams    TeamSource
	criteria CriterionSource
}

// NewApp creates a new scoring App
func NewApp(votes VoteSource, teams TeamSource, criteria CriterionSource) *App {
	return &App{
		votes:    votes,
		teams:    teams,
		criteria: criteria,
	}
}

// ComputeJudgePercentage returns the share of existing criteria the judge
// answered yes on for the team, in [0,100]. With no criteria defined the
// result is not applicable rather than a division by zero.
func (a *App) ComputeJudgePercentage(ctx context.Context, judgeID, teamID uuid.UUID) (*JudgeScore, error) {
	liveCriteria, err := a.liveCriteriaSet(ctx)
	if err != nil {
		return nil, err
	}

	score := &JudgeScore{
		JudgeID:       judgeID,
		TeamID:        teamID,
		TotalCriteria: len(liveCriteria),
	}
	if len(liveCriteria) == 0 {
		return score, nil
	}

	teamVotes, err := a.votes.QueryVotesByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes for team: %w", err)
	}
	for _, vote := range teamVotes {
		if vote.JudgeID != judgeID {
			continue
		}
		if _, live := liveCriteria[vote.CriterionID]; !live {
			continue
		}
		if vote.Value {
			score.YesVotes++
		}
	}

	score.Applicable = true
	score.Percentage = float64(score.YesVotes) / float64(score.TotalCriteria) * 100
	return score, nil
}

// ComputeTeamScore returns the mean judge percentage over every judge who
// cast at least one vote for the team. Judges who never voted are excluded,
// not counted as zero. No voters means the team is unscored.
func (a *App) ComputeTeamScore(ctx context.Context, teamID uuid.UUID) (*TeamScore, error) {
	liveCriteria, err := a.liveCriteriaSet(ctx)
	if err != nil {
		return nil, err
	}
	teamVotes, err := a.votes.QueryVotesByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes for team: %w", err)
	}

	score := aggregateTeam(teamID, teamVotes, liveCriteria)
	return &score, nil
}

// BuildLeaderboard ranks every team by score descending. Ties and unscored
// teams order by team id ascending, so repeated reads with no intervening
// writes produce identical output.
func (a *App) BuildLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	allTeams, err := a.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	liveCriteria, err := a.liveCriteriaSet(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(allTeams))
	for _, team := range allTeams {
		teamVotes, err := a.votes.QueryVotesByTeam(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load votes for team: %w", err)
		}
		entries = append(entries, LeaderboardEntry{
			TeamName:  team.Name,
			TeamScore: aggregateTeam(team.ID, teamVotes, liveCriteria),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		x, y := entries[i], entries[j]
		if x.Scored != y.Scored {
			return x.Scored
		}
		if x.Scored && x.Score != y.Score {
			return x.Score > y.Score
		}
		return x.TeamID.String() < y.TeamID.String()
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// aggregateTeam folds a team's votes into its score. Votes referencing
// deleted criteria are ignored.
func aggregateTeam(teamID uuid.UUID, teamVotes []models.Vote, liveCriteria map[uuid.UUID]struct{}) TeamScore {
	score := TeamScore{TeamID: teamID}
	if len(liveCriteria) == 0 {
		return score
	}

	yesByJudge := make(map[uuid.UUID]int)
	for _, vote := range teamVotes {
		if _, live := liveCriteria[vote.CriterionID]; !live {
			continue
		}
		if _, seen := yesByJudge[vote.JudgeID]; !seen {
			yesByJudge[vote.JudgeID] = 0
		}
		score.VoteCount++
		if vote.Value {
			yesByJudge[vote.JudgeID]++
			score.YesVotes++
		}
	}
	if len(yesByJudge) == 0 {
		return score
	}

	total := float64(len(liveCriteria))
	sum := 0.0
	for _, yes := range yesByJudge {
		sum += float64(yes) / total * 100
	}
	score.JudgeCount = len(yesByJudge)
	score.Score = sum / float64(len(yesByJudge))
	score.Scored = true
	return score
}

func (a *App) liveCriteriaSet(ctx context.Context) (map[uuid.UUID]struct{}, error) {
	allCriteria, err := a.criteria.ListCriteria(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	set := make(map[uuid.UUID]struct{}, len(allCriteria))
	for _, criterion := range allCriteria {
		set[criterion.ID] = struct{}{}
	}
	return set, nil
}
