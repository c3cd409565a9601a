package votes

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcastro/voteboard/go/internal/models"
)

// VoteEntry is a single yes/no decision within a submission batch
type VoteEntry struct {
	CriterionID uuid.UUID `json:"criterion_id" validate:"required"`
	Value       bool      `json:"value"`
	Comment     string    `json:"comment" validate:"max=2000"`
}

// SubmitVotesRequest is one judge's full batch of votes for one team.
// Overwrite must be set explicitly to replace a prior submission.
type SubmitVotesRequest struct {
	JudgeID   uuid.UUID   `json:"judge_id" validate:"required"`
	TeamID    uuid.UUID   `json:"team_id" validate:"required"`
	Votes     []VoteEntry `json:"votes" validate:"required,min=1,dive"`
	Overwrite bool        `json:"overwrite"`
}

// SubmitVotesResult reports what a successful submission did
type SubmitVotesResult struct {
	JudgeID       uuid.UUID `json:"judge_id"`
	TeamID        uuid.UUID `json:"team_id"`
	VotesRecorded int       `json:"votes_recorded"`
	Overwrote     bool      `json:"overwrote"`
	EmailSent     bool      `json:"email_sent"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Submission is the stored state for one (judge, team) pair: the live votes
// plus the marker metadata used for duplicate detection and conditional writes.
type Submission struct {
	JudgeID     uuid.UUID
	TeamID      uuid.UUID
	Votes       []models.Vote
	Version     int64
	SubmittedAt time.Time
}

// EnrichedVote is a vote joined with the display names of its references
type EnrichedVote struct {
	models.Vote
	JudgeName     string `json:"judge_name"`
	TeamName      string `json:"team_name"`
	CriterionName string `json:"criterion_name"`
}
