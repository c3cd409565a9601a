package votes

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownReference is returned when a submission names a judge, team, or
// criterion that does not exist. Raised before any write.
var ErrUnknownReference = errors.New("unknown reference")

// ErrVersionConflict is returned by the repository when the conditional
// replace loses a race against a concurrent submission for the same pair.
var ErrVersionConflict = errors.New("submission version conflict")

// DuplicateSubmissionError signals that the judge already voted for the team.
// The caller is expected to confirm with the user and re-submit with
// Overwrite set.
type DuplicateSubmissionError struct {
	JudgeID     uuid.UUID
	TeamID      uuid.UUID
	VoteCount   int
	SubmittedAt time.Time
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("judge %s already submitted %d votes for team %s at %s",
		e.JudgeID, e.VoteCount, e.TeamID, e.SubmittedAt.Format(time.RFC3339))
}

// DependencyError wraps a store failure on the write path. The request failed
// but may be retried.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency failure during %s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
