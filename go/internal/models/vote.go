package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote records one judge's yes/no answer for one criterion of one team.
// At most one live vote exists per (judge, team, criterion) triple; a new
// submission for the same triple replaces the prior value.
type Vote struct {
	JudgeID     uuid.UUID `json:"judge_id"`
	TeamID      uuid.UUID `json:"team_id"`
	CriterionID uuid.UUID `json:"criterion_id"`
	Value       bool      `json:"value"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
