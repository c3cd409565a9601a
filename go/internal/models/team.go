package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a competing team in the event
type Team struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	ProblemStatement string    `json:"problem_statement"`
	SuccessCriteria  string    `json:"success_criteria"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"created_at"`
}
