package models

import (
	"time"

	"github.com/google/uuid"
)

// Judge represents an evaluator who casts votes for teams
type Judge struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
