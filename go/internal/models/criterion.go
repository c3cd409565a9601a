package models

import (
	"time"

	"github.com/google/uuid"
)

// Criterion represents a weighted yes/no evaluation dimension
type Criterion struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Weight      int       `json:"weight"` // relative importance, positive
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
