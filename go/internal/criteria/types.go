package criteria

// CreateCriterionRequest represents the data needed to define a new judging criterion
type CreateCriterionRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Weight      int    `json:"weight" validate:"min=1,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateCriterionRequest represents the fields that can be changed on a criterion
type UpdateCriterionRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Weight      *int    `json:"weight,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// DeleteCriterionResult reports what a criterion deletion removed
type DeleteCriterionResult struct {
	CriterionID  string `json:"criterion_id"`
	VotesDeleted int    `json:"votes_deleted"`
}
