package teams

// CreateTeamRequest represents the data needed to register a new team
type CreateTeamRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	ProblemStatement string `json:"problem_statement" validate:"max=2000"`
	SuccessCriteria  string `json:"success_criteria" validate:"max=2000"`
	Description      string `json:"description" validate:"max=2000"`
}

// UpdateTeamRequest represents the fields that can be changed on a team
type UpdateTeamRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	ProblemStatement *string `json:"problem_statement,omitempty" validate:"omitempty,max=2000"`
	SuccessCriteria  *string `json:"success_criteria,omitempty" validate:"omitempty,max=2000"`
	Description      *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}
