package judges

// CreateJudgeRequest represents the data needed to register a new judge
type CreateJudgeRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"max=100"`
}

// UpdateJudgeRequest represents the fields that can be changed on a judge
type UpdateJudgeRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Role  *string `json:"role,omitempty" validate:"omitempty,max=100"`
}
