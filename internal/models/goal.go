package models

// Goal is a user-defined target over a time window.
type Goal struct {
	ID        string  `json:"id" validate:"required"`
	Type      string  `json:"type" validate:"oneof=smoke-free-days reduce-cigarettes money-target"`
	Target    float64 `json:"target"`
	Duration  float64 `json:"duration"`
	Unit      string  `json:"unit" validate:"oneof=days weeks months"`
	StartDate string  `json:"startDate" validate:"required"`
	EndDate   string  `json:"endDate" validate:"required"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
}

// GoalInput holds the fields of a new goal. Start and end dates are derived by the
// ledger from the current time, Duration and Unit.
type GoalInput struct {
	Type     string  `validate:"oneof=smoke-free-days reduce-cigarettes money-target"`
	Target   float64 `validate:"gt=0"`
	Duration float64 `validate:"gt=0"`
	Unit     string  `validate:"oneof=days weeks months"`
}

// GoalUpdate is a partial update; nil fields are left untouched.
type GoalUpdate struct {
	Type      *string
	Target    *float64
	Duration  *float64
	Unit      *string
	StartDate *string
	EndDate   *string
	Completed *bool
	Progress  *float64
}

// Apply merges the non-nil fields of u into g.
func (u GoalUpdate) Apply(g Goal) Goal {
	if u.Type != nil {
		g.Type = *u.Type
	}
	if u.Target != nil {
		g.Target = *u.Target
	}
	if u.Duration != nil {
		g.Duration = *u.Duration
	}
	if u.Unit != nil {
		g.Unit = *u.Unit
	}
	if u.StartDate != nil {
		g.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		g.EndDate = *u.EndDate
	}
	if u.Completed != nil {
		g.Completed = *u.Completed
	}
	if u.Progress != nil {
		g.Progress = *u.Progress
	}
	return g
}
