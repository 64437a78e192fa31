package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusOnTrack   = "on_track"
	GoalStatusBehind    = "behind"
	GoalStatusOverdue   = "overdue"
)

type Milestone struct {
	Title      string     `json:"title" bson:"title" validate:"required,max=200"`
	Amount     float64    `json:"amount" bson:"amount" validate:"gt=0"`
	Achieved   bool       `json:"achieved" bson:"achieved"`
	AchievedAt *time.Time `json:"achievedAt,omitempty" bson:"achieved_at,omitempty"`
}

type Goal struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CompanyID     *primitive.ObjectID `json:"companyId,omitempty" bson:"company_id,omitempty"`
	Name          string              `json:"name" bson:"name"`
	Description   string              `json:"description,omitempty" bson:"description,omitempty"`
	Category      string              `json:"category,omitempty" bson:"category,omitempty"`
	TargetAmount  float64             `json:"targetAmount" bson:"target_amount"`
	CurrentAmount float64             `json:"currentAmount" bson:"current_amount"`
	StartDate     time.Time           `json:"startDate" bson:"start_date"`
	TargetDate    time.Time           `json:"targetDate" bson:"target_date"`
	Status        string              `json:"status" bson:"status"`
	Milestones    []Milestone         `json:"milestones" bson:"milestones"`
	UserID        int64               `json:"userId" bson:"user_id"`
	CreatedAt     time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updated_at"`
}

type GoalInput struct {
	CompanyID     string      `json:"companyId" validate:"omitempty,len=24,hexadecimal"`
	Name          string      `json:"name" validate:"required,max=200"`
	Description   string      `json:"description" validate:"max=1000"`
	Category      string      `json:"category" validate:"max=100"`
	TargetAmount  float64     `json:"targetAmount" validate:"gt=0"`
	CurrentAmount float64     `json:"currentAmount" validate:"gte=0"`
	StartDate     *time.Time  `json:"startDate"`
	TargetDate    time.Time   `json:"targetDate" validate:"required"`
	Milestones    []Milestone `json:"milestones" validate:"max=50,dive"`
}

type ContributionInput struct {
	Amount float64 `json:"amount" validate:"ne=0"`
}

// GoalProgress is computed on read and never stored
type GoalProgress struct {
	Percentage              float64    `json:"percentage"`
	RemainingAmount         float64    `json:"remainingAmount"`
	DaysElapsed             int        `json:"daysElapsed"`
	DaysRemaining           int        `json:"daysRemaining"`
	RequiredDaily           float64    `json:"requiredDaily"`
	RequiredMonthly         float64    `json:"requiredMonthly"`
	AverageDaily            float64    `json:"averageDaily"`
	ProjectedCompletionDate *time.Time `json:"projectedCompletionDate,omitempty"`
	ExpectedAmount          float64    `json:"expectedAmount"`
	Variance                float64    `json:"variance"`
	OnTrack                 bool       `json:"onTrack"`
	Status                  string     `json:"status"`
}

type GoalWithProgress struct {
	Goal
	Progress GoalProgress `json:"progress"`
}
