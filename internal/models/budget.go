package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultAlertThreshold = 80

// Budget caps spending in Category between StartDate and EndDate.
// SpentAmount is maintained by the budget sync.
type Budget struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CompanyID      *primitive.ObjectID `json:"companyId,omitempty" bson:"company_id,omitempty"`
	Name           string              `json:"name" bson:"name"`
	Category       string              `json:"category" bson:"category"`
	TotalAmount    float64             `json:"totalAmount" bson:"total_amount"`
	SpentAmount    float64             `json:"spentAmount" bson:"spent_amount"`
	StartDate      time.Time           `json:"startDate" bson:"start_date"`
	EndDate        time.Time           `json:"endDate" bson:"end_date"`
	AlertThreshold float64             `json:"alertThreshold" bson:"alert_threshold"`
	AlertSent      bool                `json:"alertSent" bson:"alert_sent"`
	LastSyncedAt   *time.Time          `json:"lastSyncedAt,omitempty" bson:"last_synced_at,omitempty"`
	UserID         int64               `json:"userId" bson:"user_id"`
	CreatedAt      time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updated_at"`
}

type BudgetInput struct {
	CompanyID      string    `json:"companyId" validate:"omitempty,len=24,hexadecimal"`
	Name           string    `json:"name" validate:"required,max=200"`
	Category       string    `json:"category" validate:"required,max=100"`
	TotalAmount    float64   `json:"totalAmount" validate:"gt=0"`
	StartDate      time.Time `json:"startDate" validate:"required"`
	EndDate        time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	AlertThreshold float64   `json:"alertThreshold" validate:"gte=0,lte=100"`
}

// BudgetStatus is a budget with its derived spend figures
type BudgetStatus struct {
	Budget
	Remaining      float64 `json:"remaining"`
	PercentUsed    float64 `json:"percentUsed"`
	OverBudget     bool    `json:"overBudget"`
	AlertTriggered bool    `json:"alertTriggered"`
}
