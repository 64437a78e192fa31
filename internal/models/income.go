package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Income struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CompanyID       *primitive.ObjectID `json:"companyId,omitempty" bson:"company_id,omitempty"`
	Source          string              `json:"source" bson:"source"`
	Amount          float64             `json:"amount" bson:"amount"`
	Currency        string              `json:"currency" bson:"currency"`
	Category        string              `json:"category,omitempty" bson:"category,omitempty"`
	Frequency       string              `json:"frequency" bson:"frequency"`
	Date            time.Time           `json:"date" bson:"date"`
	NextPaymentDate *time.Time          `json:"nextPaymentDate,omitempty" bson:"next_payment_date,omitempty"`
	Description     string              `json:"description,omitempty" bson:"description,omitempty"`
	UserID          int64               `json:"userId" bson:"user_id"`
	CreatedAt       time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updated_at"`
}

type IncomeInput struct {
	CompanyID   string    `json:"companyId" validate:"omitempty,len=24,hexadecimal"`
	Source      string    `json:"source" validate:"required,max=200"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	Currency    string    `json:"currency" validate:"omitempty,len=3"`
	Category    string    `json:"category" validate:"max=100"`
	Frequency   string    `json:"frequency" validate:"required,oneof=one-time daily weekly monthly quarterly yearly"`
	Date        time.Time `json:"date" validate:"required"`
	Description string    `json:"description" validate:"max=500"`
}

type IncomeFilter struct {
	CompanyID *primitive.ObjectID
	Source    string
	Frequency string
	From      *time.Time
	To        *time.Time
}
