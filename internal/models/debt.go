package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DebtStatusActive  = "active"
	DebtStatusPaidOff = "paid_off"
)

// Debt is a liability whose balance is reduced by recorded payments
type Debt struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CompanyID       *primitive.ObjectID `json:"companyId,omitempty" bson:"company_id,omitempty"`
	Name            string              `json:"name" bson:"name"`
	Lender          string              `json:"lender,omitempty" bson:"lender,omitempty"`
	Type            string              `json:"type" bson:"type"`
	OriginalAmount  float64             `json:"originalAmount" bson:"original_amount"`
	CurrentBalance  float64             `json:"currentBalance" bson:"current_balance"`
	InterestRate    float64             `json:"interestRate" bson:"interest_rate"`
	MinimumPayment  float64             `json:"minimumPayment" bson:"minimum_payment"`
	Frequency       string              `json:"frequency" bson:"frequency"`
	StartDate       time.Time           `json:"startDate" bson:"start_date"`
	NextPaymentDate *time.Time          `json:"nextPaymentDate,omitempty" bson:"next_payment_date,omitempty"`
	Status          string              `json:"status" bson:"status"`
	UserID          int64               `json:"userId" bson:"user_id"`
	CreatedAt       time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updated_at"`
}

type DebtInput struct {
	CompanyID      string    `json:"companyId" validate:"omitempty,len=24,hexadecimal"`
	Name           string    `json:"name" validate:"required,max=200"`
	Lender         string    `json:"lender" validate:"max=200"`
	Type           string    `json:"type" validate:"required,oneof=loan credit_card mortgage personal other"`
	OriginalAmount float64   `json:"originalAmount" validate:"gt=0"`
	CurrentBalance *float64  `json:"currentBalance" validate:"omitempty,gte=0"`
	InterestRate   float64   `json:"interestRate" validate:"gte=0,lte=100"`
	MinimumPayment float64   `json:"minimumPayment" validate:"gte=0"`
	Frequency      string    `json:"frequency" validate:"omitempty,oneof=weekly monthly quarterly yearly"`
	StartDate      time.Time `json:"startDate" validate:"required"`
}
