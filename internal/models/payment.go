package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentTypeDebt   = "debt_payment"
	PaymentTypeIncome = "income_received"
)

// Payment records money moving against a debt or an income stream
type Payment struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Type        string              `json:"type" bson:"type"`
	ReferenceID primitive.ObjectID  `json:"referenceId" bson:"reference_id"`
	CompanyID   *primitive.ObjectID `json:"companyId,omitempty" bson:"company_id,omitempty"`
	Amount      float64             `json:"amount" bson:"amount"`
	// Applied is the part of Amount that actually reduced the debt balance
	Applied float64 `json:"applied" bson:"applied"`
	// DueDate is the scheduled date this payment settled; the schedule moved past it
	DueDate   *time.Time `json:"dueDate,omitempty" bson:"due_date,omitempty"`
	Date      time.Time  `json:"date" bson:"date"`
	Notes     string     `json:"notes,omitempty" bson:"notes,omitempty"`
	UserID    int64      `json:"userId" bson:"user_id"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
}

type PaymentInput struct {
	Type        string     `json:"type" validate:"required,oneof=debt_payment income_received"`
	ReferenceID string     `json:"referenceId" validate:"required,len=24,hexadecimal"`
	Amount      float64    `json:"amount" validate:"gt=0"`
	Date        *time.Time `json:"date"`
	Notes       string     `json:"notes" validate:"max=500"`
}
