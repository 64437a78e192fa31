package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ExpenseTypeSubscription = "subscription"
	ExpenseTypeOneTime      = "one-time"
	ExpenseTypeRecurring    = "recurring"

	ExpenseStatusActive    = "active"
	ExpenseStatusCancelled = "cancelled"
)

type Receipt struct {
	ObjectKey    string    `json:"objectKey" bson:"object_key"`
	URL          string    `json:"url" bson:"url"`
	ContentType  string    `json:"contentType" bson:"content_type"`
	Size         int64     `json:"size" bson:"size"`
	ThumbnailKey string    `json:"thumbnailKey,omitempty" bson:"thumbnail_key,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" bson:"thumbnail_url,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt" bson:"uploaded_at"`
}

type Comment struct {
	ID        string    `json:"id" bson:"id"`
	UserID    int64     `json:"userId" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type Expense struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CompanyID       *primitive.ObjectID `json:"companyId,omitempty" bson:"company_id,omitempty"`
	BudgetID        *primitive.ObjectID `json:"budgetId,omitempty" bson:"budget_id,omitempty"`
	Description     string              `json:"description" bson:"description"`
	Amount          float64             `json:"amount" bson:"amount"`
	Currency        string              `json:"currency" bson:"currency"`
	Category        string              `json:"category" bson:"category"`
	ExpenseType     string              `json:"expenseType" bson:"expense_type"`
	Frequency       string              `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Date            time.Time           `json:"date" bson:"date"`
	StartDate       *time.Time          `json:"startDate,omitempty" bson:"start_date,omitempty"`
	NextBillingDate *time.Time          `json:"nextBillingDate,omitempty" bson:"next_billing_date,omitempty"`
	Status          string              `json:"status" bson:"status"`
	Tags            []string            `json:"tags,omitempty" bson:"tags,omitempty"`
	Receipt         *Receipt            `json:"receipt,omitempty" bson:"receipt,omitempty"`
	Comments        []Comment           `json:"comments" bson:"comments"`
	UserID          int64               `json:"userId" bson:"user_id"`
	CreatedAt       time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updated_at"`
}

// IsRecurring reports whether the expense bills on a schedule
func (e *Expense) IsRecurring() bool {
	return e.ExpenseType == ExpenseTypeSubscription || e.ExpenseType == ExpenseTypeRecurring
}

type ExpenseInput struct {
	CompanyID   string     `json:"companyId" validate:"omitempty,len=24,hexadecimal"`
	BudgetID    string     `json:"budgetId" validate:"omitempty,len=24,hexadecimal"`
	Description string     `json:"description" validate:"required,max=500"`
	Amount      float64    `json:"amount" validate:"gt=0"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
	Category    string     `json:"category" validate:"required,max=100"`
	ExpenseType string     `json:"expenseType" validate:"required,oneof=subscription one-time recurring"`
	Frequency   string     `json:"frequency" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	Date        time.Time  `json:"date" validate:"required"`
	StartDate   *time.Time `json:"startDate"`
	Status      string     `json:"status" validate:"omitempty,oneof=active cancelled"`
	Tags        []string   `json:"tags" validate:"max=20,dive,max=50"`
}

type CommentInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type ExpenseFilter struct {
	CompanyID   *primitive.ObjectID
	BudgetID    *primitive.ObjectID
	Category    string
	ExpenseType string
	From        *time.Time
	To          *time.Time
	Page        int
	Limit       int
}
