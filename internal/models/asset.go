package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Asset struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CompanyID     *primitive.ObjectID `json:"companyId,omitempty" bson:"company_id,omitempty"`
	Name          string              `json:"name" bson:"name"`
	Type          string              `json:"type" bson:"type"`
	Value         float64             `json:"value" bson:"value"`
	PurchasePrice float64             `json:"purchasePrice" bson:"purchase_price"`
	PurchaseDate  *time.Time          `json:"purchaseDate,omitempty" bson:"purchase_date,omitempty"`
	Description   string              `json:"description,omitempty" bson:"description,omitempty"`
	UserID        int64               `json:"userId" bson:"user_id"`
	CreatedAt     time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updated_at"`
}

type AssetInput struct {
	CompanyID     string     `json:"companyId" validate:"omitempty,len=24,hexadecimal"`
	Name          string     `json:"name" validate:"required,max=200"`
	Type          string     `json:"type" validate:"required,oneof=cash investment property vehicle equipment other"`
	Value         float64    `json:"value" validate:"gte=0"`
	PurchasePrice float64    `json:"purchasePrice" validate:"gte=0"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	Description   string     `json:"description" validate:"max=500"`
}
