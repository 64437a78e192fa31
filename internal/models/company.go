package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Street     string `json:"street,omitempty" bson:"street,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty" bson:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"` // ISO 3166-1 alpha-2
}

type ContactInfo struct {
	Email   string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Website string `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,url"`
}

// Company is owned by UserID and optionally shared through team membership
type Company struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Industry    string             `json:"industry,omitempty" bson:"industry,omitempty"`
	Address     Address            `json:"address" bson:"address"`
	ContactInfo ContactInfo        `json:"contactInfo" bson:"contact_info"`
	TaxID       string             `json:"taxId,omitempty" bson:"tax_id,omitempty"` // encrypted at rest
	Currency    string             `json:"currency" bson:"currency"`
	UserID      int64              `json:"userId" bson:"user_id"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

type CompanyInput struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Industry    string      `json:"industry" validate:"max=100"`
	Address     Address     `json:"address"`
	ContactInfo ContactInfo `json:"contactInfo"`
	TaxID       string      `json:"taxId" validate:"max=50"`
	Currency    string      `json:"currency" validate:"omitempty,len=3"`
}
