package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MemberStatusActive  = "active"
	MemberStatusRemoved = "removed"

	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
	InviteStatusRevoked  = "revoked"

	InviteTTL = 7 * 24 * time.Hour
)

// TeamMember grants a non-owner user access to a company
type TeamMember struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CompanyID   primitive.ObjectID `json:"companyId" bson:"company_id"`
	UserID      int64              `json:"userId" bson:"user_id"`
	Email       string             `json:"email" bson:"email"`
	Role        string             `json:"role" bson:"role"`
	Permissions []string           `json:"permissions" bson:"permissions"`
	Status      string             `json:"status" bson:"status"`
	InvitedBy   int64              `json:"invitedBy" bson:"invited_by"`
	JoinedAt    time.Time          `json:"joinedAt" bson:"joined_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// Effective returns the explicit permissions, or the role defaults when none are set
func (m *TeamMember) Effective() []string {
	if len(m.Permissions) > 0 {
		return m.Permissions
	}
	return RolePermissions(m.Role)
}

type TeamInvite struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CompanyID   primitive.ObjectID `json:"companyId" bson:"company_id"`
	Email       string             `json:"email" bson:"email"`
	Role        string             `json:"role" bson:"role"`
	Permissions []string           `json:"permissions,omitempty" bson:"permissions,omitempty"`
	Token       string             `json:"-" bson:"token"`
	Status      string             `json:"status" bson:"status"`
	InvitedBy   int64              `json:"invitedBy" bson:"invited_by"`
	ExpiresAt   time.Time          `json:"expiresAt" bson:"expires_at"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

func (i *TeamInvite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

type InviteInput struct {
	Email       string   `json:"email" validate:"required,email"`
	Role        string   `json:"role" validate:"required,oneof=admin manager member viewer"`
	Permissions []string `json:"permissions" validate:"dive,permission"`
}

type MemberUpdateInput struct {
	Role        string   `json:"role" validate:"omitempty,oneof=admin manager member viewer"`
	Permissions []string `json:"permissions" validate:"dive,permission"`
}

// SharedCompany is a company the user reaches through membership
type SharedCompany struct {
	Company     Company  `json:"company"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}
