package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils/email"
)

func (s *Service) ListMembers(ctx context.Context, companyID primitive.ObjectID) ([]models.TeamMember, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, userID, companyID, models.PermViewCompanies); err != nil {
		return nil, err
	}
	members, err := s.store.Members.Find(ctx, bson.M{
		"company_id": companyID,
		"status":     models.MemberStatusActive,
	}, repository.ListOptions{Sort: bson.D{{Key: "joined_at", Value: 1}}})
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// CreateInvite stores a pending invite and emails the accept link to the invitee
func (s *Service) CreateInvite(ctx context.Context, companyID primitive.ObjectID, in models.InviteInput) (*models.TeamInvite, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, userID, companyID, models.PermManageTeam); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return nil, err
	}

	company, err := s.store.Companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	owner, err := s.store.Users.FindUserByID(ctx, company.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company owner: %w", err)
	}
	if strings.EqualFold(owner.Email, in.Email) {
		return nil, invalid("the company owner cannot be invited")
	}

	_, err = s.store.Members.FindOne(ctx, bson.M{
		"company_id": companyID,
		"email":      in.Email,
		"status":     models.MemberStatusActive,
	})
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s is already a member: %w", in.Email, ErrConflict)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	now := s.now()
	pending, err := s.pendingInvites(ctx, companyID, in.Email, now)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, fmt.Errorf("%s already has a pending invite: %w", in.Email, ErrConflict)
	}

	invite := &models.TeamInvite{
		CompanyID:   companyID,
		Email:       in.Email,
		Role:        in.Role,
		Permissions: in.Permissions,
		Token:       uuid.NewString(),
		Status:      models.InviteStatusPending,
		InvitedBy:   userID,
		ExpiresAt:   now.Add(models.InviteTTL),
		CreatedAt:   now,
	}
	if invite.ID, err = s.store.Invites.Insert(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	inviter := owner.Username
	if userID != owner.ID {
		if u, err := s.store.Users.FindUserByID(ctx, userID); err == nil {
			inviter = u.Username
		}
	}
	link := strings.TrimRight(s.config.AppURL, "/") + "/invites/" + invite.Token
	s.sendMail(email.TeamInvite(invite.Email, inviter, company.Name, invite.Role, link, invite.ExpiresAt))

	s.log.Infof("Invite for %s to company %s created by user %d", invite.Email, companyID.Hex(), userID)
	return invite, nil
}

// pendingInvites counts unexpired pending invites for address in companyID
func (s *Service) pendingInvites(ctx context.Context, companyID primitive.ObjectID, address string, now time.Time) (int64, error) {
	n, err := s.store.Invites.Count(ctx, bson.M{
		"company_id": companyID,
		"email":      address,
		"status":     models.InviteStatusPending,
		"expires_at": bson.M{"$gt": now},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count invites: %w", err)
	}
	return n, nil
}

func (s *Service) ListInvites(ctx context.Context, companyID primitive.ObjectID) ([]models.TeamInvite, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, userID, companyID, models.PermManageTeam); err != nil {
		return nil, err
	}
	invites, err := s.store.Invites.Find(ctx, bson.M{"company_id": companyID}, repository.ListOptions{
		Sort: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

func (s *Service) RevokeInvite(ctx context.Context, companyID, inviteID primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.Authorize(ctx, userID, companyID, models.PermManageTeam); err != nil {
		return err
	}
	invite, err := s.store.Invites.Get(ctx, inviteID)
	if err != nil {
		return err
	}
	if invite.CompanyID != companyID {
		return ErrNotFound
	}
	if invite.Status != models.InviteStatusPending {
		return invalid("invitation is no longer pending")
	}
	if err := s.store.Invites.Update(ctx, inviteID, bson.M{"$set": bson.M{"status": models.InviteStatusRevoked}}); err != nil {
		return fmt.Errorf("failed to revoke invite: %w", err)
	}
	return nil
}

// pendingInvite loads the invite behind token for the session user and checks it can still be answered
func (s *Service) pendingInvite(ctx context.Context, token string) (*models.User, *models.TeamInvite, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.store.Users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, err
	}
	invite, err := s.store.Invites.FindOne(ctx, bson.M{"token": token})
	if err != nil {
		return nil, nil, err
	}
	if !strings.EqualFold(invite.Email, user.Email) {
		return nil, nil, ErrForbidden
	}
	if invite.Status != models.InviteStatusPending {
		return nil, nil, invalid("invitation is no longer pending")
	}
	if invite.Expired(s.now()) {
		return nil, nil, invalid("invitation has expired")
	}
	return user, invite, nil
}

// AcceptInvite turns the invite into an active membership. A previously removed
// membership is reactivated with the invite's role.
func (s *Service) AcceptInvite(ctx context.Context, token string) (*models.TeamMember, error) {
	user, invite, err := s.pendingInvite(ctx, token)
	if err != nil {
		return nil, err
	}
	company, err := s.store.Companies.Get(ctx, invite.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.UserID == user.ID {
		return nil, invalid("the company owner cannot join as a member")
	}

	now := s.now()
	member, err := s.store.Members.FindOne(ctx, bson.M{"company_id": invite.CompanyID, "user_id": user.ID})
	switch {
	case err == nil:
		if member.Status == models.MemberStatusActive {
			return nil, fmt.Errorf("already a member: %w", ErrConflict)
		}
		member.Role = invite.Role
		member.Permissions = invite.Permissions
		member.Status = models.MemberStatusActive
		member.InvitedBy = invite.InvitedBy
		member.JoinedAt = now
		member.UpdatedAt = now
		if err := s.store.Members.Update(ctx, member.ID, bson.M{"$set": bson.M{
			"role":        member.Role,
			"permissions": member.Permissions,
			"status":      member.Status,
			"invited_by":  member.InvitedBy,
			"email":       user.Email,
			"joined_at":   now,
			"updated_at":  now,
		}}); err != nil {
			return nil, fmt.Errorf("failed to reactivate member: %w", err)
		}
	case errors.Is(err, repository.ErrNotFound):
		member = &models.TeamMember{
			CompanyID:   invite.CompanyID,
			UserID:      user.ID,
			Email:       user.Email,
			Role:        invite.Role,
			Permissions: invite.Permissions,
			Status:      models.MemberStatusActive,
			InvitedBy:   invite.InvitedBy,
			JoinedAt:    now,
			UpdatedAt:   now,
		}
		if member.ID, err = s.store.Members.Insert(ctx, member); err != nil {
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}

	if err := s.store.Invites.Update(ctx, invite.ID, bson.M{"$set": bson.M{"status": models.InviteStatusAccepted}}); err != nil {
		return nil, fmt.Errorf("failed to close invite: %w", err)
	}
	s.invalidateAccess(ctx, invite.CompanyID, user.ID)

	s.log.Infof("User %d joined company %s as %s", user.ID, invite.CompanyID.Hex(), member.Role)
	return member, nil
}

func (s *Service) DeclineInvite(ctx context.Context, token string) error {
	_, invite, err := s.pendingInvite(ctx, token)
	if err != nil {
		return err
	}
	if err := s.store.Invites.Update(ctx, invite.ID, bson.M{"$set": bson.M{"status": models.InviteStatusDeclined}}); err != nil {
		return fmt.Errorf("failed to decline invite: %w", err)
	}
	return nil
}

func (s *Service) loadMember(ctx context.Context, companyID, memberID primitive.ObjectID) (*models.TeamMember, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, userID, companyID, models.PermManageTeam); err != nil {
		return nil, err
	}
	member, err := s.store.Members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.CompanyID != companyID || member.Status != models.MemberStatusActive {
		return nil, ErrNotFound
	}
	return member, nil
}

// UpdateMember changes a member's role and explicit permissions. Empty permissions
// fall back to the role defaults.
func (s *Service) UpdateMember(ctx context.Context, companyID, memberID primitive.ObjectID, in models.MemberUpdateInput) (*models.TeamMember, error) {
	member, err := s.loadMember(ctx, companyID, memberID)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Role != "" {
		member.Role = in.Role
	}
	member.Permissions = in.Permissions
	member.UpdatedAt = s.now()

	if err := s.store.Members.Update(ctx, memberID, bson.M{"$set": bson.M{
		"role":        member.Role,
		"permissions": member.Permissions,
		"updated_at":  member.UpdatedAt,
	}}); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	s.invalidateAccess(ctx, companyID, member.UserID)
	return member, nil
}

func (s *Service) RemoveMember(ctx context.Context, companyID, memberID primitive.ObjectID) error {
	member, err := s.loadMember(ctx, companyID, memberID)
	if err != nil {
		return err
	}
	if err := s.store.Members.Update(ctx, memberID, bson.M{"$set": bson.M{
		"status":     models.MemberStatusRemoved,
		"updated_at": s.now(),
	}}); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	s.invalidateAccess(ctx, companyID, member.UserID)
	return nil
}

// SharedCompanies lists the companies the caller reaches through membership
func (s *Service) SharedCompanies(ctx context.Context) ([]models.SharedCompany, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.store.Members.Find(ctx, bson.M{
		"user_id": userID,
		"status":  models.MemberStatusActive,
	}, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	shared := make([]models.SharedCompany, 0, len(members))
	for i := range members {
		company, err := s.store.Companies.Get(ctx, members[i].CompanyID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load company: %w", err)
		}
		shared = append(shared, models.SharedCompany{
			Company:     *s.present(company, userID),
			Role:        members[i].Role,
			Permissions: members[i].Effective(),
		})
	}
	return shared, nil
}
