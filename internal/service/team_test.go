package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
)

func inviteFixture(t *testing.T, expiresAt time.Time) (*fixture, *models.TeamInvite) {
	f := newFixture(t)
	invite := &models.TeamInvite{
		ID:        primitive.NewObjectID(),
		CompanyID: primitive.NewObjectID(),
		Email:     "newbie@example.com",
		Role:      models.RoleMember,
		Token:     "tok-1",
		Status:    models.InviteStatusPending,
		InvitedBy: 1,
		ExpiresAt: expiresAt,
	}
	f.users.On("FindUserByID", mock.Anything, int64(5)).
		Return(&models.User{ID: 5, Username: "newbie", Email: "Newbie@Example.com"}, nil)
	f.invites.On("FindOne", mock.Anything, bson.M{"token": "tok-1"}).Return(invite, nil)
	return f, invite
}

func TestAcceptInvite(t *testing.T) {
	f, invite := inviteFixture(t, fixedNow.Add(time.Hour))
	f.companies.On("Get", mock.Anything, invite.CompanyID).Return(&models.Company{ID: invite.CompanyID, UserID: 1}, nil)
	f.members.On("FindOne", mock.Anything, bson.M{"company_id": invite.CompanyID, "user_id": int64(5)}).
		Return(nil, repository.ErrNotFound)
	f.members.On("Insert", mock.Anything, mock.MatchedBy(func(m *models.TeamMember) bool {
		return m.UserID == 5 && m.Role == models.RoleMember && m.Status == models.MemberStatusActive
	})).Return(primitive.NewObjectID(), nil)
	f.invites.On("Update", mock.Anything, invite.ID, bson.M{"$set": bson.M{"status": models.InviteStatusAccepted}}).Return(nil)

	member, err := f.svc.AcceptInvite(userCtx(5), "tok-1")
	require.NoError(t, err)
	require.Equal(t, invite.CompanyID, member.CompanyID)
	require.Equal(t, fixedNow, member.JoinedAt)
}

func TestAcceptInvite_ReactivatesRemovedMember(t *testing.T) {
	f, invite := inviteFixture(t, fixedNow.Add(time.Hour))
	removed := &models.TeamMember{
		ID:        primitive.NewObjectID(),
		CompanyID: invite.CompanyID,
		UserID:    5,
		Role:      models.RoleViewer,
		Status:    models.MemberStatusRemoved,
	}
	f.companies.On("Get", mock.Anything, invite.CompanyID).Return(&models.Company{ID: invite.CompanyID, UserID: 1}, nil)
	f.members.On("FindOne", mock.Anything, mock.Anything).Return(removed, nil)
	f.members.On("Update", mock.Anything, removed.ID, mock.MatchedBy(func(u bson.M) bool {
		set := u["$set"].(bson.M)
		return set["status"] == models.MemberStatusActive && set["role"] == models.RoleMember
	})).Return(nil)
	f.invites.On("Update", mock.Anything, invite.ID, mock.Anything).Return(nil)

	member, err := f.svc.AcceptInvite(userCtx(5), "tok-1")
	require.NoError(t, err)
	require.Equal(t, removed.ID, member.ID)
	require.Equal(t, models.MemberStatusActive, member.Status)
	f.members.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAcceptInvite_Expired(t *testing.T) {
	f, _ := inviteFixture(t, fixedNow.Add(-time.Minute))

	_, err := f.svc.AcceptInvite(userCtx(5), "tok-1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"invitation has expired"}, verr.Messages)
}

func TestAcceptInvite_OtherAddress(t *testing.T) {
	f := newFixture(t)
	f.users.On("FindUserByID", mock.Anything, int64(6)).Return(&models.User{ID: 6, Email: "someone@else.com"}, nil)
	f.invites.On("FindOne", mock.Anything, mock.Anything).Return(&models.TeamInvite{
		Email: "newbie@example.com", Status: models.InviteStatusPending, ExpiresAt: fixedNow.Add(time.Hour),
	}, nil)

	_, err := f.svc.AcceptInvite(userCtx(6), "tok-1")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestDeclineInvite_AlreadyAnswered(t *testing.T) {
	f, invite := inviteFixture(t, fixedNow.Add(time.Hour))
	invite.Status = models.InviteStatusAccepted

	err := f.svc.DeclineInvite(userCtx(5), "tok-1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateInvite(t *testing.T) {
	f := newFixture(t)
	companyID := primitive.NewObjectID()
	f.companies.On("Get", mock.Anything, companyID).Return(&models.Company{ID: companyID, Name: "Acme", UserID: 1}, nil)
	f.users.On("FindUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1, Username: "owner", Email: "owner@acme.com"}, nil)
	f.members.On("FindOne", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	f.invites.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	f.invites.On("Insert", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)

	invite, err := f.svc.CreateInvite(userCtx(1), companyID, models.InviteInput{Email: " New@Acme.com ", Role: models.RoleViewer})
	require.NoError(t, err)
	require.Equal(t, "new@acme.com", invite.Email)
	require.Equal(t, fixedNow.Add(models.InviteTTL), invite.ExpiresAt)
	require.NotEmpty(t, invite.Token)

	require.Len(t, f.mailer.sent, 1)
	require.Equal(t, "new@acme.com", f.mailer.sent[0].To)
	require.Contains(t, f.mailer.sent[0].Body, "http://app.test/invites/"+invite.Token)
}

func TestCreateInvite_Conflicts(t *testing.T) {
	companyID := primitive.NewObjectID()
	setup := func(t *testing.T) *fixture {
		f := newFixture(t)
		f.companies.On("Get", mock.Anything, companyID).Return(&models.Company{ID: companyID, UserID: 1}, nil)
		f.users.On("FindUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1, Email: "owner@acme.com"}, nil)
		return f
	}

	t.Run("owner", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.CreateInvite(userCtx(1), companyID, models.InviteInput{Email: "OWNER@acme.com", Role: models.RoleAdmin})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("active member", func(t *testing.T) {
		f := setup(t)
		f.members.On("FindOne", mock.Anything, mock.Anything).Return(&models.TeamMember{}, nil)
		_, err := f.svc.CreateInvite(userCtx(1), companyID, models.InviteInput{Email: "m@acme.com", Role: models.RoleMember})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("pending invite", func(t *testing.T) {
		f := setup(t)
		f.members.On("FindOne", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
		f.invites.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
		_, err := f.svc.CreateInvite(userCtx(1), companyID, models.InviteInput{Email: "m@acme.com", Role: models.RoleMember})
		require.ErrorIs(t, err, ErrConflict)
		f.invites.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestRemoveMember(t *testing.T) {
	f := newFixture(t)
	companyID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	f.companies.On("Get", mock.Anything, companyID).Return(&models.Company{ID: companyID, UserID: 1}, nil)
	f.members.On("Get", mock.Anything, memberID).Return(&models.TeamMember{
		ID: memberID, CompanyID: companyID, UserID: 4, Status: models.MemberStatusActive,
	}, nil)
	f.members.On("Update", mock.Anything, memberID, mock.MatchedBy(func(u bson.M) bool {
		return u["$set"].(bson.M)["status"] == models.MemberStatusRemoved
	})).Return(nil)

	require.NoError(t, f.svc.RemoveMember(userCtx(1), companyID, memberID))
}
