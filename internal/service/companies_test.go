package service

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/utils"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		phone, country, want string
		wantErr              bool
	}{
		{phone: "+1 650-253-0000", want: "+16502530000"},
		{phone: "(650) 253-0000", country: "us", want: "+16502530000"},
		{phone: "", want: ""},
		{phone: "12", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			got, err := normalizePhone(tt.phone, tt.country)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCreateCompany_EncryptsTaxID(t *testing.T) {
	f := newFixture(t)
	var stored string
	f.companies.On("Insert", mock.Anything, mock.MatchedBy(func(c *models.Company) bool {
		stored = c.TaxID
		return c.Currency == "EUR" && c.ContactInfo.Phone == "+16502530000"
	})).Return(primitive.NewObjectID(), nil)

	company, err := f.svc.CreateCompany(userCtx(1), models.CompanyInput{
		Name:        " Acme ",
		ContactInfo: models.ContactInfo{Phone: "+1 650-253-0000", Email: "Books@Acme.com"},
		TaxID:       "12-3456789",
		Currency:    "eur",
	})
	require.NoError(t, err)
	require.Equal(t, "Acme", company.Name)
	require.Equal(t, "books@acme.com", company.ContactInfo.Email)
	require.Equal(t, "12-3456789", company.TaxID)
	require.NotEmpty(t, stored)
	require.NotEqual(t, "12-3456789", stored)
}

func TestGetCompany_MasksTaxIDForMembers(t *testing.T) {
	f := newFixture(t)
	key, err := testConfig().EncryptionKeyBytes()
	require.NoError(t, err)
	encrypted, err := utils.Encrypt("12-3456789", key)
	require.NoError(t, err)

	id := primitive.NewObjectID()
	f.companies.On("Get", mock.Anything, id).Return(&models.Company{ID: id, UserID: 1, TaxID: encrypted}, nil)
	f.members.On("FindOne", mock.Anything, mock.Anything).Return(&models.TeamMember{Role: models.RoleViewer}, nil)

	company, err := f.svc.GetCompany(userCtx(2), id)
	require.NoError(t, err)
	require.Equal(t, "******6789", company.TaxID)
}

func TestDeleteCompany_MemberForbidden(t *testing.T) {
	f := newFixture(t)
	id := primitive.NewObjectID()
	f.companies.On("Get", mock.Anything, id).Return(&models.Company{ID: id, UserID: 1}, nil)
	f.members.On("FindOne", mock.Anything, mock.Anything).Return(&models.TeamMember{Role: models.RoleAdmin}, nil)

	err := f.svc.DeleteCompany(userCtx(2), id)
	require.ErrorIs(t, err, ErrForbidden)
	f.companies.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCompany_DetachesRecords(t *testing.T) {
	f := newFixture(t)
	id := primitive.NewObjectID()
	f.companies.On("Get", mock.Anything, id).Return(&models.Company{ID: id, UserID: 1}, nil)
	f.members.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.TeamMember{{UserID: 4}}, nil)
	f.companies.On("Delete", mock.Anything, id).Return(nil)
	f.members.On("DeleteMany", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.invites.On("DeleteMany", mock.Anything, mock.Anything).Return(int64(0), nil)
	for _, m := range []interface {
		On(string, ...interface{}) *mock.Call
	}{f.expenses, f.incomes, f.debts, f.assets, f.budgets, f.goals, f.payments} {
		m.On("UpdateMany", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	}

	require.NoError(t, f.svc.DeleteCompany(userCtx(1), id))
}
