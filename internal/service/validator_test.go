package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Dan9191/fintrack/internal/models"
)

func TestValidateInput_Messages(t *testing.T) {
	err := validateInput(models.ExpenseInput{
		CompanyID:   "not-an-id",
		Amount:      -5,
		Currency:    "EURO",
		Category:    "food",
		ExpenseType: "weekly",
		Date:        time.Now(),
		Tags:        []string{strings.Repeat("x", 51)},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{
		"companyId must be a valid id",
		"description is required",
		"amount must be greater than 0",
		"currency must be exactly 3 characters",
		"expenseType must be one of: subscription, one-time, recurring",
		"tags[0] must be at most 50 characters",
	}, verr.Messages)
}

func TestValidateInput_Permissions(t *testing.T) {
	err := validateInput(models.InviteInput{
		Email:       "a@b.co",
		Role:        models.RoleMember,
		Permissions: []string{models.PermViewExpenses, "fly"},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{`permissions[1]: unknown permission "fly"`}, verr.Messages)

	require.NoError(t, validateInput(models.InviteInput{Email: "a@b.co", Role: models.RoleViewer}))
}
