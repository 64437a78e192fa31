package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
)

func TestCreateExpense_NextBillingDate(t *testing.T) {
	f := newFixture(t)
	id := primitive.NewObjectID()
	f.expenses.On("Insert", mock.Anything, mock.Anything).Return(id, nil)
	f.budgets.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Budget{}, nil)

	expense, err := f.svc.CreateExpense(userCtx(1), models.ExpenseInput{
		Description: "Hosting",
		Amount:      20,
		Category:    "infra",
		ExpenseType: models.ExpenseTypeSubscription,
		Frequency:   "monthly",
		Date:        date(2024, 1, 31),
	})
	require.NoError(t, err)
	require.Equal(t, id, expense.ID)
	require.Equal(t, "USD", expense.Currency)
	require.Equal(t, models.ExpenseStatusActive, expense.Status)
	require.NotNil(t, expense.NextBillingDate)
	require.Equal(t, date(2024, 3, 2), *expense.NextBillingDate)
}

func TestCreateExpense_OneTimeHasNoBillingDate(t *testing.T) {
	f := newFixture(t)
	f.expenses.On("Insert", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)
	f.budgets.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Budget{}, nil)

	expense, err := f.svc.CreateExpense(userCtx(1), models.ExpenseInput{
		Description: "Lunch",
		Amount:      12.5,
		Category:    "food",
		ExpenseType: models.ExpenseTypeOneTime,
		Frequency:   "monthly",
		Date:        date(2024, 1, 31),
	})
	require.NoError(t, err)
	require.Empty(t, expense.Frequency)
	require.Nil(t, expense.NextBillingDate)
}

func TestCreateExpense_RecurringNeedsFrequency(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateExpense(userCtx(1), models.ExpenseInput{
		Description: "Gym",
		Amount:      30,
		Category:    "health",
		ExpenseType: models.ExpenseTypeRecurring,
		Date:        date(2024, 1, 1),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"frequency is required for subscription and recurring expenses"}, verr.Messages)
}

func TestCreateExpense_ResyncsMatchingBudget(t *testing.T) {
	f := newFixture(t)
	budget := models.Budget{
		ID:             primitive.NewObjectID(),
		Name:           "Food",
		Category:       "food",
		TotalAmount:    100,
		StartDate:      date(2024, 7, 1),
		EndDate:        date(2024, 7, 31),
		AlertThreshold: 80,
		UserID:         1,
	}
	f.expenses.On("Insert", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)
	f.budgets.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Budget{budget}, nil)
	f.expenses.On("Sum", mock.Anything, BudgetExpenseFilter(&budget), "amount").Return(85.0, nil)
	f.users.On("FindUserByID", mock.Anything, int64(1)).Return(&models.User{ID: 1, Email: "d@example.com", Username: "dima"}, nil)
	f.budgets.On("Update", mock.Anything, budget.ID, mock.MatchedBy(func(u bson.M) bool {
		set := u["$set"].(bson.M)
		return set["spent_amount"] == 85.0 && set["alert_sent"] == true
	})).Return(nil)

	_, err := f.svc.CreateExpense(userCtx(1), models.ExpenseInput{
		Description: "Groceries",
		Amount:      85,
		Category:    "food",
		ExpenseType: models.ExpenseTypeOneTime,
		Date:        date(2024, 7, 10),
	})
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 1)
	require.Equal(t, "Budget alert: Food", f.mailer.sent[0].Subject)
}

func TestDeleteExpense_ForbiddenDoesNotWrite(t *testing.T) {
	f := newFixture(t)
	companyID := primitive.NewObjectID()
	expenseID := primitive.NewObjectID()
	f.expenses.On("Get", mock.Anything, expenseID).
		Return(&models.Expense{ID: expenseID, CompanyID: &companyID, UserID: 1}, nil)
	f.companies.On("Get", mock.Anything, companyID).Return(&models.Company{ID: companyID, UserID: 1}, nil)
	f.members.On("FindOne", mock.Anything, mock.Anything).Return(&models.TeamMember{Role: models.RoleMember}, nil)

	err := f.svc.DeleteExpense(userCtx(3), expenseID)
	require.ErrorIs(t, err, ErrForbidden)
	f.expenses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteExpense_RemovesReceiptObjects(t *testing.T) {
	f := newFixture(t)
	expenseID := primitive.NewObjectID()
	f.expenses.On("Get", mock.Anything, expenseID).Return(&models.Expense{
		ID:       expenseID,
		UserID:   1,
		Category: "office",
		Date:     date(2024, 5, 5),
		Receipt:  &models.Receipt{ObjectKey: "receipts/1/x/a.png", ThumbnailKey: "receipts/1/x/a_thumb.jpg"},
	}, nil)
	f.expenses.On("Delete", mock.Anything, expenseID).Return(nil)
	f.budgets.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Budget{}, nil)

	require.NoError(t, f.svc.DeleteExpense(userCtx(1), expenseID))
	require.Equal(t, []string{"receipts/1/x/a.png", "receipts/1/x/a_thumb.jpg"}, f.files.deleted)
}

func TestDeleteComment_OnlyAuthorOrOwner(t *testing.T) {
	f := newFixture(t)
	companyID := primitive.NewObjectID()
	expenseID := primitive.NewObjectID()
	f.expenses.On("Get", mock.Anything, expenseID).Return(&models.Expense{
		ID:        expenseID,
		CompanyID: &companyID,
		UserID:    1,
		Comments:  []models.Comment{{ID: "c1", UserID: 4, Text: "hi"}},
	}, nil)
	f.companies.On("Get", mock.Anything, companyID).Return(&models.Company{ID: companyID, UserID: 1}, nil)
	f.members.On("FindOne", mock.Anything, mock.Anything).Return(&models.TeamMember{Role: models.RoleViewer}, nil)

	err := f.svc.DeleteComment(userCtx(3), expenseID, "c1")
	require.ErrorIs(t, err, ErrForbidden)

	err = f.svc.DeleteComment(userCtx(3), expenseID, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	f.expenses.On("Update", mock.Anything, expenseID, mock.Anything).Return(nil).Once()
	require.NoError(t, f.svc.DeleteComment(userCtx(4), expenseID, "c1"))
}

func TestUploadReceipt_RejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	expenseID := primitive.NewObjectID()
	f.expenses.On("Get", mock.Anything, expenseID).Return(&models.Expense{ID: expenseID, UserID: 1}, nil)

	_, err := f.svc.UploadReceipt(userCtx(1), expenseID, []byte("just some text"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Empty(t, f.files.uploaded)
}

func TestUploadReceipt_PDF(t *testing.T) {
	f := newFixture(t)
	expenseID := primitive.NewObjectID()
	f.expenses.On("Get", mock.Anything, expenseID).Return(&models.Expense{ID: expenseID, UserID: 1}, nil)
	f.expenses.On("Update", mock.Anything, expenseID, mock.Anything).Return(nil)

	receipt, err := f.svc.UploadReceipt(userCtx(1), expenseID, []byte("%PDF-1.4\n%fake receipt\n"))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", receipt.ContentType)
	require.Empty(t, receipt.ThumbnailKey)
	require.Contains(t, receipt.URL, receipt.ObjectKey)
	require.Len(t, f.files.uploaded, 1)
}

func TestPageOptions(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		skip, want  int64
	}{
		{name: "defaults", page: 0, limit: 0, skip: 0, want: defaultPageSize},
		{name: "third page", page: 3, limit: 20, skip: 40, want: 20},
		{name: "limit capped", page: 2, limit: 1000, skip: maxPageSize, want: maxPageSize},
		{name: "page capped", page: math.MaxInt, limit: maxPageSize, skip: int64(maxPage-1) * maxPageSize, want: maxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := pageOptions(tt.page, tt.limit)
			require.Equal(t, tt.skip, opts.Skip)
			require.Equal(t, tt.want, opts.Limit)
		})
	}
}

func TestListExpenses_RejectsHugePage(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListExpenses(userCtx(1), models.ExpenseFilter{Page: math.MaxInt})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"page must be at most 100000"}, verr.Messages)
	f.expenses.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}
