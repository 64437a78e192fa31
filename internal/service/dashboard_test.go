package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/utils"
)

func hasKey(key string) func(bson.M) bool {
	return func(filter bson.M) bool {
		_, ok := filter[key]
		return ok
	}
}

func lacksKey(key string) func(bson.M) bool {
	return func(filter bson.M) bool {
		_, ok := filter[key]
		return !ok
	}
}

func TestDashboard_PersonalScope(t *testing.T) {
	f := newFixture(t)
	f.companies.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Company{}, nil)
	f.members.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.TeamMember{}, nil)

	f.expenses.On("Sum", mock.Anything, mock.Anything, "amount").Return(450.0, nil)
	f.incomes.On("Sum", mock.Anything, mock.Anything, "amount").Return(3000.0, nil)
	f.expenses.On("SumBy", mock.Anything, mock.Anything, "category", "amount").Return([]models.CategoryTotal{
		{Category: "food", Total: 450, Count: 3},
	}, nil)
	f.incomes.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Income{
		{Amount: 1200, Frequency: utils.FrequencyMonthly},
		{Amount: 100, Frequency: utils.FrequencyWeekly},
	}, nil)
	f.expenses.On("Find", mock.Anything, mock.MatchedBy(lacksKey("next_billing_date")), mock.Anything).Return([]models.Expense{
		{Amount: 15, Frequency: utils.FrequencyMonthly},
		{Amount: 120, Frequency: utils.FrequencyYearly},
	}, nil)
	f.debts.On("Sum", mock.Anything, mock.Anything, "current_balance").Return(1500.0, nil)
	f.assets.On("Sum", mock.Anything, mock.Anything, "value").Return(10000.0, nil)
	f.expenses.On("SumByMonth", mock.Anything, mock.Anything, "date", "amount").Return(map[string]float64{
		"2024-02": 100,
		"2024-07": 450,
	}, nil)
	f.incomes.On("SumByMonth", mock.Anything, mock.Anything, "date", "amount").Return(map[string]float64{
		"2024-07": 3000,
	}, nil)

	window := bson.M{"$gte": fixedNow, "$lte": fixedNow.AddDate(0, 0, 30)}
	billing, payment := date(2024, 7, 20), date(2024, 7, 10)
	f.expenses.On("Find", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
		return assert.ObjectsAreEqual(window, filter["next_billing_date"])
	}), mock.Anything).Return([]models.Expense{
		{ID: primitive.NewObjectID(), Description: "Hosting", Amount: 20, NextBillingDate: &billing},
	}, nil)
	f.debts.On("Find", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
		return assert.ObjectsAreEqual(window, filter["next_payment_date"])
	}), mock.Anything).Return([]models.Debt{
		{ID: primitive.NewObjectID(), Name: "Card", MinimumPayment: 100, CurrentBalance: 60, NextPaymentDate: &payment},
	}, nil)
	f.budgets.On("Find", mock.Anything, mock.MatchedBy(hasKey("end_date")), mock.Anything).Return([]models.Budget{}, nil)

	d, err := f.svc.Dashboard(userCtx(1), nil)
	require.NoError(t, err)

	require.Equal(t, date(2024, 7, 1), d.PeriodStart)
	require.Equal(t, date(2024, 8, 1), d.PeriodEnd)
	require.Equal(t, 450.0, d.MonthExpenses)
	require.Equal(t, 3000.0, d.MonthIncome)
	require.Equal(t, 1633.33, d.MonthlyRecurringIncome)
	require.Equal(t, 25.0, d.MonthlyRecurringExpenses)
	require.Equal(t, 8500.0, d.NetWorth)
	require.Empty(t, d.BudgetsAtRisk)

	require.Len(t, d.Trend, 6)
	require.Equal(t, models.MonthlyTotal{Month: "2024-02", Expense: 100, NetBalance: -100}, d.Trend[0])
	require.Equal(t, models.MonthlyTotal{Month: "2024-03"}, d.Trend[1])
	require.Equal(t, models.MonthlyTotal{Month: "2024-07", Income: 3000, Expense: 450, NetBalance: 2550}, d.Trend[5])

	require.Len(t, d.UpcomingBills, 2)
	require.Equal(t, "debt", d.UpcomingBills[0].Kind)
	require.Equal(t, 60.0, d.UpcomingBills[0].Amount)
	require.Equal(t, "expense", d.UpcomingBills[1].Kind)
	require.True(t, d.UpcomingBills[1].DueDate.Before(fixedNow.Add(30*24*time.Hour)))
}

func TestDashboard_CompanyWithoutReports(t *testing.T) {
	f := newFixture(t)
	companyID := primitive.NewObjectID()
	f.companies.On("Get", mock.Anything, companyID).Return(&models.Company{ID: companyID, UserID: 2}, nil)
	f.members.On("FindOne", mock.Anything, mock.Anything).Return(&models.TeamMember{
		CompanyID:   companyID,
		UserID:      1,
		Role:        "member",
		Permissions: []string{models.PermViewExpenses},
		Status:      models.MemberStatusActive,
	}, nil)

	_, err := f.svc.Dashboard(userCtx(1), &companyID)
	require.ErrorIs(t, err, ErrForbidden)
	f.expenses.AssertNotCalled(t, "Sum", mock.Anything, mock.Anything, mock.Anything)
}
