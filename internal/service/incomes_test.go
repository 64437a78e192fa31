package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/utils"
)

func TestCreateIncome_NextPaymentDate(t *testing.T) {
	monthly, weekly := date(2024, 3, 2), date(2024, 2, 7)
	tests := []struct {
		name      string
		frequency string
		want      *time.Time
	}{
		{name: "monthly normalizes the calendar", frequency: utils.FrequencyMonthly, want: &monthly},
		{name: "weekly", frequency: utils.FrequencyWeekly, want: &weekly},
		{name: "one-time has none", frequency: utils.FrequencyOneTime, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.incomes.On("Insert", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)

			income, err := f.svc.CreateIncome(userCtx(1), models.IncomeInput{
				Source:    "Consulting",
				Amount:    1500,
				Frequency: tt.frequency,
				Date:      date(2024, 1, 31),
			})
			require.NoError(t, err)
			require.Equal(t, "USD", income.Currency)
			require.Equal(t, tt.want, income.NextPaymentDate)
		})
	}
}

func storedIncome() *models.Income {
	next := date(2024, 7, 5)
	return &models.Income{
		ID:              primitive.NewObjectID(),
		Source:          "Salary",
		Amount:          3000,
		Currency:        "USD",
		Frequency:       utils.FrequencyMonthly,
		Date:            date(2024, 1, 5),
		NextPaymentDate: &next,
		UserID:          1,
	}
}

func TestUpdateIncome_KeepsAdvancedSchedule(t *testing.T) {
	f := newFixture(t)
	income := storedIncome()
	f.incomes.On("Get", mock.Anything, income.ID).Return(income, nil)
	f.incomes.On("Update", mock.Anything, income.ID, mock.MatchedBy(func(u bson.M) bool {
		set := u["$set"].(bson.M)
		return set["amount"] == 3200.0 && timeIs(set["next_payment_date"], date(2024, 7, 5))
	})).Return(nil).Once()

	got, err := f.svc.UpdateIncome(userCtx(1), income.ID, models.IncomeInput{
		Source:    "Salary",
		Amount:    3200,
		Frequency: utils.FrequencyMonthly,
		Date:      date(2024, 1, 5),
	})
	require.NoError(t, err)
	require.Equal(t, date(2024, 7, 5), *got.NextPaymentDate)
}

func TestUpdateIncome_NewDateRestartsAfterNow(t *testing.T) {
	f := newFixture(t)
	income := storedIncome()
	f.incomes.On("Get", mock.Anything, income.ID).Return(income, nil)
	f.incomes.On("Update", mock.Anything, income.ID, mock.MatchedBy(func(u bson.M) bool {
		return timeIs(u["$set"].(bson.M)["next_payment_date"], date(2024, 7, 10))
	})).Return(nil).Once()

	got, err := f.svc.UpdateIncome(userCtx(1), income.ID, models.IncomeInput{
		Source:    "Salary",
		Amount:    3000,
		Frequency: utils.FrequencyMonthly,
		Date:      date(2024, 6, 10),
	})
	require.NoError(t, err)
	require.Equal(t, date(2024, 7, 10), *got.NextPaymentDate)
}
