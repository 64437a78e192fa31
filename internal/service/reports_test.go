package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/utils"
)

func TestExportReport_UnknownType(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer

	err := f.svc.ExportReport(userCtx(1), &buf, ReportFilter{Type: "assets"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"type must be one of: expenses, income"}, verr.Messages)
	require.Zero(t, buf.Len())
}

func TestExportReport_Income(t *testing.T) {
	f := newFixture(t)
	from := date(2024, 1, 1)
	f.companies.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Company{}, nil)
	f.members.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.TeamMember{}, nil)
	f.incomes.On("Find", mock.Anything, mock.MatchedBy(func(filter bson.M) bool {
		return assert.ObjectsAreEqual(bson.M{"$gte": from}, filter["date"])
	}), mock.Anything).Return([]models.Income{
		{Source: "Salary", Amount: 3000, Currency: "USD", Frequency: utils.FrequencyMonthly, Date: date(2024, 6, 1)},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportReport(userCtx(1), &buf, ReportFilter{Type: ReportIncome, From: &from}))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
	f.expenses.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}
