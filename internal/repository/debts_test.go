package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
)

func TestDebtCollection_ApplyAndRevertPayment(t *testing.T) {
	requireDocker(t)
	dropCollection(t, CollectionDebts)
	ctx := context.Background()

	debt := models.Debt{Name: "Car loan", OriginalAmount: 1000, CurrentBalance: 300, Status: models.DebtStatusActive, UserID: 1}
	id, err := mongoRepo.Debts.Insert(ctx, &debt)
	require.NoError(t, err)

	before, err := mongoRepo.Debts.ApplyPayment(ctx, id, 100)
	require.NoError(t, err)
	require.Equal(t, 300.0, before.CurrentBalance)

	after, err := mongoRepo.Debts.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 200.0, after.CurrentBalance)
	require.Equal(t, models.DebtStatusActive, after.Status)

	// overpayment floors at zero
	before, err = mongoRepo.Debts.ApplyPayment(ctx, id, 500)
	require.NoError(t, err)
	require.Equal(t, 200.0, before.CurrentBalance)

	after, err = mongoRepo.Debts.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 0.0, after.CurrentBalance)
	require.Equal(t, models.DebtStatusPaidOff, after.Status)

	require.NoError(t, mongoRepo.Debts.RevertPayment(ctx, id, 200))
	after, err = mongoRepo.Debts.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 200.0, after.CurrentBalance)
	require.Equal(t, models.DebtStatusActive, after.Status)
}

func TestDebtCollection_ApplyPaymentMissing(t *testing.T) {
	requireDocker(t)
	_, err := mongoRepo.Debts.ApplyPayment(context.Background(), primitive.NewObjectID(), 10)
	require.ErrorIs(t, err, ErrNotFound)
}
