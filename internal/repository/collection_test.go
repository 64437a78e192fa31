package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
)

func dropCollection(t *testing.T, name string) {
	t.Helper()
	t.Cleanup(func() {
		if err := mongoCli.Database("fintrack_test").Collection(name).Drop(context.Background()); err != nil {
			t.Fatal(err)
		}
	})
}

func TestCollection_CRUD(t *testing.T) {
	requireDocker(t)
	dropCollection(t, CollectionAssets)
	ctx := context.Background()

	asset := models.Asset{Name: "Laptop", Type: "equipment", Value: 1200, PurchasePrice: 2000, UserID: 7}
	id, err := mongoRepo.Assets.Insert(ctx, &asset)
	require.NoError(t, err)
	require.False(t, id.IsZero())

	got, err := mongoRepo.Assets.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Laptop", got.Name)
	require.Equal(t, int64(7), got.UserID)

	require.NoError(t, mongoRepo.Assets.Update(ctx, id, bson.M{"$set": bson.M{"value": 1100.0}}))
	got, err = mongoRepo.Assets.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1100.0, got.Value)

	list, err := mongoRepo.Assets.Find(ctx, bson.M{"user_id": int64(7)}, ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, mongoRepo.Assets.Delete(ctx, id))
	_, err = mongoRepo.Assets.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, mongoRepo.Assets.Delete(ctx, id), ErrNotFound)
	require.ErrorIs(t, mongoRepo.Assets.Update(ctx, primitive.NewObjectID(), bson.M{"$set": bson.M{"value": 1.0}}), ErrNotFound)
}

func TestCollection_Aggregations(t *testing.T) {
	requireDocker(t)
	dropCollection(t, CollectionExpenses)
	ctx := context.Background()

	expenses := []models.Expense{
		{Category: "food", Amount: 10.5, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), UserID: 1},
		{Category: "food", Amount: 4.5, Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), UserID: 1},
		{Category: "rent", Amount: 500, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), UserID: 1},
		{Category: "rent", Amount: 900, Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), UserID: 2},
	}
	for i := range expenses {
		_, err := mongoRepo.Expenses.Insert(ctx, &expenses[i])
		require.NoError(t, err)
	}

	match := bson.M{"user_id": int64(1)}
	total, err := mongoRepo.Expenses.Sum(ctx, match, "amount")
	require.NoError(t, err)
	require.Equal(t, 515.0, total)

	byCategory, err := mongoRepo.Expenses.SumBy(ctx, match, "category", "amount")
	require.NoError(t, err)
	require.Equal(t, []models.CategoryTotal{
		{Category: "rent", Total: 500, Count: 1},
		{Category: "food", Total: 15, Count: 2},
	}, byCategory)

	byMonth, err := mongoRepo.Expenses.SumByMonth(ctx, match, "date", "amount")
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"2024-01": 10.5, "2024-02": 504.5}, byMonth)

	empty, err := mongoRepo.Expenses.Sum(ctx, bson.M{"user_id": int64(99)}, "amount")
	require.NoError(t, err)
	require.Zero(t, empty)
}

func TestCollection_DuplicateKey(t *testing.T) {
	requireDocker(t)
	dropCollection(t, CollectionInvites)
	ctx := context.Background()
	require.NoError(t, mongoRepo.EnsureIndexes(ctx))

	invite := models.TeamInvite{CompanyID: primitive.NewObjectID(), Email: "a@b.c", Token: "tok"}
	_, err := mongoRepo.Invites.Insert(ctx, &invite)
	require.NoError(t, err)

	dup := invite
	_, err = mongoRepo.Invites.Insert(ctx, &dup)
	require.ErrorIs(t, err, ErrDuplicate)
}
