package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dan9191/fintrack/internal/models"
)

// DebtCollection adds balance arithmetic on top of the generic collection
type DebtCollection struct {
	*Collection[models.Debt]
}

// ApplyPayment lowers the balance by amount in a single server-side update, never below zero,
// and flips the status to paid_off once the balance reaches zero. It returns the debt as it was
// before the update so the caller can tell how much of amount was applied.
func (d *DebtCollection) ApplyPayment(ctx context.Context, id primitive.ObjectID, amount float64) (*models.Debt, error) {
	newBalance := bson.D{{Key: "$max", Value: bson.A{
		0,
		bson.D{{Key: "$subtract", Value: bson.A{"$current_balance", amount}}},
	}}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "current_balance", Value: newBalance},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "status", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$lte", Value: bson.A{"$current_balance", 0}}},
				models.DebtStatusPaidOff,
				models.DebtStatusActive,
			}}}},
		}}},
	}

	var before models.Debt
	err := d.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.Before)).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't FindOneAndUpdate in ApplyPayment: %w", err)
	}
	return &before, nil
}

// RevertPayment adds applied back to the balance and reactivates the debt
func (d *DebtCollection) RevertPayment(ctx context.Context, id primitive.ObjectID, applied float64) error {
	if applied <= 0 {
		return nil
	}
	return d.Update(ctx, id, bson.M{
		"$inc": bson.M{"current_balance": applied},
		"$set": bson.M{"status": models.DebtStatusActive, "updated_at": time.Now().UTC()},
	})
}
