package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
)

//go:generate mockery --name=Users
//go:generate mockery --name=Debts

type Users interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Documents is the storage contract shared by every finance collection
type Documents[T any] interface {
	Insert(ctx context.Context, doc *T) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	Find(ctx context.Context, filter bson.M, opts ListOptions) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) error
	UpdateMany(ctx context.Context, filter, update bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	Sum(ctx context.Context, match bson.M, field string) (float64, error)
	SumBy(ctx context.Context, match bson.M, groupField, field string) ([]models.CategoryTotal, error)
	SumByMonth(ctx context.Context, match bson.M, dateField, field string) (map[string]float64, error)
}

type Debts interface {
	Documents[models.Debt]
	ApplyPayment(ctx context.Context, id primitive.ObjectID, amount float64) (*models.Debt, error)
	RevertPayment(ctx context.Context, id primitive.ObjectID, applied float64) error
}

var (
	_ Users                     = (*Repository)(nil)
	_ Documents[models.Expense] = (*Collection[models.Expense])(nil)
	_ Debts                     = (*DebtCollection)(nil)
)
