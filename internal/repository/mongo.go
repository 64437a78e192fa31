package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Dan9191/fintrack/internal/models"
)

// Collection names.
const (
	CollectionCompanies = "companies"
	CollectionExpenses  = "expenses"
	CollectionIncomes   = "incomes"
	CollectionDebts     = "debts"
	CollectionAssets    = "assets"
	CollectionBudgets   = "budgets"
	CollectionGoals     = "goals"
	CollectionPayments  = "payments"
	CollectionMembers   = "team_members"
	CollectionInvites   = "team_invites"
)

// Mongo holds the finance document collections
type Mongo struct {
	db *mongo.Database

	Companies *Collection[models.Company]
	Expenses  *Collection[models.Expense]
	Incomes   *Collection[models.Income]
	Debts     *DebtCollection
	Assets    *Collection[models.Asset]
	Budgets   *Collection[models.Budget]
	Goals     *Collection[models.Goal]
	Payments  *Collection[models.Payment]
	Members   *Collection[models.TeamMember]
	Invites   *Collection[models.TeamInvite]
}

func NewMongo(cli *mongo.Client, database string) *Mongo {
	db := cli.Database(database)
	return &Mongo{
		db:        db,
		Companies: NewCollection[models.Company](db.Collection(CollectionCompanies)),
		Expenses:  NewCollection[models.Expense](db.Collection(CollectionExpenses)),
		Incomes:   NewCollection[models.Income](db.Collection(CollectionIncomes)),
		Debts:     &DebtCollection{NewCollection[models.Debt](db.Collection(CollectionDebts))},
		Assets:    NewCollection[models.Asset](db.Collection(CollectionAssets)),
		Budgets:   NewCollection[models.Budget](db.Collection(CollectionBudgets)),
		Goals:     NewCollection[models.Goal](db.Collection(CollectionGoals)),
		Payments:  NewCollection[models.Payment](db.Collection(CollectionPayments)),
		Members:   NewCollection[models.TeamMember](db.Collection(CollectionMembers)),
		Invites:   NewCollection[models.TeamInvite](db.Collection(CollectionInvites)),
	}
}

// EnsureIndexes creates the indexes the query paths rely on
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	byUser := mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}}
	byCompany := mongo.IndexModel{Keys: bson.D{{Key: "company_id", Value: 1}}}

	indexes := map[string][]mongo.IndexModel{
		CollectionCompanies: {byUser},
		CollectionExpenses: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "budget_id", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "date", Value: 1}}},
		},
		CollectionIncomes:  {byUser, byCompany},
		CollectionDebts:    {byUser, byCompany},
		CollectionAssets:   {byUser, byCompany},
		CollectionBudgets:  {byUser, byCompany},
		CollectionGoals:    {byUser, byCompany},
		CollectionPayments: {byUser, {Keys: bson.D{{Key: "reference_id", Value: 1}}}},
		CollectionMembers: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{
				Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		CollectionInvites: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "email", Value: 1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := m.db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("mongo couldn't create indexes on %s: %w", name, err)
		}
	}
	return nil
}
