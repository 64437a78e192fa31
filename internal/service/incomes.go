package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
)

func nextPaymentDate(frequency string, from time.Time) *time.Time {
	next, ok := utils.NextDate(frequency, from)
	if !ok {
		return nil
	}
	return &next
}

// keptSchedule decides the due date after an edit. An unchanged schedule keeps the stored date,
// which payments and rollover may have moved on; a changed one restarts from the first
// occurrence after now.
func keptSchedule(stored *time.Time, frequency, prevFrequency string, from, prevFrom, now time.Time) *time.Time {
	if stored != nil && frequency == prevFrequency && from.Equal(prevFrom) {
		return stored
	}
	next, ok := utils.NextAfter(frequency, from, now)
	if !ok {
		return nil
	}
	return &next
}

func (s *Service) ListIncomes(ctx context.Context, f models.IncomeFilter) ([]models.Income, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := s.scopeFilter(ctx, userID, f.CompanyID, models.PermViewIncome)
	if err != nil {
		return nil, err
	}
	if f.Source != "" {
		filter["source"] = f.Source
	}
	if f.Frequency != "" {
		filter["frequency"] = f.Frequency
	}
	if r := dateRange(f.From, f.To); len(r) > 0 {
		filter["date"] = r
	}
	incomes, err := s.store.Incomes.Find(ctx, filter, repository.ListOptions{
		Sort: bson.D{{Key: "date", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	return incomes, nil
}

func (s *Service) loadIncome(ctx context.Context, userID int64, id primitive.ObjectID, perm string) (*models.Income, error) {
	income, err := s.store.Incomes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRecord(ctx, userID, income.UserID, income.CompanyID, perm); err != nil {
		return nil, err
	}
	return income, nil
}

func (s *Service) GetIncome(ctx context.Context, id primitive.ObjectID) (*models.Income, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadIncome(ctx, userID, id, models.PermViewIncome)
}

func (s *Service) applyIncomeInput(ctx context.Context, userID int64, i *models.Income, in models.IncomeInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	companyID, err := s.resolveCompany(ctx, userID, in.CompanyID, models.PermEditIncome)
	if err != nil {
		return err
	}
	i.CompanyID = companyID
	i.Source = strings.TrimSpace(in.Source)
	i.Amount = utils.Money(in.Amount)
	i.Currency = currencyOrDefault(in.Currency)
	i.Category = in.Category
	i.Frequency = in.Frequency
	i.Date = in.Date.UTC()
	i.Description = in.Description
	i.NextPaymentDate = nextPaymentDate(i.Frequency, i.Date)
	return nil
}

func (s *Service) CreateIncome(ctx context.Context, in models.IncomeInput) (*models.Income, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	income := &models.Income{UserID: userID}
	if err := s.applyIncomeInput(ctx, userID, income, in); err != nil {
		return nil, err
	}
	now := s.now()
	income.CreatedAt = now
	income.UpdatedAt = now
	if income.ID, err = s.store.Incomes.Insert(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return income, nil
}

func (s *Service) UpdateIncome(ctx context.Context, id primitive.ObjectID, in models.IncomeInput) (*models.Income, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	income, err := s.loadIncome(ctx, userID, id, models.PermEditIncome)
	if err != nil {
		return nil, err
	}
	stored, prevFrequency, prevDate := income.NextPaymentDate, income.Frequency, income.Date
	if err := s.applyIncomeInput(ctx, userID, income, in); err != nil {
		return nil, err
	}
	income.UpdatedAt = s.now()
	income.NextPaymentDate = keptSchedule(stored, income.Frequency, prevFrequency, income.Date, prevDate, income.UpdatedAt)

	set := bson.M{
		"source":      income.Source,
		"amount":      income.Amount,
		"currency":    income.Currency,
		"category":    income.Category,
		"frequency":   income.Frequency,
		"date":        income.Date,
		"description": income.Description,
		"updated_at":  income.UpdatedAt,
	}
	unset := bson.M{}
	if income.CompanyID != nil {
		set["company_id"] = *income.CompanyID
	} else {
		unset["company_id"] = ""
	}
	if income.NextPaymentDate != nil {
		set["next_payment_date"] = *income.NextPaymentDate
	} else {
		unset["next_payment_date"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if err := s.store.Incomes.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}
	return income, nil
}

func (s *Service) DeleteIncome(ctx context.Context, id primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.loadIncome(ctx, userID, id, models.PermEditIncome); err != nil {
		return err
	}
	if err := s.store.Incomes.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return nil
}
