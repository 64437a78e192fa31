package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
)

func (s *Service) ListDebts(ctx context.Context, companyID *primitive.ObjectID, status string) ([]models.Debt, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := s.scopeFilter(ctx, userID, companyID, models.PermViewDebts)
	if err != nil {
		return nil, err
	}
	if status != "" {
		filter["status"] = status
	}
	debts, err := s.store.Debts.Find(ctx, filter, repository.ListOptions{
		Sort: bson.D{{Key: "next_payment_date", Value: 1}, {Key: "name", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	return debts, nil
}

func (s *Service) loadDebt(ctx context.Context, userID int64, id primitive.ObjectID, perm string) (*models.Debt, error) {
	debt, err := s.store.Debts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRecord(ctx, userID, debt.UserID, debt.CompanyID, perm); err != nil {
		return nil, err
	}
	return debt, nil
}

func (s *Service) GetDebt(ctx context.Context, id primitive.ObjectID) (*models.Debt, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadDebt(ctx, userID, id, models.PermViewDebts)
}

func (s *Service) applyDebtInput(ctx context.Context, userID int64, d *models.Debt, in models.DebtInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	companyID, err := s.resolveCompany(ctx, userID, in.CompanyID, models.PermEditDebts)
	if err != nil {
		return err
	}
	d.CompanyID = companyID
	d.Name = strings.TrimSpace(in.Name)
	d.Lender = in.Lender
	d.Type = in.Type
	d.OriginalAmount = utils.Money(in.OriginalAmount)
	d.CurrentBalance = d.OriginalAmount
	if in.CurrentBalance != nil {
		d.CurrentBalance = utils.Money(*in.CurrentBalance)
	}
	d.InterestRate = in.InterestRate
	d.MinimumPayment = utils.Money(in.MinimumPayment)
	d.Frequency = in.Frequency
	if d.Frequency == "" {
		d.Frequency = utils.FrequencyMonthly
	}
	d.StartDate = in.StartDate.UTC()
	d.Status = models.DebtStatusActive
	d.NextPaymentDate = nextPaymentDate(d.Frequency, d.StartDate)
	if d.CurrentBalance <= 0 {
		d.Status = models.DebtStatusPaidOff
		d.NextPaymentDate = nil
	}
	return nil
}

func (s *Service) CreateDebt(ctx context.Context, in models.DebtInput) (*models.Debt, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	debt := &models.Debt{UserID: userID}
	if err := s.applyDebtInput(ctx, userID, debt, in); err != nil {
		return nil, err
	}
	now := s.now()
	debt.CreatedAt = now
	debt.UpdatedAt = now
	if debt.ID, err = s.store.Debts.Insert(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return debt, nil
}

// UpdateDebt keeps the current balance unless the input sets one explicitly, and the
// payment schedule unless frequency or start date changed
func (s *Service) UpdateDebt(ctx context.Context, id primitive.ObjectID, in models.DebtInput) (*models.Debt, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	debt, err := s.loadDebt(ctx, userID, id, models.PermEditDebts)
	if err != nil {
		return nil, err
	}
	if in.CurrentBalance == nil {
		balance := debt.CurrentBalance
		in.CurrentBalance = &balance
	}
	stored, prevFrequency, prevStart := debt.NextPaymentDate, debt.Frequency, debt.StartDate
	if err := s.applyDebtInput(ctx, userID, debt, in); err != nil {
		return nil, err
	}
	debt.UpdatedAt = s.now()
	if debt.Status == models.DebtStatusActive {
		debt.NextPaymentDate = keptSchedule(stored, debt.Frequency, prevFrequency, debt.StartDate, prevStart, debt.UpdatedAt)
	}

	set := bson.M{
		"name":            debt.Name,
		"lender":          debt.Lender,
		"type":            debt.Type,
		"original_amount": debt.OriginalAmount,
		"current_balance": debt.CurrentBalance,
		"interest_rate":   debt.InterestRate,
		"minimum_payment": debt.MinimumPayment,
		"frequency":       debt.Frequency,
		"start_date":      debt.StartDate,
		"status":          debt.Status,
		"updated_at":      debt.UpdatedAt,
	}
	unset := bson.M{}
	if debt.CompanyID != nil {
		set["company_id"] = *debt.CompanyID
	} else {
		unset["company_id"] = ""
	}
	if debt.NextPaymentDate != nil {
		set["next_payment_date"] = *debt.NextPaymentDate
	} else {
		unset["next_payment_date"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if err := s.store.Debts.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}
	return debt, nil
}

func (s *Service) DeleteDebt(ctx context.Context, id primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.loadDebt(ctx, userID, id, models.PermEditDebts); err != nil {
		return err
	}
	if err := s.store.Debts.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return nil
}

// DebtSummary totals the debts in scope; MonthlyPayments normalizes active minimum payments to a month
func (s *Service) DebtSummary(ctx context.Context, companyID *primitive.ObjectID) (*models.DebtSummary, error) {
	debts, err := s.ListDebts(ctx, companyID, "")
	if err != nil {
		return nil, err
	}
	return summarizeDebts(debts), nil
}

func summarizeDebts(debts []models.Debt) *models.DebtSummary {
	original, balance, monthly := decimal.Zero, decimal.Zero, decimal.Zero
	summary := &models.DebtSummary{}
	for _, d := range debts {
		original = original.Add(decimal.NewFromFloat(d.OriginalAmount))
		balance = balance.Add(decimal.NewFromFloat(d.CurrentBalance))
		if d.Status == models.DebtStatusActive {
			summary.ActiveCount++
			monthly = monthly.Add(decimal.NewFromFloat(d.MinimumPayment).Mul(utils.MonthlyFactor(d.Frequency)))
		}
	}
	summary.TotalOriginal = utils.Round2(original)
	summary.TotalBalance = utils.Round2(balance)
	summary.MonthlyPayments = utils.Round2(monthly)
	summary.PaidOffPercent = utils.Percent(utils.Round2(original.Sub(balance)), summary.TotalOriginal)
	return summary
}
