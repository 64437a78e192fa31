package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
)

const (
	trendMonths      = 6
	upcomingBillDays = 30
)

var recurringExpenseTypes = bson.A{models.ExpenseTypeSubscription, models.ExpenseTypeRecurring}

// Dashboard summarizes the finances in scope: one company when companyID is set,
// otherwise personal records plus every company granting view_reports.
func (s *Service) Dashboard(ctx context.Context, companyID *primitive.ObjectID) (*models.DashboardSummary, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	scope, err := s.scopeFilter(ctx, userID, companyID, models.PermViewReports)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := utils.StartOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, 0)
	thisMonth := bson.M{"date": bson.M{"$gte": monthStart, "$lt": monthEnd}}

	d := &models.DashboardSummary{PeriodStart: monthStart, PeriodEnd: monthEnd}

	if d.MonthExpenses, err = s.store.Expenses.Sum(ctx, merge(scope, thisMonth), "amount"); err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	if d.MonthIncome, err = s.store.Incomes.Sum(ctx, merge(scope, thisMonth), "amount"); err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}
	if d.ExpensesByCategory, err = s.store.Expenses.SumBy(ctx, merge(scope, thisMonth), "category", "amount"); err != nil {
		return nil, fmt.Errorf("failed to group expenses: %w", err)
	}

	recurringIncome, err := s.store.Incomes.Find(ctx, merge(scope, bson.M{
		"frequency": bson.M{"$ne": utils.FrequencyOneTime},
	}), repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring income: %w", err)
	}
	monthlyIncome := decimal.Zero
	for _, i := range recurringIncome {
		monthlyIncome = monthlyIncome.Add(decimal.NewFromFloat(i.Amount).Mul(utils.MonthlyFactor(i.Frequency)))
	}
	d.MonthlyRecurringIncome = utils.Round2(monthlyIncome)

	recurringExpenses, err := s.store.Expenses.Find(ctx, merge(scope, bson.M{
		"expense_type": bson.M{"$in": recurringExpenseTypes},
		"status":       models.ExpenseStatusActive,
	}), repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring expenses: %w", err)
	}
	monthlyExpenses := decimal.Zero
	for _, e := range recurringExpenses {
		monthlyExpenses = monthlyExpenses.Add(decimal.NewFromFloat(e.Amount).Mul(utils.MonthlyFactor(e.Frequency)))
	}
	d.MonthlyRecurringExpenses = utils.Round2(monthlyExpenses)

	if d.TotalDebt, err = s.store.Debts.Sum(ctx, merge(scope, bson.M{"status": models.DebtStatusActive}), "current_balance"); err != nil {
		return nil, fmt.Errorf("failed to sum debts: %w", err)
	}
	if d.TotalAssets, err = s.store.Assets.Sum(ctx, scope, "value"); err != nil {
		return nil, fmt.Errorf("failed to sum assets: %w", err)
	}
	d.MonthExpenses = utils.Money(d.MonthExpenses)
	d.MonthIncome = utils.Money(d.MonthIncome)
	d.TotalDebt = utils.Money(d.TotalDebt)
	d.TotalAssets = utils.Money(d.TotalAssets)
	d.NetWorth = utils.SumMoney(d.TotalAssets, -d.TotalDebt)

	if d.Trend, err = s.trend(ctx, scope, monthStart); err != nil {
		return nil, err
	}
	if d.UpcomingBills, err = s.upcomingBills(ctx, scope, now, now.AddDate(0, 0, upcomingBillDays)); err != nil {
		return nil, err
	}

	budgets, err := s.store.Budgets.Find(ctx, merge(scope, bson.M{"end_date": bson.M{"$gte": now}}), repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	d.BudgetsAtRisk = []models.BudgetStatus{}
	for i := range budgets {
		if status := budgetStatus(&budgets[i]); status.AlertTriggered {
			d.BudgetsAtRisk = append(d.BudgetsAtRisk, status)
		}
	}
	return d, nil
}

// trend returns income and expense totals for the last trendMonths months, oldest first
func (s *Service) trend(ctx context.Context, scope bson.M, monthStart time.Time) ([]models.MonthlyTotal, error) {
	from := monthStart.AddDate(0, -(trendMonths - 1), 0)
	window := bson.M{"date": bson.M{"$gte": from, "$lt": monthStart.AddDate(0, 1, 0)}}

	expenses, err := s.store.Expenses.SumByMonth(ctx, merge(scope, window), "date", "amount")
	if err != nil {
		return nil, fmt.Errorf("failed to group expenses by month: %w", err)
	}
	incomes, err := s.store.Incomes.SumByMonth(ctx, merge(scope, window), "date", "amount")
	if err != nil {
		return nil, fmt.Errorf("failed to group income by month: %w", err)
	}

	trend := make([]models.MonthlyTotal, 0, trendMonths)
	for m := from; !m.After(monthStart); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		trend = append(trend, models.MonthlyTotal{
			Month:      key,
			Income:     utils.Money(incomes[key]),
			Expense:    utils.Money(expenses[key]),
			NetBalance: utils.SumMoney(incomes[key], -expenses[key]),
		})
	}
	return trend, nil
}

func (s *Service) upcomingBills(ctx context.Context, scope bson.M, from, to time.Time) ([]models.UpcomingBill, error) {
	due := bson.M{"$gte": from, "$lte": to}

	expenses, err := s.store.Expenses.Find(ctx, merge(scope, bson.M{
		"expense_type":      bson.M{"$in": recurringExpenseTypes},
		"status":            models.ExpenseStatusActive,
		"next_billing_date": due,
	}), repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming expenses: %w", err)
	}
	debts, err := s.store.Debts.Find(ctx, merge(scope, bson.M{
		"status":            models.DebtStatusActive,
		"next_payment_date": due,
	}), repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming debt payments: %w", err)
	}

	bills := make([]models.UpcomingBill, 0, len(expenses)+len(debts))
	for _, e := range expenses {
		if e.NextBillingDate == nil {
			continue
		}
		bills = append(bills, models.UpcomingBill{
			ID:          e.ID.Hex(),
			Kind:        "expense",
			Description: e.Description,
			Amount:      e.Amount,
			DueDate:     *e.NextBillingDate,
		})
	}
	for _, d := range debts {
		if d.NextPaymentDate == nil {
			continue
		}
		bills = append(bills, models.UpcomingBill{
			ID:          d.ID.Hex(),
			Kind:        "debt",
			Description: d.Name,
			Amount:      math.Min(d.MinimumPayment, d.CurrentBalance),
			DueDate:     *d.NextPaymentDate,
		})
	}
	sort.SliceStable(bills, func(i, j int) bool { return bills[i].DueDate.Before(bills[j].DueDate) })
	return bills, nil
}
