package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
	"github.com/Dan9191/fintrack/internal/utils/email"
)

// budgetScope limits a budget's category fallback to records of the same owner scope
func budgetScope(b *models.Budget) bson.M {
	if b.CompanyID != nil {
		return bson.M{"company_id": *b.CompanyID}
	}
	return bson.M{"user_id": b.UserID, "company_id": nil}
}

// BudgetExpenseFilter matches the expenses that count towards b: those assigned to it,
// plus unassigned expenses of its category dated inside its period.
func BudgetExpenseFilter(b *models.Budget) bson.M {
	fallback := budgetScope(b)
	fallback["budget_id"] = nil
	fallback["category"] = b.Category
	fallback["date"] = bson.M{"$gte": b.StartDate, "$lte": b.EndDate}
	return bson.M{"$or": bson.A{bson.M{"budget_id": b.ID}, fallback}}
}

// budgetCountsExpense is BudgetExpenseFilter evaluated in memory
func budgetCountsExpense(b *models.Budget, e *models.Expense) bool {
	if e.BudgetID != nil {
		return *e.BudgetID == b.ID
	}
	if b.CompanyID != nil {
		if !sameID(b.CompanyID, e.CompanyID) {
			return false
		}
	} else if e.CompanyID != nil || e.UserID != b.UserID {
		return false
	}
	return e.Category == b.Category && !e.Date.Before(b.StartDate) && !e.Date.After(b.EndDate)
}

func budgetStatus(b *models.Budget) models.BudgetStatus {
	percent := utils.Percent(b.SpentAmount, b.TotalAmount)
	return models.BudgetStatus{
		Budget:         *b,
		Remaining:      utils.SumMoney(b.TotalAmount, -b.SpentAmount),
		PercentUsed:    percent,
		OverBudget:     b.SpentAmount > b.TotalAmount,
		AlertTriggered: percent >= b.AlertThreshold,
	}
}

func (s *Service) ListBudgets(ctx context.Context, companyID *primitive.ObjectID) ([]models.BudgetStatus, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := s.scopeFilter(ctx, userID, companyID, models.PermViewBudgets)
	if err != nil {
		return nil, err
	}
	budgets, err := s.store.Budgets.Find(ctx, filter, repository.ListOptions{
		Sort: bson.D{{Key: "start_date", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	statuses := make([]models.BudgetStatus, 0, len(budgets))
	for i := range budgets {
		statuses = append(statuses, budgetStatus(&budgets[i]))
	}
	return statuses, nil
}

func (s *Service) loadBudget(ctx context.Context, userID int64, id primitive.ObjectID, perm string) (*models.Budget, error) {
	budget, err := s.store.Budgets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRecord(ctx, userID, budget.UserID, budget.CompanyID, perm); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *Service) GetBudget(ctx context.Context, id primitive.ObjectID) (*models.BudgetStatus, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	budget, err := s.loadBudget(ctx, userID, id, models.PermViewBudgets)
	if err != nil {
		return nil, err
	}
	status := budgetStatus(budget)
	return &status, nil
}

func (s *Service) applyBudgetInput(ctx context.Context, userID int64, b *models.Budget, in models.BudgetInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	companyID, err := s.resolveCompany(ctx, userID, in.CompanyID, models.PermEditBudgets)
	if err != nil {
		return err
	}
	b.CompanyID = companyID
	b.Name = strings.TrimSpace(in.Name)
	b.Category = strings.TrimSpace(in.Category)
	b.TotalAmount = utils.Money(in.TotalAmount)
	b.StartDate = in.StartDate.UTC()
	b.EndDate = in.EndDate.UTC()
	b.AlertThreshold = in.AlertThreshold
	if b.AlertThreshold == 0 {
		b.AlertThreshold = models.DefaultAlertThreshold
	}
	return nil
}

// CreateBudget stores the budget and computes its spend right away
func (s *Service) CreateBudget(ctx context.Context, in models.BudgetInput) (*models.BudgetStatus, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	budget := &models.Budget{UserID: userID}
	if err := s.applyBudgetInput(ctx, userID, budget, in); err != nil {
		return nil, err
	}
	now := s.now()
	budget.CreatedAt = now
	budget.UpdatedAt = now
	if budget.ID, err = s.store.Budgets.Insert(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return s.syncBudget(ctx, budget)
}

func (s *Service) UpdateBudget(ctx context.Context, id primitive.ObjectID, in models.BudgetInput) (*models.BudgetStatus, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	budget, err := s.loadBudget(ctx, userID, id, models.PermEditBudgets)
	if err != nil {
		return nil, err
	}
	if err := s.applyBudgetInput(ctx, userID, budget, in); err != nil {
		return nil, err
	}
	budget.UpdatedAt = s.now()

	set := bson.M{
		"name":            budget.Name,
		"category":        budget.Category,
		"total_amount":    budget.TotalAmount,
		"start_date":      budget.StartDate,
		"end_date":        budget.EndDate,
		"alert_threshold": budget.AlertThreshold,
		"updated_at":      budget.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if budget.CompanyID != nil {
		set["company_id"] = *budget.CompanyID
	} else {
		update["$unset"] = bson.M{"company_id": ""}
	}
	if err := s.store.Budgets.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return s.syncBudget(ctx, budget)
}

// DeleteBudget removes the budget and unassigns its expenses
func (s *Service) DeleteBudget(ctx context.Context, id primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.loadBudget(ctx, userID, id, models.PermEditBudgets); err != nil {
		return err
	}
	if err := s.store.Budgets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if _, err := s.store.Expenses.UpdateMany(ctx, bson.M{"budget_id": id}, bson.M{"$unset": bson.M{"budget_id": ""}}); err != nil {
		return fmt.Errorf("failed to unassign expenses: %w", err)
	}
	return nil
}

func (s *Service) SyncBudget(ctx context.Context, id primitive.ObjectID) (*models.BudgetStatus, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	budget, err := s.loadBudget(ctx, userID, id, models.PermViewBudgets)
	if err != nil {
		return nil, err
	}
	return s.syncBudget(ctx, budget)
}

// SyncBudgets recomputes every budget the caller can see
func (s *Service) SyncBudgets(ctx context.Context) ([]models.BudgetStatus, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := s.scopeFilter(ctx, userID, nil, models.PermViewBudgets)
	if err != nil {
		return nil, err
	}
	return s.syncMatching(ctx, filter)
}

// SyncAllBudgets recomputes every stored budget. It runs from the scheduler and the CLI.
func (s *Service) SyncAllBudgets(ctx context.Context) (int, error) {
	statuses, err := s.syncMatching(ctx, bson.M{})
	return len(statuses), err
}

// SyncUserBudgets recomputes the budgets created by userID
func (s *Service) SyncUserBudgets(ctx context.Context, userID int64) (int, error) {
	statuses, err := s.syncMatching(ctx, bson.M{"user_id": userID})
	return len(statuses), err
}

func (s *Service) syncMatching(ctx context.Context, filter bson.M) ([]models.BudgetStatus, error) {
	budgets, err := s.store.Budgets.Find(ctx, filter, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	statuses := make([]models.BudgetStatus, 0, len(budgets))
	for i := range budgets {
		status, err := s.syncBudget(ctx, &budgets[i])
		if err != nil {
			return statuses, err
		}
		statuses = append(statuses, *status)
	}
	return statuses, nil
}

// syncBudget writes the rolled-up spend of b and sends the threshold alert once per crossing
func (s *Service) syncBudget(ctx context.Context, b *models.Budget) (*models.BudgetStatus, error) {
	spent, err := s.store.Expenses.Sum(ctx, BudgetExpenseFilter(b), "amount")
	if err != nil {
		return nil, fmt.Errorf("failed to sum budget expenses: %w", err)
	}
	now := s.now()
	b.SpentAmount = utils.Money(spent)
	b.LastSyncedAt = &now

	status := budgetStatus(b)
	switch {
	case status.AlertTriggered && !b.AlertSent:
		b.AlertSent = s.sendBudgetAlert(ctx, &status)
	case !status.AlertTriggered && b.AlertSent:
		b.AlertSent = false
	}
	status.Budget = *b

	if err := s.store.Budgets.Update(ctx, b.ID, bson.M{"$set": bson.M{
		"spent_amount":   b.SpentAmount,
		"last_synced_at": now,
		"alert_sent":     b.AlertSent,
	}}); err != nil {
		return nil, fmt.Errorf("failed to store budget spend: %w", err)
	}
	return &status, nil
}

// sendBudgetAlert reports whether the alert went out
func (s *Service) sendBudgetAlert(ctx context.Context, status *models.BudgetStatus) bool {
	user, err := s.store.Users.FindUserByID(ctx, status.UserID)
	if err != nil {
		s.log.Warnf("budget alert for %s skipped: %v", status.ID.Hex(), err)
		return false
	}
	msg := email.BudgetAlert(user.Email, user.Username, status.Name, status.SpentAmount, status.TotalAmount, status.PercentUsed)
	if err := s.mailer.Send(msg); err != nil {
		s.log.Warnf("budget alert for %s not delivered: %v", status.ID.Hex(), err)
		return false
	}
	return true
}

// resyncBudgetsFor recomputes every budget that counts any of the given expense states.
// Failures are logged; the expense write has already happened.
func (s *Service) resyncBudgetsFor(ctx context.Context, expenses ...*models.Expense) {
	alternatives := bson.A{}
	for _, e := range expenses {
		if e.BudgetID != nil {
			alternatives = append(alternatives, bson.M{"_id": *e.BudgetID})
		}
		alternatives = append(alternatives, bson.M{
			"category":   e.Category,
			"start_date": bson.M{"$lte": e.Date},
			"end_date":   bson.M{"$gte": e.Date},
		})
	}
	candidates, err := s.store.Budgets.Find(ctx, bson.M{"$or": alternatives}, repository.ListOptions{})
	if err != nil {
		s.log.Warnf("budget resync skipped: %v", err)
		return
	}
	for i := range candidates {
		b := &candidates[i]
		for _, e := range expenses {
			if !budgetCountsExpense(b, e) {
				continue
			}
			if _, err := s.syncBudget(ctx, b); err != nil && !errors.Is(err, repository.ErrNotFound) {
				s.log.Warnf("budget %s resync failed: %v", b.ID.Hex(), err)
			}
			break
		}
	}
}
