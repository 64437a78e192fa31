package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	maxPage         = 100000
)

func pageOptions(page, limit int) repository.ListOptions {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	return repository.ListOptions{
		Sort:  bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}},
		Skip:  int64(page-1) * int64(limit),
		Limit: int64(limit),
	}
}

func dateRange(from, to *time.Time) bson.M {
	r := bson.M{}
	if from != nil {
		r["$gte"] = from.UTC()
	}
	if to != nil {
		r["$lte"] = to.UTC()
	}
	return r
}

// nextBillingDate is one frequency step after the start (or the expense date) for recurring expenses
func nextBillingDate(e *models.Expense) *time.Time {
	if !e.IsRecurring() || e.Status == models.ExpenseStatusCancelled {
		return nil
	}
	from := e.Date
	if e.StartDate != nil {
		from = *e.StartDate
	}
	next, ok := utils.NextDate(e.Frequency, from)
	if !ok {
		return nil
	}
	return &next
}

func (s *Service) ListExpenses(ctx context.Context, f models.ExpenseFilter) ([]models.Expense, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if f.Page > maxPage {
		return nil, invalid(fmt.Sprintf("page must be at most %d", maxPage))
	}
	filter, err := s.scopeFilter(ctx, userID, f.CompanyID, models.PermViewExpenses)
	if err != nil {
		return nil, err
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.ExpenseType != "" {
		filter["expense_type"] = f.ExpenseType
	}
	if f.BudgetID != nil {
		filter["budget_id"] = *f.BudgetID
	}
	if r := dateRange(f.From, f.To); len(r) > 0 {
		filter["date"] = r
	}

	expenses, err := s.store.Expenses.Find(ctx, filter, pageOptions(f.Page, f.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *Service) GetExpense(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadExpense(ctx, userID, id, models.PermViewExpenses)
}

func (s *Service) loadExpense(ctx context.Context, userID int64, id primitive.ObjectID, perm string) (*models.Expense, error) {
	expense, err := s.store.Expenses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRecord(ctx, userID, expense.UserID, expense.CompanyID, perm); err != nil {
		return nil, err
	}
	return expense, nil
}

// applyExpenseInput validates in and resolves its company and budget references onto e
func (s *Service) applyExpenseInput(ctx context.Context, userID int64, e *models.Expense, in models.ExpenseInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if in.ExpenseType != models.ExpenseTypeOneTime && in.Frequency == "" {
		return invalid("frequency is required for subscription and recurring expenses")
	}

	companyID, err := s.resolveCompany(ctx, userID, in.CompanyID, models.PermEditExpenses)
	if err != nil {
		return err
	}
	budgetID, err := parseOptionalID("budgetId", in.BudgetID)
	if err != nil {
		return err
	}
	if budgetID != nil {
		budget, err := s.store.Budgets.Get(ctx, *budgetID)
		if err != nil {
			return err
		}
		if err := s.authorizeRecord(ctx, userID, budget.UserID, budget.CompanyID, models.PermEditBudgets); err != nil {
			return err
		}
	}

	e.CompanyID = companyID
	e.BudgetID = budgetID
	e.Description = strings.TrimSpace(in.Description)
	e.Amount = utils.Money(in.Amount)
	e.Currency = currencyOrDefault(in.Currency)
	e.Category = strings.TrimSpace(in.Category)
	e.ExpenseType = in.ExpenseType
	e.Frequency = in.Frequency
	if in.ExpenseType == models.ExpenseTypeOneTime {
		e.Frequency = ""
	}
	e.Date = in.Date.UTC()
	e.StartDate = nil
	if in.StartDate != nil {
		start := in.StartDate.UTC()
		e.StartDate = &start
	}
	e.Status = in.Status
	if e.Status == "" {
		e.Status = models.ExpenseStatusActive
	}
	e.Tags = in.Tags
	e.NextBillingDate = nextBillingDate(e)
	return nil
}

func (s *Service) CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	expense := &models.Expense{UserID: userID, Comments: []models.Comment{}}
	if err := s.applyExpenseInput(ctx, userID, expense, in); err != nil {
		return nil, err
	}
	now := s.now()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	if expense.ID, err = s.store.Expenses.Insert(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	s.resyncBudgetsFor(ctx, expense)
	return expense, nil
}

func (s *Service) UpdateExpense(ctx context.Context, id primitive.ObjectID, in models.ExpenseInput) (*models.Expense, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	before, err := s.loadExpense(ctx, userID, id, models.PermEditExpenses)
	if err != nil {
		return nil, err
	}
	after := *before
	if err := s.applyExpenseInput(ctx, userID, &after, in); err != nil {
		return nil, err
	}
	after.UpdatedAt = s.now()

	set := bson.M{
		"description":  after.Description,
		"amount":       after.Amount,
		"currency":     after.Currency,
		"category":     after.Category,
		"expense_type": after.ExpenseType,
		"date":         after.Date,
		"status":       after.Status,
		"tags":         after.Tags,
		"updated_at":   after.UpdatedAt,
	}
	unset := bson.M{}
	optional := map[string]any{
		"company_id":        after.CompanyID,
		"budget_id":         after.BudgetID,
		"start_date":        after.StartDate,
		"next_billing_date": after.NextBillingDate,
	}
	for field, v := range optional {
		switch v := v.(type) {
		case *primitive.ObjectID:
			if v != nil {
				set[field] = *v
				continue
			}
		case *time.Time:
			if v != nil {
				set[field] = *v
				continue
			}
		}
		unset[field] = ""
	}
	if after.Frequency != "" {
		set["frequency"] = after.Frequency
	} else {
		unset["frequency"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if err := s.store.Expenses.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	s.resyncBudgetsFor(ctx, before, &after)
	return &after, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	expense, err := s.loadExpense(ctx, userID, id, models.PermDeleteExpenses)
	if err != nil {
		return err
	}
	if err := s.store.Expenses.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if expense.Receipt != nil {
		s.removeReceiptObjects(ctx, expense.Receipt)
	}
	s.resyncBudgetsFor(ctx, expense)
	return nil
}

func (s *Service) AddComment(ctx context.Context, expenseID primitive.ObjectID, in models.CommentInput) (*models.Comment, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := s.loadExpense(ctx, userID, expenseID, models.PermViewExpenses); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      in.Text,
		CreatedAt: s.now(),
	}
	if err := s.store.Expenses.Update(ctx, expenseID, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": comment.CreatedAt},
	}); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &comment, nil
}

// DeleteComment is allowed to the comment's author, the expense's owner and the company owner
func (s *Service) DeleteComment(ctx context.Context, expenseID primitive.ObjectID, commentID string) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	expense, err := s.loadExpense(ctx, userID, expenseID, models.PermViewExpenses)
	if err != nil {
		return err
	}

	var comment *models.Comment
	for i := range expense.Comments {
		if expense.Comments[i].ID == commentID {
			comment = &expense.Comments[i]
			break
		}
	}
	if comment == nil {
		return ErrNotFound
	}

	allowed := comment.UserID == userID || expense.UserID == userID
	if !allowed && expense.CompanyID != nil {
		a, err := s.companyAccess(ctx, userID, *expense.CompanyID)
		if err != nil {
			return err
		}
		allowed = a.Owner
	}
	if !allowed {
		return ErrForbidden
	}

	if err := s.store.Expenses.Update(ctx, expenseID, bson.M{
		"$pull": bson.M{"comments": bson.M{"id": commentID}},
		"$set":  bson.M{"updated_at": s.now()},
	}); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
