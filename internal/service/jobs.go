package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
	"github.com/Dan9191/fintrack/internal/utils/email"
)

// RolloverRecurring moves past-due next billing and payment dates of active recurring
// records forward to their next occurrence after now. It returns how many records moved.
func (s *Service) RolloverRecurring(ctx context.Context) (int, error) {
	now := s.now()
	past := bson.M{"$lt": now}
	moved := 0

	expenses, err := s.store.Expenses.Find(ctx, bson.M{
		"expense_type":      bson.M{"$in": recurringExpenseTypes},
		"status":            models.ExpenseStatusActive,
		"next_billing_date": past,
	}, repository.ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to list due expenses: %w", err)
	}
	for _, e := range expenses {
		if e.NextBillingDate == nil {
			continue
		}
		next, ok := utils.NextAfter(e.Frequency, *e.NextBillingDate, now)
		if !ok {
			continue
		}
		if err := s.store.Expenses.Update(ctx, e.ID, bson.M{"$set": bson.M{"next_billing_date": next}}); err != nil {
			return moved, fmt.Errorf("failed to roll over expense %s: %w", e.ID.Hex(), err)
		}
		moved++
	}

	incomes, err := s.store.Incomes.Find(ctx, bson.M{
		"frequency":         bson.M{"$ne": utils.FrequencyOneTime},
		"next_payment_date": past,
	}, repository.ListOptions{})
	if err != nil {
		return moved, fmt.Errorf("failed to list due income: %w", err)
	}
	for _, i := range incomes {
		if i.NextPaymentDate == nil {
			continue
		}
		next, ok := utils.NextAfter(i.Frequency, *i.NextPaymentDate, now)
		if !ok {
			continue
		}
		if err := s.store.Incomes.Update(ctx, i.ID, bson.M{"$set": bson.M{"next_payment_date": next}}); err != nil {
			return moved, fmt.Errorf("failed to roll over income %s: %w", i.ID.Hex(), err)
		}
		moved++
	}

	debts, err := s.store.Debts.Find(ctx, bson.M{
		"status":            models.DebtStatusActive,
		"next_payment_date": past,
	}, repository.ListOptions{})
	if err != nil {
		return moved, fmt.Errorf("failed to list due debts: %w", err)
	}
	for _, d := range debts {
		if d.NextPaymentDate == nil {
			continue
		}
		next, ok := utils.NextAfter(d.Frequency, *d.NextPaymentDate, now)
		if !ok {
			continue
		}
		if err := s.store.Debts.Update(ctx, d.ID, bson.M{"$set": bson.M{"next_payment_date": next}}); err != nil {
			return moved, fmt.Errorf("failed to roll over debt %s: %w", d.ID.Hex(), err)
		}
		moved++
	}

	s.log.Infof("Rollover moved %d recurring records", moved)
	return moved, nil
}

// SendReminders emails owners about debt payments and subscription charges due within daysAhead days
func (s *Service) SendReminders(ctx context.Context, daysAhead int) (int, error) {
	now := s.now()
	window := bson.M{"$gte": now, "$lte": now.Add(time.Duration(daysAhead) * 24 * time.Hour)}

	debts, err := s.store.Debts.Find(ctx, bson.M{
		"status":            models.DebtStatusActive,
		"next_payment_date": window,
	}, repository.ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming debts: %w", err)
	}
	subscriptions, err := s.store.Expenses.Find(ctx, bson.M{
		"expense_type":      models.ExpenseTypeSubscription,
		"status":            models.ExpenseStatusActive,
		"next_billing_date": window,
	}, repository.ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming subscriptions: %w", err)
	}

	users := make(map[int64]*models.User)
	lookup := func(id int64) *models.User {
		if u, ok := users[id]; ok {
			return u
		}
		u, err := s.store.Users.FindUserByID(ctx, id)
		if err != nil {
			s.log.Warnf("reminder recipient %d not found: %v", id, err)
		}
		users[id] = u
		return u
	}

	sent := 0
	for _, d := range debts {
		u := lookup(d.UserID)
		if u == nil || d.NextPaymentDate == nil {
			continue
		}
		if s.sendMail(email.PaymentReminder(u.Email, u.Username, "debt", d.Name, *d.NextPaymentDate, d.MinimumPayment)) {
			sent++
		}
	}
	for _, e := range subscriptions {
		u := lookup(e.UserID)
		if u == nil || e.NextBillingDate == nil {
			continue
		}
		if s.sendMail(email.PaymentReminder(u.Email, u.Username, "expense", e.Description, *e.NextBillingDate, e.Amount)) {
			sent++
		}
	}

	s.log.Infof("Sent %d payment reminders", sent)
	return sent, nil
}
