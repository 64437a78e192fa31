package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
)

// RecordPayment stores a payment and applies its side effect on the referenced record.
// A debt payment lowers the balance first; if the payment row cannot be written the
// balance change is reverted.
func (s *Service) RecordPayment(ctx context.Context, in models.PaymentInput) (*models.Payment, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	refID, err := primitive.ObjectIDFromHex(in.ReferenceID)
	if err != nil {
		return nil, invalid("referenceId must be a valid id")
	}

	now := s.now()
	payment := &models.Payment{
		Type:        in.Type,
		ReferenceID: refID,
		Amount:      utils.Money(in.Amount),
		Date:        now,
		Notes:       in.Notes,
		UserID:      userID,
		CreatedAt:   now,
	}
	if in.Date != nil {
		payment.Date = in.Date.UTC()
	}

	switch in.Type {
	case models.PaymentTypeDebt:
		err = s.payDebt(ctx, userID, payment)
	case models.PaymentTypeIncome:
		err = s.receiveIncome(ctx, userID, payment)
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *Service) payDebt(ctx context.Context, userID int64, p *models.Payment) error {
	debt, err := s.loadDebt(ctx, userID, p.ReferenceID, models.PermEditDebts)
	if err != nil {
		return err
	}
	if debt.Status == models.DebtStatusPaidOff {
		return invalid("debt is already paid off")
	}
	p.CompanyID = debt.CompanyID

	before, err := s.store.Debts.ApplyPayment(ctx, debt.ID, p.Amount)
	if err != nil {
		return fmt.Errorf("failed to apply payment: %w", err)
	}
	p.Applied = utils.Money(math.Min(p.Amount, math.Max(before.CurrentBalance, 0)))
	p.DueDate = before.NextPaymentDate

	if p.ID, err = s.store.Payments.Insert(ctx, p); err != nil {
		if revertErr := s.store.Debts.RevertPayment(ctx, debt.ID, p.Applied); revertErr != nil {
			s.log.WithField("debt_id", debt.ID.Hex()).Errorf("failed to revert payment of %.2f: %v", p.Applied, revertErr)
		}
		return fmt.Errorf("failed to record payment: %w", err)
	}

	update := bson.M{}
	if before.CurrentBalance-p.Applied <= 0 {
		update["$unset"] = bson.M{"next_payment_date": ""}
	} else if before.NextPaymentDate != nil {
		if next, ok := utils.NextDate(before.Frequency, *before.NextPaymentDate); ok {
			update["$set"] = bson.M{"next_payment_date": next}
		}
	}
	if len(update) > 0 {
		if err := s.store.Debts.Update(ctx, debt.ID, update); err != nil {
			s.log.Warnf("next payment date of debt %s not advanced: %v", debt.ID.Hex(), err)
		}
	}

	s.log.Infof("Payment %.2f applied to debt %s by user %d", p.Applied, debt.ID.Hex(), userID)
	return nil
}

func (s *Service) receiveIncome(ctx context.Context, userID int64, p *models.Payment) error {
	income, err := s.loadIncome(ctx, userID, p.ReferenceID, models.PermEditIncome)
	if err != nil {
		return err
	}
	p.CompanyID = income.CompanyID
	p.DueDate = income.NextPaymentDate

	if p.ID, err = s.store.Payments.Insert(ctx, p); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	if income.NextPaymentDate != nil {
		if next, ok := utils.NextDate(income.Frequency, *income.NextPaymentDate); ok {
			if err := s.store.Incomes.Update(ctx, income.ID, bson.M{"$set": bson.M{"next_payment_date": next}}); err != nil {
				s.log.Warnf("next payment date of income %s not advanced: %v", income.ID.Hex(), err)
			}
		}
	}
	return nil
}

func paymentPerm(paymentType string, edit bool) string {
	switch {
	case paymentType == models.PaymentTypeDebt && edit:
		return models.PermEditDebts
	case paymentType == models.PaymentTypeDebt:
		return models.PermViewDebts
	case edit:
		return models.PermEditIncome
	}
	return models.PermViewIncome
}

// ListPayments returns payments the caller can see through the referenced debt or income permissions
func (s *Service) ListPayments(ctx context.Context, paymentType string, referenceID *primitive.ObjectID) ([]models.Payment, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	types := []string{models.PaymentTypeDebt, models.PaymentTypeIncome}
	if paymentType != "" {
		types = []string{paymentType}
	}

	alternatives := bson.A{}
	for _, t := range types {
		scope, err := s.scopeFilter(ctx, userID, nil, paymentPerm(t, false))
		if err != nil {
			return nil, err
		}
		scope["type"] = t
		alternatives = append(alternatives, scope)
	}
	filter := bson.M{"$or": alternatives}
	if referenceID != nil {
		filter["reference_id"] = *referenceID
	}

	payments, err := s.store.Payments.Find(ctx, filter, repository.ListOptions{
		Sort: bson.D{{Key: "date", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// DeletePayment removes the payment, gives the applied amount back to its debt and
// moves the schedule of the debt or income back to the date the payment settled
func (s *Service) DeletePayment(ctx context.Context, id primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	payment, err := s.store.Payments.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeRecord(ctx, userID, payment.UserID, payment.CompanyID, paymentPerm(payment.Type, true)); err != nil {
		return err
	}
	if err := s.store.Payments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if payment.Type == models.PaymentTypeDebt {
		err := s.store.Debts.RevertPayment(ctx, payment.ReferenceID, payment.Applied)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to restore debt balance: %w", err)
		}
		s.rewindDebtSchedule(ctx, payment)
		return nil
	}
	s.rewindIncomeSchedule(ctx, payment)
	return nil
}

// rewoundDueDate returns the due date to restore once payment p is gone, or nil to leave
// current alone. A schedule that moved on past the step p made is not touched.
func rewoundDueDate(p *models.Payment, frequency string, current *time.Time, from, now time.Time) *time.Time {
	if p.DueDate == nil {
		if current != nil {
			return nil
		}
		next, ok := utils.NextAfter(frequency, from, now)
		if !ok {
			return nil
		}
		return &next
	}
	if current == nil {
		return p.DueDate
	}
	if next, ok := utils.NextDate(frequency, *p.DueDate); ok && next.Equal(*current) {
		return p.DueDate
	}
	return nil
}

func (s *Service) rewindDebtSchedule(ctx context.Context, p *models.Payment) {
	debt, err := s.store.Debts.Get(ctx, p.ReferenceID)
	if err != nil {
		s.log.Warnf("schedule of debt %s not restored: %v", p.ReferenceID.Hex(), err)
		return
	}
	if debt.Status != models.DebtStatusActive {
		return
	}
	due := rewoundDueDate(p, debt.Frequency, debt.NextPaymentDate, debt.StartDate, s.now())
	if due == nil {
		return
	}
	if err := s.store.Debts.Update(ctx, debt.ID, bson.M{"$set": bson.M{"next_payment_date": *due}}); err != nil {
		s.log.Warnf("schedule of debt %s not restored: %v", debt.ID.Hex(), err)
	}
}

func (s *Service) rewindIncomeSchedule(ctx context.Context, p *models.Payment) {
	income, err := s.store.Incomes.Get(ctx, p.ReferenceID)
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Warnf("schedule of income %s not restored: %v", p.ReferenceID.Hex(), err)
		return
	}
	due := rewoundDueDate(p, income.Frequency, income.NextPaymentDate, income.Date, s.now())
	if due == nil {
		return
	}
	if err := s.store.Incomes.Update(ctx, income.ID, bson.M{"$set": bson.M{"next_payment_date": *due}}); err != nil {
		s.log.Warnf("schedule of income %s not restored: %v", income.ID.Hex(), err)
	}
}
