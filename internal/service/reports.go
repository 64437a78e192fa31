package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/export"
	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
)

const (
	ReportExpenses = "expenses"
	ReportIncome   = "income"
)

type ReportFilter struct {
	Type      string
	CompanyID *primitive.ObjectID
	From      *time.Time
	To        *time.Time
}

// ExportReport writes an xlsx workbook of the expenses or income in scope to w
func (s *Service) ExportReport(ctx context.Context, w io.Writer, f ReportFilter) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if f.Type != ReportExpenses && f.Type != ReportIncome {
		return invalid("type must be one of: expenses, income")
	}
	filter, err := s.scopeFilter(ctx, userID, f.CompanyID, models.PermViewReports)
	if err != nil {
		return err
	}
	if r := dateRange(f.From, f.To); len(r) > 0 {
		filter["date"] = r
	}
	opts := repository.ListOptions{Sort: bson.D{{Key: "date", Value: 1}}}

	if f.Type == ReportIncome {
		incomes, err := s.store.Incomes.Find(ctx, filter, opts)
		if err != nil {
			return fmt.Errorf("failed to list income: %w", err)
		}
		return export.Incomes(w, incomes)
	}
	expenses, err := s.store.Expenses.Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}
	return export.Expenses(w, expenses)
}
