package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/fintrack/internal/models"
)

const (
	ratesCacheKey = "rates:latest"
	ratesCacheTTL = 6 * time.Hour
)

// ExchangeRates returns the latest reference rates, cached for six hours
func (s *Service) ExchangeRates(ctx context.Context) (*models.ExchangeRates, error) {
	var rates models.ExchangeRates
	hit, err := s.cache.GetObject(ctx, ratesCacheKey, &rates)
	if err != nil {
		s.log.Warnf("rates cache read failed: %v", err)
	}
	if hit {
		return &rates, nil
	}
	if s.rates == nil {
		return nil, ErrUnavailable
	}

	latest, err := s.rates.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	if err := s.cache.SetObject(ctx, ratesCacheKey, latest, ratesCacheTTL); err != nil {
		s.log.Warnf("rates cache write failed: %v", err)
	}
	return latest, nil
}

// Convert converts amount between two currencies through the rates' base currency
func (s *Service) Convert(ctx context.Context, from, to string, amount float64) (*models.Conversion, error) {
	from, to = strings.ToUpper(strings.TrimSpace(from)), strings.ToUpper(strings.TrimSpace(to))
	var problems []string
	if from == "" {
		problems = append(problems, "from is required")
	}
	if to == "" {
		problems = append(problems, "to is required")
	}
	if amount < 0 {
		problems = append(problems, "amount must be greater than or equal to 0")
	}
	if len(problems) > 0 {
		return nil, invalid(problems...)
	}

	rates, err := s.ExchangeRates(ctx)
	if err != nil {
		return nil, err
	}
	fromRate, ok := rateOf(rates, from)
	if !ok {
		return nil, invalid(fmt.Sprintf("unsupported currency %s", from))
	}
	toRate, ok := rateOf(rates, to)
	if !ok {
		return nil, invalid(fmt.Sprintf("unsupported currency %s", to))
	}

	rate := toRate.Div(fromRate)
	return &models.Conversion{
		From:   from,
		To:     to,
		Amount: amount,
		Result: decimal.NewFromFloat(amount).Mul(rate).Round(2).InexactFloat64(),
		Rate:   rate.Round(6).InexactFloat64(),
		Date:   rates.Date,
	}, nil
}

func rateOf(rates *models.ExchangeRates, currency string) (decimal.Decimal, bool) {
	if currency == rates.Base {
		return decimal.NewFromInt(1), true
	}
	r, ok := rates.Rates[currency]
	if !ok || r <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(r), true
}
