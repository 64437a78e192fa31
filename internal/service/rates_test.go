package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dan9191/fintrack/internal/models"
)

type fakeRates struct {
	calls int
}

func (f *fakeRates) Latest(context.Context) (*models.ExchangeRates, error) {
	f.calls++
	return &models.ExchangeRates{
		Base:  "EUR",
		Date:  "2024-07-01",
		Rates: map[string]float64{"USD": 1.1, "GBP": 0.85},
	}, nil
}

func TestConvert(t *testing.T) {
	f := newFixture(t)
	f.svc.rates = &fakeRates{}

	got, err := f.svc.Convert(context.Background(), "usd", "GBP", 110)
	require.NoError(t, err)
	require.Equal(t, 85.0, got.Result)
	require.Equal(t, 0.772727, got.Rate)
	require.Equal(t, "2024-07-01", got.Date)

	got, err = f.svc.Convert(context.Background(), "EUR", "USD", 10)
	require.NoError(t, err)
	require.Equal(t, 11.0, got.Result)
}

func TestConvert_Invalid(t *testing.T) {
	f := newFixture(t)
	f.svc.rates = &fakeRates{}

	_, err := f.svc.Convert(context.Background(), "", "USD", -1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 2)

	_, err = f.svc.Convert(context.Background(), "USD", "XYZ", 1)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"unsupported currency XYZ"}, verr.Messages)
}

func TestExchangeRates_NoProvider(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ExchangeRates(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
