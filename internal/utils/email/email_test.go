package email

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/fintrack/internal/config"
)

func TestBudgetAlert(t *testing.T) {
	msg := BudgetAlert("a@b.c", "dima", "Groceries", 85, 100, 85)
	require.Equal(t, "Budget alert: Groceries", msg.Subject)
	require.Contains(t, msg.Body, "reached 85.0%")

	over := BudgetAlert("a@b.c", "dima", "Groceries", 120, 100, 120)
	require.Contains(t, over.Body, "over its limit: 120.00 spent of 100.00")
}

func TestPaymentReminder(t *testing.T) {
	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	debt := PaymentReminder("a@b.c", "dima", "debt", "Car loan", due, 250)
	require.Equal(t, "Upcoming payment reminder", debt.Subject)
	require.Contains(t, debt.Body, "250.00 for \"Car loan\" is due on 2024-07-01")

	sub := PaymentReminder("a@b.c", "dima", "expense", "Netflix", due, 15.99)
	require.Equal(t, "Upcoming subscription charge", sub.Subject)
	require.Contains(t, sub.Body, "billed 15.99 on 2024-07-01")
}

func TestTeamInvite(t *testing.T) {
	msg := TeamInvite("new@b.c", "dima", "Acme", "viewer", "http://app/invites/tok", time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "new@b.c", msg.To)
	require.Contains(t, msg.Body, "join Acme on Fintrack as viewer")
	require.Contains(t, msg.Body, "http://app/invites/tok")
}

func TestSender_DisabledSkips(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSender(&config.Config{}, log)
	require.NoError(t, s.Send(Message{To: "a@b.c", Subject: "x", Body: "y"}))
}
