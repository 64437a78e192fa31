package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/fintrack/internal/config"
	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository/mocks"
	"github.com/Dan9191/fintrack/internal/utils/email"
)

var fixedNow = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

type fakeMailer struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (m *fakeMailer) Send(msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeFiles struct {
	uploaded map[string]string
	deleted  []string
}

func (f *fakeFiles) Upload(_ context.Context, key, contentType string, _ []byte) (string, error) {
	if f.uploaded == nil {
		f.uploaded = make(map[string]string)
	}
	f.uploaded[key] = contentType
	return "https://files.test/" + key, nil
}

func (f *fakeFiles) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fixture struct {
	svc       *Service
	users     *mocks.Users
	companies *mocks.Documents[models.Company]
	expenses  *mocks.Documents[models.Expense]
	incomes   *mocks.Documents[models.Income]
	debts     *mocks.Debts
	assets    *mocks.Documents[models.Asset]
	budgets   *mocks.Documents[models.Budget]
	goals     *mocks.Documents[models.Goal]
	payments  *mocks.Documents[models.Payment]
	members   *mocks.Documents[models.TeamMember]
	invites   *mocks.Documents[models.TeamInvite]
	mailer    *fakeMailer
	files     *fakeFiles
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret",
		SessionTTL:    time.Hour,
		EncryptionKey: "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6",
		AppURL:        "http://app.test",
	}
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		users:     mocks.NewUsers(t),
		companies: mocks.NewDocuments[models.Company](t),
		expenses:  mocks.NewDocuments[models.Expense](t),
		incomes:   mocks.NewDocuments[models.Income](t),
		debts:     mocks.NewDebts(t),
		assets:    mocks.NewDocuments[models.Asset](t),
		budgets:   mocks.NewDocuments[models.Budget](t),
		goals:     mocks.NewDocuments[models.Goal](t),
		payments:  mocks.NewDocuments[models.Payment](t),
		members:   mocks.NewDocuments[models.TeamMember](t),
		invites:   mocks.NewDocuments[models.TeamInvite](t),
		mailer:    &fakeMailer{},
		files:     &fakeFiles{},
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	f.svc = NewService(Stores{
		Users:     f.users,
		Companies: f.companies,
		Expenses:  f.expenses,
		Incomes:   f.incomes,
		Debts:     f.debts,
		Assets:    f.assets,
		Budgets:   f.budgets,
		Goals:     f.goals,
		Payments:  f.payments,
		Members:   f.members,
		Invites:   f.invites,
	}, Integrations{Mailer: f.mailer, Files: f.files}, log, testConfig())
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func userCtx(id int64) context.Context {
	return WithUserID(context.Background(), id)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timeIs(v any, want time.Time) bool {
	got, ok := v.(time.Time)
	return ok && got.Equal(want)
}
