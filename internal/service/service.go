package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/cache"
	"github.com/Dan9191/fintrack/internal/config"
	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils/email"
)

// Stores groups the repositories the service reads and writes
type Stores struct {
	Users     repository.Users
	Companies repository.Documents[models.Company]
	Expenses  repository.Documents[models.Expense]
	Incomes   repository.Documents[models.Income]
	Debts     repository.Debts
	Assets    repository.Documents[models.Asset]
	Budgets   repository.Documents[models.Budget]
	Goals     repository.Documents[models.Goal]
	Payments  repository.Documents[models.Payment]
	Members   repository.Documents[models.TeamMember]
	Invites   repository.Documents[models.TeamInvite]
}

// NewStores binds the Postgres user store and the Mongo collections
func NewStores(users repository.Users, m *repository.Mongo) Stores {
	return Stores{
		Users:     users,
		Companies: m.Companies,
		Expenses:  m.Expenses,
		Incomes:   m.Incomes,
		Debts:     m.Debts,
		Assets:    m.Assets,
		Budgets:   m.Budgets,
		Goals:     m.Goals,
		Payments:  m.Payments,
		Members:   m.Members,
		Invites:   m.Invites,
	}
}

type Cache interface {
	GetObject(ctx context.Context, key string, dest any) (bool, error)
	SetObject(ctx context.Context, key string, obj any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type FileStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

type Mailer interface {
	Send(msg email.Message) error
}

type RatesProvider interface {
	Latest(ctx context.Context) (*models.ExchangeRates, error)
}

// Integrations are the optional outside services. A nil Files or Rates makes the
// dependent operations return ErrUnavailable; a nil Cache disables caching.
type Integrations struct {
	Cache  Cache
	Files  FileStore
	Mailer Mailer
	Rates  RatesProvider
}

// Service handles business logic
type Service struct {
	store  Stores
	cache  Cache
	files  FileStore
	mailer Mailer
	rates  RatesProvider
	log    *logrus.Logger
	config *config.Config
	now    func() time.Time
}

// NewService initializes a new service
func NewService(store Stores, in Integrations, log *logrus.Logger, cfg *config.Config) *Service {
	s := &Service{
		store:  store,
		cache:  in.Cache,
		files:  in.Files,
		mailer: in.Mailer,
		rates:  in.Rates,
		log:    log,
		config: cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
	if s.cache == nil {
		s.cache = cache.NewRedis(nil)
	}
	if s.mailer == nil {
		s.mailer = email.NewSender(cfg, log)
	}
	return s
}

// Locker exposes the distributed lock used by scheduled jobs
func (s *Service) Locker() Cache {
	return s.cache
}

// sendMail reports whether msg was handed to the mailer
func (s *Service) sendMail(msg email.Message) bool {
	if err := s.mailer.Send(msg); err != nil {
		s.log.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Warnf("email not delivered: %v", err)
		return false
	}
	return true
}

// parseOptionalID parses an optional hex id from a request body field
func parseOptionalID(field, raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, invalid(fmt.Sprintf("%s must be a valid id", field))
	}
	return &id, nil
}

func sameID(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
