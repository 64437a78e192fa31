package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/fintrack/internal/config"
	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/repository/mocks"
	"github.com/Dan9191/fintrack/internal/service"
	"github.com/Dan9191/fintrack/internal/utils/email"
)

type nopMailer struct{}

func (nopMailer) Send(email.Message) error { return nil }

type testEnv struct {
	router    *mux.Router
	users     *mocks.Users
	companies *mocks.Documents[models.Company]
	members   *mocks.Documents[models.TeamMember]
	expenses  *mocks.Documents[models.Expense]
	hook      *test.Hook
}

// fakeAuth trusts the X-User header so tests can skip signing tokens
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User") == "" {
			WriteError(w, r, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(service.WithUserID(r.Context(), 1)))
	})
}

func newTestEnv(t *testing.T) *testEnv {
	logger, hook := test.NewNullLogger()
	cfg := &config.Config{JWTSecret: "test-secret", SessionTTL: time.Hour}
	env := &testEnv{
		users:     mocks.NewUsers(t),
		companies: mocks.NewDocuments[models.Company](t),
		members:   mocks.NewDocuments[models.TeamMember](t),
		expenses:  mocks.NewDocuments[models.Expense](t),
		hook:      hook,
	}
	svc := service.NewService(service.Stores{
		Users:     env.users,
		Companies: env.companies,
		Members:   env.members,
		Expenses:  env.expenses,
	}, service.Integrations{Mailer: nopMailer{}}, logger, cfg)
	h := NewHandler(svc, cfg, logger)

	env.router = mux.NewRouter()
	v1 := env.router.PathPrefix("/api/v1").Subrouter()
	v1.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithAPIVersion(r.Context(), "v1")))
		})
	})
	h.Routes(v1, fakeAuth)
	h.Routes(env.router.PathPrefix("/api").Subrouter(), fakeAuth)
	return env
}

func (e *testEnv) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("X-User", "1")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("CreateUser", mock.Anything, mock.Anything).Return(nil)

	rec := env.do(http.MethodPost, "/api/auth/register", `{"username":"dima","email":"Dima@Example.com","password":"hunter2hunter2"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.Equal(t, "dima@example.com", user.Email)
	require.NotContains(t, rec.Body.String(), "hunter2")
}

func TestRegister_ValidationListsEveryField(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", `{"email":"nope","password":"short"}`, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "validation failed", body.Error)
	require.Equal(t, []string{
		"username is required",
		"email must be a valid email address",
		"password must be at least 8 characters",
	}, body.Messages)
}

func TestRegister_V1Conflict(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("CreateUser", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	rec := env.do(http.MethodPost, "/api/v1/auth/register", `{"username":"dima","email":"d@example.com","password":"hunter2hunter2"}`, false)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "v1", body.Version)
	require.False(t, body.Success)
	require.Contains(t, body.Message, "already registered")
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	env.users.On("FindUserByEmail", mock.Anything, "d@example.com").
		Return(&models.User{ID: 3, Email: "d@example.com", PasswordHash: string(hash)}, nil)

	rec := env.do(http.MethodPost, "/api/v1/auth/login", `{"email":"d@example.com","password":"hunter2hunter2"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, SessionCookie, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	var body struct {
		Success bool          `json:"success"`
		Data    loginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, cookies[0].Value, body.Data.Token)
	require.Equal(t, int64(3), body.Data.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.users.On("FindUserByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	rec := env.do(http.MethodPost, "/api/auth/login", `{"email":"d@example.com","password":"whatever1"}`, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, rec.Result().Cookies())
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/expenses", "", false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/expenses/not-an-id", "", true)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCompany_ForbiddenForMembers(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID()
	env.companies.On("Get", mock.Anything, id).Return(&models.Company{ID: id, UserID: 99}, nil)
	env.members.On("FindOne", mock.Anything, mock.Anything).Return(&models.TeamMember{Role: models.RoleAdmin}, nil)

	rec := env.do(http.MethodDelete, "/api/companies/"+id.Hex(), "", true)
	require.Equal(t, http.StatusForbidden, rec.Code)
	env.companies.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUnexpectedErrorsAreLoggedNotLeaked(t *testing.T) {
	env := newTestEnv(t)
	env.companies.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection reset by peer"))

	rec := env.do(http.MethodGet, "/api/companies", "", true)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection reset")

	entry := env.hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "ListCompanies", entry.Data["funcName"])
	require.Contains(t, entry.Message, "connection reset by peer")
}

func TestExportReport(t *testing.T) {
	env := newTestEnv(t)
	env.companies.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Company{}, nil)
	env.members.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.TeamMember{}, nil)
	env.expenses.On("Find", mock.Anything, mock.Anything, mock.Anything).Return([]models.Expense{
		{Description: "Coffee", Category: "food", Amount: 3.5, Date: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	rec := env.do(http.MethodGet, "/api/reports/export?type=expenses&from=2024-07-01&to=2024-07-31", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "expenses-")
	require.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestExportReport_BadDate(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/reports/export?from=July", "", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_V1(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/v1/auth/logout", "", false)
	require.Equal(t, http.StatusOK, rec.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "logged out", body.Message)
	require.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}
