package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers the API on api. Everything except register/login/logout and
// the exchange-rate endpoints runs behind auth.
func (h *Handler) Routes(api *mux.Router, auth mux.MiddlewareFunc) {
	public := api.NewRoute().Subrouter()
	public.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	public.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	public.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	public.HandleFunc("/exchange-rates", h.ExchangeRates).Methods(http.MethodGet)
	public.HandleFunc("/exchange-rates/convert", h.ConvertCurrency).Methods(http.MethodGet)

	private := api.NewRoute().Subrouter()
	private.Use(auth)
	private.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet)

	private.HandleFunc("/companies", h.ListCompanies).Methods(http.MethodGet)
	private.HandleFunc("/companies", h.CreateCompany).Methods(http.MethodPost)
	private.HandleFunc("/companies/{id}", h.GetCompany).Methods(http.MethodGet)
	private.HandleFunc("/companies/{id}", h.UpdateCompany).Methods(http.MethodPut, http.MethodPatch)
	private.HandleFunc("/companies/{id}", h.DeleteCompany).Methods(http.MethodDelete)
	private.HandleFunc("/companies/{id}/members", h.ListMembers).Methods(http.MethodGet)
	private.HandleFunc("/companies/{id}/members/{memberId}", h.UpdateMember).Methods(http.MethodPut, http.MethodPatch)
	private.HandleFunc("/companies/{id}/members/{memberId}", h.RemoveMember).Methods(http.MethodDelete)
	private.HandleFunc("/companies/{id}/invites", h.ListInvites).Methods(http.MethodGet)
	private.HandleFunc("/companies/{id}/invites", h.CreateInvite).Methods(http.MethodPost)
	private.HandleFunc("/companies/{id}/invites/{inviteId}", h.RevokeInvite).Methods(http.MethodDelete)
	private.HandleFunc("/invites/{token}/accept", h.AcceptInvite).Methods(http.MethodPost)
	private.HandleFunc("/invites/{token}/decline", h.DeclineInvite).Methods(http.MethodPost)
	private.HandleFunc("/team/companies", h.SharedCompanies).Methods(http.MethodGet)

	private.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	private.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	private.HandleFunc("/expenses/{id}", h.GetExpense).Methods(http.MethodGet)
	private.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods(http.MethodPut, http.MethodPatch)
	private.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods(http.MethodDelete)
	private.HandleFunc("/expenses/{id}/comments", h.AddComment).Methods(http.MethodPost)
	private.HandleFunc("/expenses/{id}/comments/{commentId}", h.DeleteComment).Methods(http.MethodDelete)
	private.HandleFunc("/expenses/{id}/receipt", h.UploadReceipt).Methods(http.MethodPost)
	private.HandleFunc("/expenses/{id}/receipt", h.DeleteReceipt).Methods(http.MethodDelete)

	private.HandleFunc("/income", h.ListIncomes).Methods(http.MethodGet)
	private.HandleFunc("/income", h.CreateIncome).Methods(http.MethodPost)
	private.HandleFunc("/income/{id}", h.GetIncome).Methods(http.MethodGet)
	private.HandleFunc("/income/{id}", h.UpdateIncome).Methods(http.MethodPut, http.MethodPatch)
	private.HandleFunc("/income/{id}", h.DeleteIncome).Methods(http.MethodDelete)

	private.HandleFunc("/debts", h.ListDebts).Methods(http.MethodGet)
	private.HandleFunc("/debts", h.CreateDebt).Methods(http.MethodPost)
	private.HandleFunc("/debts/summary", h.DebtSummary).Methods(http.MethodGet)
	private.HandleFunc("/debts/{id}", h.GetDebt).Methods(http.MethodGet)
	private.HandleFunc("/debts/{id}", h.UpdateDebt).Methods(http.MethodPut, http.MethodPatch)
	private.HandleFunc("/debts/{id}", h.DeleteDebt).Methods(http.MethodDelete)

	private.HandleFunc("/payments", h.ListPayments).Methods(http.MethodGet)
	private.HandleFunc("/payments", h.RecordPayment).Methods(http.MethodPost)
	private.HandleFunc("/payments/{id}", h.DeletePayment).Methods(http.MethodDelete)

	private.HandleFunc("/assets", h.ListAssets).Methods(http.MethodGet)
	private.HandleFunc("/assets", h.CreateAsset).Methods(http.MethodPost)
	private.HandleFunc("/assets/summary", h.AssetSummary).Methods(http.MethodGet)
	private.HandleFunc("/assets/{id}", h.GetAsset).Methods(http.MethodGet)
	private.HandleFunc("/assets/{id}", h.UpdateAsset).Methods(http.MethodPut, http.MethodPatch)
	private.HandleFunc("/assets/{id}", h.DeleteAsset).Methods(http.MethodDelete)

	private.HandleFunc("/budgets", h.ListBudgets).Methods(http.MethodGet)
	private.HandleFunc("/budgets", h.CreateBudget).Methods(http.MethodPost)
	private.HandleFunc("/budgets/sync", h.SyncBudgets).Methods(http.MethodPost)
	private.HandleFunc("/budgets/{id}", h.GetBudget).Methods(http.MethodGet)
	private.HandleFunc("/budgets/{id}", h.UpdateBudget).Methods(http.MethodPut, http.MethodPatch)
	private.HandleFunc("/budgets/{id}", h.DeleteBudget).Methods(http.MethodDelete)
	private.HandleFunc("/budgets/{id}/sync", h.SyncBudget).Methods(http.MethodPost)

	private.HandleFunc("/goals", h.ListGoals).Methods(http.MethodGet)
	private.HandleFunc("/goals", h.CreateGoal).Methods(http.MethodPost)
	private.HandleFunc("/goals/{id}", h.GetGoal).Methods(http.MethodGet)
	private.HandleFunc("/goals/{id}", h.UpdateGoal).Methods(http.MethodPut, http.MethodPatch)
	private.HandleFunc("/goals/{id}", h.DeleteGoal).Methods(http.MethodDelete)
	private.HandleFunc("/goals/{id}/contributions", h.AddContribution).Methods(http.MethodPost)

	private.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	private.HandleFunc("/reports/export", h.ExportReport).Methods(http.MethodGet)
}
