package handler

import (
	"net/http"

	"github.com/Dan9191/fintrack/internal/models"
)

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	companyID, err := queryID(r, "companyId")
	if err != nil {
		h.handleError(w, r, "ListBudgets", err)
		return
	}
	budgets, err := h.svc.ListBudgets(r.Context(), companyID)
	if err != nil {
		h.handleError(w, r, "ListBudgets", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, budgets)
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var in models.BudgetInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "CreateBudget", err)
		return
	}
	budget, err := h.svc.CreateBudget(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "CreateBudget", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, budget)
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "GetBudget", err)
		return
	}
	budget, err := h.svc.GetBudget(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "GetBudget", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, budget)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UpdateBudget", err)
		return
	}
	var in models.BudgetInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "UpdateBudget", err)
		return
	}
	budget, err := h.svc.UpdateBudget(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "UpdateBudget", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, budget)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteBudget", err)
		return
	}
	if err := h.svc.DeleteBudget(r.Context(), id); err != nil {
		h.handleError(w, r, "DeleteBudget", err)
		return
	}
	noContent(w, r, "budget deleted")
}

func (h *Handler) SyncBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "SyncBudget", err)
		return
	}
	budget, err := h.svc.SyncBudget(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "SyncBudget", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, budget)
}

func (h *Handler) SyncBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.SyncBudgets(r.Context())
	if err != nil {
		h.handleError(w, r, "SyncBudgets", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, budgets)
}
