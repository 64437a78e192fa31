package handler

import (
	"net/http"

	"github.com/Dan9191/fintrack/internal/models"
)

func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	companyID, err := queryID(r, "companyId")
	if err != nil {
		h.handleError(w, r, "ListDebts", err)
		return
	}
	debts, err := h.svc.ListDebts(r.Context(), companyID, r.URL.Query().Get("status"))
	if err != nil {
		h.handleError(w, r, "ListDebts", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, debts)
}

func (h *Handler) DebtSummary(w http.ResponseWriter, r *http.Request) {
	companyID, err := queryID(r, "companyId")
	if err != nil {
		h.handleError(w, r, "DebtSummary", err)
		return
	}
	summary, err := h.svc.DebtSummary(r.Context(), companyID)
	if err != nil {
		h.handleError(w, r, "DebtSummary", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, summary)
}

func (h *Handler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var in models.DebtInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "CreateDebt", err)
		return
	}
	debt, err := h.svc.CreateDebt(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "CreateDebt", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, debt)
}

func (h *Handler) GetDebt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "GetDebt", err)
		return
	}
	debt, err := h.svc.GetDebt(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "GetDebt", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, debt)
}

func (h *Handler) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UpdateDebt", err)
		return
	}
	var in models.DebtInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "UpdateDebt", err)
		return
	}
	debt, err := h.svc.UpdateDebt(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "UpdateDebt", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, debt)
}

func (h *Handler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteDebt", err)
		return
	}
	if err := h.svc.DeleteDebt(r.Context(), id); err != nil {
		h.handleError(w, r, "DeleteDebt", err)
		return
	}
	noContent(w, r, "debt deleted")
}
