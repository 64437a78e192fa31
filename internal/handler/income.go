package handler

import (
	"net/http"

	"github.com/Dan9191/fintrack/internal/models"
)

func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	var f models.IncomeFilter
	var err error
	if f.CompanyID, err = queryID(r, "companyId"); err != nil {
		h.handleError(w, r, "ListIncomes", err)
		return
	}
	if f.From, f.To, err = dateRange(r); err != nil {
		h.handleError(w, r, "ListIncomes", err)
		return
	}
	f.Source = r.URL.Query().Get("source")
	f.Frequency = r.URL.Query().Get("frequency")

	incomes, err := h.svc.ListIncomes(r.Context(), f)
	if err != nil {
		h.handleError(w, r, "ListIncomes", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, incomes)
}

func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var in models.IncomeInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "CreateIncome", err)
		return
	}
	income, err := h.svc.CreateIncome(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "CreateIncome", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, income)
}

func (h *Handler) GetIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "GetIncome", err)
		return
	}
	income, err := h.svc.GetIncome(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "GetIncome", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, income)
}

func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UpdateIncome", err)
		return
	}
	var in models.IncomeInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "UpdateIncome", err)
		return
	}
	income, err := h.svc.UpdateIncome(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "UpdateIncome", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, income)
}

func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteIncome", err)
		return
	}
	if err := h.svc.DeleteIncome(r.Context(), id); err != nil {
		h.handleError(w, r, "DeleteIncome", err)
		return
	}
	noContent(w, r, "income deleted")
}
