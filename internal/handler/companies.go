package handler

import (
	"net/http"

	"github.com/Dan9191/fintrack/internal/models"
)

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.svc.ListCompanies(r.Context())
	if err != nil {
		h.handleError(w, r, "ListCompanies", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, companies)
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var in models.CompanyInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "CreateCompany", err)
		return
	}
	company, err := h.svc.CreateCompany(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "CreateCompany", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, company)
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "GetCompany", err)
		return
	}
	company, err := h.svc.GetCompany(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "GetCompany", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, company)
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UpdateCompany", err)
		return
	}
	var in models.CompanyInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "UpdateCompany", err)
		return
	}
	company, err := h.svc.UpdateCompany(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "UpdateCompany", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, company)
}

func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteCompany", err)
		return
	}
	if err := h.svc.DeleteCompany(r.Context(), id); err != nil {
		h.handleError(w, r, "DeleteCompany", err)
		return
	}
	noContent(w, r, "company deleted")
}
