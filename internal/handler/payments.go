package handler

import (
	"net/http"

	"github.com/Dan9191/fintrack/internal/models"
)

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	referenceID, err := queryID(r, "referenceId")
	if err != nil {
		h.handleError(w, r, "ListPayments", err)
		return
	}
	paymentType := r.URL.Query().Get("type")
	if paymentType != "" && paymentType != models.PaymentTypeDebt && paymentType != models.PaymentTypeIncome {
		h.handleError(w, r, "ListPayments", badRequest("type must be one of: debt_payment, income_received"))
		return
	}
	payments, err := h.svc.ListPayments(r.Context(), paymentType, referenceID)
	if err != nil {
		h.handleError(w, r, "ListPayments", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, payments)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var in models.PaymentInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "RecordPayment", err)
		return
	}
	payment, err := h.svc.RecordPayment(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "RecordPayment", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, payment)
}

func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeletePayment", err)
		return
	}
	if err := h.svc.DeletePayment(r.Context(), id); err != nil {
		h.handleError(w, r, "DeletePayment", err)
		return
	}
	noContent(w, r, "payment deleted")
}
