package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Dan9191/fintrack/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	companyID, err := queryID(r, "companyId")
	if err != nil {
		h.handleError(w, r, "Dashboard", err)
		return
	}
	summary, err := h.svc.Dashboard(r.Context(), companyID)
	if err != nil {
		h.handleError(w, r, "Dashboard", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, summary)
}

// ExportReport streams an xlsx workbook. The file is built in memory first so failures still get a JSON error.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	f := service.ReportFilter{Type: r.URL.Query().Get("type")}
	if f.Type == "" {
		f.Type = service.ReportExpenses
	}
	var err error
	if f.CompanyID, err = queryID(r, "companyId"); err != nil {
		h.handleError(w, r, "ExportReport", err)
		return
	}
	if f.From, f.To, err = dateRange(r); err != nil {
		h.handleError(w, r, "ExportReport", err)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.ExportReport(r.Context(), &buf, f); err != nil {
		h.handleError(w, r, "ExportReport", err)
		return
	}
	filename := fmt.Sprintf("%s-%s.xlsx", f.Type, time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) ExchangeRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.ExchangeRates(r.Context())
	if err != nil {
		h.handleError(w, r, "ExchangeRates", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, rates)
}

func (h *Handler) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	amount, err := queryFloat(r, "amount")
	if err != nil {
		h.handleError(w, r, "ConvertCurrency", err)
		return
	}
	q := r.URL.Query()
	conversion, err := h.svc.Convert(r.Context(), q.Get("from"), q.Get("to"), amount)
	if err != nil {
		h.handleError(w, r, "ConvertCurrency", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, conversion)
}
