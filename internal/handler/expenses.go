package handler

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/storage"
)

func expenseFilter(r *http.Request) (models.ExpenseFilter, error) {
	var f models.ExpenseFilter
	var err error
	if f.CompanyID, err = queryID(r, "companyId"); err != nil {
		return f, err
	}
	if f.BudgetID, err = queryID(r, "budgetId"); err != nil {
		return f, err
	}
	if f.From, f.To, err = dateRange(r); err != nil {
		return f, err
	}
	if f.Page, err = queryInt(r, "page"); err != nil {
		return f, err
	}
	if f.Limit, err = queryInt(r, "limit"); err != nil {
		return f, err
	}
	f.Category = r.URL.Query().Get("category")
	f.ExpenseType = r.URL.Query().Get("expenseType")
	return f, nil
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	f, err := expenseFilter(r)
	if err != nil {
		h.handleError(w, r, "ListExpenses", err)
		return
	}
	expenses, err := h.svc.ListExpenses(r.Context(), f)
	if err != nil {
		h.handleError(w, r, "ListExpenses", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, expenses)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var in models.ExpenseInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "CreateExpense", err)
		return
	}
	expense, err := h.svc.CreateExpense(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "CreateExpense", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, expense)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "GetExpense", err)
		return
	}
	expense, err := h.svc.GetExpense(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "GetExpense", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, expense)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UpdateExpense", err)
		return
	}
	var in models.ExpenseInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "UpdateExpense", err)
		return
	}
	expense, err := h.svc.UpdateExpense(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "UpdateExpense", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, expense)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteExpense", err)
		return
	}
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		h.handleError(w, r, "DeleteExpense", err)
		return
	}
	noContent(w, r, "expense deleted")
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "AddComment", err)
		return
	}
	var in models.CommentInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "AddComment", err)
		return
	}
	comment, err := h.svc.AddComment(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "AddComment", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, comment)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteComment", err)
		return
	}
	if err := h.svc.DeleteComment(r.Context(), id, mux.Vars(r)["commentId"]); err != nil {
		h.handleError(w, r, "DeleteComment", err)
		return
	}
	noContent(w, r, "comment deleted")
}

// UploadReceipt accepts a multipart form with the receipt in the "file" field
func (h *Handler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UploadReceipt", err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxReceiptSize+maxBodySize)
	if err := r.ParseMultipartForm(storage.MaxReceiptSize); err != nil {
		h.handleError(w, r, "UploadReceipt", badRequest("file must be sent as multipart form data of at most 5MB"))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.handleError(w, r, "UploadReceipt", badRequest("file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxReceiptSize+1))
	if err != nil {
		h.handleError(w, r, "UploadReceipt", badRequest("file could not be read"))
		return
	}
	receipt, err := h.svc.UploadReceipt(r.Context(), id, data)
	if err != nil {
		h.handleError(w, r, "UploadReceipt", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, receipt)
}

func (h *Handler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteReceipt", err)
		return
	}
	if err := h.svc.DeleteReceipt(r.Context(), id); err != nil {
		h.handleError(w, r, "DeleteReceipt", err)
		return
	}
	noContent(w, r, "receipt deleted")
}
