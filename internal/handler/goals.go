package handler

import (
	"net/http"

	"github.com/Dan9191/fintrack/internal/models"
)

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	companyID, err := queryID(r, "companyId")
	if err != nil {
		h.handleError(w, r, "ListGoals", err)
		return
	}
	goals, err := h.svc.ListGoals(r.Context(), companyID)
	if err != nil {
		h.handleError(w, r, "ListGoals", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, goals)
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var in models.GoalInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "CreateGoal", err)
		return
	}
	goal, err := h.svc.CreateGoal(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "CreateGoal", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, goal)
}

func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "GetGoal", err)
		return
	}
	goal, err := h.svc.GetGoal(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "GetGoal", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, goal)
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UpdateGoal", err)
		return
	}
	var in models.GoalInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "UpdateGoal", err)
		return
	}
	goal, err := h.svc.UpdateGoal(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "UpdateGoal", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, goal)
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteGoal", err)
		return
	}
	if err := h.svc.DeleteGoal(r.Context(), id); err != nil {
		h.handleError(w, r, "DeleteGoal", err)
		return
	}
	noContent(w, r, "goal deleted")
}

func (h *Handler) AddContribution(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "AddContribution", err)
		return
	}
	var in models.ContributionInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "AddContribution", err)
		return
	}
	goal, err := h.svc.AddContribution(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "AddContribution", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, goal)
}
