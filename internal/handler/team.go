package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dan9191/fintrack/internal/models"
)

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "ListMembers", err)
		return
	}
	members, err := h.svc.ListMembers(r.Context(), companyID)
	if err != nil {
		h.handleError(w, r, "ListMembers", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, members)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UpdateMember", err)
		return
	}
	memberID, err := pathID(r, "memberId")
	if err != nil {
		h.handleError(w, r, "UpdateMember", err)
		return
	}
	var in models.MemberUpdateInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "UpdateMember", err)
		return
	}
	member, err := h.svc.UpdateMember(r.Context(), companyID, memberID, in)
	if err != nil {
		h.handleError(w, r, "UpdateMember", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, member)
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "RemoveMember", err)
		return
	}
	memberID, err := pathID(r, "memberId")
	if err != nil {
		h.handleError(w, r, "RemoveMember", err)
		return
	}
	if err := h.svc.RemoveMember(r.Context(), companyID, memberID); err != nil {
		h.handleError(w, r, "RemoveMember", err)
		return
	}
	noContent(w, r, "member removed")
}

func (h *Handler) ListInvites(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "ListInvites", err)
		return
	}
	invites, err := h.svc.ListInvites(r.Context(), companyID)
	if err != nil {
		h.handleError(w, r, "ListInvites", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, invites)
}

func (h *Handler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "CreateInvite", err)
		return
	}
	var in models.InviteInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "CreateInvite", err)
		return
	}
	invite, err := h.svc.CreateInvite(r.Context(), companyID, in)
	if err != nil {
		h.handleError(w, r, "CreateInvite", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, invite)
}

func (h *Handler) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "RevokeInvite", err)
		return
	}
	inviteID, err := pathID(r, "inviteId")
	if err != nil {
		h.handleError(w, r, "RevokeInvite", err)
		return
	}
	if err := h.svc.RevokeInvite(r.Context(), companyID, inviteID); err != nil {
		h.handleError(w, r, "RevokeInvite", err)
		return
	}
	noContent(w, r, "invite revoked")
}

func (h *Handler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	member, err := h.svc.AcceptInvite(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		h.handleError(w, r, "AcceptInvite", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, member)
}

func (h *Handler) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeclineInvite(r.Context(), mux.Vars(r)["token"]); err != nil {
		h.handleError(w, r, "DeclineInvite", err)
		return
	}
	noContent(w, r, "invite declined")
}

func (h *Handler) SharedCompanies(w http.ResponseWriter, r *http.Request) {
	shared, err := h.svc.SharedCompanies(r.Context())
	if err != nil {
		h.handleError(w, r, "SharedCompanies", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, shared)
}
