package handler

import (
	"net/http"

	"github.com/Dan9191/fintrack/internal/models"
)

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	companyID, err := queryID(r, "companyId")
	if err != nil {
		h.handleError(w, r, "ListAssets", err)
		return
	}
	assets, err := h.svc.ListAssets(r.Context(), companyID, r.URL.Query().Get("type"))
	if err != nil {
		h.handleError(w, r, "ListAssets", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, assets)
}

func (h *Handler) AssetSummary(w http.ResponseWriter, r *http.Request) {
	companyID, err := queryID(r, "companyId")
	if err != nil {
		h.handleError(w, r, "AssetSummary", err)
		return
	}
	summary, err := h.svc.AssetSummary(r.Context(), companyID)
	if err != nil {
		h.handleError(w, r, "AssetSummary", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, summary)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var in models.AssetInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "CreateAsset", err)
		return
	}
	asset, err := h.svc.CreateAsset(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "CreateAsset", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, asset)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "GetAsset", err)
		return
	}
	asset, err := h.svc.GetAsset(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "GetAsset", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, asset)
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "UpdateAsset", err)
		return
	}
	var in models.AssetInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "UpdateAsset", err)
		return
	}
	asset, err := h.svc.UpdateAsset(r.Context(), id, in)
	if err != nil {
		h.handleError(w, r, "UpdateAsset", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, asset)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, "DeleteAsset", err)
		return
	}
	if err := h.svc.DeleteAsset(r.Context(), id); err != nil {
		h.handleError(w, r, "DeleteAsset", err)
		return
	}
	noContent(w, r, "asset deleted")
}
