package httpserver

import (
	"net/http"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func (h *Handlers) saveItem(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(r, "businessID")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "businessID must be a positive number")
		return
	}
	ident := mustIdentity(r)
	if err := h.Saved.Save(r.Context(), ident.UserID, businessID); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handlers) unsaveItem(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(r, "businessID")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "businessID must be a positive number")
		return
	}
	ident := mustIdentity(r)
	if err := h.Saved.Unsave(r.Context(), ident.UserID, businessID); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listSaved(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	items, err := h.Saved.List(r.Context(), ident.UserID, domain.PageQuery{Limit: 50})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) savedCount(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	n, err := h.Saved.Count(r.Context(), ident.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}
