package httpserver

import (
	"net/http"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func (h *Handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	out, err := h.Notifs.List(r.Context(), ident.UserID, domain.PageQuery{Limit: 50})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handlers) unreadCount(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	n, err := h.Notifs.UnreadCount(r.Context(), ident.UserID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *Handlers) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	ident := mustIdentity(r)
	if err := h.Notifs.MarkRead(r.Context(), ident.UserID, id); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (h *Handlers) markAllRead(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	if err := h.Notifs.MarkAllRead(r.Context(), ident.UserID); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
