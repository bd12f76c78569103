package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func (h *Handlers) startConversation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BusinessID int64 `json:"business_id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.BusinessID <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "business_id is required")
		return
	}
	ident := mustIdentity(r)
	c, err := h.Messages.Start(r.Context(), ident.UserID, body.BusinessID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) listConversations(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	out, err := h.Messages.ListConversations(r.Context(), ident.UserID, 50)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Body string `json:"body"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	ident := mustIdentity(r)
	m, err := h.Messages.Send(r.Context(), ident.UserID, chi.URLParam(r, "id"), body.Body)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *Handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	out, err := h.Messages.ListMessages(r.Context(), ident.UserID, chi.URLParam(r, "id"), domain.PageQuery{Limit: 50})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
