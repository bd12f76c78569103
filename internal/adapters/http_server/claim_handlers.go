package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) createClaim(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	var body struct {
		Phone string `json:"phone"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	ident := mustIdentity(r)
	c, err := h.Claims.Create(r.Context(), ident.UserID, ident.Email, businessID, body.Phone)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) getClaim(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	c, err := h.Claims.Get(r.Context(), ident.UserID, ident.Admin(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) sendOTP(w http.ResponseWriter, r *http.Request) {
	ident := mustIdentity(r)
	if err := h.Claims.SendOTP(r.Context(), ident.UserID, chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handlers) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	ident := mustIdentity(r)
	c, err := h.Claims.VerifyOTP(r.Context(), ident.UserID, chi.URLParam(r, "id"), body.Code)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) approveClaim(w http.ResponseWriter, r *http.Request) {
	c, err := h.Claims.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) rejectClaim(w http.ResponseWriter, r *http.Request) {
	c, err := h.Claims.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
