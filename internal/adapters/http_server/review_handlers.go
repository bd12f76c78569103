package httpserver

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/hjnengare/sayso-web-sub011/internal/app"
	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

type reviewBody struct {
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Image     string `json:"image"` // base64, optional
	ImageType string `json:"image_type"`
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	var body reviewBody
	if !decodeBody(w, r, &body) {
		return
	}
	in := app.SubmitReviewInput{
		Rating:    body.Rating,
		Title:     body.Title,
		Text:      body.Text,
		ImageType: body.ImageType,
	}
	if body.Image != "" {
		img, err := base64.StdEncoding.DecodeString(body.Image)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "image must be base64")
			return
		}
		in.Image = img
	}
	ident := mustIdentity(r)
	rv, err := h.Reviews.Submit(r.Context(), ident.UserID, businessID, in)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	// newest first; aligns with DB index on (business_id, created_at, id)
	page := domain.PageQuery{Limit: limit, Sort: "-created_at"}
	out, err := h.Businesses.ListReviews(r.Context(), businessID, page)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	ident := mustIdentity(r)
	if err := h.Reviews.Delete(r.Context(), ident.UserID, ident.Admin(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) flagReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	ident := mustIdentity(r)
	if err := h.Reviews.Flag(r.Context(), ident.UserID, id, body.Reason); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "flagged"})
}

func (h *Handlers) listFlagged(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reviews.ListFlagged(r.Context(), domain.PageQuery{Limit: 50})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) moderateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	var body struct {
		Action string `json:"action"` // publish|remove
	}
	if !decodeBody(w, r, &body) {
		return
	}
	status, err := h.Reviews.Moderate(r.Context(), id, body.Action)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}
