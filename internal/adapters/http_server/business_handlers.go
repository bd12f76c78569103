package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hjnengare/sayso-web-sub011/internal/app"
	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

type businessBody struct {
	Name        string  `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
}

func (b businessBody) input() app.BusinessInput {
	return app.BusinessInput{
		Name:        b.Name,
		Category:    b.Category,
		Description: b.Description,
		Phone:       b.Phone,
		Website:     b.Website,
		Address:     b.Address,
		City:        b.City,
		Country:     b.Country,
	}
}

func (h *Handlers) createBusiness(w http.ResponseWriter, r *http.Request) {
	var body businessBody
	if !decodeBody(w, r, &body) {
		return
	}
	id := mustIdentity(r)
	b, err := h.Businesses.Create(r.Context(), id.UserID, body.input())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) getBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	b, err := h.Businesses.Get(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeCached(w, r, b)
}

func (h *Handlers) listBusinesses(w http.ResponseWriter, r *http.Request) {
	q := domain.BusinessQuery{Limit: 20}
	qs := r.URL.Query()
	if v := qs.Get("q"); v != "" {
		q.Q = &v
	}
	if v := qs.Get("category"); v != "" {
		q.Category = &v
	}
	if v := qs.Get("city"); v != "" {
		q.City = &v
	}
	if v := qs.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "min_rating must be 0..5")
			return
		}
		q.MinRating = &f
	}
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "limit must be an integer between 1 and 100")
			return
		}
		q.Limit = n
	}
	out, err := h.Businesses.List(r.Context(), q)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) updateBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	var body businessBody
	if !decodeBody(w, r, &body) {
		return
	}
	ident := mustIdentity(r)
	b, err := h.Businesses.Update(r.Context(), ident.UserID, ident.Admin(), id, body.input())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) deleteBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive number")
		return
	}
	ident := mustIdentity(r)
	if err := h.Businesses.Delete(r.Context(), ident.UserID, ident.Admin(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
