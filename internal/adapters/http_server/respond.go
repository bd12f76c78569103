package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

// apiError is the uniform error body: {"error": CODE, "details": "..."}.
type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, apiError{Error: code, Details: details})
}

// writeDomainErr maps a service error onto the wire. Domain errors carry
// their own code and status; anything else is a logged 500.
func writeDomainErr(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		writeError(w, de.Status, de.Code, de.Error())
		return
	}
	log.Error().Err(err).Msg("unhandled service error")
	writeError(w, http.StatusInternalServerError, "INTERNAL", "")
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached answers with ETag support: 304 when If-None-Match matches.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// decodeBody unmarshals a JSON request body, capped at 1 MiB.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed JSON body")
		return false
	}
	return true
}

// mustIdentity fetches the identity placed by RequireAuth.
func mustIdentity(r *http.Request) Identity {
	id, _ := IdentityFrom(r.Context())
	return id
}
