package domain

import "net/http"

// Error is a domain failure carrying the API error code and the HTTP status
// the handler layer should answer with. Services return these; handlers map
// anything else to a generic 500.
type Error struct {
	Code   string
	Status int
	msg    string
}

func (e *Error) Error() string { return e.msg }

func newErr(code string, status int, msg string) *Error {
	return &Error{Code: code, Status: status, msg: msg}
}

var (
	ErrNotFound         = newErr("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrBusinessNotFound = newErr("BUSINESS_NOT_FOUND", http.StatusNotFound, "business not found")
	ErrReviewNotFound   = newErr("REVIEW_NOT_FOUND", http.StatusNotFound, "review not found")
	ErrClaimNotFound    = newErr("CLAIM_NOT_FOUND", http.StatusNotFound, "claim not found")

	ErrInvalidInput = newErr("INVALID_INPUT", http.StatusBadRequest, "invalid input")
	ErrForbidden    = newErr("FORBIDDEN", http.StatusForbidden, "not allowed")
	ErrUnauthorized = newErr("UNAUTHORIZED", http.StatusUnauthorized, "authentication required")

	ErrReviewDuplicate   = newErr("REVIEW_DUPLICATE", http.StatusConflict, "user already reviewed this business")
	ErrReviewRateLimited = newErr("REVIEW_RATE_LIMITED", http.StatusTooManyRequests, "too many reviews, try again later")
	ErrFlagRateLimited   = newErr("FLAG_RATE_LIMITED", http.StatusTooManyRequests, "too many flags, try again later")

	ErrClaimAlreadyExists    = newErr("CLAIM_ALREADY_EXISTS", http.StatusConflict, "an open claim already exists for this business")
	ErrClaimInvalidTransition = newErr("CLAIM_INVALID_TRANSITION", http.StatusConflict, "claim status cannot change that way")

	ErrOTPSendRateLimited = newErr("OTP_SEND_RATE_LIMITED", http.StatusTooManyRequests, "code was sent recently, wait before resending")
	ErrOTPExpired         = newErr("OTP_EXPIRED", http.StatusBadRequest, "code has expired, request a new one")
	ErrOTPInvalid         = newErr("OTP_INVALID", http.StatusBadRequest, "code does not match")
	ErrOTPTooManyAttempts = newErr("OTP_TOO_MANY_ATTEMPTS", http.StatusTooManyRequests, "too many attempts, request a new code")
	ErrOTPNotIssued       = newErr("OTP_NOT_ISSUED", http.StatusConflict, "no code has been sent for this claim")
)

// ErrAddressUnresolvable means every geocoding provider rejected every
// candidate form of an address. Geocoding callers treat it as best-effort.
var ErrAddressUnresolvable = newErr("ADDRESS_UNRESOLVABLE", http.StatusUnprocessableEntity, "address could not be geocoded")

// Invalid returns a 400 INVALID_INPUT error with a field-specific message.
func Invalid(msg string) *Error {
	return newErr(ErrInvalidInput.Code, http.StatusBadRequest, msg)
}
