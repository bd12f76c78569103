package domain

import "time"

// Claim is a user's assertion of ownership over a business listing,
// verified either by phone OTP or by an admin verdict.
type Claim struct {
	ID           string     `json:"id"` // uuid
	BusinessID   int64      `json:"business_id"`
	UserID       string     `json:"user_id"`
	Phone        string     `json:"phone"`
	Email        *string    `json:"email,omitempty"` // claimant contact captured at creation
	Status       string     `json:"status"`
	OTPHash      *string    `json:"-"` // bcrypt of the current code, never on the wire
	OTPExpiresAt *time.Time `json:"otp_expires_at,omitempty"`
	OTPSentAt    *time.Time `json:"otp_sent_at,omitempty"`
	OTPAttempts  int        `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const (
	ClaimPending     = "pending"
	ClaimUnderReview = "under_review"
	ClaimVerified    = "verified"
	ClaimRejected    = "rejected"
)

// claimNext holds the allowed forward edges; verified/rejected are terminal.
var claimNext = map[string][]string{
	ClaimPending:     {ClaimUnderReview, ClaimRejected},
	ClaimUnderReview: {ClaimVerified, ClaimRejected},
}

// ClaimCanTransition reports whether a claim may move from one status to
// another. Transitions are monotonic: no edge ever points backwards.
func ClaimCanTransition(from, to string) bool {
	for _, n := range claimNext[from] {
		if n == to {
			return true
		}
	}
	return false
}

// ClaimOpen reports whether the claim still blocks new claims on its business.
func ClaimOpen(status string) bool {
	return status == ClaimPending || status == ClaimUnderReview
}
