package domain

import "time"

type Notification struct {
	ID        int64      `json:"id"`
	UserID    string     `json:"user_id"`
	Kind      string     `json:"kind"` // claim_verified|claim_rejected|new_message|review_moderated
	Body      string     `json:"body"`
	Ref       *string    `json:"ref,omitempty"` // e.g. conversation or claim id
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	NotifClaimVerified   = "claim_verified"
	NotifClaimRejected   = "claim_rejected"
	NotifNewMessage      = "new_message"
	NotifReviewModerated = "review_moderated"
)
