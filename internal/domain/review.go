package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"` // 1..5
	Title      *string   `json:"title,omitempty"`
	Text       *string   `json:"text,omitempty"`
	ImageURL   *string   `json:"image_url,omitempty"`
	Status     string    `json:"status"` // published|pending|removed
	FlagCount  int       `json:"flag_count"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	ReviewPublished = "published"
	ReviewPending   = "pending"
	ReviewRemoved   = "removed"
)

type PageQuery struct {
	Limit  int
	Cursor *string
	Sort   string
}

type ReviewsPage struct {
	Items      []Review `json:"items"`
	NextCursor *string  `json:"next_cursor,omitempty"`
}
