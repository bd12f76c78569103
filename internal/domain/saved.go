package domain

import "time"

type SavedItem struct {
	UserID     string
	BusinessID int64
	CreatedAt  time.Time
}
