package domain

import (
	"context"
	"time"
)

type BusinessRepository interface {
	InsertBusiness(ctx context.Context, b Business) (int64, error)
	GetBusiness(ctx context.Context, id int64) (Business, error)
	ListBusinesses(ctx context.Context, q BusinessQuery) (BusinessesPage, error)
	UpdateBusiness(ctx context.Context, b Business) error
	DeleteBusiness(ctx context.Context, id int64) error
	SetBusinessOwner(ctx context.Context, id int64, userID string) error
	SetBusinessCoords(ctx context.Context, id int64, lat, lon float64) error
	ListUngeocoded(ctx context.Context, limit int) ([]Business, error)

	// RecalcBusinessStats recomputes rating_avg/rating_count from published
	// reviews, the way the managed store's stored procedure did.
	RecalcBusinessStats(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	InsertReview(ctx context.Context, rv Review) (int64, error)
	GetReview(ctx context.Context, id int64) (Review, error)
	ListReviews(ctx context.Context, businessID int64, pg PageQuery) (ReviewsPage, error)
	DeleteReview(ctx context.Context, id int64) error
	SetReviewStatus(ctx context.Context, id int64, status string) error
	HasReview(ctx context.Context, businessID int64, userID string) (bool, error)
	CountReviewsSince(ctx context.Context, userID string, since time.Time) (int, error)
	InsertFlag(ctx context.Context, reviewID int64, userID, reason string) error
	CountFlagsSince(ctx context.Context, userID string, since time.Time) (int, error)
	ListFlagged(ctx context.Context, pg PageQuery) (ReviewsPage, error)
}

type ClaimRepository interface {
	InsertClaim(ctx context.Context, c Claim) error
	GetClaim(ctx context.Context, id string) (Claim, error)
	GetOpenClaim(ctx context.Context, businessID int64) (Claim, error)
	UpdateClaim(ctx context.Context, c Claim) error
}

type SavedRepository interface {
	SaveItem(ctx context.Context, userID string, businessID int64) error
	UnsaveItem(ctx context.Context, userID string, businessID int64) error
	ListSaved(ctx context.Context, userID string, pg PageQuery) ([]Business, error)
	CountSaved(ctx context.Context, userID string) (int, error)
}

type MessageRepository interface {
	FindConversation(ctx context.Context, userID string, businessID int64) (Conversation, error)
	GetConversation(ctx context.Context, id string) (Conversation, error)
	InsertConversation(ctx context.Context, c Conversation) error
	ListConversations(ctx context.Context, userID string, limit int) ([]Conversation, error)
	InsertMessage(ctx context.Context, m Message) error
	ListMessages(ctx context.Context, conversationID string, pg PageQuery) (MessagesPage, error)
}

type NotificationRepository interface {
	InsertNotification(ctx context.Context, n Notification) error
	ListNotifications(ctx context.Context, userID string, pg PageQuery) ([]Notification, error)
	MarkRead(ctx context.Context, userID string, id int64) error
	MarkAllRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	DelPrefix(ctx context.Context, prefix string) error
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coords, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}
