package domain

import "time"

// Conversation is a 1:1 thread between a user and a business's owner.
type Conversation struct {
	ID            string    `json:"id"` // uuid
	BusinessID    int64     `json:"business_id"`
	UserID        string    `json:"user_id"`
	OwnerID       string    `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`
}

type Message struct {
	ID             string    `json:"id"` // uuid
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// Participant reports whether userID belongs to the conversation.
func (c Conversation) Participant(userID string) bool {
	return userID == c.UserID || userID == c.OwnerID
}

// Other returns the participant that is not userID.
func (c Conversation) Other(userID string) string {
	if userID == c.UserID {
		return c.OwnerID
	}
	return c.UserID
}

type MessagesPage struct {
	Items      []Message `json:"items"`
	NextCursor *string   `json:"next_cursor,omitempty"`
}
