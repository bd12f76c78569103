package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

type MessageService struct {
	msgs       domain.MessageRepository
	businesses domain.BusinessRepository
	notifs     domain.NotificationRepository
}

func NewMessageService(msgs domain.MessageRepository, businesses domain.BusinessRepository, notifs domain.NotificationRepository) *MessageService {
	return &MessageService{msgs: msgs, businesses: businesses, notifs: notifs}
}

// Start finds or creates the 1:1 thread between userID and the business owner.
func (s *MessageService) Start(ctx context.Context, userID string, businessID int64) (domain.Conversation, error) {
	b, err := s.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		return domain.Conversation{}, err
	}
	if b.OwnerID == nil {
		return domain.Conversation{}, domain.Invalid("business has no verified owner to message")
	}
	if *b.OwnerID == userID {
		return domain.Conversation{}, domain.Invalid("cannot message your own business")
	}

	if c, err := s.msgs.FindConversation(ctx, userID, businessID); err == nil {
		return c, nil
	} else if err != domain.ErrNotFound {
		return domain.Conversation{}, err
	}

	c := domain.Conversation{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		UserID:     userID,
		OwnerID:    *b.OwnerID,
	}
	if err := s.msgs.InsertConversation(ctx, c); err != nil {
		return domain.Conversation{}, err
	}
	return c, nil
}

func (s *MessageService) ListConversations(ctx context.Context, userID string, limit int) ([]domain.Conversation, error) {
	return s.msgs.ListConversations(ctx, userID, limit)
}

// Send posts a message into a conversation the sender participates in, and
// drops a best-effort notification for the other side.
func (s *MessageService) Send(ctx context.Context, senderID, conversationID, body string) (domain.Message, error) {
	c, err := s.msgs.GetConversation(ctx, conversationID)
	if err != nil {
		return domain.Message{}, err
	}
	if !c.Participant(senderID) {
		return domain.Message{}, domain.ErrForbidden
	}
	body = sanitize(body)
	if body == "" {
		return domain.Message{}, domain.Invalid("message body is empty")
	}
	if len(body) > 4000 {
		return domain.Message{}, domain.Invalid("message too long")
	}

	m := domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.msgs.InsertMessage(ctx, m); err != nil {
		return domain.Message{}, err
	}

	ref := conversationID
	if nerr := s.notifs.InsertNotification(ctx, domain.Notification{
		UserID: c.Other(senderID),
		Kind:   domain.NotifNewMessage,
		Body:   "You have a new message.",
		Ref:    &ref,
	}); nerr != nil {
		log.Warn().Err(nerr).Str("conversation", conversationID).Msg("message notification failed")
	}
	return m, nil
}

func (s *MessageService) ListMessages(ctx context.Context, actorID, conversationID string, pg domain.PageQuery) (domain.MessagesPage, error) {
	c, err := s.msgs.GetConversation(ctx, conversationID)
	if err != nil {
		return domain.MessagesPage{}, err
	}
	if !c.Participant(actorID) {
		return domain.MessagesPage{}, domain.ErrForbidden
	}
	return s.msgs.ListMessages(ctx, conversationID, pg)
}
