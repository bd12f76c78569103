package mysql

import (
	"context"
	"database/sql"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func scanConversation(row interface{ Scan(...any) error }) (domain.Conversation, error) {
	var c domain.Conversation
	err := row.Scan(&c.ID, &c.BusinessID, &c.UserID, &c.OwnerID, &c.CreatedAt, &c.LastMessageAt)
	return c, err
}

func (r *Repo) FindConversation(ctx context.Context, userID string, businessID int64) (domain.Conversation, error) {
	c, err := scanConversation(r.db.QueryRowContext(ctx,
		conversationColsSQL+`WHERE user_id = ? AND business_id = ?`, userID, businessID))
	if err == sql.ErrNoRows {
		return domain.Conversation{}, domain.ErrNotFound
	}
	return c, err
}

func (r *Repo) GetConversation(ctx context.Context, id string) (domain.Conversation, error) {
	c, err := scanConversation(r.db.QueryRowContext(ctx, conversationColsSQL+`WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return domain.Conversation{}, domain.ErrNotFound
	}
	return c, err
}

func (r *Repo) InsertConversation(ctx context.Context, c domain.Conversation) error {
	_, err := r.db.ExecContext(ctx, insertConversationSQL, c.ID, c.BusinessID, c.UserID, c.OwnerID)
	return err
}

func (r *Repo) ListConversations(ctx context.Context, userID string, limit int) ([]domain.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		conversationColsSQL+`WHERE user_id = ? OR owner_id = ? ORDER BY last_message_at DESC LIMIT ?`,
		userID, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) InsertMessage(ctx context.Context, m domain.Message) error {
	if _, err := r.db.ExecContext(ctx, insertMessageSQL, m.ID, m.ConversationID, m.SenderID, m.Body); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, touchConversationSQL, m.ConversationID)
	return err
}

func (r *Repo) ListMessages(ctx context.Context, conversationID string, pg domain.PageQuery) (domain.MessagesPage, error) {
	limit := pg.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, conversation_id, sender_id, body, created_at
FROM messages
WHERE conversation_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?`, conversationID, limit)
	if err != nil {
		return domain.MessagesPage{}, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return domain.MessagesPage{}, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return domain.MessagesPage{}, err
	}
	return domain.MessagesPage{Items: out}, nil
}
