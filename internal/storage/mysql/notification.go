package mysql

import (
	"context"
	"database/sql"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func (r *Repo) InsertNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx, insertNotificationSQL, n.UserID, n.Kind, n.Body, valStr(n.Ref))
	return err
}

func (r *Repo) ListNotifications(ctx context.Context, userID string, pg domain.PageQuery) ([]domain.Notification, error) {
	limit := pg.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listNotificationsSQL, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var ref sql.NullString
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Body, &ref, &readAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Ref = nullStr(ref)
		if readAt.Valid {
			t := readAt.Time
			n.ReadAt = &t
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) MarkRead(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ? AND read_at IS NULL`,
		id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// already read or not the caller's notification; treat both as not found
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM notifications WHERE id = ? AND user_id = ?`, id, userID).Scan(&exists); err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *Repo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = CURRENT_TIMESTAMP WHERE user_id = ? AND read_at IS NULL`, userID)
	return err
}

func (r *Repo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_at IS NULL`, userID).Scan(&n)
	return n, err
}
