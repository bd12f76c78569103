package mysql

import (
	"context"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func (r *Repo) SaveItem(ctx context.Context, userID string, businessID int64) error {
	_, err := r.db.ExecContext(ctx, saveItemSQL, userID, businessID)
	return err
}

func (r *Repo) UnsaveItem(ctx context.Context, userID string, businessID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_items WHERE user_id = ? AND business_id = ?`, userID, businessID)
	return err
}

func (r *Repo) ListSaved(ctx context.Context, userID string, pg domain.PageQuery) ([]domain.Business, error) {
	limit := pg.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listSavedSQL, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) CountSaved(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_items WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}
