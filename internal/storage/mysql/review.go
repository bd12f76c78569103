package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.BusinessID,
		rv.UserID,
		rv.Rating,
		valStr(rv.Title),
		valStr(rv.Text),
		valStr(rv.ImageURL),
		rv.Status,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ErrReviewDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

// isDuplicateKey matches MySQL error 1062 (unique key violation).
func isDuplicateKey(err error) bool {
	var me *mysqldrv.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func scanReview(row interface{ Scan(...any) error }) (domain.Review, error) {
	var rv domain.Review
	var title, text, image sql.NullString
	if err := row.Scan(
		&rv.ID, &rv.BusinessID, &rv.UserID, &rv.Rating,
		&title, &text, &image, &rv.Status, &rv.FlagCount, &rv.CreatedAt,
	); err != nil {
		return domain.Review{}, err
	}
	rv.Title = nullStr(title)
	rv.Text = nullStr(text)
	rv.ImageURL = nullStr(image)
	return rv, nil
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, `
SELECT id, business_id, user_id, rating, title, `+"`text`"+`, image_url, status, flag_count, created_at
FROM reviews WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	return rv, err
}

func (r *Repo) ListReviews(ctx context.Context, businessID int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	limit := pg.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, businessID, limit)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return domain.ReviewsPage{}, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return domain.ReviewsPage{}, err
	}
	return domain.ReviewsPage{Items: out}, nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *Repo) SetReviewStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reviews SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *Repo) HasReview(ctx context.Context, businessID int64, userID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM reviews WHERE business_id = ? AND user_id = ? LIMIT 1`,
		businessID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *Repo) CountReviewsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE user_id = ? AND created_at >= ?`,
		userID, since).Scan(&n)
	return n, err
}

func (r *Repo) InsertFlag(ctx context.Context, reviewID int64, userID, reason string) error {
	res, err := r.db.ExecContext(ctx, insertFlagSQL, reviewID, userID, reason)
	if err != nil {
		return err
	}
	// only a fresh flag bumps the counter; re-flagging updates the reason
	if n, _ := res.RowsAffected(); n == 1 {
		_, err = r.db.ExecContext(ctx, `UPDATE reviews SET flag_count = flag_count + 1 WHERE id = ?`, reviewID)
	}
	return err
}

func (r *Repo) CountFlagsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_flags WHERE user_id = ? AND created_at >= ?`,
		userID, since).Scan(&n)
	return n, err
}

func (r *Repo) ListFlagged(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	limit := pg.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listFlaggedSQL, limit)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return domain.ReviewsPage{}, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return domain.ReviewsPage{}, err
	}
	return domain.ReviewsPage{Items: out}, nil
}
