package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func (r *Repo) InsertBusiness(ctx context.Context, b domain.Business) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertBusinessSQL,
		valStr(b.OwnerID),
		b.Name,
		valStr(b.Category),
		valStr(b.Description),
		valStr(b.Phone),
		valStr(b.Website),
		valStr(b.Address),
		valStr(b.City),
		valStr(b.Country),
		valF64(b.Lat),
		valF64(b.Lon),
		domain.BusinessActive,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func scanBusiness(row interface{ Scan(...any) error }) (domain.Business, error) {
	var b domain.Business
	var owner, category, desc, phone, website, address, city, country sql.NullString
	var lat, lon sql.NullFloat64
	if err := row.Scan(
		&b.ID, &owner, &b.Name, &category, &desc, &phone, &website,
		&address, &city, &country, &lat, &lon, &b.Status, &b.RatingAvg, &b.RatingCount, &b.CreatedAt,
	); err != nil {
		return domain.Business{}, err
	}
	b.OwnerID = nullStr(owner)
	b.Category = nullStr(category)
	b.Description = nullStr(desc)
	b.Phone = nullStr(phone)
	b.Website = nullStr(website)
	b.Address = nullStr(address)
	b.City = nullStr(city)
	b.Country = nullStr(country)
	b.Lat = nullF64(lat)
	b.Lon = nullF64(lon)
	return b, nil
}

func (r *Repo) GetBusiness(ctx context.Context, id int64) (domain.Business, error) {
	b, err := scanBusiness(r.db.QueryRowContext(ctx, getBusinessSQL, id))
	if err == sql.ErrNoRows {
		return domain.Business{}, domain.ErrBusinessNotFound
	}
	return b, err
}

func (r *Repo) ListBusinesses(ctx context.Context, q domain.BusinessQuery) (domain.BusinessesPage, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, owner_id, name, category, description, phone, website,
  address, city, country, lat, lon, status, rating_avg, rating_count, created_at
FROM businesses WHERE status <> 'removed'`)
	var args []any
	if q.Q != nil {
		sb.WriteString(" AND (name LIKE ? OR description LIKE ?)")
		pat := "%" + *q.Q + "%"
		args = append(args, pat, pat)
	}
	if q.Category != nil {
		sb.WriteString(" AND category = ?")
		args = append(args, *q.Category)
	}
	if q.City != nil {
		sb.WriteString(" AND city = ?")
		args = append(args, *q.City)
	}
	if q.MinRating != nil {
		sb.WriteString(" AND rating_avg >= ?")
		args = append(args, *q.MinRating)
	}
	sb.WriteString(" ORDER BY rating_avg DESC, rating_count DESC, id LIMIT ?")
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return domain.BusinessesPage{}, err
	}
	defer rows.Close()

	var out []domain.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return domain.BusinessesPage{}, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return domain.BusinessesPage{}, err
	}
	return domain.BusinessesPage{Items: out}, nil
}

func (r *Repo) UpdateBusiness(ctx context.Context, b domain.Business) error {
	res, err := r.db.ExecContext(ctx, updateBusinessSQL,
		b.Name,
		valStr(b.Category),
		valStr(b.Description),
		valStr(b.Phone),
		valStr(b.Website),
		valStr(b.Address),
		valStr(b.City),
		valStr(b.Country),
		valF64(b.Lat),
		valF64(b.Lon),
		b.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

// DeleteBusiness removes the row; dependent reviews/saved items/claims
// cascade via foreign keys. Object-storage cleanup happens before this call.
func (r *Repo) DeleteBusiness(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM businesses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

func (r *Repo) SetBusinessOwner(ctx context.Context, id int64, userID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE businesses SET owner_id = ? WHERE id = ?`, userID, id)
	return err
}

func (r *Repo) SetBusinessCoords(ctx context.Context, id int64, lat, lon float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE businesses SET lat = ?, lon = ? WHERE id = ?`, lat, lon, id)
	return err
}

func (r *Repo) ListUngeocoded(ctx context.Context, limit int) ([]domain.Business, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, name, category, description, phone, website,
  address, city, country, lat, lon, status, rating_avg, rating_count, created_at
FROM businesses
WHERE status <> 'removed' AND lat IS NULL AND address IS NOT NULL
ORDER BY id
LIMIT ?`, limit)
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

func (r *Repo) RecalcBusinessStats(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, recalcStatsSQL, id)
	return err
}
