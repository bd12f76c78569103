package mysql

import (
	"context"
	"database/sql"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

func (r *Repo) InsertClaim(ctx context.Context, c domain.Claim) error {
	_, err := r.db.ExecContext(ctx, insertClaimSQL,
		c.ID,
		c.BusinessID,
		c.UserID,
		c.Phone,
		valStr(c.Email),
		c.Status,
		valStr(c.OTPHash),
		c.OTPExpiresAt,
		c.OTPSentAt,
		c.OTPAttempts,
	)
	return err
}

func scanClaim(row interface{ Scan(...any) error }) (domain.Claim, error) {
	var c domain.Claim
	var email, hash sql.NullString
	var expires, sent sql.NullTime
	if err := row.Scan(
		&c.ID, &c.BusinessID, &c.UserID, &c.Phone, &email, &c.Status,
		&hash, &expires, &sent, &c.OTPAttempts, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return domain.Claim{}, err
	}
	c.Email = nullStr(email)
	c.OTPHash = nullStr(hash)
	if expires.Valid {
		t := expires.Time
		c.OTPExpiresAt = &t
	}
	if sent.Valid {
		t := sent.Time
		c.OTPSentAt = &t
	}
	return c, nil
}

func (r *Repo) GetClaim(ctx context.Context, id string) (domain.Claim, error) {
	c, err := scanClaim(r.db.QueryRowContext(ctx, getClaimSQL, id))
	if err == sql.ErrNoRows {
		return domain.Claim{}, domain.ErrClaimNotFound
	}
	return c, err
}

func (r *Repo) GetOpenClaim(ctx context.Context, businessID int64) (domain.Claim, error) {
	c, err := scanClaim(r.db.QueryRowContext(ctx, getOpenClaimSQL, businessID))
	if err == sql.ErrNoRows {
		return domain.Claim{}, domain.ErrClaimNotFound
	}
	return c, err
}

func (r *Repo) UpdateClaim(ctx context.Context, c domain.Claim) error {
	res, err := r.db.ExecContext(ctx, updateClaimSQL,
		c.Status,
		valStr(c.OTPHash),
		c.OTPExpiresAt,
		c.OTPSentAt,
		c.OTPAttempts,
		c.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrClaimNotFound
	}
	return nil
}
