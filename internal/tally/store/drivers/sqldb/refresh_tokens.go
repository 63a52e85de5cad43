package sqldb

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
)

type refreshTokensRepo struct {
	db DBTX
	d  Dialect
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx,
		r.d.Rebind(`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`),
		t.ID,
		t.UserID,
		t.TokenHash,
		r.d.Time(t.ExpiresAt),
		r.d.Time(t.CreatedAt),
		r.d.Time(t.UpdatedAt),
	)
	return r.d.mapWriteError(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.QueryRowContext(ctx,
		r.d.Rebind(`SELECT id, user_id, token_hash, expires_at, created_at, updated_at
			FROM refresh_tokens WHERE token_hash = ?`),
		hash,
	).Scan(
		&t.ID,
		&t.UserID,
		&t.TokenHash,
		scanTime(&t.ExpiresAt),
		scanTime(&t.CreatedAt),
		scanTime(&t.UpdatedAt),
	)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

// RotateRefreshToken is a compare-and-swap on token_hash: of two callers
// holding the same old token only the first matches a row.
func (r *refreshTokensRepo) RotateRefreshToken(
	ctx context.Context,
	id, oldHash, newHash string,
	expiresAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx,
		r.d.Rebind(`UPDATE refresh_tokens SET token_hash = ?, expires_at = ?, updated_at = ?
			WHERE id = ? AND token_hash = ?`),
		newHash,
		r.d.Time(expiresAt),
		r.d.Time(time.Now()),
		id,
		oldHash,
	)
	return requireOneRow(res, r.d.mapWriteError(err))
}

func (r *refreshTokensRepo) DeleteRefreshToken(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM refresh_tokens WHERE id = ?`), id)
	return err
}

func (r *refreshTokensRepo) DeleteRefreshTokenForUser(ctx context.Context, hash, userID string) error {
	_, err := r.db.ExecContext(ctx,
		r.d.Rebind(`DELETE FROM refresh_tokens WHERE token_hash = ? AND user_id = ?`),
		hash, userID,
	)
	return err
}

func (r *refreshTokensRepo) DeleteAllRefreshTokensForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, r.d.Rebind(`DELETE FROM refresh_tokens WHERE user_id = ?`), userID)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		r.d.Rebind(`DELETE FROM refresh_tokens WHERE expires_at <= ?`),
		r.d.Time(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
