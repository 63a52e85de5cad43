package sqldb

import (
	"context"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
)

type usersRepo struct {
	db DBTX
	d  Dialect
}

const userColumns = `id, email, username, password_hash, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		scanTime(&u.CreatedAt),
		scanTime(&u.UpdatedAt),
	)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`),
		id,
	)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) FindUserByEmailOrUsername(ctx context.Context, email, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ? OR username = ? ORDER BY created_at LIMIT 1`),
		email, username,
	)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		r.d.Rebind(`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		u.ID,
		u.Email,
		u.Username,
		u.PasswordHash,
		r.d.Time(u.CreatedAt),
		r.d.Time(u.UpdatedAt),
	)
	return r.d.mapWriteError(err)
}
