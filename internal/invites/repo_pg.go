package invites

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const pgUniqueViolation = "23505"

// Replace upserts the owner's active code. The unique index on code surfaces
// cross-owner collisions as ErrCodeTaken.
func (r *PGRepo) Replace(ctx context.Context, code InviteCode) error {
	const query = `
INSERT INTO invite_codes (owner_id, code, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (owner_id) DO UPDATE SET code = EXCLUDED.code, created_at = EXCLUDED.created_at`

	_, err := r.DB.ExecContext(ctx, query, code.OwnerID, code.Code, code.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrCodeTaken
		}
		return err
	}
	return nil
}

// ResolveOwner returns the owner of an active code.
func (r *PGRepo) ResolveOwner(ctx context.Context, code string) (string, error) {
	const query = `SELECT owner_id FROM invite_codes WHERE code = $1`
	var ownerID string
	err := r.DB.QueryRowContext(ctx, query, code).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return ownerID, nil
}

// GetByOwner returns the owner's active code.
func (r *PGRepo) GetByOwner(ctx context.Context, ownerID string) (InviteCode, error) {
	const query = `SELECT owner_id, code, created_at FROM invite_codes WHERE owner_id = $1`
	var code InviteCode
	err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(&code.OwnerID, &code.Code, &code.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return InviteCode{}, ErrNotFound
		}
		return InviteCode{}, err
	}
	return code, nil
}

var _ Repo = (*PGRepo)(nil)
