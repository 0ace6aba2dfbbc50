package access

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres. The unique constraint on
// (owner_id, viewer_id) is the serialization boundary for concurrent
// redeems of the same code.
type PGRepo struct {
	DB *sql.DB
}

const pgUniqueViolation = "23505"

// Grant inserts the edge, rejecting self-grants and duplicates.
func (r *PGRepo) Grant(ctx context.Context, ownerID, viewerID string) (Grant, error) {
	if ownerID == viewerID {
		return Grant{}, ErrSelfGrant
	}
	const query = `
INSERT INTO access_grants (owner_id, viewer_id, created_at)
VALUES ($1, $2, $3)`

	createdAt := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx, query, ownerID, viewerID, createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Grant{}, ErrAlreadyExists
		}
		return Grant{}, err
	}
	return Grant{OwnerID: ownerID, ViewerID: viewerID, CreatedAt: createdAt}, nil
}

// Revoke removes the edge if present.
func (r *PGRepo) Revoke(ctx context.Context, ownerID, viewerID string) error {
	const query = `DELETE FROM access_grants WHERE owner_id = $1 AND viewer_id = $2`
	_, err := r.DB.ExecContext(ctx, query, ownerID, viewerID)
	return err
}

// ViewersOf returns the owner's grant targets.
func (r *PGRepo) ViewersOf(ctx context.Context, ownerID string) ([]string, error) {
	const query = `SELECT viewer_id FROM access_grants WHERE owner_id = $1 ORDER BY viewer_id`
	return r.queryIDs(ctx, query, ownerID)
}

// OwnersVisibleTo returns the owners who granted the viewer access.
func (r *PGRepo) OwnersVisibleTo(ctx context.Context, viewerID string) ([]string, error) {
	const query = `SELECT owner_id FROM access_grants WHERE viewer_id = $1 ORDER BY owner_id`
	return r.queryIDs(ctx, query, viewerID)
}

func (r *PGRepo) queryIDs(ctx context.Context, query, arg string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
