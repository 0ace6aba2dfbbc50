package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vault-backend/internal/extract"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, owner_id, display_name, original_filename, mime_type, size_bytes, storage_key, insurance_type, policy_number, provider, premium, due_date, created_at`

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    owner_id,
    display_name,
    original_filename,
    mime_type,
    size_bytes,
    storage_key,
    insurance_type,
    policy_number,
    provider,
    premium,
    due_date,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.OwnerID,
		doc.DisplayName,
		doc.OriginalFilename,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		nullable(doc.Fields.InsuranceType),
		nullable(doc.Fields.PolicyNumber),
		nullable(doc.Fields.Provider),
		nullable(doc.Fields.Premium),
		nullable(doc.Fields.DueDate),
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID for an owner.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE owner_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, ownerID, documentID)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByOwner lists the owner's documents, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE owner_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Update rewrites the document's mutable fields. Owner id and creation time
// are never touched.
func (r *PGRepo) Update(ctx context.Context, doc Document) error {
	const query = `
UPDATE documents
SET display_name = $1,
    insurance_type = $2,
    policy_number = $3,
    provider = $4,
    premium = $5,
    due_date = $6
WHERE owner_id = $7 AND id = $8 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		doc.DisplayName,
		nullable(doc.Fields.InsuranceType),
		nullable(doc.Fields.PolicyNumber),
		nullable(doc.Fields.Provider),
		nullable(doc.Fields.Premium),
		nullable(doc.Fields.DueDate),
		doc.OwnerID,
		doc.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete soft-deletes the document for its owner.
func (r *PGRepo) Delete(ctx context.Context, ownerID, documentID string) error {
	const query = `
UPDATE documents
SET deleted_at = $1
WHERE owner_id = $2 AND id = $3 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, time.Now().UTC(), ownerID, documentID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var insuranceType sql.NullString
	var policyNumber sql.NullString
	var provider sql.NullString
	var premium sql.NullString
	var dueDate sql.NullString
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.DisplayName,
		&doc.OriginalFilename,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&insuranceType,
		&policyNumber,
		&provider,
		&premium,
		&dueDate,
		&doc.CreatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	doc.Fields = extract.Fields{
		InsuranceType: fromNull(insuranceType),
		PolicyNumber:  fromNull(policyNumber),
		Provider:      fromNull(provider),
		Premium:       fromNull(premium),
		DueDate:       fromNull(dueDate),
	}
	return doc, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

var _ Repo = (*PGRepo)(nil)
