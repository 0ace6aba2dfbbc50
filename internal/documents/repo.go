package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, ownerID, documentID string) (Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Document, error)
	Update(ctx context.Context, doc Document) error
	Delete(ctx context.Context, ownerID, documentID string) error
}
