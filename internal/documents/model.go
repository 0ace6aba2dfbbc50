package documents

import (
	"time"

	"vault-backend/internal/extract"
)

// Document represents one uploaded file's metadata. OwnerID is set at
// creation and never changes; visibility to other users is decided by the
// access graph, not by anything stored here.
type Document struct {
	ID               string
	OwnerID          string
	DisplayName      string
	OriginalFilename string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	Fields           extract.Fields
	CreatedAt        time.Time
}
