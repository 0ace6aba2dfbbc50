package sharing

import (
	"time"

	"vault-backend/internal/extract"
)

// unknownUserName is shown when a granted user id has no resolvable
// profile; a stale id must not break the whole listing.
const unknownUserName = "Unknown user"

// SharedDocument is a document as seen by a viewer, annotated with who
// owns it.
type SharedDocument struct {
	DocumentID       string         `json:"documentId"`
	OwnerID          string         `json:"ownerId"`
	OwnerName        string         `json:"ownerName"`
	DisplayName      string         `json:"displayName"`
	OriginalFilename string         `json:"originalFilename"`
	MimeType         string         `json:"mimeType"`
	SizeBytes        int64          `json:"sizeBytes"`
	Fields           extract.Fields `json:"fields"`
	UploadedAt       time.Time      `json:"uploadedAt"`
}

// Viewer is one entry of an owner's granted-viewer listing.
type Viewer struct {
	ViewerID  string    `json:"viewerId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	GrantedAt time.Time `json:"grantedAt,omitempty"`
}

// RedeemResult tells the caller which view changed so it can refresh only
// the affected one.
type RedeemResult struct {
	OwnerID   string `json:"ownerId"`
	OwnerName string `json:"ownerName"`
	ViewerID  string `json:"viewerId"`
}
