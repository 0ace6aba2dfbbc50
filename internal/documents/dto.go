package documents

import (
	"time"

	"vault-backend/internal/extract"
)

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID       string         `json:"documentId"`
	DisplayName      string         `json:"displayName"`
	OriginalFilename string         `json:"originalFilename"`
	MimeType         string         `json:"mimeType"`
	SizeBytes        int64          `json:"sizeBytes"`
	Fields           extract.Fields `json:"fields"`
	UploadedAt       time.Time      `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:       doc.ID,
		DisplayName:      doc.DisplayName,
		OriginalFilename: doc.OriginalFilename,
		MimeType:         doc.MimeType,
		SizeBytes:        doc.SizeBytes,
		Fields:           doc.Fields,
		UploadedAt:       doc.CreatedAt,
	}
}

func toResponses(docs []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	return out
}
