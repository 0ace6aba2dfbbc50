package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"vault-backend/internal/extract"
	"vault-backend/internal/notify"
	"vault-backend/internal/shared/storage/object"
	"vault-backend/internal/shared/telemetry"
	"vault-backend/internal/shared/util"
)

// ViewInvalidator drops cached shared-document views for everyone the owner
// has granted access to. Implemented by the sharing service.
type ViewInvalidator interface {
	InvalidateOwnerViews(ctx context.Context, ownerID string) error
}

// Service is the ingestion pipeline: validate the upload, store the bytes,
// run extraction, persist the record, and make it visible to existing
// viewers on their next read.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Views    ViewInvalidator
	Notifier notify.Sink
}

// Upload validates and persists one uploaded file. Extraction runs only for
// PDFs; any extraction failure degrades to nil fields rather than aborting
// the upload.
func (s *Service) Upload(ctx context.Context, ownerID string, r io.Reader, fileName, contentType string, sizeBytes int64) (Document, error) {
	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, ErrInvalidInput
	}
	if !AllowedMimeType(contentType) {
		return Document{}, ErrInvalidType
	}
	if !WithinSizeLimit(sizeBytes) {
		return Document{}, ErrTooLarge
	}

	// The declared size passed the ceiling; re-check the actual bytes so a
	// lying client cannot sneak a larger body through.
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > MaxUploadBytes {
		return Document{}, ErrTooLarge
	}

	var fields extract.Fields
	if contentType == MimePDF {
		fields = extract.FromPDF(data)
	}

	storageKey, _, _, err := s.Store.Save(ctx, ownerID, sanitizedName, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}

	doc := Document{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		DisplayName:      displayName(fields.InsuranceType, sanitizedName),
		OriginalFilename: sanitizedName,
		MimeType:         contentType,
		SizeBytes:        int64(len(data)),
		StorageKey:       storageKey,
		Fields:           fields,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	s.invalidateViews(ctx, ownerID)
	s.notify(ctx, notify.Event{Kind: notify.DocumentUploaded, OwnerID: ownerID, DocumentID: doc.ID})
	return doc, nil
}

// Get returns one of the owner's documents.
func (s *Service) Get(ctx context.Context, ownerID, documentID string) (Document, error) {
	if ownerID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, ownerID, documentID)
}

// List returns the owner's documents, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Document, error) {
	if ownerID == "" {
		return nil, errors.New("owner id required")
	}
	return s.Repo.ListByOwner(ctx, ownerID)
}

// UpdatePatch carries optional edits; nil fields are left unchanged.
type UpdatePatch struct {
	DisplayName   *string
	InsuranceType *string
	PolicyNumber  *string
	Provider      *string
	Premium       *string
	DueDate       *string
}

// UpdateDetails applies an owner's metadata edits.
func (s *Service) UpdateDetails(ctx context.Context, ownerID, documentID string, patch UpdatePatch) (Document, error) {
	doc, err := s.Repo.GetByID(ctx, ownerID, documentID)
	if err != nil {
		return Document{}, err
	}

	if patch.DisplayName != nil {
		if *patch.DisplayName == "" {
			return Document{}, ErrInvalidInput
		}
		doc.DisplayName = *patch.DisplayName
	}
	if patch.InsuranceType != nil {
		doc.Fields.InsuranceType = patch.InsuranceType
	}
	if patch.PolicyNumber != nil {
		doc.Fields.PolicyNumber = patch.PolicyNumber
	}
	if patch.Provider != nil {
		doc.Fields.Provider = patch.Provider
	}
	if patch.Premium != nil {
		doc.Fields.Premium = patch.Premium
	}
	if patch.DueDate != nil {
		doc.Fields.DueDate = patch.DueDate
	}

	if err := s.Repo.Update(ctx, doc); err != nil {
		return Document{}, err
	}

	s.invalidateViews(ctx, ownerID)
	return doc, nil
}

// Delete removes an owner's document and invalidates any cached shared
// views that included it.
func (s *Service) Delete(ctx context.Context, ownerID, documentID string) error {
	if err := s.Repo.Delete(ctx, ownerID, documentID); err != nil {
		return err
	}
	s.invalidateViews(ctx, ownerID)
	s.notify(ctx, notify.Event{Kind: notify.DocumentDeleted, OwnerID: ownerID, DocumentID: documentID})
	return nil
}

func (s *Service) invalidateViews(ctx context.Context, ownerID string) {
	if s.Views == nil {
		return
	}
	if err := s.Views.InvalidateOwnerViews(ctx, ownerID); err != nil {
		telemetry.Error("documents.invalidate_views", map[string]any{"owner_id": ownerID, "err": err.Error()})
	}
}

func (s *Service) notify(ctx context.Context, event notify.Event) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Send(ctx, event); err != nil {
		telemetry.Error("documents.notify", map[string]any{"kind": string(event.Kind), "err": err.Error()})
	}
}

func displayName(insuranceType *string, originalName string) string {
	if insuranceType != nil && *insuranceType != "" {
		return fmt.Sprintf("%s Insurance - %s", *insuranceType, originalName)
	}
	return fmt.Sprintf("Document - %s", originalName)
}
