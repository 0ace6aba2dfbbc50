package sharing

import (
	"context"
	"errors"

	"vault-backend/internal/access"
	"vault-backend/internal/documents"
	"vault-backend/internal/invites"
	"vault-backend/internal/notify"
	"vault-backend/internal/shared/telemetry"
	"vault-backend/internal/users"
)

// DocumentLister is the slice of the document store the sharing reads need.
type DocumentLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]documents.Document, error)
}

// ProfileDirectory resolves user ids to display profiles. Backed by the
// identity-provider cache.
type ProfileDirectory interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

// Service orchestrates invite codes, access grants, and shared-document
// reads.
type Service struct {
	Invites  *invites.Registry
	Access   access.Repo
	Docs     DocumentLister
	Users    ProfileDirectory
	Cache    ViewCache
	Notifier notify.Sink
}

// RotateInviteCode replaces the owner's code. Existing grants are
// untouched: rotation only changes who can connect from now on.
func (s *Service) RotateInviteCode(ctx context.Context, ownerID string) (string, error) {
	return s.Invites.Issue(ctx, ownerID)
}

// CurrentInviteCode returns the owner's active code, issuing one on first
// request.
func (s *Service) CurrentInviteCode(ctx context.Context, ownerID string) (string, error) {
	return s.Invites.Current(ctx, ownerID)
}

// Redeem turns a valid invite code into an access grant for the viewer.
// The viewer's next shared-documents read reflects the new owner
// immediately.
func (s *Service) Redeem(ctx context.Context, code, viewerID string) (RedeemResult, error) {
	ownerID, err := s.Invites.Resolve(ctx, code)
	if err != nil {
		if errors.Is(err, invites.ErrNotFound) {
			return RedeemResult{}, ErrInvalidCode
		}
		return RedeemResult{}, err
	}

	if ownerID == viewerID {
		return RedeemResult{}, ErrSelfRedeem
	}

	if _, err := s.Access.Grant(ctx, ownerID, viewerID); err != nil {
		switch {
		case errors.Is(err, access.ErrAlreadyExists):
			return RedeemResult{}, ErrAlreadyConnected
		case errors.Is(err, access.ErrSelfGrant):
			return RedeemResult{}, ErrSelfRedeem
		default:
			return RedeemResult{}, err
		}
	}

	s.invalidateViewer(ctx, viewerID)
	s.notify(ctx, notify.Event{Kind: notify.AccessGranted, OwnerID: ownerID, ViewerID: viewerID})

	return RedeemResult{
		OwnerID:   ownerID,
		OwnerName: s.displayName(ctx, ownerID),
		ViewerID:  viewerID,
	}, nil
}

// RevokeAccess removes the owner's grant to a viewer. Revoking an absent
// grant is a no-op.
func (s *Service) RevokeAccess(ctx context.Context, ownerID, viewerID string) error {
	if err := s.Access.Revoke(ctx, ownerID, viewerID); err != nil {
		return err
	}
	s.invalidateViewer(ctx, viewerID)
	s.notify(ctx, notify.Event{Kind: notify.AccessRevoked, OwnerID: ownerID, ViewerID: viewerID})
	return nil
}

// ListGrantedViewers returns everyone the owner has granted access to. A
// viewer id with no resolvable profile is rendered as a placeholder rather
// than failing the listing.
func (s *Service) ListGrantedViewers(ctx context.Context, ownerID string) ([]Viewer, error) {
	viewerIDs, err := s.Access.ViewersOf(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]Viewer, 0, len(viewerIDs))
	for _, viewerID := range viewerIDs {
		entry := Viewer{ViewerID: viewerID, Name: unknownUserName}
		if profile, err := s.Users.GetByID(ctx, viewerID); err == nil {
			entry.Name = profile.FullName
			entry.Email = profile.Email
		}
		out = append(out, entry)
	}
	return out, nil
}

// SharedDocumentsFor computes the viewer's shared view: the union of every
// granting owner's documents, each annotated with the owner's display name.
// No dedup is needed; a document has exactly one owner.
func (s *Service) SharedDocumentsFor(ctx context.Context, viewerID string) ([]SharedDocument, error) {
	if docs, ok, err := s.cache().Get(ctx, viewerID); err == nil && ok {
		return docs, nil
	} else if err != nil {
		telemetry.Error("sharing.cache_get", map[string]any{"viewer_id": viewerID, "err": err.Error()})
	}

	ownerIDs, err := s.Access.OwnersVisibleTo(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	shared := make([]SharedDocument, 0)
	for _, ownerID := range ownerIDs {
		ownerName := s.displayName(ctx, ownerID)
		docs, err := s.Docs.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			shared = append(shared, SharedDocument{
				DocumentID:       doc.ID,
				OwnerID:          doc.OwnerID,
				OwnerName:        ownerName,
				DisplayName:      doc.DisplayName,
				OriginalFilename: doc.OriginalFilename,
				MimeType:         doc.MimeType,
				SizeBytes:        doc.SizeBytes,
				Fields:           doc.Fields,
				UploadedAt:       doc.CreatedAt,
			})
		}
	}

	if err := s.cache().Set(ctx, viewerID, shared); err != nil {
		telemetry.Error("sharing.cache_set", map[string]any{"viewer_id": viewerID, "err": err.Error()})
	}
	return shared, nil
}

// InvalidateOwnerViews drops the cached views of everyone who can see the
// owner's documents. Called by the ingestion pipeline on upload and delete.
func (s *Service) InvalidateOwnerViews(ctx context.Context, ownerID string) error {
	viewerIDs, err := s.Access.ViewersOf(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, viewerID := range viewerIDs {
		s.invalidateViewer(ctx, viewerID)
	}
	return nil
}

func (s *Service) displayName(ctx context.Context, userID string) string {
	profile, err := s.Users.GetByID(ctx, userID)
	if err != nil || profile.FullName == "" {
		return unknownUserName
	}
	return profile.FullName
}

func (s *Service) invalidateViewer(ctx context.Context, viewerID string) {
	if err := s.cache().Invalidate(ctx, viewerID); err != nil {
		telemetry.Error("sharing.cache_invalidate", map[string]any{"viewer_id": viewerID, "err": err.Error()})
	}
}

func (s *Service) cache() ViewCache {
	if s.Cache == nil {
		return NoopCache{}
	}
	return s.Cache
}

func (s *Service) notify(ctx context.Context, event notify.Event) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Send(ctx, event); err != nil {
		telemetry.Error("sharing.notify", map[string]any{"kind": string(event.Kind), "err": err.Error()})
	}
}
