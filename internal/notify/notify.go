package notify

import (
	"context"

	"vault-backend/internal/shared/telemetry"
)

// Kind labels a notification event.
type Kind string

const (
	DocumentUploaded Kind = "document.uploaded"
	DocumentDeleted  Kind = "document.deleted"
	AccessGranted    Kind = "access.granted"
	AccessRevoked    Kind = "access.revoked"
)

// Event is a fire-and-forget notification. Delivery is not required for
// correctness; failures are logged and swallowed by callers.
type Event struct {
	Kind       Kind   `json:"kind"`
	OwnerID    string `json:"ownerId"`
	ViewerID   string `json:"viewerId,omitempty"`
	DocumentID string `json:"documentId,omitempty"`
}

// Sink delivers notification events to a backend.
type Sink interface {
	Send(ctx context.Context, event Event) error
}

// LogSink writes events to the structured log. The default when no external
// sink is configured.
type LogSink struct{}

// Send logs the event.
func (LogSink) Send(ctx context.Context, event Event) error {
	_ = ctx
	telemetry.Info("notify.event", map[string]any{
		"kind":        string(event.Kind),
		"owner_id":    event.OwnerID,
		"viewer_id":   event.ViewerID,
		"document_id": event.DocumentID,
	})
	return nil
}

var _ Sink = LogSink{}
