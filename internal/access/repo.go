package access

import "context"

// ErrSelfGrant is returned when an owner tries to grant access to
// themselves.
var ErrSelfGrant = errSelfGrant{}

type errSelfGrant struct{}

func (errSelfGrant) Error() string { return "cannot grant access to yourself" }

// ErrAlreadyExists is returned when the grant edge is already present.
// Callers surface this ("already connected") rather than treating it as
// silent success.
var ErrAlreadyExists = errAlreadyExists{}

type errAlreadyExists struct{}

func (errAlreadyExists) Error() string { return "access grant already exists" }

// Repo defines persistence for the access graph.
type Repo interface {
	// Grant inserts the (owner, viewer) edge. Fails with ErrSelfGrant or
	// ErrAlreadyExists; both are expected conditions, not faults.
	Grant(ctx context.Context, ownerID, viewerID string) (Grant, error)
	// Revoke removes the edge. A missing edge is not an error.
	Revoke(ctx context.Context, ownerID, viewerID string) error
	// ViewersOf returns every viewer the owner has granted access to.
	ViewersOf(ctx context.Context, ownerID string) ([]string, error)
	// OwnersVisibleTo returns every owner who has granted the viewer access.
	OwnersVisibleTo(ctx context.Context, viewerID string) ([]string, error)
}
