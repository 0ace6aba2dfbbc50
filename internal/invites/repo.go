package invites

import "context"

// ErrNotFound is returned when no active code matches a lookup.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "invite code not found" }

// ErrCodeTaken is returned by Replace when the generated code is already
// another owner's active code. Callers retry with a fresh code.
var ErrCodeTaken = errCodeTaken{}

type errCodeTaken struct{}

func (errCodeTaken) Error() string { return "invite code already in use" }

// Repo defines persistence for invite codes.
type Repo interface {
	// Replace atomically sets the owner's active code, superseding any
	// previous one. Returns ErrCodeTaken if the code belongs to a
	// different owner.
	Replace(ctx context.Context, code InviteCode) error
	// ResolveOwner returns the owner of a currently active code.
	ResolveOwner(ctx context.Context, code string) (string, error)
	// GetByOwner returns the owner's active code.
	GetByOwner(ctx context.Context, ownerID string) (InviteCode, error)
}
