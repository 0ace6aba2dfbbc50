package invites

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	byOwner map[string]InviteCode
	byCode  map[string]string // code -> ownerId
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byOwner: make(map[string]InviteCode),
		byCode:  make(map[string]string),
	}
}

// Replace sets the owner's active code under a single lock so a superseded
// code stops resolving in the same step that the new one starts.
func (r *MemoryRepo) Replace(ctx context.Context, code InviteCode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byCode[code.Code]; ok && owner != code.OwnerID {
		return ErrCodeTaken
	}
	if prev, ok := r.byOwner[code.OwnerID]; ok {
		delete(r.byCode, prev.Code)
	}
	r.byOwner[code.OwnerID] = code
	r.byCode[code.Code] = code.OwnerID
	return nil
}

// ResolveOwner returns the owner of an active code.
func (r *MemoryRepo) ResolveOwner(ctx context.Context, code string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	owner, ok := r.byCode[code]
	if !ok {
		return "", ErrNotFound
	}
	return owner, nil
}

// GetByOwner returns the owner's active code.
func (r *MemoryRepo) GetByOwner(ctx context.Context, ownerID string) (InviteCode, error) {
	if err := ctx.Err(); err != nil {
		return InviteCode{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.byOwner[ownerID]
	if !ok {
		return InviteCode{}, ErrNotFound
	}
	return code, nil
}

var _ Repo = (*MemoryRepo)(nil)
