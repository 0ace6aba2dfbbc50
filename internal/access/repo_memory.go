package access

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo. A single mutex
// serializes writes so two concurrent redeems of the same code cannot both
// insert the edge.
type MemoryRepo struct {
	mu        sync.RWMutex
	byOwner   map[string]map[string]Grant // ownerId -> viewerId -> grant
	byViewer  map[string]map[string]bool  // viewerId -> ownerId set
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byOwner:  make(map[string]map[string]Grant),
		byViewer: make(map[string]map[string]bool),
	}
}

// Grant inserts the edge, rejecting self-grants and duplicates.
func (r *MemoryRepo) Grant(ctx context.Context, ownerID, viewerID string) (Grant, error) {
	if err := ctx.Err(); err != nil {
		return Grant{}, err
	}
	if ownerID == viewerID {
		return Grant{}, ErrSelfGrant
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byOwner[ownerID][viewerID]; ok {
		return Grant{}, ErrAlreadyExists
	}

	grant := Grant{OwnerID: ownerID, ViewerID: viewerID, CreatedAt: time.Now().UTC()}
	if r.byOwner[ownerID] == nil {
		r.byOwner[ownerID] = make(map[string]Grant)
	}
	r.byOwner[ownerID][viewerID] = grant
	if r.byViewer[viewerID] == nil {
		r.byViewer[viewerID] = make(map[string]bool)
	}
	r.byViewer[viewerID][ownerID] = true
	return grant, nil
}

// Revoke removes the edge if present.
func (r *MemoryRepo) Revoke(ctx context.Context, ownerID, viewerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byOwner[ownerID], viewerID)
	delete(r.byViewer[viewerID], ownerID)
	return nil
}

// ViewersOf returns the owner's grant targets, sorted for stable output.
func (r *MemoryRepo) ViewersOf(ctx context.Context, ownerID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	viewers := make([]string, 0, len(r.byOwner[ownerID]))
	for viewerID := range r.byOwner[ownerID] {
		viewers = append(viewers, viewerID)
	}
	sort.Strings(viewers)
	return viewers, nil
}

// OwnersVisibleTo returns the owners who granted the viewer access.
func (r *MemoryRepo) OwnersVisibleTo(ctx context.Context, viewerID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	owners := make([]string, 0, len(r.byViewer[viewerID]))
	for ownerID := range r.byViewer[viewerID] {
		owners = append(owners, ownerID)
	}
	sort.Strings(owners)
	return owners, nil
}

var _ Repo = (*MemoryRepo)(nil)
