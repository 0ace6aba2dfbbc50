package invites

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"
)

// issueAttempts caps collision retries during code generation. With a
// 36^6 code space, exhausting this many attempts means something is wrong
// with the store, not the generator.
const issueAttempts = 5

// Registry issues and resolves invite codes. An owner has exactly zero or
// one active code at any time; issuing replaces, never appends.
type Registry struct {
	Repo Repo
}

// NewRegistry constructs a Registry.
func NewRegistry(repo Repo) *Registry {
	return &Registry{Repo: repo}
}

// Issue generates a fresh code for the owner, superseding any previous one.
// The old code stops resolving the moment the new one is stored.
func (r *Registry) Issue(ctx context.Context, ownerID string) (string, error) {
	var lastErr error
	for i := 0; i < issueAttempts; i++ {
		code, err := generateCode()
		if err != nil {
			return "", err
		}
		err = r.Repo.Replace(ctx, InviteCode{
			OwnerID:   ownerID,
			Code:      code,
			CreatedAt: time.Now().UTC(),
		})
		if err == nil {
			return code, nil
		}
		if err != ErrCodeTaken {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("issue invite code: %w", lastErr)
}

// Resolve maps a user-entered code to its owning user.
func (r *Registry) Resolve(ctx context.Context, code string) (string, error) {
	normalized := Normalize(code)
	if !ValidFormat(normalized) {
		return "", ErrNotFound
	}
	return r.Repo.ResolveOwner(ctx, normalized)
}

// Current returns the owner's active code, issuing one on first request.
func (r *Registry) Current(ctx context.Context, ownerID string) (string, error) {
	code, err := r.Repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return code.Code, nil
	}
	if err != ErrNotFound {
		return "", err
	}
	return r.Issue(ctx, ownerID)
}

func generateCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	out := make([]byte, CodeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
