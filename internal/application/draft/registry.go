package draft

import (
	"sync"

	"github.com/kritagya/pharmacare-api/internal/domain"
	"github.com/kritagya/pharmacare-api/internal/domain/document"
)

// Registry holds the live drafts of the composing sessions, keyed by draft
// ID. Each draft is independent — there is no shared state between drafts,
// so the registry only guards its own map.
type Registry struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*Draft)}
}

// Create opens a new empty draft for the kind, owned by the user.
func (r *Registry) Create(kind document.Kind, ownerID string) *Draft {
	d := New(kind, ownerID)
	r.mu.Lock()
	r.drafts[d.ID()] = d
	r.mu.Unlock()
	return d
}

// Get returns the draft when it exists and belongs to the owner;
// ErrNotFound otherwise (another user's draft is indistinguishable from a
// missing one).
func (r *Registry) Get(id, ownerID string) (*Draft, error) {
	r.mu.RLock()
	d, ok := r.drafts[id]
	r.mu.RUnlock()
	if !ok || d.OwnerID() != ownerID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// Discard drops the draft (navigation away / explicit cancel). Nothing was
// ever persisted for it, so this has no effect on storage. Idempotent.
func (r *Registry) Discard(id, ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.drafts[id]; ok && d.OwnerID() == ownerID {
		delete(r.drafts, id)
	}
}
