package claims

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// repoMem is a mutex-guarded in-memory Repository used in tests and
// when the server runs with STORE=memory.
type repoMem struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Claim
}

func NewRepoMem() Repository {
	return &repoMem{items: make(map[uuid.UUID]*Claim)}
}

func clone(c *Claim) *Claim {
	cp := *c
	cp.Codes = append([]string(nil), c.Codes...)
	return &cp
}

func (r *repoMem) Create(_ context.Context, c *Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.items[c.ID] = clone(c)
	return nil
}

func (r *repoMem) GetByID(_ context.Context, id uuid.UUID) (*Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, ErrClaimNotFound
	}
	return clone(c), nil
}

func (r *repoMem) Update(_ context.Context, c *Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[c.ID]
	if !ok {
		return ErrClaimNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	r.items[c.ID] = clone(c)
	return nil
}

func (r *repoMem) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrClaimNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *repoMem) List(_ context.Context, filter ListFilter, limit, offset int) ([]*Claim, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*Claim
	for _, c := range r.items {
		if filter.PatientID != uuid.Nil && c.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		matched = append(matched, clone(c))
	}
	// Newest first, id as tiebreak for a stable order.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].SubmittedAt.Equal(matched[j].SubmittedAt) {
			return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
