package provider

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type repoMem struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Provider
	stats map[uuid.UUID]*Stats
}

func NewRepoMem() Repository {
	return &repoMem{
		items: make(map[uuid.UUID]*Provider),
		stats: make(map[uuid.UUID]*Stats),
	}
}

func (r *repoMem) Create(_ context.Context, p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *repoMem) GetByID(_ context.Context, id uuid.UUID) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *repoMem) Update(_ context.Context, p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *repoMem) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	delete(r.stats, id)
	return nil
}

func (r *repoMem) List(_ context.Context, filter SearchFilter, limit, offset int) ([]*Provider, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name := strings.ToLower(filter.Name)
	var matched []*Provider
	for _, p := range r.items {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if filter.NetworkStatus != "" && p.NetworkStatus != filter.NetworkStatus {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
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

func (r *repoMem) GetStats(_ context.Context, providerID uuid.UUID) (*Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stats[providerID]
	if !ok {
		return &Stats{ProviderID: providerID}, nil
	}
	cp := *s
	return &cp, nil
}

func (r *repoMem) RecordClaim(_ context.Context, providerID uuid.UUID, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[providerID]
	if !ok {
		s = &Stats{ProviderID: providerID}
		r.stats[providerID] = s
	}
	s.ClaimCount++
	s.TotalSubmitted += amount
	now := time.Now().UTC()
	s.LastClaimAt = &now
	return nil
}
