package provider

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a provider id does not resolve.
var ErrNotFound = errors.New("provider not found")

// SearchFilter narrows List results. Zero values mean "no filter".
type SearchFilter struct {
	Name          string
	NetworkStatus string
	Status        string
}

type Repository interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	Update(ctx context.Context, p *Provider) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Provider, int, error)
	// Stats
	GetStats(ctx context.Context, providerID uuid.UUID) (*Stats, error)
	RecordClaim(ctx context.Context, providerID uuid.UUID, amount float64) error
}
