package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a patient id does not resolve.
var ErrNotFound = errors.New("patient not found")

// SearchFilter narrows List results. Zero values mean "no filter".
type SearchFilter struct {
	Name   string
	Status string
}

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Patient, int, error)
}
