package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	"active": true, "inactive": true,
}

var validNetworkStatuses = map[string]bool{
	InNetwork: true, OutOfNetwork: true,
}

type Service struct {
	providers Repository
}

func NewService(providers Repository) *Service {
	return &Service{providers: providers}
}

func (s *Service) Create(ctx context.Context, p *Provider) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Status == "" {
		p.Status = "active"
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid provider status: %s", p.Status)
	}
	if p.NetworkStatus == "" {
		p.NetworkStatus = OutOfNetwork
	}
	if !validNetworkStatuses[p.NetworkStatus] {
		return fmt.Errorf("invalid network status: %s", p.NetworkStatus)
	}
	return s.providers.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return s.providers.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Provider) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid provider status: %s", p.Status)
	}
	if !validNetworkStatuses[p.NetworkStatus] {
		return fmt.Errorf("invalid network status: %s", p.NetworkStatus)
	}
	return s.providers.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.providers.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Provider, int, error) {
	return s.providers.List(ctx, filter, limit, offset)
}

func (s *Service) GetStats(ctx context.Context, providerID uuid.UUID) (*Stats, error) {
	if _, err := s.providers.GetByID(ctx, providerID); err != nil {
		return nil, err
	}
	return s.providers.GetStats(ctx, providerID)
}

// RecordClaim accumulates claim volume against a provider. Called by the
// claims service after a successful submission.
func (s *Service) RecordClaim(ctx context.Context, providerID uuid.UUID, amount float64) error {
	return s.providers.RecordClaim(ctx, providerID, amount)
}
