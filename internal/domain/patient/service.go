package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	"active": true, "inactive": true,
}

var validPlans = map[string]bool{
	PlanBasic: true, PlanStandard: true, PlanPremium: true,
}

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if p.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	if p.Status == "" {
		p.Status = "active"
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid patient status: %s", p.Status)
	}
	if p.InsurancePlan == "" {
		p.InsurancePlan = PlanStandard
	}
	if !validPlans[p.InsurancePlan] {
		return fmt.Errorf("invalid insurance plan: %s", p.InsurancePlan)
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid patient status: %s", p.Status)
	}
	if !validPlans[p.InsurancePlan] {
		return fmt.Errorf("invalid insurance plan: %s", p.InsurancePlan)
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, filter, limit, offset)
}
