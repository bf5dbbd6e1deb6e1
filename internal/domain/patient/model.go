package patient

import (
	"time"

	"github.com/google/uuid"
)

// Insurance plan tiers. The tier drives the copay applied during
// claim reimbursement.
const (
	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// Patient maps to the patients table.
type Patient struct {
	ID              uuid.UUID `db:"id" json:"id"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	DateOfBirth     time.Time `db:"date_of_birth" json:"date_of_birth"`
	Email           *string   `db:"email" json:"email,omitempty"`
	Phone           *string   `db:"phone" json:"phone,omitempty"`
	Address         *string   `db:"address" json:"address,omitempty"`
	Status          string    `db:"status" json:"status"`
	InsuranceActive bool      `db:"insurance_active" json:"insurance_active"`
	InsurancePlan   string    `db:"insurance_plan" json:"insurance_plan"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
