package provider

import (
	"time"

	"github.com/google/uuid"
)

// Network participation values. Anything else is treated as
// unknown by the reimbursement rules.
const (
	InNetwork    = "in-network"
	OutOfNetwork = "out-of-network"
)

// Provider maps to the providers table.
type Provider struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	NPI           *string   `db:"npi" json:"npi,omitempty"`
	Specialty     *string   `db:"specialty" json:"specialty,omitempty"`
	NetworkStatus string    `db:"network_status" json:"network_status"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Stats accumulates per-provider claim activity. Updated each time a
// claim naming the provider is submitted.
type Stats struct {
	ProviderID     uuid.UUID  `db:"provider_id" json:"provider_id"`
	ClaimCount     int        `db:"claim_count" json:"claim_count"`
	TotalSubmitted float64    `db:"total_submitted" json:"total_submitted"`
	LastClaimAt    *time.Time `db:"last_claim_at" json:"last_claim_at,omitempty"`
}
