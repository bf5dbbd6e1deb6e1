package claims

import (
	"time"

	"github.com/google/uuid"
)

// Status is the claim lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusReview    Status = "review"
	StatusDenied    Status = "denied"
	StatusProcessed Status = "processed"
)

var validStatuses = map[Status]bool{
	StatusPending: true, StatusApproved: true, StatusReview: true,
	StatusDenied: true, StatusProcessed: true,
}

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool { return validStatuses[s] }

// Claim maps to the claims table. Amount is the net amount after the
// submission discount; OriginalAmount is the amount as submitted.
type Claim struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	PatientID           uuid.UUID  `db:"patient_id" json:"patient_id"`
	ProviderID          uuid.UUID  `db:"provider_id" json:"provider_id"`
	Amount              float64    `db:"amount" json:"amount"`
	OriginalAmount      float64    `db:"original_amount" json:"original_amount"`
	ServiceDate         time.Time  `db:"service_date" json:"service_date"`
	Codes               []string   `db:"codes" json:"codes"`
	Status              Status     `db:"status" json:"status"`
	SubmittedAt         time.Time  `db:"submitted_at" json:"submitted_at"`
	ReimbursementAmount *float64   `db:"reimbursement_amount" json:"reimbursement_amount,omitempty"`
	ApprovedBy          *string    `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt          *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	DenialReason        *string    `db:"denial_reason" json:"denial_reason,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}
