package claims

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/sjarmak/accumed-demo/internal/domain/patient"
	"github.com/sjarmak/accumed-demo/internal/domain/provider"
)

// Claim intake limits.
const (
	MaxClaimAmount = 999999
	MaxClaimCodes  = 25
)

// discountRate is the single tiering function used by both the
// submission discount and the reimbursement adjustment. Tiers are
// non-cumulative; the rate applies to the full base amount.
func discountRate(amount float64) float64 {
	switch {
	case amount > 5000:
		return 0.10
	case amount > 1000:
		return 0.05
	case amount > 500:
		return 0.02
	default:
		return 0
	}
}

// validAmount reports whether amount is a finite value within the
// accepted claim range.
func validAmount(amount float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	return amount >= 0 && amount <= MaxClaimAmount
}

// decideStatus derives the initial claim status from the patient's
// insurance state, the provider's network tier, and the net amount.
func decideStatus(insuranceActive bool, networkStatus string, netAmount float64) Status {
	if !insuranceActive {
		return StatusDenied
	}
	if networkStatus == provider.InNetwork {
		if netAmount < 10000 {
			return StatusApproved
		}
		return StatusReview
	}
	if netAmount < 5000 {
		return StatusReview
	}
	return StatusPending
}

// copayFor returns the flat copay for a plan tier. Unrecognized tiers
// carry no copay.
func copayFor(plan string) float64 {
	switch plan {
	case patient.PlanPremium:
		return 20
	case patient.PlanStandard:
		return 35
	case patient.PlanBasic:
		return 50
	default:
		return 0
	}
}

// networkMultiplier scales the reimbursable amount by network tier.
func networkMultiplier(networkStatus string) float64 {
	switch networkStatus {
	case provider.InNetwork:
		return 1.0
	case provider.OutOfNetwork:
		return 0.7
	default:
		return 0.5
	}
}

// reimbursementFor computes the payable amount for a stored claim. The
// stored amount is already net of the submission discount; a second,
// independently tiered cut compounds on top of it.
func reimbursementFor(netAmount float64, plan, networkStatus string) float64 {
	adjusted := netAmount * (1 - discountRate(netAmount))
	return (adjusted - copayFor(plan)) * networkMultiplier(networkStatus)
}

// Effect kinds produced by adjudication. The service executes these
// best-effort against the external collaborators.
type EffectKind string

const (
	EffectNotify      EffectKind = "notify"
	EffectRecordStats EffectKind = "record_stats"
	EffectAudit       EffectKind = "audit"
)

// Effect is a side-effect intent. Failure to execute one never rolls
// back the claim mutation that produced it.
type Effect struct {
	Kind EffectKind

	// notify
	Template  string
	Recipient string
	Data      map[string]string

	// record_stats
	ProviderID uuid.UUID
	Amount     float64

	// audit
	AuditType string
	Actor     string
	Detail    string
}

// adjudicate applies the submission discount and status decision to c,
// then returns the side-effect intents for a successful submission.
func adjudicate(c *Claim, p *patient.Patient, prov *provider.Provider, actor string) []Effect {
	discount := discountRate(c.OriginalAmount) * c.OriginalAmount
	c.Amount = c.OriginalAmount - discount
	c.Status = decideStatus(p.InsuranceActive, prov.NetworkStatus, c.Amount)

	return []Effect{
		{
			Kind:      EffectNotify,
			Template:  "claim-submitted",
			Recipient: notifyAddress(p),
			Data: map[string]string{
				"claim_id":     c.ID.String(),
				"patient_name": p.FullName(),
				"amount":       formatAmount(c.Amount),
				"status":       string(c.Status),
			},
		},
		{
			Kind:       EffectRecordStats,
			ProviderID: prov.ID,
			Amount:     c.OriginalAmount,
		},
		{
			Kind:      EffectAudit,
			AuditType: "claim_submitted",
			Actor:     actor,
			Amount:    c.OriginalAmount,
		},
	}
}

// notifyAddress picks the patient's notification destination. A missing
// patient or address degrades to an empty destination.
func notifyAddress(p *patient.Patient) string {
	if p == nil || p.Email == nil {
		return ""
	}
	return *p.Email
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
