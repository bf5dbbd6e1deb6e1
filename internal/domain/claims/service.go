package claims

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sjarmak/accumed-demo/internal/domain/patient"
	"github.com/sjarmak/accumed-demo/internal/domain/provider"
	"github.com/sjarmak/accumed-demo/internal/platform/audit"
	"github.com/sjarmak/accumed-demo/internal/platform/notification"
)

// PatientSource resolves patient records for adjudication.
// Satisfied by patient.Service.
type PatientSource interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// ProviderSource resolves provider records and accumulates claim
// statistics. Satisfied by provider.Service.
type ProviderSource interface {
	Get(ctx context.Context, id uuid.UUID) (*provider.Provider, error)
	RecordClaim(ctx context.Context, providerID uuid.UUID, amount float64) error
}

// Notifier delivers templated patient notifications. Satisfied by
// notification.NotificationManager.
type Notifier interface {
	SendFromTemplate(ctx context.Context, templateID string, data map[string]string, recipient string) (*notification.Notification, error)
}

type Service struct {
	claims    Repository
	patients  PatientSource
	providers ProviderSource
	notifier  Notifier
	auditor   audit.Recorder
	logger    zerolog.Logger
}

// NewService wires the adjudication engine to its collaborators.
// notifier and auditor may be nil; effects against them are skipped.
func NewService(claims Repository, patients PatientSource, providers ProviderSource,
	notifier Notifier, auditor audit.Recorder, logger zerolog.Logger) *Service {
	return &Service{
		claims:    claims,
		patients:  patients,
		providers: providers,
		notifier:  notifier,
		auditor:   auditor,
		logger:    logger,
	}
}

type SubmitClaimInput struct {
	PatientID   uuid.UUID `json:"patient_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	Amount      float64   `json:"amount"`
	ServiceDate time.Time `json:"service_date"`
	Codes       []string  `json:"codes"`
	Actor       string    `json:"-"`
}

// SubmitClaim validates intake data, applies the submission discount
// and status decision, persists the claim, and fires side effects.
// Validation is fail-fast: the first failing check aborts before any
// mutation. Side-effect failures are logged and never propagated.
func (s *Service) SubmitClaim(ctx context.Context, in SubmitClaimInput) (*Claim, error) {
	if !validAmount(in.Amount) {
		return nil, ErrInvalidAmount
	}
	p, err := s.patients.Get(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	prov, err := s.providers.Get(ctx, in.ProviderID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	if len(in.Codes) == 0 {
		return nil, ErrCodesRequired
	}
	if len(in.Codes) > MaxClaimCodes {
		return nil, ErrTooManyCodes
	}

	c := &Claim{
		ID:             uuid.New(),
		PatientID:      in.PatientID,
		ProviderID:     in.ProviderID,
		OriginalAmount: in.Amount,
		ServiceDate:    in.ServiceDate,
		Codes:          in.Codes,
		SubmittedAt:    time.Now().UTC(),
	}
	effects := adjudicate(c, p, prov, in.Actor)

	if err := s.claims.Create(ctx, c); err != nil {
		return nil, err
	}
	s.runEffects(ctx, c, effects)
	return c, nil
}

// CalculateReimbursement computes the payable amount for a stored
// claim, writes it to the claim, and moves the claim to processed.
// The status overwrite is unconditional.
func (s *Service) CalculateReimbursement(ctx context.Context, claimID uuid.UUID) (float64, error) {
	c, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return 0, err
	}
	p, err := s.patients.Get(ctx, c.PatientID)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return 0, ErrPatientNotFound
		}
		return 0, err
	}
	prov, err := s.providers.Get(ctx, c.ProviderID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return 0, ErrProviderNotFound
		}
		return 0, err
	}

	amount := reimbursementFor(c.Amount, p.InsurancePlan, prov.NetworkStatus)
	c.ReimbursementAmount = &amount
	c.Status = StatusProcessed
	if err := s.claims.Update(ctx, c); err != nil {
		return 0, err
	}

	s.runEffects(ctx, c, []Effect{
		{
			Kind:      EffectNotify,
			Template:  "claim-processed",
			Recipient: notifyAddress(p),
			Data: map[string]string{
				"claim_id":     c.ID.String(),
				"patient_name": p.FullName(),
				"final_amount": formatAmount(amount),
			},
		},
		{Kind: EffectAudit, AuditType: "claim_processed", Amount: amount},
	})
	return amount, nil
}

// ApproveClaim forces a claim into the approved state and records the
// approver. Unknown ids fail with ErrClaimNotFound before mutation.
func (s *Service) ApproveClaim(ctx context.Context, claimID uuid.UUID, approverID string) (*Claim, error) {
	c, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c.Status = StatusApproved
	c.ApprovedBy = &approverID
	c.ApprovedAt = &now
	if err := s.claims.Update(ctx, c); err != nil {
		return nil, err
	}
	s.notifyLifecycle(ctx, c, "claim-approved", map[string]string{
		"claim_id": c.ID.String(),
		"status":   string(c.Status),
	})
	s.runEffects(ctx, c, []Effect{
		{Kind: EffectAudit, AuditType: "claim_approved", Actor: approverID},
	})
	return c, nil
}

// DenyClaim forces a claim into the denied state with a reason.
// Unknown ids fail with ErrClaimNotFound before mutation.
func (s *Service) DenyClaim(ctx context.Context, claimID uuid.UUID, reason string) (*Claim, error) {
	c, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	c.Status = StatusDenied
	c.DenialReason = &reason
	if err := s.claims.Update(ctx, c); err != nil {
		return nil, err
	}
	s.notifyLifecycle(ctx, c, "claim-denied", map[string]string{
		"claim_id": c.ID.String(),
		"reason":   reason,
	})
	s.runEffects(ctx, c, []Effect{
		{Kind: EffectAudit, AuditType: "claim_denied", Detail: reason},
	})
	return c, nil
}

// ValidateClaim re-checks a stored claim against the intake rules.
func (s *Service) ValidateClaim(ctx context.Context, claimID uuid.UUID) (bool, error) {
	c, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return false, err
	}
	valid := validAmount(c.Amount) && len(c.Codes) >= 1 && len(c.Codes) <= MaxClaimCodes
	return valid, nil
}

// AdjustClaimAmount adds delta to the claim's net amount. Adjusted
// claims above 1000 are pulled back into review.
func (s *Service) AdjustClaimAmount(ctx context.Context, claimID uuid.UUID, delta float64) (*Claim, error) {
	c, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	c.Amount += delta
	if c.Amount > 1000 {
		c.Status = StatusReview
	}
	if err := s.claims.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetClaim(ctx context.Context, id uuid.UUID) (*Claim, error) {
	return s.claims.GetByID(ctx, id)
}

func (s *Service) ListClaims(ctx context.Context, filter ListFilter, limit, offset int) ([]*Claim, int, error) {
	return s.claims.List(ctx, filter, limit, offset)
}

func (s *Service) DeleteClaim(ctx context.Context, id uuid.UUID) error {
	return s.claims.Delete(ctx, id)
}

// notifyLifecycle sends a lifecycle notification to the claim's
// patient. A missing patient degrades to an empty destination.
func (s *Service) notifyLifecycle(ctx context.Context, c *Claim, template string, data map[string]string) {
	recipient := ""
	if p, err := s.patients.Get(ctx, c.PatientID); err == nil {
		recipient = notifyAddress(p)
		data["patient_name"] = p.FullName()
	}
	s.runEffects(ctx, c, []Effect{
		{Kind: EffectNotify, Template: template, Recipient: recipient, Data: data},
	})
}

// runEffects executes side-effect intents best-effort. Failures are
// logged at warn level and never surfaced to the caller.
func (s *Service) runEffects(ctx context.Context, c *Claim, effects []Effect) {
	for _, e := range effects {
		var err error
		switch e.Kind {
		case EffectNotify:
			if s.notifier == nil {
				continue
			}
			_, err = s.notifier.SendFromTemplate(ctx, e.Template, e.Data, e.Recipient)
		case EffectRecordStats:
			err = s.providers.RecordClaim(ctx, e.ProviderID, e.Amount)
		case EffectAudit:
			if s.auditor == nil {
				continue
			}
			err = s.auditor.Record(ctx, audit.Event{
				Type:      e.AuditType,
				ClaimID:   c.ID.String(),
				PatientID: c.PatientID.String(),
				Actor:     e.Actor,
				Amount:    e.Amount,
				Detail:    e.Detail,
				Timestamp: time.Now().UTC(),
			})
		}
		if err != nil {
			s.logger.Warn().Err(err).
				Str("claim_id", c.ID.String()).
				Str("effect", string(e.Kind)).
				Msg("claim side effect failed")
		}
	}
}
