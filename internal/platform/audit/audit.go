package audit

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Event is a single audit record for a claim lifecycle action.
type Event struct {
	Type      string    `json:"type"` // claim_submitted, claim_approved, claim_denied, claim_processed, claim_accessed
	ClaimID   string    `json:"claim_id"`
	PatientID string    `json:"patient_id,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder persists audit events.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// LogRecorder writes audit events to the structured log.
type LogRecorder struct {
	logger zerolog.Logger
}

func NewLogRecorder(logger zerolog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(_ context.Context, ev Event) error {
	r.logger.Info().
		Str("type", ev.Type).
		Str("claim_id", ev.ClaimID).
		Str("patient_id", ev.PatientID).
		Str("actor", ev.Actor).
		Float64("amount", ev.Amount).
		Str("detail", ev.Detail).
		Time("timestamp", ev.Timestamp).
		Msg("claim_audit")
	return nil
}

// MemoryRecorder collects audit events in memory. Used by the in-memory
// store configuration and by tests.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (r *MemoryRecorder) Record(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of all recorded events.
func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// PGRecorder persists audit events to the audit_log table.
type PGRecorder struct {
	pool *pgxpool.Pool
}

func NewPGRecorder(pool *pgxpool.Pool) *PGRecorder {
	return &PGRecorder{pool: pool}
}

func (r *PGRecorder) Record(ctx context.Context, ev Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (event_type, claim_id, patient_id, actor, amount, detail, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, '')::uuid, $4, $5, $6, $7)`,
		ev.Type, ev.ClaimID, ev.PatientID, ev.Actor, ev.Amount, ev.Detail, ev.Timestamp,
	)
	return err
}
