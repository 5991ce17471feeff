package audit

import (
	"context"
	"time"
)

type Outcome string

const (
	OutcomeAllowed    Outcome = "allowed"
	OutcomeBlocked    Outcome = "blocked"
	OutcomeFailClosed Outcome = "fail_closed"
	OutcomeDuplicate  Outcome = "duplicate"
)

// EvaluationRecord is one row of the decision audit trail.
type EvaluationRecord struct {
	ID          string    `json:"id"`
	Country     string    `json:"country"`
	Outcome     Outcome   `json:"outcome"`
	CurrentHour *int      `json:"current_hour,omitempty"`
	DedupKey    string    `json:"dedup_key,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// IAuditRepository persists evaluation records. Recording is best-effort: the
// orchestrator logs failures and moves on, it never lets the audit trail
// affect a verdict.
type IAuditRepository interface {
	Record(ctx context.Context, record EvaluationRecord) error
	Recent(ctx context.Context, limit int) ([]EvaluationRecord, error)
}
