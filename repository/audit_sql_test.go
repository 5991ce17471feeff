package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	domainAudit "github.com/9rajputshivam/daytime-window-check/domains/audit"
)

func TestOpenAuditDBCreatesMissingDirectory(t *testing.T) {
	// The default audit path lives under storages/, which does not exist on
	// a fresh deployment; opening must create it rather than fail.
	dsn := filepath.Join(t.TempDir(), "storages", "audit.db")

	db, err := OpenAuditDB("sqlite", dsn)
	if err != nil {
		t.Fatalf("OpenAuditDB() unexpected error: %v", err)
	}
	defer db.Close()

	repo := NewAuditRepository(db, "sqlite")
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	if _, err := os.Stat(dsn); err != nil {
		t.Fatalf("audit db file not created: %v", err)
	}
}

func setupAuditRepo(t *testing.T) *AuditRepository {
	t.Helper()
	db, err := OpenAuditDB("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := NewAuditRepository(db, "sqlite")
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return repo
}

func TestAuditRepository_RecordAndRecent(t *testing.T) {
	repo := setupAuditRepo(t)
	ctx := context.Background()

	hour := 22
	base := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

	records := []domainAudit.EvaluationRecord{
		{Country: "germany", Outcome: domainAudit.OutcomeBlocked, CurrentHour: &hour, DedupKey: "a:1", EvaluatedAt: base},
		{Country: "france", Outcome: domainAudit.OutcomeAllowed, EvaluatedAt: base.Add(time.Minute)},
		{Country: "", Outcome: domainAudit.OutcomeFailClosed, EvaluatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		if err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Record() unexpected error: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() unexpected error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent() expected 3 records, got %d", len(recent))
	}
	if recent[0].Outcome != domainAudit.OutcomeFailClosed {
		t.Errorf("expected newest record first, got %s", recent[0].Outcome)
	}
	if recent[2].CurrentHour == nil || *recent[2].CurrentHour != 22 {
		t.Errorf("expected stored hour 22, got %v", recent[2].CurrentHour)
	}
	if recent[1].CurrentHour != nil {
		t.Errorf("expected absent hour to round-trip as nil")
	}
}

func TestAuditRepository_RecentLimit(t *testing.T) {
	repo := setupAuditRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := domainAudit.EvaluationRecord{
			Country:     "germany",
			Outcome:     domainAudit.OutcomeAllowed,
			EvaluatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Record() unexpected error: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() unexpected error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent(2) expected 2 records, got %d", len(recent))
	}
}
