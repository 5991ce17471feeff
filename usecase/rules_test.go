package usecase

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
)

func newTestRuleService(t *testing.T) RuleService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	return NewRuleService(db)
}

func TestRuleService_CreateAndLookup(t *testing.T) {
	svc := newTestRuleService(t)
	ctx := context.Background()

	created, err := svc.CreateRule(ctx, domainRules.CreateRuleRequest{
		Country:        "Germany",
		Timezone:       "Europe/Berlin",
		StartHour:      20,
		EndHour:        8,
		WeekendBlocked: true,
	})
	if err != nil {
		t.Fatalf("CreateRule() unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateRule() returned empty ID")
	}
	if created.Country != "germany" {
		t.Fatalf("CreateRule() country = %q, want normalized lowercase", created.Country)
	}

	// Lookup must be case-insensitive.
	rules, err := svc.Rules(ctx, "GERMANY")
	if err != nil {
		t.Fatalf("Rules() unexpected error: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("Rules() expected 1 rule, got %d", len(rules))
	}
	if rules[0].Timezone != "Europe/Berlin" || !rules[0].WeekendBlocked {
		t.Fatalf("Rules() returned wrong row: %+v", rules[0])
	}

	// Unknown countries come back empty, not erroring.
	rules, err = svc.Rules(ctx, "Atlantis")
	if err != nil {
		t.Fatalf("Rules() unexpected error: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("Rules() expected no rules for unknown country, got %d", len(rules))
	}
}

func TestRuleService_UpdateAndDelete(t *testing.T) {
	svc := newTestRuleService(t)
	ctx := context.Background()

	created, err := svc.CreateRule(ctx, domainRules.CreateRuleRequest{
		Country: "france", Timezone: "Europe/Paris", StartHour: 21, EndHour: 9,
	})
	if err != nil {
		t.Fatalf("CreateRule() unexpected error: %v", err)
	}

	updated, err := svc.UpdateRule(ctx, created.ID, domainRules.UpdateRuleRequest{
		Country: "france", Timezone: "Europe/Paris", StartHour: 22, EndHour: 7,
	})
	if err != nil {
		t.Fatalf("UpdateRule() unexpected error: %v", err)
	}
	if updated.StartHour != 22 || updated.EndHour != 7 {
		t.Fatalf("UpdateRule() did not persist hours: %+v", updated)
	}

	if err := svc.DeleteRule(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRule() unexpected error: %v", err)
	}
	if err := svc.DeleteRule(ctx, created.ID); err == nil {
		t.Fatal("DeleteRule() on missing rule must error")
	}

	list, err := svc.ListRules(ctx)
	if err != nil {
		t.Fatalf("ListRules() unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("ListRules() expected empty, got %d", len(list))
	}
}

func TestRuleService_Holidays(t *testing.T) {
	svc := newTestRuleService(t)
	ctx := context.Background()

	created, err := svc.CreateHoliday(ctx, domainRules.CreateHolidayRequest{
		Country: "Germany", Date: "2025-10-03", Label: "Unity Day",
	})
	if err != nil {
		t.Fatalf("CreateHoliday() unexpected error: %v", err)
	}

	holidays, err := svc.Holidays(ctx, "germany")
	if err != nil {
		t.Fatalf("Holidays() unexpected error: %v", err)
	}
	if len(holidays) != 1 || holidays[0].Date != "2025-10-03" {
		t.Fatalf("Holidays() returned wrong rows: %+v", holidays)
	}

	if err := svc.DeleteHoliday(ctx, created.ID); err != nil {
		t.Fatalf("DeleteHoliday() unexpected error: %v", err)
	}
	holidays, err = svc.Holidays(ctx, "germany")
	if err != nil {
		t.Fatalf("Holidays() unexpected error: %v", err)
	}
	if len(holidays) != 0 {
		t.Fatalf("Holidays() expected empty after delete, got %d", len(holidays))
	}
}
