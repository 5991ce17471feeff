package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	domainActivity "github.com/9rajputshivam/daytime-window-check/domains/activity"
	domainAudit "github.com/9rajputshivam/daytime-window-check/domains/audit"
	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
	"github.com/9rajputshivam/daytime-window-check/pkg/dedup"
	"github.com/9rajputshivam/daytime-window-check/pkg/window"
)

// activityService is the evaluation orchestrator. Execute is total: every
// internal error collapses into the fail-closed verdict so the journey
// platform always receives a well-formed answer.
type activityService struct {
	rules    domainRules.IRuleSource
	holidays domainRules.IHolidaySource
	guard    *dedup.Guard
	audit    domainAudit.IAuditRepository
	policy   window.Policy
	now      func() time.Time
}

func NewActivityService(
	rules domainRules.IRuleSource,
	holidays domainRules.IHolidaySource,
	guard *dedup.Guard,
	audit domainAudit.IAuditRepository,
	policy window.Policy,
) domainActivity.IActivityUsecase {
	return &activityService{
		rules:    rules,
		holidays: holidays,
		guard:    guard,
		audit:    audit,
		policy:   policy,
		now:      time.Now,
	}
}

func (s *activityService) Execute(ctx context.Context, request domainActivity.ExecuteRequest) (verdict window.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("[ACTIVITY] panic during execute, failing closed: %v", r)
			verdict = window.Verdict{}
		}
	}()

	country := request.Country()
	key := dedup.Key(request.ActivityObjectID, request.DefinitionInstanceID)

	if key != "" && !s.guard.ShouldProcess(key) {
		logrus.WithFields(logrus.Fields{
			"country":   country,
			"dedup_key": key,
		}).Info("[ACTIVITY] duplicate invocation suppressed")
		verdict = window.Verdict{}
		s.record(ctx, country, domainAudit.OutcomeDuplicate, verdict, key)
		return verdict
	}

	verdict, outcome := s.evaluate(ctx, country)
	s.record(ctx, country, outcome, verdict, key)
	return verdict
}

// evaluate resolves rules and holidays and runs the window evaluation. Lookup
// failures are logged and collapse into the empty rule set, which the policy
// constant then decides; they never propagate.
func (s *activityService) evaluate(ctx context.Context, country string) (window.Verdict, domainAudit.Outcome) {
	var (
		ruleRows     []domainRules.CountryRule
		holidayRows  []domainRules.HolidayEntry
		lookupFailed bool
	)

	if country != "" {
		var err error
		ruleRows, err = s.rules.Rules(ctx, country)
		if err != nil {
			logrus.WithError(err).WithField("country", country).Warn("[ACTIVITY] rule lookup failed")
			ruleRows = nil
			lookupFailed = true
		}

		if s.holidays != nil && !lookupFailed {
			holidayRows, err = s.holidays.Holidays(ctx, country)
			if err != nil {
				logrus.WithError(err).WithField("country", country).Warn("[ACTIVITY] holiday lookup failed")
				ruleRows = nil
				holidayRows = nil
				lookupFailed = true
			}
		}
	}

	verdict := window.Evaluate(country, ruleRows, holidayRows, s.policy, s.now)

	outcome := domainAudit.OutcomeBlocked
	switch {
	case (lookupFailed || country == "") && !verdict.IsWithinWindow:
		outcome = domainAudit.OutcomeFailClosed
	case verdict.IsWithinWindow:
		outcome = domainAudit.OutcomeAllowed
	}
	return verdict, outcome
}

// record persists the decision for the audit trail. Best-effort only.
func (s *activityService) record(ctx context.Context, country string, outcome domainAudit.Outcome, verdict window.Verdict, key string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, domainAudit.EvaluationRecord{
		Country:     country,
		Outcome:     outcome,
		CurrentHour: verdict.CurrentHour,
		DedupKey:    key,
		EvaluatedAt: s.now().UTC(),
	})
	if err != nil {
		logrus.WithError(err).Warn("[ACTIVITY] failed to record evaluation")
	}
}

// Lifecycle hooks required by the activity protocol. They only need to
// acknowledge.

func (s *activityService) Save(ctx context.Context, request domainActivity.LifecycleRequest) error {
	logrus.WithField("activity", request.ActivityObjectID).Debug("[ACTIVITY] save acknowledged")
	return nil
}

func (s *activityService) Validate(ctx context.Context, request domainActivity.LifecycleRequest) error {
	logrus.WithField("activity", request.ActivityObjectID).Debug("[ACTIVITY] validate acknowledged")
	return nil
}

func (s *activityService) Publish(ctx context.Context, request domainActivity.LifecycleRequest) error {
	logrus.WithField("activity", request.ActivityObjectID).Debug("[ACTIVITY] publish acknowledged")
	return nil
}

func (s *activityService) Stop(ctx context.Context, request domainActivity.LifecycleRequest) error {
	logrus.WithField("activity", request.ActivityObjectID).Debug("[ACTIVITY] stop acknowledged")
	return nil
}
