package window

import (
	"strings"
	"time"

	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
)

// Policy decides the verdict when no rule exists for a country.
type Policy string

const (
	// PolicyFailClosed blocks the send when no rule is configured. This is
	// the default: absence of data is treated as a data problem.
	PolicyFailClosed Policy = "fail_closed"
	// PolicyFailOpen allows the send when no rule is configured.
	PolicyFailOpen Policy = "fail_open"
)

// ParsePolicy maps a configuration string onto a Policy, defaulting to
// fail-closed for anything unrecognized.
func ParsePolicy(s string) Policy {
	if Policy(strings.ToLower(strings.TrimSpace(s))) == PolicyFailOpen {
		return PolicyFailOpen
	}
	return PolicyFailClosed
}

// Verdict is the admission decision. CurrentHour is set whenever a timezone
// could be resolved. The zero value is the fail-closed verdict.
type Verdict struct {
	IsWithinWindow bool
	CurrentHour    *int
}

// DateLayout is the zone-local calendar date form holiday entries use.
const DateLayout = "2006-01-02"

// Evaluate combines quiet-hours, weekend, and holiday restrictions into one
// admission decision. It is pure: no I/O, the clock is injected.
//
// Rows are combined with OR-semantics: the country is restricted if any row
// restricts the current hour, and the weekend is blocked if any row says so.
// Weekend and holiday blocks are absolute and short-circuit the hourly check.
func Evaluate(country string, rules []domainRules.CountryRule, holidays []domainRules.HolidayEntry, policy Policy, now func() time.Time) Verdict {
	if strings.TrimSpace(country) == "" {
		// Unknown recipient context fails closed regardless of policy.
		return Verdict{}
	}

	if len(rules) == 0 {
		return Verdict{IsWithinWindow: policy == PolicyFailOpen}
	}

	loc := resolveLocation(rules)
	if loc == nil {
		// Rules exist but none carries a loadable timezone, so no decision
		// is possible. This fails closed regardless of policy.
		return Verdict{}
	}

	local := now().In(loc)
	hour := local.Hour()
	blocked := Verdict{CurrentHour: &hour}

	if weekday := local.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		for _, r := range rules {
			if r.WeekendBlocked {
				return blocked
			}
		}
	}

	date := local.Format(DateLayout)
	for _, h := range holidays {
		if strings.EqualFold(h.Country, country) && h.Date == date {
			return blocked
		}
	}

	for _, r := range rules {
		if hourRestricted(r, hour) {
			return blocked
		}
	}

	return Verdict{IsWithinWindow: true, CurrentHour: &hour}
}

// hourRestricted reports whether hour falls inside the rule's blocked
// interval. StartHour > EndHour denotes a wraparound interval crossing
// midnight.
func hourRestricted(r domainRules.CountryRule, hour int) bool {
	if r.StartHour > r.EndHour {
		return hour >= r.StartHour || hour < r.EndHour
	}
	return hour >= r.StartHour && hour < r.EndHour
}

// resolveLocation returns the location of the first rule row carrying a
// loadable IANA zone name, or nil when none does.
func resolveLocation(rules []domainRules.CountryRule) *time.Location {
	for _, r := range rules {
		if r.Timezone == "" {
			continue
		}
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			return loc
		}
	}
	return nil
}
