package rulesource

import (
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
	"github.com/9rajputshivam/daytime-window-check/pkg/window"
)

// The upstream store does not guarantee consistent row shapes: some rows are
// flat, some nest fields under "values" or "keys", and casing varies. These
// helpers collapse all of that into the canonical structs so shape variance
// never leaks past this package.

func normalizeRules(country string, items []map[string]any) []domainRules.CountryRule {
	rules := make([]domainRules.CountryRule, 0, len(items))
	for _, item := range items {
		row := flatten(item)

		rule := domainRules.CountryRule{
			Country:        stringField(row, "country"),
			Timezone:       stringField(row, "timezone"),
			StartHour:      intField(row, "starthour", -1),
			EndHour:        intField(row, "endhour", -1),
			WeekendBlocked: boolField(row, "weekendblocked"),
		}
		if rule.Country == "" {
			rule.Country = country
		}

		if rule.StartHour < 0 && rule.EndHour < 0 {
			// No hour window on this row; keep it with a no-op window so a
			// weekend-only block still applies.
			rule.StartHour, rule.EndHour = 0, 0
		}
		if rule.StartHour < 0 || rule.StartHour > 23 || rule.EndHour < 0 || rule.EndHour > 23 {
			logrus.Warnf("[RULESOURCE] dropping rule row for %q with out-of-range hours (%d-%d)", country, rule.StartHour, rule.EndHour)
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

func normalizeHolidays(country string, items []map[string]any) []domainRules.HolidayEntry {
	holidays := make([]domainRules.HolidayEntry, 0, len(items))
	for _, item := range items {
		row := flatten(item)

		entry := domainRules.HolidayEntry{
			Country: stringField(row, "country"),
			Date:    normalizeDate(stringField(row, "date")),
			Label:   stringField(row, "label"),
		}
		if entry.Country == "" {
			entry.Country = country
		}
		if entry.Date == "" {
			logrus.Warnf("[RULESOURCE] dropping holiday row for %q with unparseable date", country)
			continue
		}
		holidays = append(holidays, entry)
	}
	return holidays
}

// flatten merges nested "keys"/"values" maps into one row with lowercased
// field names. Nested values win over top-level ones.
func flatten(item map[string]any) map[string]any {
	row := make(map[string]any, len(item))
	for k, v := range item {
		row[strings.ToLower(k)] = v
	}
	for _, nested := range []string{"keys", "values"} {
		sub, ok := row[nested].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range sub {
			row[strings.ToLower(k)] = v
		}
	}
	return row
}

func stringField(row map[string]any, name string) string {
	switch v := row[name].(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return ""
	}
}

func intField(row map[string]any, name string, fallback int) int {
	switch v := row[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func boolField(row map[string]any, name string) bool {
	switch v := row[name].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		}
	case float64:
		return v != 0
	}
	return false
}

// normalizeDate accepts the date forms observed upstream and returns the
// canonical YYYY-MM-DD string, or "" when nothing parses.
func normalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	layouts := []string{window.DateLayout, time.RFC3339, "1/2/2006", "01/02/2006 15:04:05 PM"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(window.DateLayout)
		}
	}
	// RFC3339 with trailing fraction or offset variations: try the date prefix.
	if len(raw) >= len(window.DateLayout) {
		if parsed, err := time.Parse(window.DateLayout, raw[:len(window.DateLayout)]); err == nil {
			return parsed.Format(window.DateLayout)
		}
	}
	return ""
}
