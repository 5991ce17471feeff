package rules

import "context"

// CountryRule is the canonical restriction row for one country. Upstream row
// shapes and field casings vary; every source normalizes into this struct
// before anything else sees the data.
type CountryRule struct {
	Country        string `json:"country"`
	Timezone       string `json:"timezone"`
	StartHour      int    `json:"start_hour"`
	EndHour        int    `json:"end_hour"`
	WeekendBlocked bool   `json:"weekend_blocked"`
}

// HolidayEntry blocks the entire civil day in the rule's timezone. Date is the
// zone-local calendar date in YYYY-MM-DD form.
type HolidayEntry struct {
	Country string `json:"country"`
	Date    string `json:"date"`
	Label   string `json:"label"`
}

// IRuleSource looks up the restriction rows for a country. Country matching is
// case-insensitive. An empty result means "no rule configured"; an error means
// the lookup itself failed and is reported for observability only.
type IRuleSource interface {
	Rules(ctx context.Context, country string) ([]CountryRule, error)
}

// IHolidaySource looks up the holiday overlay for a country.
type IHolidaySource interface {
	Holidays(ctx context.Context, country string) ([]HolidayEntry, error)
}

type StoredRule struct {
	ID string `json:"id"`
	CountryRule
}

type StoredHoliday struct {
	ID string `json:"id"`
	HolidayEntry
}

type CreateRuleRequest struct {
	Country        string `json:"country"`
	Timezone       string `json:"timezone"`
	StartHour      int    `json:"start_hour"`
	EndHour        int    `json:"end_hour"`
	WeekendBlocked bool   `json:"weekend_blocked"`
}

type UpdateRuleRequest = CreateRuleRequest

type CreateHolidayRequest struct {
	Country string `json:"country"`
	Date    string `json:"date"`
	Label   string `json:"label"`
}

// IRuleAdminUsecase manages the locally stored rule table and holiday overlay
// that back the static rule source.
type IRuleAdminUsecase interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (StoredRule, error)
	ListRules(ctx context.Context) ([]StoredRule, error)
	UpdateRule(ctx context.Context, id string, req UpdateRuleRequest) (StoredRule, error)
	DeleteRule(ctx context.Context, id string) error

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (StoredHoliday, error)
	ListHolidays(ctx context.Context) ([]StoredHoliday, error)
	DeleteHoliday(ctx context.Context, id string) error
}
