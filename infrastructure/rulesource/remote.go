package rulesource

import (
	"context"
	"strings"

	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
	"github.com/9rajputshivam/daytime-window-check/infrastructure/sfmc"
)

// Remote looks rules and holidays up in Marketing Cloud data extensions.
type Remote struct {
	client    *sfmc.Client
	ruleDE    string
	holidayDE string
}

func NewRemote(client *sfmc.Client, ruleDE, holidayDE string) *Remote {
	return &Remote{client: client, ruleDE: ruleDE, holidayDE: holidayDE}
}

func (r *Remote) Rules(ctx context.Context, country string) ([]domainRules.CountryRule, error) {
	items, err := r.client.Rowset(ctx, r.ruleDE, countryFilter(country))
	if err != nil {
		return nil, err
	}
	return normalizeRules(country, items), nil
}

func (r *Remote) Holidays(ctx context.Context, country string) ([]domainRules.HolidayEntry, error) {
	if r.holidayDE == "" {
		return nil, nil
	}
	items, err := r.client.Rowset(ctx, r.holidayDE, countryFilter(country))
	if err != nil {
		return nil, err
	}
	return normalizeHolidays(country, items), nil
}

// countryFilter builds the case-insensitive match: the store keys countries in
// lowercase, so the filter operand is lowercased before the lookup.
func countryFilter(country string) sfmc.Filter {
	return sfmc.Filter{
		LeftOperand:  "Country",
		Operator:     "equals",
		RightOperand: strings.ToLower(strings.TrimSpace(country)),
	}
}
