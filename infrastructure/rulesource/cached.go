package rulesource

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
	"github.com/9rajputshivam/daytime-window-check/infrastructure/valkey"
)

// Source bundles the two lookup capabilities every backend provides.
type Source interface {
	domainRules.IRuleSource
	domainRules.IHolidaySource
}

// Cached is a read-through Valkey cache in front of another source. Empty
// results are cached too: "no rule configured" is a valid answer. Cache
// failures are logged and fall through to the wrapped source, never surfacing
// to the decision path.
type Cached struct {
	source Source
	cache  *valkey.Client
	ttl    time.Duration
}

func NewCached(source Source, cache *valkey.Client, ttl time.Duration) *Cached {
	return &Cached{source: source, cache: cache, ttl: ttl}
}

func (c *Cached) Rules(ctx context.Context, country string) ([]domainRules.CountryRule, error) {
	key := "rules:" + strings.ToLower(strings.TrimSpace(country))

	var cached []domainRules.CountryRule
	hit, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logrus.WithError(err).Warn("[RULECACHE] rule cache read failed")
	} else if hit {
		return cached, nil
	}

	rules, err := c.source.Rules(ctx, country)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, key, rules, c.ttl); err != nil {
		logrus.WithError(err).Warn("[RULECACHE] rule cache write failed")
	}
	return rules, nil
}

func (c *Cached) Holidays(ctx context.Context, country string) ([]domainRules.HolidayEntry, error) {
	key := "holidays:" + strings.ToLower(strings.TrimSpace(country))

	var cached []domainRules.HolidayEntry
	hit, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logrus.WithError(err).Warn("[RULECACHE] holiday cache read failed")
	} else if hit {
		return cached, nil
	}

	holidays, err := c.source.Holidays(ctx, country)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, key, holidays, c.ttl); err != nil {
		logrus.WithError(err).Warn("[RULECACHE] holiday cache write failed")
	}
	return holidays, nil
}
