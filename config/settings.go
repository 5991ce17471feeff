package config

import "time"

var (
	AppVersion             = "v1.0.0"
	AppPort                = "3000"
	AppDebug               = false
	AppBasePath            = ""
	AppBasicAuthCredential []string
	AppTrustedProxies      []string

	// JWTSecret verifies the signature the journey platform puts on every
	// activity call.
	JWTSecret = ""

	// Upstream Marketing Cloud tenant.
	SFMCSubdomain            = ""
	SFMCClientID             = ""
	SFMCClientSecret         = ""
	SFMCAccountID            = ""
	SFMCRuleDataExtension    = "Country_Restricted_Window"
	SFMCHolidayDataExtension = "Country_Holidays"
	SFMCRequestTimeout       = 10 * time.Second

	// RuleSourceMode selects where country rules come from: "remote" (the
	// Marketing Cloud data extension) or "static" (the local rule table).
	RuleSourceMode = "remote"

	// WindowPolicy is the verdict when no rule exists for a country:
	// "fail_closed" (default) or "fail_open".
	WindowPolicy = "fail_closed"

	// DedupTTL bounds dedup key retention; zero retains keys for the
	// process lifetime.
	DedupTTL time.Duration = 0

	DBDriver = "sqlite"
	DBURI    = "storages/rules.db"

	AuditEnabled = true
	AuditDBURI   = "storages/audit.db"

	ValkeyEnabled   = false
	ValkeyAddress   = "localhost:6379"
	ValkeyPassword  = ""
	ValkeyDB        = 0
	ValkeyKeyPrefix = "dwc"
	RuleCacheTTL    = 5 * time.Minute
)
