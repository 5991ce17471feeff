package cmd

import (
	"context"
	"database/sql"
	"embed"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	globalConfig "github.com/9rajputshivam/daytime-window-check/config"
	"github.com/9rajputshivam/daytime-window-check/core/database"
	domainActivity "github.com/9rajputshivam/daytime-window-check/domains/activity"
	domainAudit "github.com/9rajputshivam/daytime-window-check/domains/audit"
	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
	"github.com/9rajputshivam/daytime-window-check/infrastructure/rulesource"
	"github.com/9rajputshivam/daytime-window-check/infrastructure/sfmc"
	"github.com/9rajputshivam/daytime-window-check/infrastructure/valkey"
	"github.com/9rajputshivam/daytime-window-check/pkg/dedup"
	"github.com/9rajputshivam/daytime-window-check/pkg/utils"
	"github.com/9rajputshivam/daytime-window-check/pkg/window"
	"github.com/9rajputshivam/daytime-window-check/repository"
	"github.com/9rajputshivam/daytime-window-check/usecase"
)

var (
	EmbedViews embed.FS

	// Shared infrastructure, closed by StopApp.
	ruleDB       *gorm.DB
	auditDB      *sql.DB
	valkeyClient *valkey.Client
	dedupGuard   *dedup.Guard
	appCancel    context.CancelFunc

	// Usecases wired by initApp.
	activityUsecase  domainActivity.IActivityUsecase
	ruleAdminUsecase domainRules.IRuleAdminUsecase
	auditRepository  domainAudit.IAuditRepository
)

var rootCmd = &cobra.Command{
	Use:   "daytime-window-check",
	Short: "Quiet-hours gate for journey sends",
	Long: `Journey Builder custom activity that decides whether a send to a contact
is admissible right now based on the contact country's quiet-hours window,
weekend blocking, and holiday overlay.`,
}

func init() {
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()
	cobra.OnInitialize(initEnvConfig, initApp)
}

// initEnvConfig loads configuration from environment variables.
func initEnvConfig() {
	if envPort := viper.GetString("app_port"); envPort != "" {
		globalConfig.AppPort = envPort
	}
	if viper.IsSet("app_debug") {
		globalConfig.AppDebug = viper.GetBool("app_debug")
	}
	if envBasePath := viper.GetString("app_base_path"); envBasePath != "" {
		globalConfig.AppBasePath = envBasePath
	}
	if envBasicAuth := viper.GetString("app_basic_auth"); envBasicAuth != "" {
		globalConfig.AppBasicAuthCredential = strings.Split(envBasicAuth, ",")
	}
	if envTrustedProxies := viper.GetString("app_trusted_proxies"); envTrustedProxies != "" {
		globalConfig.AppTrustedProxies = strings.Split(envTrustedProxies, ",")
	}

	if envSecret := viper.GetString("jwt_secret"); envSecret != "" {
		globalConfig.JWTSecret = envSecret
	}

	if v := viper.GetString("sfmc_subdomain"); v != "" {
		globalConfig.SFMCSubdomain = v
	}
	if v := viper.GetString("sfmc_client_id"); v != "" {
		globalConfig.SFMCClientID = v
	}
	if v := viper.GetString("sfmc_client_secret"); v != "" {
		globalConfig.SFMCClientSecret = v
	}
	if v := viper.GetString("sfmc_account_id"); v != "" {
		globalConfig.SFMCAccountID = v
	}
	if v := viper.GetString("sfmc_rule_data_extension"); v != "" {
		globalConfig.SFMCRuleDataExtension = v
	}
	if v := viper.GetString("sfmc_holiday_data_extension"); v != "" {
		globalConfig.SFMCHolidayDataExtension = v
	}

	if v := viper.GetString("rule_source_mode"); v != "" {
		globalConfig.RuleSourceMode = strings.ToLower(v)
	}
	if v := viper.GetString("window_policy"); v != "" {
		globalConfig.WindowPolicy = v
	}
	if viper.IsSet("dedup_ttl_minutes") {
		globalConfig.DedupTTL = time.Duration(viper.GetInt("dedup_ttl_minutes")) * time.Minute
	}

	if v := viper.GetString("db_driver"); v != "" {
		globalConfig.DBDriver = strings.ToLower(v)
	}
	if v := viper.GetString("db_uri"); v != "" {
		globalConfig.DBURI = v
	}
	if viper.IsSet("audit_enabled") {
		globalConfig.AuditEnabled = viper.GetBool("audit_enabled")
	}
	if v := viper.GetString("audit_db_uri"); v != "" {
		globalConfig.AuditDBURI = v
	}

	if viper.IsSet("valkey_enabled") {
		globalConfig.ValkeyEnabled = viper.GetBool("valkey_enabled")
	}
	if v := viper.GetString("valkey_address"); v != "" {
		globalConfig.ValkeyAddress = v
	}
	if v := viper.GetString("valkey_password"); v != "" {
		globalConfig.ValkeyPassword = v
	}
	if viper.IsSet("valkey_db") {
		globalConfig.ValkeyDB = viper.GetInt("valkey_db")
	}
	if v := viper.GetString("valkey_key_prefix"); v != "" {
		globalConfig.ValkeyKeyPrefix = v
	}
	if viper.IsSet("rule_cache_ttl_minutes") {
		globalConfig.RuleCacheTTL = time.Duration(viper.GetInt("rule_cache_ttl_minutes")) * time.Minute
	}
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppPort,
		"port", "p",
		globalConfig.AppPort,
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&globalConfig.AppDebug,
		"debug", "d",
		globalConfig.AppDebug,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().StringSliceVarP(
		&globalConfig.AppBasicAuthCredential,
		"basic-auth", "b",
		globalConfig.AppBasicAuthCredential,
		"basic auth credential for the admin API | -b=yourUsername:yourPassword",
	)
	rootCmd.PersistentFlags().StringVarP(
		&globalConfig.AppBasePath,
		"base-path", "",
		globalConfig.AppBasePath,
		`base path for subpath deployments --base-path <string> | example: --base-path="/gate"`,
	)
}

// initApp wires the rule source chain, caches, and usecases.
func initApp() {
	if globalConfig.AppDebug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var ctx context.Context
	ctx, appCancel = context.WithCancel(context.Background())

	var err error
	ruleDB, err = database.New(globalConfig.DBDriver, globalConfig.DBURI)
	if err != nil {
		logrus.Fatalf("[INIT] failed to open rule store: %v", err)
	}
	ruleService := usecase.NewRuleService(ruleDB)
	ruleAdminUsecase = ruleService

	var source rulesource.Source = ruleService
	if globalConfig.RuleSourceMode == "remote" {
		client := sfmc.NewClient(sfmc.Config{
			Subdomain:    globalConfig.SFMCSubdomain,
			ClientID:     globalConfig.SFMCClientID,
			ClientSecret: globalConfig.SFMCClientSecret,
			AccountID:    globalConfig.SFMCAccountID,
			Timeout:      globalConfig.SFMCRequestTimeout,
		})
		source = rulesource.NewRemote(client, globalConfig.SFMCRuleDataExtension, globalConfig.SFMCHolidayDataExtension)
	}

	if globalConfig.ValkeyEnabled {
		valkeyClient, err = valkey.NewClient(valkey.Config{
			Address:   globalConfig.ValkeyAddress,
			Password:  globalConfig.ValkeyPassword,
			DB:        globalConfig.ValkeyDB,
			KeyPrefix: globalConfig.ValkeyKeyPrefix,
		})
		if err != nil {
			logrus.Warnf("[INIT] valkey unavailable, rule cache disabled: %v", err)
		} else {
			source = rulesource.NewCached(source, valkeyClient, globalConfig.RuleCacheTTL)
		}
	}

	if globalConfig.AuditEnabled {
		auditDB, err = repository.OpenAuditDB(globalConfig.DBDriver, globalConfig.AuditDBURI)
		if err != nil {
			logrus.Warnf("[INIT] audit store unavailable: %v", err)
		} else {
			repo := repository.NewAuditRepository(auditDB, globalConfig.DBDriver)
			if err := repo.Init(ctx); err != nil {
				logrus.Warnf("[INIT] audit schema init failed: %v", err)
			} else {
				auditRepository = repo
			}
		}
	}

	dedupGuard = dedup.NewGuard(globalConfig.DedupTTL)
	dedupGuard.Start(ctx)

	activityUsecase = usecase.NewActivityService(
		source,
		source,
		dedupGuard,
		auditRepository,
		window.ParsePolicy(globalConfig.WindowPolicy),
	)

	logrus.Infof("[INIT] rule source: %s, policy: %s", globalConfig.RuleSourceMode, window.ParsePolicy(globalConfig.WindowPolicy))
}

// StopApp releases shared resources on shutdown.
func StopApp() {
	if appCancel != nil {
		appCancel()
	}
	if dedupGuard != nil {
		dedupGuard.Stop()
	}
	if valkeyClient != nil {
		valkeyClient.Close()
	}
	if auditDB != nil {
		_ = auditDB.Close()
	}
	if ruleDB != nil {
		if sqlDB, err := ruleDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// Execute is the entrypoint: main hands in the embedded UI assets.
func Execute(embedViews embed.FS) {
	EmbedViews = embedViews
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("Error: %v", err)
	}
}
