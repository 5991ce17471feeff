package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
	pkgError "github.com/9rajputshivam/daytime-window-check/pkg/error"
)

// --- Persistence Models ---

type ruleModel struct {
	ID             string    `gorm:"primaryKey;column:id"`
	Country        string    `gorm:"column:country;index;not null"`
	Timezone       string    `gorm:"column:timezone;not null"`
	StartHour      int       `gorm:"column:start_hour;not null"`
	EndHour        int       `gorm:"column:end_hour;not null"`
	WeekendBlocked bool      `gorm:"column:weekend_blocked;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ruleModel) TableName() string {
	return "country_rules"
}

type holidayModel struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Country   string    `gorm:"column:country;index;not null"`
	Date      string    `gorm:"column:date;not null"`
	Label     string    `gorm:"column:label"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (holidayModel) TableName() string {
	return "country_holidays"
}

// ruleService is the static rule table: it implements both the admin CRUD
// surface and the rule/holiday source contracts, so a deployment can run
// entirely from local configuration instead of the remote store.
type ruleService struct {
	db *gorm.DB
}

// RuleService couples the admin usecase with the source contracts.
type RuleService interface {
	domainRules.IRuleAdminUsecase
	domainRules.IRuleSource
	domainRules.IHolidaySource
}

func NewRuleService(db *gorm.DB) RuleService {
	s := &ruleService{db: db}
	if db != nil {
		if err := db.AutoMigrate(&ruleModel{}, &holidayModel{}); err != nil {
			logrus.WithError(err).Error("[RULES] failed to init schema")
		}
	} else {
		logrus.Error("[RULES] gorm DB is nil, static rule store disabled")
	}
	return s
}

// --- Source contracts ---

func (s *ruleService) Rules(ctx context.Context, country string) ([]domainRules.CountryRule, error) {
	if s.db == nil {
		return nil, pkgError.ConfigurationError("static rule store not initialized")
	}
	var models []ruleModel
	err := s.db.WithContext(ctx).
		Where("LOWER(country) = ?", strings.ToLower(strings.TrimSpace(country))).
		Find(&models).Error
	if err != nil {
		return nil, pkgError.UpstreamLookupError(err.Error())
	}

	rules := make([]domainRules.CountryRule, 0, len(models))
	for _, m := range models {
		rules = append(rules, toCountryRule(m))
	}
	return rules, nil
}

func (s *ruleService) Holidays(ctx context.Context, country string) ([]domainRules.HolidayEntry, error) {
	if s.db == nil {
		return nil, pkgError.ConfigurationError("static rule store not initialized")
	}
	var models []holidayModel
	err := s.db.WithContext(ctx).
		Where("LOWER(country) = ?", strings.ToLower(strings.TrimSpace(country))).
		Find(&models).Error
	if err != nil {
		return nil, pkgError.UpstreamLookupError(err.Error())
	}

	holidays := make([]domainRules.HolidayEntry, 0, len(models))
	for _, m := range models {
		holidays = append(holidays, domainRules.HolidayEntry{Country: m.Country, Date: m.Date, Label: m.Label})
	}
	return holidays, nil
}

// --- Admin CRUD ---

func (s *ruleService) CreateRule(ctx context.Context, req domainRules.CreateRuleRequest) (domainRules.StoredRule, error) {
	model := ruleModel{
		ID:             uuid.NewString(),
		Country:        strings.ToLower(strings.TrimSpace(req.Country)),
		Timezone:       strings.TrimSpace(req.Timezone),
		StartHour:      req.StartHour,
		EndHour:        req.EndHour,
		WeekendBlocked: req.WeekendBlocked,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domainRules.StoredRule{}, err
	}
	return toStoredRule(model), nil
}

func (s *ruleService) ListRules(ctx context.Context) ([]domainRules.StoredRule, error) {
	var models []ruleModel
	if err := s.db.WithContext(ctx).Order("country, start_hour").Find(&models).Error; err != nil {
		return nil, err
	}
	rules := make([]domainRules.StoredRule, 0, len(models))
	for _, m := range models {
		rules = append(rules, toStoredRule(m))
	}
	return rules, nil
}

func (s *ruleService) UpdateRule(ctx context.Context, id string, req domainRules.UpdateRuleRequest) (domainRules.StoredRule, error) {
	var model ruleModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domainRules.StoredRule{}, pkgError.NotFoundError("rule not found")
		}
		return domainRules.StoredRule{}, err
	}

	model.Country = strings.ToLower(strings.TrimSpace(req.Country))
	model.Timezone = strings.TrimSpace(req.Timezone)
	model.StartHour = req.StartHour
	model.EndHour = req.EndHour
	model.WeekendBlocked = req.WeekendBlocked

	if err := s.db.WithContext(ctx).Save(&model).Error; err != nil {
		return domainRules.StoredRule{}, err
	}
	return toStoredRule(model), nil
}

func (s *ruleService) DeleteRule(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&ruleModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgError.NotFoundError("rule not found")
	}
	return nil
}

func (s *ruleService) CreateHoliday(ctx context.Context, req domainRules.CreateHolidayRequest) (domainRules.StoredHoliday, error) {
	model := holidayModel{
		ID:      uuid.NewString(),
		Country: strings.ToLower(strings.TrimSpace(req.Country)),
		Date:    strings.TrimSpace(req.Date),
		Label:   strings.TrimSpace(req.Label),
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domainRules.StoredHoliday{}, err
	}
	return toStoredHoliday(model), nil
}

func (s *ruleService) ListHolidays(ctx context.Context) ([]domainRules.StoredHoliday, error) {
	var models []holidayModel
	if err := s.db.WithContext(ctx).Order("country, date").Find(&models).Error; err != nil {
		return nil, err
	}
	holidays := make([]domainRules.StoredHoliday, 0, len(models))
	for _, m := range models {
		holidays = append(holidays, toStoredHoliday(m))
	}
	return holidays, nil
}

func (s *ruleService) DeleteHoliday(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&holidayModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgError.NotFoundError("holiday not found")
	}
	return nil
}

func toCountryRule(m ruleModel) domainRules.CountryRule {
	return domainRules.CountryRule{
		Country:        m.Country,
		Timezone:       m.Timezone,
		StartHour:      m.StartHour,
		EndHour:        m.EndHour,
		WeekendBlocked: m.WeekendBlocked,
	}
}

func toStoredRule(m ruleModel) domainRules.StoredRule {
	return domainRules.StoredRule{ID: m.ID, CountryRule: toCountryRule(m)}
}

func toStoredHoliday(m holidayModel) domainRules.StoredHoliday {
	return domainRules.StoredHoliday{
		ID:           m.ID,
		HolidayEntry: domainRules.HolidayEntry{Country: m.Country, Date: m.Date, Label: m.Label},
	}
}
