package validations

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
	pkgError "github.com/9rajputshivam/daytime-window-check/pkg/error"
	"github.com/9rajputshivam/daytime-window-check/pkg/window"
)

func ValidateCreateRule(ctx context.Context, request domainRules.CreateRuleRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Country, validation.Required),
		validation.Field(&request.Timezone, validation.Required, validation.By(validTimezone)),
		validation.Field(&request.StartHour, validation.Min(0), validation.Max(23)),
		validation.Field(&request.EndHour, validation.Min(0), validation.Max(23)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateCreateHoliday(ctx context.Context, request domainRules.CreateHolidayRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Country, validation.Required),
		validation.Field(&request.Date, validation.Required, validation.Date(window.DateLayout)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func validTimezone(value any) error {
	name, _ := value.(string)
	if name == "" {
		return nil // Required already covers this.
	}
	_, err := time.LoadLocation(name)
	return err
}
