package rest

import (
	"github.com/gofiber/fiber/v2"

	domainRules "github.com/9rajputshivam/daytime-window-check/domains/rules"
	"github.com/9rajputshivam/daytime-window-check/pkg/utils"
	"github.com/9rajputshivam/daytime-window-check/validations"
)

type Rules struct {
	Service domainRules.IRuleAdminUsecase
}

// InitRestRules registers the admin CRUD surface for the static rule table
// and the holiday overlay.
func InitRestRules(app fiber.Router, service domainRules.IRuleAdminUsecase) Rules {
	handler := Rules{Service: service}

	group := app.Group("/rules")
	group.Get("/", handler.List)
	group.Post("/", handler.Create)
	group.Put("/:id", handler.Update)
	group.Delete("/:id", handler.Delete)

	holidays := app.Group("/holidays")
	holidays.Get("/", handler.ListHolidays)
	holidays.Post("/", handler.CreateHoliday)
	holidays.Delete("/:id", handler.DeleteHoliday)

	return handler
}

func (h *Rules) List(c *fiber.Ctx) error {
	rules, err := h.Service.ListRules(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Rules retrieved",
		Results: rules,
	})
}

func (h *Rules) Create(c *fiber.Ctx) error {
	var request domainRules.CreateRuleRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateCreateRule(c.UserContext(), request))

	rule, err := h.Service.CreateRule(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Rule created",
		Results: rule,
	})
}

func (h *Rules) Update(c *fiber.Ctx) error {
	var request domainRules.UpdateRuleRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateCreateRule(c.UserContext(), request))

	rule, err := h.Service.UpdateRule(c.UserContext(), c.Params("id"), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Rule updated",
		Results: rule,
	})
}

func (h *Rules) Delete(c *fiber.Ctx) error {
	err := h.Service.DeleteRule(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Rule deleted",
	})
}

func (h *Rules) ListHolidays(c *fiber.Ctx) error {
	holidays, err := h.Service.ListHolidays(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Holidays retrieved",
		Results: holidays,
	})
}

func (h *Rules) CreateHoliday(c *fiber.Ctx) error {
	var request domainRules.CreateHolidayRequest
	err := c.BodyParser(&request)
	utils.PanicIfNeeded(err)

	utils.PanicIfNeeded(validations.ValidateCreateHoliday(c.UserContext(), request))

	holiday, err := h.Service.CreateHoliday(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Holiday created",
		Results: holiday,
	})
}

func (h *Rules) DeleteHoliday(c *fiber.Ctx) error {
	err := h.Service.DeleteHoliday(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Holiday deleted",
	})
}
