package rest

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	domainActivity "github.com/9rajputshivam/daytime-window-check/domains/activity"
	"github.com/9rajputshivam/daytime-window-check/pkg/utils"
	"github.com/9rajputshivam/daytime-window-check/pkg/window"
)

type Activity struct {
	Service domainActivity.IActivityUsecase
}

// InitRestActivity registers the activity protocol endpoints. auth is the JWT
// middleware guarding every route: the journey platform signs all of its
// calls.
func InitRestActivity(app fiber.Router, service domainActivity.IActivityUsecase, auth fiber.Handler) Activity {
	handler := Activity{Service: service}

	group := app.Group("/activity", auth)
	group.Post("/execute", handler.Execute)
	group.Post("/save", handler.Save)
	group.Post("/validate", handler.Validate)
	group.Post("/publish", handler.Publish)
	group.Post("/stop", handler.Stop)

	return handler
}

// Execute always answers 200 with a well-formed verdict payload. A non-200
// here would make the journey platform treat the call as a hard failure, so
// even a malformed body produces the fail-closed payload.
func (h *Activity) Execute(c *fiber.Ctx) error {
	var request domainActivity.ExecuteRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.WithError(err).Warn("[ACTIVITY] malformed execute payload, failing closed")
		return c.JSON(executePayload(window.Verdict{}))
	}

	verdict := h.Service.Execute(c.UserContext(), request)
	return c.JSON(executePayload(verdict))
}

// executePayload shapes the verdict the way the platform consumes out
// arguments: a one-element array of string fields.
func executePayload(v window.Verdict) []map[string]string {
	hour := ""
	if v.CurrentHour != nil {
		hour = strconv.Itoa(*v.CurrentHour)
	}
	return []map[string]string{{
		"isWithinWindow": strconv.FormatBool(v.IsWithinWindow),
		"currentHour":    hour,
	}}
}

func (h *Activity) Save(c *fiber.Ctx) error {
	return h.lifecycle(c, h.Service.Save, "Activity saved")
}

func (h *Activity) Validate(c *fiber.Ctx) error {
	return h.lifecycle(c, h.Service.Validate, "Activity validated")
}

func (h *Activity) Publish(c *fiber.Ctx) error {
	return h.lifecycle(c, h.Service.Publish, "Activity published")
}

func (h *Activity) Stop(c *fiber.Ctx) error {
	return h.lifecycle(c, h.Service.Stop, "Activity stopped")
}

func (h *Activity) lifecycle(c *fiber.Ctx, op func(ctx context.Context, req domainActivity.LifecycleRequest) error, message string) error {
	var request domainActivity.LifecycleRequest
	_ = c.BodyParser(&request) // payload is informational only

	if err := op(c.UserContext(), request); err != nil {
		logrus.WithError(err).Warn("[ACTIVITY] lifecycle hook errored, acknowledging anyway")
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: message,
	})
}
