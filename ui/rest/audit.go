package rest

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	domainAudit "github.com/9rajputshivam/daytime-window-check/domains/audit"
	"github.com/9rajputshivam/daytime-window-check/pkg/utils"
)

type Audit struct {
	Repository domainAudit.IAuditRepository
}

func InitRestAudit(app fiber.Router, repository domainAudit.IAuditRepository) Audit {
	handler := Audit{Repository: repository}

	group := app.Group("/audit")
	group.Get("/recent", handler.Recent)

	return handler
}

func (h *Audit) Recent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	records, err := h.Repository.Recent(c.UserContext(), limit)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Recent evaluations retrieved",
		Results: records,
	})
}
