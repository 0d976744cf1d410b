package http

import (
	"strings"

	"cv-builder/pkg/ai/formatters"

	"github.com/gofiber/fiber/v2"
)

// SuggestSummary returns one suggested summary. It never applies it.
func (h *Handler) SuggestSummary(c *fiber.Ctx) error {
	var req formatters.SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	s, fromModel := h.suggester.Summary(c.UserContext(), req)
	return c.JSON(fiber.Map{"suggestion": s, "generated": fromModel})
}

// SuggestJobDescription returns up to five bullet suggestions for a role.
func (h *Handler) SuggestJobDescription(c *fiber.Ctx) error {
	var req formatters.BulletsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	if strings.TrimSpace(req.JobTitle) == "" || strings.TrimSpace(req.Company) == "" {
		return badRequest("Please fill in job title and company first")
	}
	s, fromModel := h.suggester.Bullets(c.UserContext(), req)
	return c.JSON(fiber.Map{"suggestions": s, "generated": fromModel})
}
