package http

import (
	"cv-builder/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func cvID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, badRequest("invalid cv id")
	}
	return id, nil
}

// importBody validates and normalizes the request body as a CV document.
// It also returns the optional "title" field.
func (h *Handler) importBody(c *fiber.Ctx) (model.CVDocument, string, error) {
	var raw map[string]any
	if err := c.BodyParser(&raw); err != nil {
		return model.CVDocument{}, "", badRequest("invalid payload")
	}
	title, _ := raw["title"].(string)
	delete(raw, "title")
	doc, _, err := h.library.Validate(raw)
	return doc, title, err
}

func (h *Handler) ListCVs(c *fiber.Ctx) error {
	list, err := h.library.List(c.UserContext(), principal(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *Handler) CreateCV(c *fiber.Ctx) error {
	doc, title, err := h.importBody(c)
	if err != nil {
		return err
	}
	rec, err := h.library.Create(c.UserContext(), principal(c).UserID, title, doc)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *Handler) ValidateCV(c *fiber.Ctx) error {
	var raw map[string]any
	if err := c.BodyParser(&raw); err != nil {
		return badRequest("invalid payload")
	}
	delete(raw, "title")
	_, report, err := h.library.Validate(raw)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

func (h *Handler) GetCV(c *fiber.Ctx) error {
	id, err := cvID(c)
	if err != nil {
		return err
	}
	rec, err := h.library.Get(c.UserContext(), principal(c).UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (h *Handler) UpdateCV(c *fiber.Ctx) error {
	id, err := cvID(c)
	if err != nil {
		return err
	}
	doc, _, err := h.importBody(c)
	if err != nil {
		return err
	}
	rec, err := h.library.Save(c.UserContext(), principal(c).UserID, id, doc)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (h *Handler) DeleteCV(c *fiber.Ctx) error {
	id, err := cvID(c)
	if err != nil {
		return err
	}
	if err := h.library.Delete(c.UserContext(), principal(c).UserID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "CV deleted successfully"})
}

func (h *Handler) DuplicateCV(c *fiber.Ctx) error {
	id, err := cvID(c)
	if err != nil {
		return err
	}
	rec, err := h.library.Duplicate(c.UserContext(), principal(c).UserID, id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// ExportCV renders a stored CV without opening a wizard.
func (h *Handler) ExportCV(c *fiber.Ctx) error {
	id, err := cvID(c)
	if err != nil {
		return err
	}
	p := principal(c)
	rec, err := h.library.Get(c.UserContext(), p.UserID, id)
	if err != nil {
		return err
	}
	res, err := h.exporter.Export(c.UserContext(), rec.Document, p.Premium, id.String())
	if err != nil {
		return err
	}
	if res.Path != "" {
		if err := h.library.RecordPDF(c.UserContext(), p.UserID, id, res.Path); err != nil {
			h.logger.Warn("export: failed to record pdf path", zap.String("cv_id", id.String()), zap.Error(err))
		}
	}
	return sendPDF(c, res)
}
