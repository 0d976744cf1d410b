package http

import (
	"strconv"

	"cv-builder/internal/model"
	"cv-builder/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type startWizardReq struct {
	CVID string `json:"cv_id"`
}

type fieldReq struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type itemReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type stepReq struct {
	Step int `json:"step"`
}

type templateReq struct {
	TemplateID int `json:"template_id"`
}

type acceptSummaryReq struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type acceptBulletReq struct {
	EntryID model.EntryID `json:"entry_id"`
	Text    string        `json:"text"`
}

type wizardResponse struct {
	SessionID string        `json:"session_id"`
	State     usecase.State `json:"state"`
}

func (h *Handler) wizard(c *fiber.Ctx) (*usecase.Wizard, error) {
	sid, err := uuid.Parse(c.Params("sid"))
	if err != nil {
		return nil, badRequest("invalid session id")
	}
	return h.sessions.Get(principal(c).UserID, sid)
}

func (h *Handler) state(c *fiber.Ctx, w *usecase.Wizard) error {
	return c.JSON(wizardResponse{SessionID: c.Params("sid"), State: w.State()})
}

func entryParams(c *fiber.Ctx) (model.Section, model.EntryID, error) {
	name, ok := model.ParseSection(c.Params("section"))
	if !ok {
		return "", 0, badRequest("unknown section " + c.Params("section"))
	}
	raw := c.Params("entry")
	if raw == "" {
		return name, 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, badRequest("invalid entry id")
	}
	return name, model.EntryID(id), nil
}

func itemIndex(c *fiber.Ctx) (int, error) {
	idx, err := strconv.Atoi(c.Params("idx"))
	if err != nil {
		return 0, badRequest("invalid item index")
	}
	return idx, nil
}

// StartWizard opens a session, optionally on a stored CV.
func (h *Handler) StartWizard(c *fiber.Ctx) error {
	var req startWizardReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest("invalid payload")
		}
	}
	p := principal(c)
	w := h.newWizard(p)
	if req.CVID != "" {
		id, err := uuid.Parse(req.CVID)
		if err != nil {
			w.Close()
			return badRequest("invalid cv id")
		}
		if err := w.Open(c.UserContext(), id); err != nil {
			w.Close()
			return err
		}
	}
	sid := h.sessions.Add(p.UserID, w)
	return c.Status(fiber.StatusCreated).JSON(wizardResponse{SessionID: sid.String(), State: w.State()})
}

func (h *Handler) WizardState(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) CloseWizard(c *fiber.Ctx) error {
	sid, err := uuid.Parse(c.Params("sid"))
	if err != nil {
		return badRequest("invalid session id")
	}
	if err := h.sessions.Close(principal(c).UserID, sid); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SetPersonal(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req fieldReq
	if err := c.BodyParser(&req); err != nil || req.Field == "" {
		return badRequest("field is required")
	}
	if _, err := w.SetPersonal(req.Field, req.Value); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) SetTemplate(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req templateReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := w.SetTemplate(req.TemplateID); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) NextStep(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	if _, err := w.Next(); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) PrevStep(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	w.Prev()
	return h.state(c, w)
}

func (h *Handler) GoToStep(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req stepReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	if _, err := w.GoTo(req.Step); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) AddEntry(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	name, _, err := entryParams(c)
	if err != nil {
		return err
	}
	id, err := w.AddEntry(name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry_id": id, "state": w.State()})
}

func (h *Handler) UpdateEntry(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	name, id, err := entryParams(c)
	if err != nil {
		return err
	}
	var req fieldReq
	if err := c.BodyParser(&req); err != nil || req.Field == "" {
		return badRequest("field is required")
	}
	if err := w.UpdateEntry(name, id, req.Field, req.Value); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) RemoveEntry(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	name, id, err := entryParams(c)
	if err != nil {
		return err
	}
	if err := w.RemoveEntry(name, id); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) AddItem(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	name, id, err := entryParams(c)
	if err != nil {
		return err
	}
	var req itemReq
	if err := c.BodyParser(&req); err != nil || req.Field == "" {
		return badRequest("field is required")
	}
	if err := w.AddListItem(name, id, req.Field, req.Value); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) SetItem(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	name, id, err := entryParams(c)
	if err != nil {
		return err
	}
	idx, err := itemIndex(c)
	if err != nil {
		return err
	}
	var req itemReq
	if err := c.BodyParser(&req); err != nil || req.Field == "" {
		return badRequest("field is required")
	}
	if err := w.SetListItem(name, id, req.Field, idx, req.Value); err != nil {
		return err
	}
	return h.state(c, w)
}

// RemoveItem takes the list field from the "field" query parameter.
func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	name, id, err := entryParams(c)
	if err != nil {
		return err
	}
	idx, err := itemIndex(c)
	if err != nil {
		return err
	}
	field := c.Query("field")
	if field == "" {
		return badRequest("field is required")
	}
	if err := w.RemoveListItem(name, id, field, idx); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) AcceptSummary(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req acceptSummaryReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	mode, err := usecase.ParseAcceptMode(req.Mode)
	if err != nil {
		return err
	}
	if err := w.AcceptSummary(req.Text, mode); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) AcceptBullet(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	var req acceptBulletReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := w.AcceptBullet(req.EntryID, req.Text); err != nil {
		return err
	}
	return h.state(c, w)
}

func (h *Handler) SaveWizard(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	id, err := w.Save(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id, "state": w.State()})
}

func (h *Handler) PreviewWizard(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	html, err := w.Preview()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

func (h *Handler) ExportWizard(c *fiber.Ctx) error {
	w, err := h.wizard(c)
	if err != nil {
		return err
	}
	res, err := w.Export(c.UserContext())
	if err != nil {
		return err
	}
	return sendPDF(c, res)
}
