package http

import (
	"cv-builder/internal/domain"
	"cv-builder/internal/templates"
	"cv-builder/internal/usecase"
	"cv-builder/pkg/ai"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WizardFactory builds a fresh wizard for the caller.
type WizardFactory func(p domain.Principal) *usecase.Wizard

type Handler struct {
	library   *usecase.Library
	sessions  *usecase.Sessions
	newWizard WizardFactory
	suggester *ai.Suggester
	exporter  *usecase.Exporter
	logger    *zap.Logger
}

type Deps struct {
	Library   *usecase.Library
	Sessions  *usecase.Sessions
	NewWizard WizardFactory
	Suggester *ai.Suggester
	Exporter  *usecase.Exporter
	Logger    *zap.Logger
}

func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		library:   d.Library,
		sessions:  d.Sessions,
		newWizard: d.NewWizard,
		suggester: d.Suggester,
		exporter:  d.Exporter,
		logger:    logger,
	}
}

// NewApp returns a Fiber app using the shared error handler.
func NewApp(logger *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(logger),
		DisableStartupMessage: true,
		BodyLimit:             2 << 20,
	})
}

// Register wires all HTTP routes onto given Fiber app. auth guards every
// route except the health probe.
func (h *Handler) Register(app *fiber.App, auth fiber.Handler) {
	v1 := app.Group("/api/v1")
	v1.Get("/health", h.Health)

	v1.Use(auth)
	v1.Get("/templates", h.Templates)

	cv := v1.Group("/cv")
	cv.Get("/", h.ListCVs)
	cv.Post("/", h.CreateCV)
	cv.Post("/validate", h.ValidateCV)
	cv.Get("/:id", h.GetCV)
	cv.Put("/:id", h.UpdateCV)
	cv.Delete("/:id", h.DeleteCV)
	cv.Post("/:id/duplicate", h.DuplicateCV)
	cv.Post("/:id/export", h.ExportCV)

	w := v1.Group("/wizard")
	w.Post("/", h.StartWizard)
	w.Get("/:sid", h.WizardState)
	w.Delete("/:sid", h.CloseWizard)
	w.Put("/:sid/personal", h.SetPersonal)
	w.Put("/:sid/template", h.SetTemplate)
	w.Post("/:sid/next", h.NextStep)
	w.Post("/:sid/prev", h.PrevStep)
	w.Post("/:sid/goto", h.GoToStep)
	w.Post("/:sid/sections/:section/entries", h.AddEntry)
	w.Patch("/:sid/sections/:section/entries/:entry", h.UpdateEntry)
	w.Delete("/:sid/sections/:section/entries/:entry", h.RemoveEntry)
	w.Post("/:sid/sections/:section/entries/:entry/items", h.AddItem)
	w.Put("/:sid/sections/:section/entries/:entry/items/:idx", h.SetItem)
	w.Delete("/:sid/sections/:section/entries/:entry/items/:idx", h.RemoveItem)
	w.Post("/:sid/accept-summary", h.AcceptSummary)
	w.Post("/:sid/accept-bullet", h.AcceptBullet)
	w.Post("/:sid/save", h.SaveWizard)
	w.Get("/:sid/preview", h.PreviewWizard)
	w.Post("/:sid/export", h.ExportWizard)

	a := v1.Group("/ai")
	a.Post("/suggest-summary", h.SuggestSummary)
	a.Post("/suggest-job-description", h.SuggestJobDescription)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Templates lists the catalogue, marking templates locked for the caller.
func (h *Handler) Templates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": templates.List(principal(c).Premium)})
}

func sendPDF(c *fiber.Ctx, res *usecase.ExportResult) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.FileName+`"`)
	return c.Send(res.PDF)
}
