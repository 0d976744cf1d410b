package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cv-builder/internal/autosave"
	"cv-builder/internal/document"
	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/section"
	"cv-builder/internal/templates"
	"cv-builder/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// autosaveTimeout bounds one background save.
const autosaveTimeout = 15 * time.Second

type WizardConfig struct {
	Principal   domain.Principal
	Persistence Persistence
	Exporter    *Exporter
	Logger      *zap.Logger
	Quiet       time.Duration
	IDs         *model.IDSource
}

// Wizard drives one editing session: step navigation, section edits,
// autosave, explicit save and export. All methods are safe for concurrent
// use; they serialize on the wizard's lock.
type Wizard struct {
	mu sync.Mutex

	agg       *document.Aggregate
	principal domain.Principal
	store     Persistence
	exporter  *Exporter
	saver     *autosave.Debouncer
	logger    *zap.Logger

	cvID     uuid.UUID
	step     int
	revision uint64
	saved    uint64

	lastSaved time.Time
	saveErr   error
}

func NewWizard(cfg WizardConfig) *Wizard {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Wizard{
		agg:       document.New(cfg.IDs),
		principal: cfg.Principal,
		store:     cfg.Persistence,
		exporter:  cfg.Exporter,
		logger:    logger,
	}
	w.saver = autosave.New(cfg.Quiet, w.autosave)
	w.agg.OnChange(func(model.Section) {
		w.revision++
		w.saver.Trigger()
	})
	return w
}

// Open loads a stored CV into the session.
func (w *Wizard) Open(ctx context.Context, id uuid.UUID) error {
	doc, err := w.store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("open cv %s: %w", id, err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.agg.Load(doc)
	w.cvID = id
	w.saved = w.revision
	return nil
}

// Close cancels a pending autosave. Unsaved edits are dropped.
func (w *Wizard) Close() {
	w.saver.Stop()
}

func (w *Wizard) CVID() uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cvID
}

func (w *Wizard) Premium() bool { return w.principal.Premium }

// Document returns a copy of the document being edited.
func (w *Wizard) Document() model.CVDocument {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.agg.Document()
}

// --- navigation ---

func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Next advances one step when the current step's gate passes. A failing gate
// reveals every message of the section.
func (w *Wizard) Next() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == len(steps)-1 {
		return w.step, nil
	}
	if !stepComplete(w.agg, w.step) {
		w.revealErrors(steps[w.step].Section)
		return w.step, fmt.Errorf("%w: %s", domain.ErrStepIncomplete, steps[w.step].Title)
	}
	w.step++
	return w.step, nil
}

func (w *Wizard) Prev() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > 0 {
		w.step--
	}
	return w.step
}

// GoTo jumps to step i. Moving back is always allowed; moving forward only
// while the current step is complete.
func (w *Wizard) GoTo(i int) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(steps) {
		return w.step, fmt.Errorf("%w: %d", ErrStepRange, i)
	}
	if i > w.step && !stepComplete(w.agg, w.step) {
		w.revealErrors(steps[w.step].Section)
		return w.step, fmt.Errorf("%w: %s", domain.ErrStepIncomplete, steps[w.step].Title)
	}
	w.step = i
	return w.step, nil
}

// Steps returns the navigation state of every step.
func (w *Wizard) Steps() []StepState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps()
}

func (w *Wizard) steps() []StepState {
	out := make([]StepState, len(steps))
	for i, st := range steps {
		out[i] = StepState{
			Index:    i,
			Title:    st.Title,
			Section:  string(st.Section),
			Required: st.Required,
			Complete: stepComplete(w.agg, i),
			Current:  i == w.step,
			Missing:  stepMissing(w.agg, i),
		}
	}
	return out
}

func (w *Wizard) revealErrors(name model.Section) {
	if name == model.SectionPersonal {
		w.agg.Personal.ValidateAll()
		return
	}
	if ed, ok := w.agg.Editor(name); ok {
		ed.ValidateAll()
	}
}

// --- editing ---

// SetPersonal updates one personal info field.
func (w *Wizard) SetPersonal(field string, v any) (validation.FieldErrors, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.agg.Personal.Set(field, v); err != nil {
		return nil, err
	}
	return w.agg.Personal.Errors(), nil
}

func (w *Wizard) editor(name model.Section) (section.Editor, error) {
	ed, ok := w.agg.Editor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", document.ErrUnknownSection, name)
	}
	return ed, nil
}

// AddEntry appends an empty entry to a collection section.
func (w *Wizard) AddEntry(name model.Section) (model.EntryID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ed, err := w.editor(name)
	if err != nil {
		return 0, err
	}
	return ed.AddEntry(), nil
}

func (w *Wizard) UpdateEntry(name model.Section, id model.EntryID, field string, v any) error {
	return w.edit(name, func(ed section.Editor) error { return ed.UpdateEntry(id, field, v) })
}

func (w *Wizard) RemoveEntry(name model.Section, id model.EntryID) error {
	return w.edit(name, func(ed section.Editor) error { return ed.RemoveEntry(id) })
}

func (w *Wizard) AddListItem(name model.Section, id model.EntryID, field, value string) error {
	return w.edit(name, func(ed section.Editor) error { return ed.AddListItem(id, field, value) })
}

func (w *Wizard) SetListItem(name model.Section, id model.EntryID, field string, idx int, value string) error {
	return w.edit(name, func(ed section.Editor) error { return ed.SetListItem(id, field, idx, value) })
}

func (w *Wizard) RemoveListItem(name model.Section, id model.EntryID, field string, idx int) error {
	return w.edit(name, func(ed section.Editor) error { return ed.RemoveListItem(id, field, idx) })
}

func (w *Wizard) edit(name model.Section, fn func(section.Editor) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	ed, err := w.editor(name)
	if err != nil {
		return err
	}
	return fn(ed)
}

// SetTemplate selects a template. Premium templates need a subscription.
func (w *Wizard) SetTemplate(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, known := templates.Lookup(id); !known {
		return fmt.Errorf("%w: %d", domain.ErrUnknownTemplate, id)
	}
	if !w.agg.SetTemplate(id, w.principal.Premium) {
		return fmt.Errorf("%w: template %d", domain.ErrPremiumRequired, id)
	}
	return nil
}

// AcceptSummary applies a suggested summary.
func (w *Wizard) AcceptSummary(text string, mode AcceptMode) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if mode == AcceptAppend {
		if cur := strings.TrimSpace(w.agg.Personal.Info().Summary); cur != "" {
			text = cur + " " + text
		}
	}
	_, err := w.agg.Personal.Set("summary", text)
	return err
}

// AcceptBullet adds a suggested bullet to an experience entry. A trailing
// blank bullet is filled instead of left behind.
func (w *Wizard) AcceptBullet(id model.EntryID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, e := range w.agg.Experience.Entries() {
		if e.ID != id {
			continue
		}
		if n := len(e.Description); n > 0 && strings.TrimSpace(e.Description[n-1]) == "" {
			_, err := w.agg.Experience.SetItem(id, "description", n-1, text)
			return err
		}
		_, err := w.agg.Experience.AddItem(id, "description", text)
		return err
	}
	return fmt.Errorf("%w: experience %d", section.ErrEntryNotFound, id)
}

// --- state ---

// State is a snapshot of the session for clients.
type State struct {
	CVID      string                           `json:"cv_id,omitempty"`
	Step      int                              `json:"step"`
	Steps     []StepState                      `json:"steps"`
	Document  model.CVDocument                 `json:"document"`
	Personal  validation.FieldErrors           `json:"personal_errors,omitempty"`
	Entries   map[string][]section.EntryErrors `json:"entry_errors,omitempty"`
	Template  templates.Resolution             `json:"template"`
	Dirty     bool                             `json:"dirty"`
	LastSaved *time.Time                       `json:"last_saved,omitempty"`
	SaveError string                           `json:"save_error,omitempty"`
	Review    validation.Report                `json:"review"`
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	st := State{
		Step:     w.step,
		Steps:    w.steps(),
		Document: w.agg.Document(),
		Personal: w.agg.Personal.Errors(),
		Entries:  map[string][]section.EntryErrors{},
		Template: templates.Resolve(w.agg.TemplateID(), w.principal.Premium),
		Dirty:    w.agg.Dirty(),
		Review:   w.agg.Review(),
	}
	if w.cvID != uuid.Nil {
		st.CVID = w.cvID.String()
	}
	for _, name := range model.EntrySections {
		ed, _ := w.agg.Editor(name)
		if errs := ed.Summary(); len(errs) > 0 {
			st.Entries[string(name)] = errs
		}
	}
	if !w.lastSaved.IsZero() {
		t := w.lastSaved
		st.LastSaved = &t
	}
	if w.saveErr != nil {
		st.SaveError = w.saveErr.Error()
	}
	return st
}

// --- persistence ---

// Save stores the document: an update when it already has an ID, otherwise
// a create whose ID the session adopts. The lock is not held during the
// store call, so edits keep flowing while a save is outstanding.
func (w *Wizard) Save(ctx context.Context) (uuid.UUID, error) {
	id, _, err := w.save(ctx)
	return id, err
}

// save returns the ID and the snapshot that was written.
func (w *Wizard) save(ctx context.Context) (uuid.UUID, model.CVDocument, error) {
	w.mu.Lock()
	doc := w.agg.Document()
	rev := w.revision
	id := w.cvID
	w.mu.Unlock()

	var (
		saved uuid.UUID
		err   error
	)
	if id == uuid.Nil {
		saved, err = w.store.Create(ctx, doc)
	} else {
		saved, err = id, w.store.Save(ctx, id, doc)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.saveErr = err
		if id == uuid.Nil {
			return w.cvID, doc, fmt.Errorf("create cv: %w", err)
		}
		return id, doc, fmt.Errorf("save cv %s: %w", id, err)
	}
	// a concurrent create may have won; the session keeps the first ID
	if w.cvID == uuid.Nil {
		w.cvID = saved
	}
	if rev >= w.saved {
		w.markSaved(rev)
	}
	return w.cvID, doc, nil
}

func (w *Wizard) markSaved(rev uint64) {
	w.saved = rev
	w.saveErr = nil
	w.lastSaved = time.Now()
	if w.revision == rev {
		w.agg.MarkClean()
	}
}

// autosave runs on the debouncer's goroutine. It only updates documents that
// already exist and have some personal info; failures wait for the next edit.
func (w *Wizard) autosave() {
	w.mu.Lock()
	id := w.cvID
	if id == uuid.Nil || w.agg.Personal.Info().IsEmpty() || w.revision == w.saved {
		w.mu.Unlock()
		return
	}
	doc := w.agg.Document()
	rev := w.revision
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
	defer cancel()
	err := w.store.Save(ctx, id, doc)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.saveErr = err
		w.logger.Warn("autosave failed", zap.String("cv_id", id.String()), zap.Error(err))
		return
	}
	if rev > w.saved {
		w.markSaved(rev)
	}
	w.logger.Debug("autosaved", zap.String("cv_id", id.String()), zap.Uint64("revision", rev))
}

// Preview renders the current document as HTML.
func (w *Wizard) Preview() (string, error) {
	w.mu.Lock()
	doc := w.agg.Document()
	w.mu.Unlock()
	return w.exporter.Preview(doc, w.principal.Premium)
}

// Export saves the document and then renders it to PDF.
func (w *Wizard) Export(ctx context.Context) (*ExportResult, error) {
	id, doc, err := w.save(ctx)
	if err != nil {
		return nil, err
	}

	res, err := w.exporter.Export(ctx, doc, w.principal.Premium, id.String())
	if err != nil {
		return nil, err
	}
	if rec, ok := w.store.(PDFRecorder); ok && res.Path != "" {
		if err := rec.RecordPDF(ctx, id, res.Path); err != nil {
			w.logger.Warn("export: failed to record pdf path", zap.String("cv_id", id.String()), zap.Error(err))
		}
	}
	return res, nil
}
