package usecase

import (
	"context"
	"fmt"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CVRepo stores CV records. Every read and write is scoped to an owner.
type CVRepo interface {
	Create(ctx context.Context, rec *domain.CVRecord) error
	Get(ctx context.Context, owner, id uuid.UUID) (*domain.CVRecord, error)
	Save(ctx context.Context, rec *domain.CVRecord) error
	List(ctx context.Context, owner uuid.UUID) ([]domain.CVSummary, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
	SetPDFPath(ctx context.Context, owner, id uuid.UUID, path string) error
}

// Library is the CV collection of the persistence API.
type Library struct {
	repo   CVRepo
	logger *zap.Logger
	now    func() time.Time
}

func NewLibrary(repo CVRepo, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{repo: repo, logger: logger, now: time.Now}
}

// Create stores doc as a new CV. An empty title is derived from the name.
func (l *Library) Create(ctx context.Context, owner uuid.UUID, title string, doc model.CVDocument) (*domain.CVRecord, error) {
	now := l.now().UTC()
	rec := &domain.CVRecord{
		ID:         uuid.New(),
		OwnerID:    owner,
		Title:      title,
		TemplateID: doc.TemplateID,
		Document:   doc,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if rec.Title == "" {
		rec.Title = doc.Title()
	}
	if err := l.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create cv: %w", err)
	}
	l.logger.Info("cv created", zap.String("cv_id", rec.ID.String()), zap.String("owner_id", owner.String()))
	return rec, nil
}

func (l *Library) Get(ctx context.Context, owner, id uuid.UUID) (*domain.CVRecord, error) {
	return l.repo.Get(ctx, owner, id)
}

// Save replaces the document of an existing CV.
func (l *Library) Save(ctx context.Context, owner, id uuid.UUID, doc model.CVDocument) (*domain.CVRecord, error) {
	rec, err := l.repo.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	rec.Document = doc
	rec.TemplateID = doc.TemplateID
	rec.Title = doc.Title()
	rec.UpdatedAt = l.now().UTC()
	if err := l.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save cv %s: %w", id, err)
	}
	return rec, nil
}

func (l *Library) List(ctx context.Context, owner uuid.UUID) ([]domain.CVSummary, error) {
	return l.repo.List(ctx, owner)
}

func (l *Library) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := l.repo.Delete(ctx, owner, id); err != nil {
		return err
	}
	l.logger.Info("cv deleted", zap.String("cv_id", id.String()))
	return nil
}

// RecordPDF remembers where the last export of a CV was written.
func (l *Library) RecordPDF(ctx context.Context, owner, id uuid.UUID, path string) error {
	return l.repo.SetPDFPath(ctx, owner, id, path)
}

// Duplicate copies a CV under the title "<title> (Copy)".
func (l *Library) Duplicate(ctx context.Context, owner, id uuid.UUID) (*domain.CVRecord, error) {
	src, err := l.repo.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return l.Create(ctx, owner, src.Title+" (Copy)", src.Document.Clone())
}

// Validate checks and normalizes a raw document without storing it.
func (l *Library) Validate(raw map[string]any) (model.CVDocument, validation.Report, error) {
	doc, err := model.Import(raw)
	if err != nil {
		return model.CVDocument{}, validation.Report{}, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return *doc, validation.Review(*doc), nil
}

// For returns the persistence of one owner's CVs, as used by the wizard.
func (l *Library) For(owner uuid.UUID) Persistence {
	return ownerStore{lib: l, owner: owner}
}

type ownerStore struct {
	lib   *Library
	owner uuid.UUID
}

func (o ownerStore) Load(ctx context.Context, id uuid.UUID) (model.CVDocument, error) {
	rec, err := o.lib.Get(ctx, o.owner, id)
	if err != nil {
		return model.CVDocument{}, err
	}
	return rec.Document, nil
}

func (o ownerStore) Save(ctx context.Context, id uuid.UUID, doc model.CVDocument) error {
	_, err := o.lib.Save(ctx, o.owner, id, doc)
	return err
}

func (o ownerStore) Create(ctx context.Context, doc model.CVDocument) (uuid.UUID, error) {
	rec, err := o.lib.Create(ctx, o.owner, "", doc)
	if err != nil {
		return uuid.Nil, err
	}
	return rec.ID, nil
}

func (o ownerStore) RecordPDF(ctx context.Context, id uuid.UUID, path string) error {
	return o.lib.RecordPDF(ctx, o.owner, id, path)
}
