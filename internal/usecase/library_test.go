package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu   sync.Mutex
	recs map[uuid.UUID]domain.CVRecord
}

func newMemRepo() *memRepo { return &memRepo{recs: map[uuid.UUID]domain.CVRecord{}} }

func (m *memRepo) Create(_ context.Context, rec *domain.CVRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = *rec
	return nil
}

func (m *memRepo) Get(_ context.Context, owner, id uuid.UUID) (*domain.CVRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok || rec.OwnerID != owner {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (m *memRepo) Save(_ context.Context, rec *domain.CVRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = *rec
	return nil
}

func (m *memRepo) List(_ context.Context, owner uuid.UUID) ([]domain.CVSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CVSummary
	for _, r := range m.recs {
		if r.OwnerID == owner {
			out = append(out, domain.CVSummary{ID: r.ID, Title: r.Title, TemplateID: r.TemplateID, UpdatedAt: r.UpdatedAt})
		}
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, owner, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[id]; !ok || rec.OwnerID != owner {
		return domain.ErrNotFound
	}
	delete(m.recs, id)
	return nil
}

func (m *memRepo) SetPDFPath(_ context.Context, owner, id uuid.UUID, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok || rec.OwnerID != owner {
		return domain.ErrNotFound
	}
	rec.PDFPath = path
	m.recs[id] = rec
	return nil
}

func TestLibrary_CreateSaveDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	lib := NewLibrary(repo, nil)
	lib.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	owner := uuid.New()

	doc := model.NewCVDocument()
	doc.PersonalInfo.FullName = "Ada Lovelace"
	rec, err := lib.Create(ctx, owner, "", doc)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace CV", rec.Title)
	assert.Equal(t, 1, rec.TemplateID)

	doc.TemplateID = 2
	saved, err := lib.Save(ctx, owner, rec.ID, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.TemplateID)

	_, err = lib.Save(ctx, uuid.New(), rec.ID, doc)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	dup, err := lib.Duplicate(ctx, owner, rec.ID)
	require.NoError(t, err)
	assert.NotEqual(t, rec.ID, dup.ID)
	assert.Equal(t, "Ada Lovelace CV (Copy)", dup.Title)
	assert.Equal(t, "Ada Lovelace", dup.Document.PersonalInfo.FullName)

	list, err := lib.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, lib.Delete(ctx, owner, rec.ID))
	_, err = lib.Get(ctx, owner, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibrary_OwnerStore(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	lib := NewLibrary(repo, nil)
	owner := uuid.New()
	store := lib.For(owner)

	doc := model.NewCVDocument()
	id, err := store.Create(ctx, doc)
	require.NoError(t, err)

	doc.PersonalInfo.Email = "ada@example.com"
	require.NoError(t, store.Save(ctx, id, doc))
	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.PersonalInfo.Email)

	_, err = lib.For(uuid.New()).Load(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rec, ok := store.(PDFRecorder)
	require.True(t, ok)
	require.NoError(t, rec.RecordPDF(ctx, id, "/tmp/x.pdf"))
	r, err := lib.Get(ctx, owner, id)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.pdf", r.PDFPath)
}

func TestLibrary_Validate(t *testing.T) {
	lib := NewLibrary(newMemRepo(), nil)

	_, _, err := lib.Validate(map[string]any{"education": "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	doc, report, err := lib.Validate(map[string]any{
		"personalInfo": map[string]any{"fullName": "Ada Lovelace"},
		"template_id":  "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.FullName)
	assert.Equal(t, 3, doc.TemplateID)
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Missing)
}
