package usecase

import (
	"context"
	"errors"
	"sync"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/pkg/infrastructure"

	"github.com/google/uuid"
)

type memStore struct {
	mu      sync.Mutex
	docs    map[uuid.UUID]model.CVDocument
	creates int
	saves   int
	pdfs    map[uuid.UUID]string
	failing error
}

func newMemStore() *memStore {
	return &memStore{docs: map[uuid.UUID]model.CVDocument{}, pdfs: map[uuid.UUID]string{}}
}

func (m *memStore) Load(_ context.Context, id uuid.UUID) (model.CVDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return model.CVDocument{}, domain.ErrNotFound
	}
	return doc.Clone(), nil
}

func (m *memStore) Save(_ context.Context, id uuid.UUID, doc model.CVDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return m.failing
	}
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	m.saves++
	m.docs[id] = doc.Clone()
	return nil
}

func (m *memStore) Create(_ context.Context, doc model.CVDocument) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return uuid.Nil, m.failing
	}
	id := uuid.New()
	m.creates++
	m.docs[id] = doc.Clone()
	return id, nil
}

func (m *memStore) RecordPDF(_ context.Context, id uuid.UUID, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdfs[id] = path
	return nil
}

func (m *memStore) fail(err error) {
	m.mu.Lock()
	m.failing = err
	m.mu.Unlock()
}

func (m *memStore) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates, m.saves
}

func (m *memStore) doc(id uuid.UUID) model.CVDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[id]
}

// gatedStore holds every Create and Save until release is closed.
type gatedStore struct {
	*memStore
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{memStore: newMemStore(), entered: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *gatedStore) wait(ctx context.Context) error {
	g.entered <- struct{}{}
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gatedStore) Create(ctx context.Context, doc model.CVDocument) (uuid.UUID, error) {
	if err := g.wait(ctx); err != nil {
		return uuid.Nil, err
	}
	return g.memStore.Create(ctx, doc)
}

func (g *gatedStore) Save(ctx context.Context, id uuid.UUID, doc model.CVDocument) error {
	if err := g.wait(ctx); err != nil {
		return err
	}
	return g.memStore.Save(ctx, id, doc)
}

type fakeRaster struct {
	out   []byte
	err   error
	calls int
	html  string
	opts  infrastructure.PDFOptions
}

func (f *fakeRaster) RenderHTMLToPDF(_ context.Context, html string, opts infrastructure.PDFOptions) ([]byte, error) {
	f.calls++
	f.html = html
	f.opts = opts
	return f.out, f.err
}

var errDown = errors.New("connection refused")
