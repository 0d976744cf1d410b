package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cv-builder/internal/model"
	"cv-builder/internal/preview"
	"cv-builder/internal/usecase"
	"cv-builder/pkg/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRaster struct {
	out []byte
	err error
}

func (s stubRaster) RenderHTMLToPDF(context.Context, string, infrastructure.PDFOptions) ([]byte, error) {
	return s.out, s.err
}

func resetRenderFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		renderIn, renderAPI, renderToken, renderCVID = "", "", "", ""
	})
}

func TestRenderDocument_WritesBothOutputs(t *testing.T) {
	dir := t.TempDir()
	e := usecase.NewExporter(stubRaster{out: []byte("%PDF-1.7 test")}, infrastructure.DefaultPDFOptions(), "", nil)

	doc := model.NewCVDocument()
	doc.PersonalInfo.FullName = "Ada Lovelace"

	htmlOut := filepath.Join(dir, "out", "cv.html")
	pdfOut := filepath.Join(dir, "cv.pdf")
	written, err := renderDocument(context.Background(), e, doc, false, htmlOut, pdfOut)
	require.NoError(t, err)
	assert.Equal(t, []string{htmlOut, pdfOut}, written)

	html, err := os.ReadFile(htmlOut)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Ada Lovelace")
	assert.Contains(t, string(html), preview.WatermarkText)

	pdf, err := os.ReadFile(pdfOut)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 test", string(pdf))
}

func TestRenderDocument_PDFFailureKeepsHTML(t *testing.T) {
	dir := t.TempDir()
	e := usecase.NewExporter(stubRaster{err: errors.New("no chrome")}, infrastructure.DefaultPDFOptions(), "", nil)

	htmlOut := filepath.Join(dir, "cv.html")
	written, err := renderDocument(context.Background(), e, model.NewCVDocument(), true, htmlOut, filepath.Join(dir, "cv.pdf"))
	require.Error(t, err)
	assert.Equal(t, []string{htmlOut}, written)
	assert.NoFileExists(t, filepath.Join(dir, "cv.pdf"))
}

func TestLoadDocument_FromFile(t *testing.T) {
	resetRenderFlags(t)
	path := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"personal_info":{"full_name":"Grace Hopper"},"template_id":2}`), 0o644))

	renderIn = path
	doc, err := loadDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", doc.PersonalInfo.FullName)
	assert.Equal(t, 2, doc.TemplateID)
}

func TestLoadDocument_FromAPI(t *testing.T) {
	resetRenderFlags(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/cv/6f1c1b8e-2d1e-4d43-9d3e-0c7c7b0c2a11", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"document":{"personal_info":{"full_name":"Linus"},"template_id":1}}`))
	}))
	defer srv.Close()

	renderAPI, renderToken, renderCVID = srv.URL, "tok", "6f1c1b8e-2d1e-4d43-9d3e-0c7c7b0c2a11"
	doc, err := loadDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Linus", doc.PersonalInfo.FullName)
}

func TestLoadDocument_Errors(t *testing.T) {
	resetRenderFlags(t)

	_, err := loadDocument(context.Background())
	assert.Error(t, err, "no source")

	renderIn, renderAPI = "a.json", "http://x"
	_, err = loadDocument(context.Background())
	assert.Error(t, err, "both sources")

	renderIn, renderCVID = "", "not-a-uuid"
	_, err = loadDocument(context.Background())
	assert.Error(t, err, "bad id")
}
