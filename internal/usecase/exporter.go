package usecase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cv-builder/internal/domain"
	"cv-builder/internal/model"
	"cv-builder/internal/preview"
	"cv-builder/internal/templates"
	"cv-builder/pkg/infrastructure"

	"go.uber.org/zap"
)

// Rasterizer turns a complete HTML page into PDF bytes.
type Rasterizer interface {
	RenderHTMLToPDF(ctx context.Context, html string, opts infrastructure.PDFOptions) ([]byte, error)
}

// ExportResult is a finished PDF. Path is set only when the exporter keeps a
// copy on disk.
type ExportResult struct {
	PDF      []byte
	FileName string
	HTML     string
	Path     string
}

type Exporter struct {
	raster    Rasterizer
	opts      infrastructure.PDFOptions
	exportDir string
	logger    *zap.Logger
}

// NewExporter builds an exporter. An empty exportDir disables the on-disk copy.
func NewExporter(r Rasterizer, opts infrastructure.PDFOptions, exportDir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{raster: r, opts: opts, exportDir: exportDir, logger: logger}
}

// Page is the print setup used by previews so that they match the PDF.
func (e *Exporter) Page() preview.PageSetup {
	return preview.PageSetup{Size: e.opts.PageSize, Margin: fmt.Sprintf("%gin", e.opts.MarginInches)}
}

// Preview renders doc as HTML for the given subscription.
func (e *Exporter) Preview(doc model.CVDocument, premium bool) (string, error) {
	v := preview.Build(doc, templates.ResolveForRender(doc.TemplateID, premium))
	return preview.RenderHTML(v, e.Page())
}

// Export renders doc and rasterizes it. A failed or malformed render is
// returned to the caller; nothing is retried and no partial file is kept.
// key names the on-disk copy and is usually the CV id.
func (e *Exporter) Export(ctx context.Context, doc model.CVDocument, premium bool, key string) (*ExportResult, error) {
	html, err := e.Preview(doc, premium)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	pdf, err := e.raster.RenderHTMLToPDF(ctx, html, e.opts)
	if err != nil {
		e.logger.Warn("export: rasterize failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		e.logger.Warn("export: invalid PDF output", zap.String("key", key), zap.Int("bytes", len(pdf)))
		return nil, fmt.Errorf("%w: invalid PDF output (len=%d)", domain.ErrExportFailed, len(pdf))
	}

	res := &ExportResult{PDF: pdf, FileName: FileName(doc.PersonalInfo), HTML: html}
	if e.exportDir != "" && key != "" {
		path, err := e.keep(key, pdf)
		if err != nil {
			// the PDF is still delivered
			e.logger.Error("export: failed to keep copy", zap.String("key", key), zap.Error(err))
		} else {
			res.Path = path
		}
	}
	e.logger.Info("export: rendered",
		zap.String("key", key),
		zap.Int("template_id", doc.TemplateID),
		zap.Int("bytes", len(pdf)),
	)
	return res, nil
}

func (e *Exporter) keep(key string, pdf []byte) (string, error) {
	if err := os.MkdirAll(e.exportDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(e.exportDir, filepath.Base(key)+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// FileName is the download name: the full name, or "CV" when none is set.
func FileName(p model.PersonalInfo) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, strings.TrimSpace(p.FullName))
	if name == "" {
		name = "CV"
	}
	return name + ".pdf"
}
