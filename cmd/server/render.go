package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cv-builder/internal/config"
	"cv-builder/internal/model"
	"cv-builder/internal/usecase"
	"cv-builder/pkg/infrastructure"
	"cv-builder/pkg/persistence"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderIn      string
	renderOut     string
	renderPDF     string
	renderPremium bool
	renderAPI     string
	renderToken   string
	renderCVID    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a CV document to HTML and optionally PDF",
	Long: `Render a CV the same way the preview and export endpoints do.

The document is read from a JSON file (--in) or fetched from a running
API (--api, --token, --cv-id).`,
	Example: `  cvbuilder render --in cv.json --out cv.html
  cvbuilder render --in cv.json --pdf cv.pdf --premium
  cvbuilder render --api http://localhost:3000 --token $TOKEN --cv-id <uuid> --pdf cv.pdf`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderIn, "in", "i", "", "Path to a CV document JSON file")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Path for the HTML output")
	renderCmd.Flags().StringVar(&renderPDF, "pdf", "", "Path for the PDF output (requires Chrome)")
	renderCmd.Flags().BoolVar(&renderPremium, "premium", false, "Render as a premium subscriber (no watermark, premium templates)")
	renderCmd.Flags().StringVar(&renderAPI, "api", "", "Base URL of the CV API")
	renderCmd.Flags().StringVar(&renderToken, "token", "", "Access token for --api")
	renderCmd.Flags().StringVar(&renderCVID, "cv-id", "", "Stored CV to fetch from --api")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderOut == "" && renderPDF == "" {
		return errors.New("at least one of --out or --pdf is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := infrastructure.NewLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	doc, err := loadDocument(cmd.Context())
	if err != nil {
		return err
	}

	renderer := infrastructure.NewChromedpRenderer(cfg.ChromePath).WithTimeout(cfg.ExportTimeout)
	exporter := usecase.NewExporter(renderer, pdfOptions(cfg), "", logger)

	written, err := renderDocument(cmd.Context(), exporter, doc, renderPremium, renderOut, renderPDF)
	if err != nil {
		return err
	}
	for _, p := range written {
		logger.Info("wrote", zap.String("path", p))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
	}
	return nil
}

func loadDocument(ctx context.Context) (model.CVDocument, error) {
	switch {
	case renderIn != "" && renderAPI != "":
		return model.CVDocument{}, errors.New("--in and --api are mutually exclusive")
	case renderIn != "":
		b, err := os.ReadFile(renderIn)
		if err != nil {
			return model.CVDocument{}, fmt.Errorf("read document: %w", err)
		}
		doc, err := model.NormalizeJSON(b)
		if err != nil {
			return model.CVDocument{}, err
		}
		return *doc, nil
	case renderAPI != "":
		id, err := uuid.Parse(renderCVID)
		if err != nil {
			return model.CVDocument{}, fmt.Errorf("invalid --cv-id: %w", err)
		}
		return persistence.NewClient(renderAPI, renderToken).Load(ctx, id)
	default:
		return model.CVDocument{}, errors.New("one of --in or --api is required")
	}
}

// renderDocument writes the HTML page to htmlOut and the PDF to pdfOut,
// skipping either when its path is empty. It returns the paths written.
func renderDocument(ctx context.Context, e *usecase.Exporter, doc model.CVDocument, premium bool, htmlOut, pdfOut string) ([]string, error) {
	var written []string

	if htmlOut != "" {
		html, err := e.Preview(doc, premium)
		if err != nil {
			return written, err
		}
		if err := writeFile(htmlOut, []byte(html)); err != nil {
			return written, err
		}
		written = append(written, htmlOut)
	}

	if pdfOut != "" {
		res, err := e.Export(ctx, doc, premium, "")
		if err != nil {
			return written, err
		}
		if err := writeFile(pdfOut, res.PDF); err != nil {
			return written, err
		}
		written = append(written, pdfOut)
	}
	return written, nil
}

func writeFile(path string, b []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
