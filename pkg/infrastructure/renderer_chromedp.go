package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFOptions controls how headless Chrome prints a page.
type PDFOptions struct {
	PageSize     string  // Letter or A4
	MarginInches float64
	Scale        float64
}

// DefaultPDFOptions prints US Letter with half-inch margins at 100%.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{PageSize: "Letter", MarginInches: 0.5, Scale: 1}
}

// PaperInches returns the paper width and height for the page size.
func (o PDFOptions) PaperInches() (float64, float64) {
	if strings.EqualFold(o.PageSize, "A4") {
		// A4: 210mm x 297mm
		return 8.27, 11.69
	}
	return 8.5, 11
}

type ChromedpRenderer struct {
	chromePath string
	timeout    time.Duration
}

func NewChromedpRenderer(chromePath string) *ChromedpRenderer {
	return &ChromedpRenderer{chromePath: chromePath, timeout: 60 * time.Second}
}

// WithTimeout bounds a single render, browser start-up included.
func (r *ChromedpRenderer) WithTimeout(d time.Duration) *ChromedpRenderer {
	if d > 0 {
		r.timeout = d
	}
	return r
}

func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string, opts PDFOptions) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.timeout)
	defer cancelRun()

	// the page is loaded from disk so relative links and large documents behave
	// the same as in a browser
	tmpDir, err := os.MkdirTemp("", "cv-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	width, height := opts.PaperInches()

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(opts.MarginInches).
				WithMarginBottom(opts.MarginInches).
				WithMarginLeft(opts.MarginInches).
				WithMarginRight(opts.MarginInches).
				WithScale(opts.Scale).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
