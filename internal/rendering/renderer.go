package rendering

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFRenderer prints an HTML document to PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string, style StylePreset) ([]byte, error)
}

// ChromePDFRenderer renders through headless Chrome. CHROME_PATH overrides
// the browser binary when set.
type ChromePDFRenderer struct {
	Timeout time.Duration
}

// NewChromePDFRenderer returns a renderer with a 60 second print timeout.
func NewChromePDFRenderer() *ChromePDFRenderer {
	return &ChromePDFRenderer{Timeout: 60 * time.Second}
}

// RenderPDF writes the HTML to a temp file and prints it as US Letter with
// the preset's margins.
func (r *ChromePDFRenderer) RenderPDF(ctx context.Context, html string, style StylePreset) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.Timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-render-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write html: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var printErr error
			// US Letter, 8.5in x 11in
			pdfBuf, _, printErr = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(style.MarginInches).
				WithMarginBottom(style.MarginInches).
				WithMarginLeft(style.MarginInches).
				WithMarginRight(style.MarginInches).
				Do(ctx)
			return printErr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf print failed: %w", err)
	}
	return pdfBuf, nil
}
