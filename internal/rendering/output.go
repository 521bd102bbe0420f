package rendering

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/resume-maker/internal/types"
)

// Result describes one rendered resume on disk.
type Result struct {
	// Path is the on-disk location of the PDF.
	Path string
	// DownloadName is the filename offered to the browser.
	DownloadName string
	// StyleName is the preset used for this render.
	StyleName string
}

// Renderer ties style selection, HTML templating, and PDF printing together
// and lays results out under the output directory.
type Renderer struct {
	picker    StylePicker
	pdf       PDFRenderer
	outputDir string
	now       func() time.Time
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderClock overrides the clock used for output naming. For tests.
func WithRenderClock(now func() time.Time) RendererOption {
	return func(r *Renderer) { r.now = now }
}

// NewRenderer creates a Renderer writing under outputDir. Each render lands
// in its own timestamped subdirectory.
func NewRenderer(picker StylePicker, pdf PDFRenderer, outputDir string, opts ...RendererOption) *Renderer {
	r := &Renderer{
		picker:    picker,
		pdf:       pdf,
		outputDir: outputDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the PDF for a resume record and writes it to disk.
func (r *Renderer) Render(ctx context.Context, record *types.ResumeRecord) (*Result, error) {
	style := r.picker.Pick()
	log.Printf("[PDF] style: %s", style.Name)

	html, err := BuildHTML(record, style)
	if err != nil {
		return nil, err
	}

	pdf, err := r.pdf.RenderPDF(ctx, html, style)
	if err != nil {
		return nil, err
	}

	now := r.now()
	dir := filepath.Join(r.outputDir, now.Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	name := record.PersonalInfo.Name
	if name == "" {
		name = "Resume"
	}
	safeName := strings.ReplaceAll(name, " ", "_")

	path := filepath.Join(dir, safeName+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	return &Result{
		Path:         path,
		DownloadName: fmt.Sprintf("Resume_%s_%s.pdf", safeName, now.Format("20060102")),
		StyleName:    style.Name,
	}, nil
}
