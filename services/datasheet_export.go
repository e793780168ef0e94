package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"datasheet_studio_go/models"
)

var ErrHTMLRequired = errors.New("HTML content required")

// SurfaceRenderer renders the document into the export container markup
type SurfaceRenderer interface {
	RenderSurface(ctx context.Context, doc models.Document) (string, error)
}

// PDFService turns posted container markup into a PDF: sanitize, wrap in the
// print shell, render, count pages.
type PDFService struct {
	Renderer PDFRenderer
	Options  PDFOptions
	Sanitize bool
}

func NewPDFService(renderer PDFRenderer, options PDFOptions, sanitize bool) *PDFService {
	return &PDFService{Renderer: renderer, Options: options, Sanitize: sanitize}
}

// RenderedPDF is a generated PDF and its validated page count
type RenderedPDF struct {
	Data      []byte
	PageCount int
}

func (s *PDFService) Generate(ctx context.Context, html string) (*RenderedPDF, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrHTMLRequired
	}
	if s.Sanitize {
		html = SanitizeExportHTML(html)
	}

	pdf, err := s.Renderer.Render(ctx, WrapDatasheetHTML(html), s.Options)
	if err != nil {
		return nil, err
	}

	pages, err := CountPDFPages(pdf)
	if err != nil {
		return nil, fmt.Errorf("rendered PDF is invalid: %w", err)
	}
	return &RenderedPDF{Data: pdf, PageCount: pages}, nil
}

// DatasheetExporter renders the stored document to PDF in-process and archives the result
type DatasheetExporter struct {
	pdf     *PDFService
	surface SurfaceRenderer
	archive *ExportArchive
	gate    ExportGate
}

func NewDatasheetExporter(pdf *PDFService, surface SurfaceRenderer, archive *ExportArchive) *DatasheetExporter {
	return &DatasheetExporter{pdf: pdf, surface: surface, archive: archive}
}

// IsExporting reports whether an export is running
func (e *DatasheetExporter) IsExporting() bool {
	return e.gate.Busy()
}

// ExportResult is a finished export; Record is nil when archiving is off or failed
type ExportResult struct {
	PDF       []byte
	PageCount int
	Record    *models.ExportRecord
}

// Export renders doc and returns the PDF. An archive failure is logged and the PDF still returned.
func (e *DatasheetExporter) Export(ctx context.Context, doc models.Document) (*ExportResult, error) {
	if !e.gate.TryAcquire() {
		return nil, ErrExportInProgress
	}
	defer e.gate.Release()

	surface, err := e.surface.RenderSurface(ctx, doc)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(surface) == "" {
		return nil, ErrRenderTargetMissing
	}

	rendered, err := e.pdf.Generate(ctx, BrandStyleWrapper(surface, doc.Color))
	if err != nil {
		return nil, err
	}

	result := &ExportResult{PDF: rendered.Data, PageCount: rendered.PageCount}
	if e.archive == nil {
		return result, nil
	}

	record, err := e.archive.Save(ctx, rendered.Data, ExportMeta{
		PageCount:    rendered.PageCount,
		GalleryPages: len(Paginate(doc.GalleryImages, MaxPageHeight)),
		Theme:        doc.Theme,
		Color:        doc.Color,
	})
	if err != nil {
		log.Printf("[WARNING] Export not archived: %v", err)
		return result, nil
	}
	result.Record = record
	return result, nil
}
