package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync/atomic"

	"datasheet_studio_go/models"
)

var (
	ErrExportInProgress    = errors.New("an export is already in progress")
	ErrRenderTargetMissing = errors.New("datasheet container is empty")
	ErrExportUnreachable   = errors.New("PDF server unreachable")
)

// ExportStatusError is a non-2xx answer from the PDF service
type ExportStatusError struct {
	StatusCode int
}

func (e *ExportStatusError) Error() string {
	return fmt.Sprintf("Server returned: %d", e.StatusCode)
}

// ExportGate is the "exporting" flag. At most one export runs per gate.
type ExportGate struct {
	busy atomic.Bool
}

// TryAcquire sets the flag; false means an export is already running
func (g *ExportGate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *ExportGate) Release() {
	g.busy.Store(false)
}

func (g *ExportGate) Busy() bool {
	return g.busy.Load()
}

// ExportClient posts container markup to a remote PDF service
type ExportClient struct {
	BaseURL    string
	HTTPClient *http.Client
	gate       ExportGate
}

// NewExportClient uses a client without timeout; rendering long galleries can take a while
func NewExportClient(baseURL string) *ExportClient {
	return &ExportClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// IsExporting reports whether a request is outstanding
func (c *ExportClient) IsExporting() bool {
	return c.gate.Busy()
}

// Export wraps containerHTML with the brand variables of color, sends it to
// {BaseURL}/generate-pdf and returns the PDF bytes.
func (c *ExportClient) Export(ctx context.Context, containerHTML string, color models.BrandColor) ([]byte, error) {
	if !c.gate.TryAcquire() {
		return nil, ErrExportInProgress
	}
	defer c.gate.Release()

	if strings.TrimSpace(containerHTML) == "" {
		return nil, ErrRenderTargetMissing
	}

	body := BrandStyleWrapper(containerHTML, color)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/generate-pdf", strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[ERROR] PDF server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
		return nil, &ExportStatusError{StatusCode: resp.StatusCode}
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportUnreachable, err)
	}
	return pdf, nil
}

// ExportFailureMessage is the blocking notification shown when an export fails
func ExportFailureMessage(err error) string {
	var statusErr *ExportStatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExportInProgress):
		return "PDF export is already running. Wait for it to finish."
	case errors.Is(err, ErrRenderTargetMissing):
		return "Nothing to export: the datasheet is not rendered."
	case errors.As(err, &statusErr):
		return fmt.Sprintf("PDF Server Error (%d): the server could not render the datasheet.\n\nCheck the PDF server log and that Chrome is installed (CHROME_PATH).", statusErr.StatusCode)
	default:
		return "PDF Server Error: Make sure the server is running.\n\nRun in terminal:\n  go run ./cmd/pdf-server"
	}
}
