package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"datasheet_studio_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPDFRenderer is a mock implementation of PDFRenderer
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error) {
	args := m.Called(ctx, htmlContent, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockStorageProvider is a mock implementation of StorageProvider
type MockStorageProvider struct {
	mock.Mock
}

func (m *MockStorageProvider) Put(ctx context.Context, key string, data []byte, contentType string) (*StorageResult, error) {
	args := m.Called(ctx, key, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StorageResult), args.Error(1)
}

func (m *MockStorageProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorageProvider) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

func (m *MockStorageProvider) GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

func (m *MockStorageProvider) IsRemote() bool {
	args := m.Called()
	return args.Bool(0)
}

type staticSurface struct {
	html string
	err  error
}

func (s staticSurface) RenderSurface(ctx context.Context, doc models.Document) (string, error) {
	return s.html, s.err
}

func TestPDFServiceGenerate(t *testing.T) {
	renderer := new(MockPDFRenderer)
	opts := DefaultPDFOptions()
	renderer.On("Render", mock.Anything, mock.MatchedBy(func(html string) bool {
		return strings.HasPrefix(html, "<!DOCTYPE html>") &&
			strings.Contains(html, `<div class="a4-page">one</div>`) &&
			!strings.Contains(html, "<script>alert")
	}), opts).Return(buildBlankPDF(2), nil)

	svc := NewPDFService(renderer, opts, true)
	rendered, err := svc.Generate(context.Background(), `<div class="a4-page">one</div><script>alert(1)</script>`)

	assert.NoError(t, err)
	assert.Equal(t, 2, rendered.PageCount)
	renderer.AssertExpectations(t)
}

func TestPDFServiceGenerateErrors(t *testing.T) {
	renderer := new(MockPDFRenderer)
	svc := NewPDFService(renderer, DefaultPDFOptions(), false)

	_, err := svc.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrHTMLRequired)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)

	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("chrome crashed")).Once()
	_, err = svc.Generate(context.Background(), "<p>x</p>")
	assert.EqualError(t, err, "chrome crashed")

	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return([]byte("garbage"), nil).Once()
	_, err = svc.Generate(context.Background(), "<p>x</p>")
	assert.ErrorContains(t, err, "rendered PDF is invalid")
}

func TestDatasheetExporterArchives(t *testing.T) {
	db := setupTestDB(t)
	renderer := new(MockPDFRenderer)
	renderer.On("Render", mock.Anything, mock.MatchedBy(func(html string) bool {
		return strings.Contains(html, `--brand-color: #eab308`) && strings.Contains(html, "SURFACE")
	}), mock.Anything).Return(buildBlankPDF(3), nil)

	storage := NewLocalStorage(t.TempDir())
	exporter := NewDatasheetExporter(
		NewPDFService(renderer, DefaultPDFOptions(), true),
		staticSurface{html: `<div id="datasheet-container">SURFACE</div>`},
		NewExportArchive(db, storage),
	)

	doc := models.DefaultDocument()
	doc.Color = models.ColorYellow
	doc.Theme = models.ThemeAngle

	result, err := exporter.Export(context.Background(), doc)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.PageCount)
	assert.NotNil(t, result.Record)
	assert.Equal(t, 3, result.Record.PageCount)
	assert.Equal(t, 1, result.Record.GalleryPages)
	assert.Equal(t, models.ThemeAngle, result.Record.Theme)
	assert.Equal(t, models.ColorYellow, result.Record.Color)
	assert.Equal(t, DatasheetFileName, result.Record.FileName)
	assert.True(t, strings.HasPrefix(result.Record.FilePath, "exports/"))
	assert.False(t, exporter.IsExporting())

	var count int64
	db.Model(&models.ExportRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDatasheetExporterArchiveFailureStillReturnsPDF(t *testing.T) {
	db := setupTestDB(t)
	renderer := new(MockPDFRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return(buildBlankPDF(1), nil)

	storage := new(MockStorageProvider)
	storage.On("Put", mock.Anything, mock.Anything, mock.Anything, "application/pdf").Return(nil, errors.New("bucket gone"))

	exporter := NewDatasheetExporter(
		NewPDFService(renderer, DefaultPDFOptions(), false),
		staticSurface{html: "<div>x</div>"},
		NewExportArchive(db, storage),
	)

	result, err := exporter.Export(context.Background(), models.DefaultDocument())
	assert.NoError(t, err)
	assert.Nil(t, result.Record)
	assert.Equal(t, 1, result.PageCount)
	storage.AssertExpectations(t)
}

func TestDatasheetExporterEmptySurface(t *testing.T) {
	renderer := new(MockPDFRenderer)
	exporter := NewDatasheetExporter(NewPDFService(renderer, DefaultPDFOptions(), false), staticSurface{html: " "}, nil)

	_, err := exporter.Export(context.Background(), models.DefaultDocument())
	assert.ErrorIs(t, err, ErrRenderTargetMissing)
	assert.False(t, exporter.IsExporting())
}

func TestDatasheetExporterSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	renderer := new(MockPDFRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			once.Do(func() { close(started) })
			<-release
		}).
		Return(buildBlankPDF(1), nil)

	exporter := NewDatasheetExporter(NewPDFService(renderer, DefaultPDFOptions(), false), staticSurface{html: "<div>x</div>"}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := exporter.Export(context.Background(), models.DefaultDocument())
		done <- err
	}()

	<-started
	assert.True(t, exporter.IsExporting())
	_, err := exporter.Export(context.Background(), models.DefaultDocument())
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(release)
	assert.NoError(t, <-done)
	assert.False(t, exporter.IsExporting())
}
