package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datasheet_studio_go/config"
	"datasheet_studio_go/db"
	"datasheet_studio_go/handlers"
	"datasheet_studio_go/middleware"
	"datasheet_studio_go/models"
	"datasheet_studio_go/services"
	"datasheet_studio_go/services/jobs"
	"datasheet_studio_go/templates/pages"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.DocumentSnapshot{}, &models.ExportRecord{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	snapshots, err := services.NewSnapshotStore(cfg, db.DB)
	if err != nil {
		log.Fatalf("Failed to create snapshot store: %v", err)
	}
	store := services.NewDocumentStore(ctx, snapshots, cfg.SnapshotKey)

	// PDF rendering and export archive
	pdfOptions := services.DefaultPDFOptions()
	pdfOptions.Settle = time.Duration(cfg.PDFSettleMillis) * time.Millisecond
	pdfService := services.NewPDFService(services.NewChromePDFRenderer(cfg.ChromePath), pdfOptions, cfg.SanitizeExportHTML)

	storage := services.NewStorageProvider(ctx, cfg)
	archive := services.NewExportArchive(db.DB, storage)
	exporter := services.NewDatasheetExporter(pdfService, pages.SurfaceRenderer{}, archive)

	editor := handlers.NewEditor(store, exporter, archive)

	scheduler, err := jobs.StartScheduler(archive, cfg.ExportRetentionDays)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	pdfLimiter := middleware.NewPDFRateLimiter()
	defer pdfLimiter.Stop()
	uploadLimiter := middleware.NewUploadRateLimiter()
	defer uploadLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	e.GET("/health", handlers.HealthHandler)
	e.GET("/api/document/preview", editor.PreviewHandler, middleware.PreviewSecurityHeaders())
	e.POST("/generate-pdf", handlers.GeneratePDFHandler(pdfService), pdfLimiter.Middleware())

	api := e.Group("/api")
	{
		// Document
		api.GET("/document", editor.GetDocumentHandler)
		api.GET("/document/pages", editor.GetPagesHandler)
		api.PUT("/document/theme", editor.UpdateThemeHandler)
		api.PUT("/document/color", editor.UpdateColorHandler)
		api.PUT("/document/text/page-one/:field", editor.UpdatePageOneTextHandler)
		api.PUT("/document/text/page-two/:field", editor.UpdatePageTwoTextHandler)
		api.POST("/document/reset", editor.ResetDocumentHandler)

		// Image slots
		api.PATCH("/slots/:id", editor.UpdateSlotHandler)
		api.POST("/slots/:id/image", editor.UploadSlotImageHandler, uploadLimiter.Middleware())
		api.DELETE("/slots/:id/image", editor.ClearSlotImageHandler)

		// Gallery
		api.PUT("/gallery/count", editor.SetGalleryCountHandler)
		api.POST("/gallery/reorder", editor.ReorderGalleryHandler)

		// Spec table
		api.POST("/sections", editor.AddSectionHandler)
		api.DELETE("/sections/:id", editor.RemoveSectionHandler)
		api.PUT("/sections/:id/title", editor.UpdateSectionTitleHandler)
		api.POST("/sections/:id/rows", editor.AddRowHandler)
		api.PUT("/sections/:id/rows/:index", editor.UpdateRowHandler)
		api.DELETE("/sections/:id/rows/:index", editor.RemoveRowHandler)
		api.GET("/specs/xlsx", editor.ExportSpecsHandler)
		api.POST("/specs/xlsx", editor.ImportSpecsHandler, uploadLimiter.Middleware())

		// Pointer gestures, one controller per page
		api.POST("/gestures/:page/down", editor.PointerDownHandler)
		api.POST("/gestures/:page/move", editor.PointerMoveHandler)
		api.POST("/gestures/:page/up", editor.PointerUpHandler)
		api.POST("/gestures/:page/wheel", editor.WheelHandler)

		// Export
		api.POST("/document/export", editor.ExportDocumentHandler, pdfLimiter.Middleware())
		api.GET("/document/export/status", editor.ExportStatusHandler)
		api.GET("/exports", editor.ListExportsHandler)
		api.GET("/exports/:id/download", editor.DownloadExportHandler)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("[INFO] Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
