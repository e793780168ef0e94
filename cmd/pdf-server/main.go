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
	"datasheet_studio_go/handlers"
	"datasheet_studio_go/middleware"
	"datasheet_studio_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

// Standalone PDF service: POST /generate-pdf takes the datasheet container
// markup as a text body and answers with the rendered A4 PDF.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	options := services.DefaultPDFOptions()
	options.Settle = time.Duration(cfg.PDFSettleMillis) * time.Millisecond
	pdfService := services.NewPDFService(services.NewChromePDFRenderer(cfg.ChromePath), options, cfg.SanitizeExportHTML)

	limiter := middleware.NewPDFRateLimiter()
	defer limiter.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	e.GET("/health", handlers.HealthHandler)
	e.POST("/generate-pdf", handlers.GeneratePDFHandler(pdfService), limiter.Middleware())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("PDF server starting on port %s", cfg.PDFServerPort)
		if err := e.Start(":" + cfg.PDFServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("PDF server stopped: %v", err)
	}
}
