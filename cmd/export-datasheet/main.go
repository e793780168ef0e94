package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"datasheet_studio_go/config"
	"datasheet_studio_go/db"
	"datasheet_studio_go/models"
	"datasheet_studio_go/services"
	"datasheet_studio_go/templates/pages"
)

// Renders the saved datasheet and sends it to the PDF server, the same request
// the editor makes when the user clicks Export.
func main() {
	out := flag.String("o", services.DatasheetFileName, "output file")
	force := flag.Bool("f", false, "overwrite the output file without asking")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

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

	if err := db.AutoMigrate(&models.DocumentSnapshot{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	snapshots, err := services.NewSnapshotStore(cfg, db.DB)
	if err != nil {
		log.Fatalf("Failed to create snapshot store: %v", err)
	}
	doc := services.NewDocumentStore(ctx, snapshots, cfg.SnapshotKey).Document()

	if _, err := os.Stat(*out); err == nil && !*force && !confirm(fmt.Sprintf("%s exists. Overwrite? [y/N]: ", *out)) {
		fmt.Println("Export cancelled.")
		return
	}

	surface, err := pages.RenderSurface(ctx, doc)
	if err != nil {
		log.Fatalf("Failed to render datasheet: %v", err)
	}

	fmt.Printf("Exporting datasheet via %s ...\n", cfg.PDFServerURL)
	pdf, err := services.NewExportClient(cfg.PDFServerURL).Export(ctx, surface, doc.Color)
	if err != nil {
		fmt.Fprintln(os.Stderr, services.ExportFailureMessage(err))
		log.Printf("[ERROR] Export failed: %v", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, pdf, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	pageCount := len(services.LayoutGallery(doc.GalleryImages, services.MaxPageHeight)) + 2
	fmt.Printf("Saved %s (%d pages expected)\n", *out, pageCount)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
