package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"datasheet_studio_go/models"

	"gorm.io/gorm"
)

var ErrExportNotFound = errors.New("export not found")

// SignedURLExpiry is how long an R2 download link stays valid
const SignedURLExpiry = 15 * time.Minute

// ExportArchive keeps generated PDFs in storage with one ExportRecord row each
type ExportArchive struct {
	db      *gorm.DB
	storage StorageProvider
	now     func() time.Time
}

func NewExportArchive(db *gorm.DB, storage StorageProvider) *ExportArchive {
	return &ExportArchive{db: db, storage: storage, now: time.Now}
}

// ExportMeta is the document state recorded with an archived PDF
type ExportMeta struct {
	PageCount    int
	GalleryPages int
	Theme        models.ThemeType
	Color        models.BrandColor
}

// Save stores pdf under a fresh exports/ key and records it.
// The stored object is removed again if the row cannot be written.
func (a *ExportArchive) Save(ctx context.Context, pdf []byte, meta ExportMeta) (*models.ExportRecord, error) {
	key := GenerateExportKey(a.now())
	result, err := a.storage.Put(ctx, key, pdf, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	record := &models.ExportRecord{
		FileName:     DatasheetFileName,
		FilePath:     result.Key,
		FileSize:     result.FileSize,
		PageCount:    meta.PageCount,
		GalleryPages: meta.GalleryPages,
		Theme:        meta.Theme,
		Color:        meta.Color,
	}
	if err := a.db.WithContext(ctx).Create(record).Error; err != nil {
		if delErr := a.storage.Delete(ctx, key); delErr != nil {
			log.Printf("[WARNING] Failed to remove orphaned export %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to record export: %w", err)
	}
	return record, nil
}

// List returns the newest exports first
func (a *ExportArchive) List(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	var records []models.ExportRecord
	q := a.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return records, nil
}

func (a *ExportArchive) Get(ctx context.Context, id string) (*models.ExportRecord, error) {
	var record models.ExportRecord
	if err := a.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExportNotFound
		}
		return nil, fmt.Errorf("failed to load export: %w", err)
	}
	return &record, nil
}

// SignedURL returns a temporary link for remote storage, or "" when the file must be streamed
func (a *ExportArchive) SignedURL(ctx context.Context, record *models.ExportRecord) (string, error) {
	if !a.storage.IsRemote() {
		return "", nil
	}
	return a.storage.GetSignedURL(ctx, record.FilePath, SignedURLExpiry)
}

// Open streams an archived PDF
func (a *ExportArchive) Open(ctx context.Context, record *models.ExportRecord) (io.ReadCloser, string, error) {
	return a.storage.Get(ctx, record.FilePath)
}

// PurgeOlderThan deletes exports created before cutoff from storage and the database.
// Records whose file cannot be deleted are kept for the next run.
func (a *ExportArchive) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var records []models.ExportRecord
	if err := a.db.WithContext(ctx).Where("created_at < ?", cutoff).Find(&records).Error; err != nil {
		return 0, fmt.Errorf("failed to find expired exports: %w", err)
	}

	purged := 0
	for _, record := range records {
		if err := a.storage.Delete(ctx, record.FilePath); err != nil {
			log.Printf("[WARNING] Failed to delete export file %s: %v", record.FilePath, err)
			continue
		}
		if err := a.db.WithContext(ctx).Unscoped().Delete(&models.ExportRecord{}, "id = ?", record.ID).Error; err != nil {
			log.Printf("[WARNING] Failed to delete export record %s: %v", record.ID, err)
			continue
		}
		purged++
	}
	return purged, nil
}
