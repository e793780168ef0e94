package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportRecord tracks a PDF produced from the editor document and archived in storage
type ExportRecord struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// File information
	FileName string `gorm:"not null" json:"file_name"`
	FilePath string `gorm:"not null" json:"file_path"` // storage key
	FileSize int64  `json:"file_size"`

	// Document state at export time
	PageCount    int        `json:"page_count"`
	GalleryPages int        `json:"gallery_pages"`
	Theme        ThemeType  `gorm:"not null;default:sharp" json:"theme"`
	Color        BrandColor `gorm:"not null;default:forest" json:"color"`
}

// BeforeCreate hook to generate UUID
func (r *ExportRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ExportRecord model
func (ExportRecord) TableName() string {
	return "export_records"
}
