package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"datasheet_studio_go/models"

	"github.com/google/uuid"
)

// ErrEmptySnapshot is returned when a snapshot string holds no data
var ErrEmptySnapshot = errors.New("empty snapshot")

// snapshotRecord mirrors the persisted flat record. Pointer fields tell a missing key
// apart from a zero value so absent keys fall back to defaults.
type snapshotRecord struct {
	Theme         *models.ThemeType     `json:"theme,omitempty"`
	Color         *models.BrandColor    `json:"color,omitempty"`
	Specs         *[]models.SpecSection `json:"specs,omitempty"`
	HeroImage     *models.ImageSlot     `json:"heroImage,omitempty"`
	GalleryImages *[]models.ImageSlot   `json:"galleryImages,omitempty"`
	PageOneText   *models.PageOneText   `json:"pageOneText,omitempty"`
	PageTwoText   *models.PageTwoText   `json:"pageTwoText,omitempty"`
}

// snapshotSlots holds the raw slot objects so each one decodes over its defaults
type snapshotSlots struct {
	HeroImage     json.RawMessage   `json:"heroImage"`
	GalleryImages []json.RawMessage `json:"galleryImages"`
}

// SerializeDocument encodes the document as the persisted JSON record
func SerializeDocument(doc models.Document) (string, error) {
	doc = normalizeCollections(doc.Clone())
	rec := snapshotRecord{
		Theme:         &doc.Theme,
		Color:         &doc.Color,
		Specs:         &doc.Specs,
		HeroImage:     &doc.HeroImage,
		GalleryImages: &doc.GalleryImages,
		PageOneText:   &doc.PageOneText,
		PageTwoText:   &doc.PageTwoText,
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	return string(b), nil
}

// DeserializeDocument decodes a persisted record. Missing keys take their default
// values and geometry is clamped into bounds.
func DeserializeDocument(data string) (models.Document, error) {
	if data == "" {
		return models.Document{}, ErrEmptySnapshot
	}

	var rec snapshotRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return models.Document{}, fmt.Errorf("failed to deserialize document: %w", err)
	}

	doc := models.DefaultDocument()
	if rec.Theme != nil && models.IsValidTheme(*rec.Theme) {
		doc.Theme = *rec.Theme
	}
	if rec.Color != nil && models.IsValidColor(*rec.Color) {
		doc.Color = *rec.Color
	}
	if rec.Specs != nil {
		doc.Specs = *rec.Specs
	}
	if rec.HeroImage != nil || rec.GalleryImages != nil {
		var slots snapshotSlots
		if err := json.Unmarshal([]byte(data), &slots); err != nil {
			return models.Document{}, fmt.Errorf("failed to deserialize document: %w", err)
		}
		if rec.HeroImage != nil {
			doc.HeroImage = decodeSlot(slots.HeroImage, models.DefaultHeroImage())
			doc.HeroImage.ID = models.HeroSlotID
		}
		if rec.GalleryImages != nil {
			doc.GalleryImages = make([]models.ImageSlot, 0, len(slots.GalleryImages))
			for _, raw := range slots.GalleryImages {
				doc.GalleryImages = append(doc.GalleryImages, decodeGallerySlot(raw))
			}
		}
	}
	if rec.PageOneText != nil {
		doc.PageOneText = *rec.PageOneText
	}
	if rec.PageTwoText != nil {
		doc.PageTwoText = *rec.PageTwoText
	}

	return NormalizeDocument(doc), nil
}

// decodeSlot overlays the persisted fields on base; keys missing from raw keep base values
func decodeSlot(raw json.RawMessage, base models.ImageSlot) models.ImageSlot {
	slot := base
	if err := json.Unmarshal(raw, &slot); err != nil {
		return base
	}
	return slot
}

func decodeGallerySlot(raw json.RawMessage) models.ImageSlot {
	var ident struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &ident)
	if ident.ID == "" {
		ident.ID = "img-" + uuid.New().String()
	}
	slot := decodeSlot(raw, models.NewGallerySlot(ident.ID))
	slot.ID = ident.ID
	return slot
}

// NormalizeDocument clamps all slot geometry and replaces nil collections with empty ones
func NormalizeDocument(doc models.Document) models.Document {
	doc = normalizeCollections(doc)
	if doc.HeroImage.ID == "" {
		doc.HeroImage.ID = models.HeroSlotID
	}
	doc.HeroImage = NormalizeSlot(doc.HeroImage, models.HeroBounds)
	for i, img := range doc.GalleryImages {
		doc.GalleryImages[i] = NormalizeSlot(img, models.GalleryBounds)
	}
	return doc
}

func normalizeCollections(doc models.Document) models.Document {
	if doc.GalleryImages == nil {
		doc.GalleryImages = []models.ImageSlot{}
	}
	if doc.Specs == nil {
		doc.Specs = []models.SpecSection{}
	}
	for i := range doc.Specs {
		if doc.Specs[i].Rows == nil {
			doc.Specs[i].Rows = []models.SpecRow{}
		}
	}
	return doc
}
