package services

import (
	"context"
	"log"
	"sync"

	"datasheet_studio_go/models"

	"github.com/google/uuid"
)

// MaxGallerySlots is the largest gallery the editor offers
const MaxGallerySlots = 10

// SlotPatch is a partial update of an image slot. ClearImage removes the image data.
type SlotPatch struct {
	GeometryPatch
	Image      *string `json:"image,omitempty"`
	ClearImage bool    `json:"clearImage,omitempty"`
}

// DocumentStore owns the canonical document. Every mutation swaps in a fresh copy and
// persists it; readers only ever receive copies.
type DocumentStore struct {
	mu          sync.Mutex
	doc         models.Document
	persistence SnapshotStore
	key         string
}

// NewDocumentStore loads the persisted document under key, or starts from defaults
// when nothing usable is stored.
func NewDocumentStore(ctx context.Context, persistence SnapshotStore, key string) *DocumentStore {
	return &DocumentStore{
		doc:         loadDocument(ctx, persistence, key),
		persistence: persistence,
		key:         key,
	}
}

func loadDocument(ctx context.Context, persistence SnapshotStore, key string) models.Document {
	if persistence == nil {
		return models.DefaultDocument()
	}

	data, found, err := persistence.Load(ctx, key)
	if err != nil {
		log.Printf("[WARNING] Failed to load saved document, using defaults: %v", err)
		return models.DefaultDocument()
	}
	if !found {
		log.Println("[INFO] No saved document found, using defaults")
		return models.DefaultDocument()
	}

	doc, err := DeserializeDocument(data)
	if err != nil {
		log.Printf("[WARNING] Saved document is unreadable, using defaults: %v", err)
		return models.DefaultDocument()
	}

	log.Printf("[INFO] Loaded saved document (%d gallery images, %d spec sections)", len(doc.GalleryImages), len(doc.Specs))
	return doc
}

// Document returns a copy of the current document
func (s *DocumentStore) Document() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Slot returns a copy of the hero or gallery slot with the given identity
func (s *DocumentStore) Slot(id string) (models.ImageSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == models.HeroSlotID {
		return s.doc.HeroImage.Clone(), true
	}
	for _, img := range s.doc.GalleryImages {
		if img.ID == id {
			return img.Clone(), true
		}
	}
	return models.ImageSlot{}, false
}

// mutate applies fn to a copy of the document. When fn reports a change the copy
// becomes the live document and is persisted before the lock is released, so saves
// land in mutation order.
func (s *DocumentStore) mutate(fn func(doc *models.Document) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	if !fn(&next) {
		return false
	}
	s.doc = next
	s.persist(next)
	return true
}

func (s *DocumentStore) persist(doc models.Document) {
	if s.persistence == nil {
		return
	}

	data, err := SerializeDocument(doc)
	if err != nil {
		log.Printf("[ERROR] Failed to serialize document: %v", err)
		return
	}
	if err := s.persistence.Save(context.Background(), s.key, data); err != nil {
		log.Printf("[ERROR] Failed to save document: %v", err)
	}
}

// UpdateSlot merges patch into the slot with the given identity. Unknown ids are a no-op.
func (s *DocumentStore) UpdateSlot(id string, patch SlotPatch) bool {
	return s.mutate(func(doc *models.Document) bool {
		slot := findSlot(doc, id)
		if slot == nil {
			return false
		}
		updated := patch.GeometryPatch.ApplyTo(*slot, models.BoundsFor(id))
		if patch.ClearImage {
			updated.Image = nil
		} else if patch.Image != nil {
			img := *patch.Image
			updated.Image = &img
		}
		*slot = updated
		return true
	})
}

// ApplyGeometry merges a gesture's geometry patch into a slot
func (s *DocumentStore) ApplyGeometry(id string, patch GeometryPatch) bool {
	return s.UpdateSlot(id, SlotPatch{GeometryPatch: patch})
}

func findSlot(doc *models.Document, id string) *models.ImageSlot {
	if id == models.HeroSlotID {
		return &doc.HeroImage
	}
	for i := range doc.GalleryImages {
		if doc.GalleryImages[i].ID == id {
			return &doc.GalleryImages[i]
		}
	}
	return nil
}

func findSection(doc *models.Document, id string) *models.SpecSection {
	for i := range doc.Specs {
		if doc.Specs[i].ID == id {
			return &doc.Specs[i]
		}
	}
	return nil
}

// SetTheme switches the page theme. Unknown themes are ignored.
func (s *DocumentStore) SetTheme(theme models.ThemeType) bool {
	if !models.IsValidTheme(theme) {
		return false
	}
	return s.mutate(func(doc *models.Document) bool {
		doc.Theme = theme
		return true
	})
}

// SetColor switches the brand color. Unknown colors are ignored.
func (s *DocumentStore) SetColor(color models.BrandColor) bool {
	if !models.IsValidColor(color) {
		return false
	}
	return s.mutate(func(doc *models.Document) bool {
		doc.Color = color
		return true
	})
}

// UpdatePageOneText sets one cover page text field by its key
func (s *DocumentStore) UpdatePageOneText(field, value string) bool {
	return s.mutate(func(doc *models.Document) bool {
		target := doc.PageOneText.Field(field)
		if target == nil {
			return false
		}
		*target = value
		return true
	})
}

// UpdatePageTwoText sets one spec page text field by its key
func (s *DocumentStore) UpdatePageTwoText(field, value string) bool {
	return s.mutate(func(doc *models.Document) bool {
		target := doc.PageTwoText.Field(field)
		if target == nil {
			return false
		}
		*target = value
		return true
	})
}

// UpdateSectionTitle renames a spec section
func (s *DocumentStore) UpdateSectionTitle(id, title string) bool {
	return s.mutate(func(doc *models.Document) bool {
		section := findSection(doc, id)
		if section == nil {
			return false
		}
		section.Title = title
		return true
	})
}

// AddSection appends a new section with one placeholder row and returns its id
func (s *DocumentStore) AddSection() string {
	id := "custom-" + uuid.New().String()
	s.mutate(func(doc *models.Document) bool {
		doc.Specs = append(doc.Specs, models.SpecSection{
			ID:    id,
			Title: models.NewSectionTitle,
			Rows:  []models.SpecRow{{Label: models.NewSectionLabel, Value: models.NewSectionValue}},
		})
		return true
	})
	return id
}

// RemoveSection deletes a spec section
func (s *DocumentStore) RemoveSection(id string) bool {
	return s.mutate(func(doc *models.Document) bool {
		for i := range doc.Specs {
			if doc.Specs[i].ID == id {
				doc.Specs = append(doc.Specs[:i], doc.Specs[i+1:]...)
				return true
			}
		}
		return false
	})
}

// AddRow appends a placeholder row to a section
func (s *DocumentStore) AddRow(sectionID string) bool {
	return s.mutate(func(doc *models.Document) bool {
		section := findSection(doc, sectionID)
		if section == nil {
			return false
		}
		section.Rows = append(section.Rows, models.SpecRow{Label: models.NewRowLabel, Value: models.NewRowValue})
		return true
	})
}

// RemoveRow deletes one row. The section stays even when its last row goes.
func (s *DocumentStore) RemoveRow(sectionID string, index int) bool {
	return s.mutate(func(doc *models.Document) bool {
		section := findSection(doc, sectionID)
		if section == nil || index < 0 || index >= len(section.Rows) {
			return false
		}
		section.Rows = append(section.Rows[:index], section.Rows[index+1:]...)
		return true
	})
}

// UpdateRow sets the label or value of one row
func (s *DocumentStore) UpdateRow(sectionID string, index int, field, value string) bool {
	return s.mutate(func(doc *models.Document) bool {
		section := findSection(doc, sectionID)
		if section == nil || index < 0 || index >= len(section.Rows) {
			return false
		}
		switch field {
		case models.RowFieldLabel:
			section.Rows[index].Label = value
		case models.RowFieldValue:
			section.Rows[index].Value = value
		default:
			return false
		}
		return true
	})
}

// ReplaceSpecs swaps in a whole new list of sections
func (s *DocumentStore) ReplaceSpecs(sections []models.SpecSection) bool {
	return s.mutate(func(doc *models.Document) bool {
		doc.Specs = models.CloneSections(sections)
		if doc.Specs == nil {
			doc.Specs = []models.SpecSection{}
		}
		for i := range doc.Specs {
			if doc.Specs[i].Rows == nil {
				doc.Specs[i].Rows = []models.SpecRow{}
			}
		}
		return true
	})
}

// SetGalleryCount grows the gallery with fresh default slots or truncates it from the tail
func (s *DocumentStore) SetGalleryCount(n int) bool {
	n = int(Clamp(float64(n), 0, MaxGallerySlots))
	return s.mutate(func(doc *models.Document) bool {
		current := len(doc.GalleryImages)
		switch {
		case n == current:
			return false
		case n < current:
			doc.GalleryImages = doc.GalleryImages[:n]
		default:
			for i := current; i < n; i++ {
				doc.GalleryImages = append(doc.GalleryImages, models.NewGallerySlot("img-"+uuid.New().String()))
			}
		}
		return true
	})
}

// ReorderGallery moves sourceID to sit immediately before targetID
func (s *DocumentStore) ReorderGallery(sourceID, targetID string) bool {
	if sourceID == targetID {
		return false
	}
	return s.mutate(func(doc *models.Document) bool {
		images := doc.GalleryImages
		src := indexOfSlot(images, sourceID)
		if src < 0 || indexOfSlot(images, targetID) < 0 {
			return false
		}

		moved := images[src]
		images = append(images[:src], images[src+1:]...)
		dst := indexOfSlot(images, targetID)

		reordered := make([]models.ImageSlot, 0, len(images)+1)
		reordered = append(reordered, images[:dst]...)
		reordered = append(reordered, moved)
		reordered = append(reordered, images[dst:]...)
		doc.GalleryImages = reordered
		return true
	})
}

func indexOfSlot(images []models.ImageSlot, id string) int {
	for i, img := range images {
		if img.ID == id {
			return i
		}
	}
	return -1
}

// Reset clears the persisted snapshot and restores the default document
func (s *DocumentStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persistence != nil {
		if err := s.persistence.Clear(ctx, s.key); err != nil {
			log.Printf("[ERROR] Failed to clear saved document: %v", err)
			return err
		}
	}
	s.doc = models.DefaultDocument()
	log.Println("[INFO] Document reset to defaults")
	return nil
}
