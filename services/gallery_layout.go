package services

import "datasheet_studio_go/models"

const (
	// MaxPageHeight is the gallery content height available on one page, in pixels
	MaxPageHeight = 980.0
	// RowGutter is the vertical gap added after every row
	RowGutter = 16.0
	// RowWidthBudget is the summed percentage width a row may hold. It sits one point
	// above 100 so independently resized slots that add up to 100.x still share a row.
	// Tunable, not a derived bound.
	RowWidthBudget = 101.0
	// GalleryPageOffset is the printed page number of the first gallery page
	GalleryPageOffset = 3
)

// GalleryRow is a run of images laid out side by side
type GalleryRow struct {
	Images []models.ImageSlot
	Width  float64
	Height float64
}

// Paginate packs images into rows and rows into pages under maxPageHeight.
// Input order is preserved. A row taller than a page still gets a page of its own.
func Paginate(images []models.ImageSlot, maxPageHeight float64) [][]models.ImageSlot {
	pages := [][]models.ImageSlot{}
	var page []models.ImageSlot
	pageHeight := 0.0

	for _, row := range PackRows(images) {
		if pageHeight+row.Height > maxPageHeight {
			// never emit an empty page
			if len(page) > 0 {
				pages = append(pages, page)
			}
			page = nil
			pageHeight = 0
		}
		page = append(page, row.Images...)
		pageHeight += row.Height + RowGutter
	}

	if len(page) > 0 {
		pages = append(pages, page)
	}
	return pages
}

// PackRows groups images into rows greedily by RowWidthBudget
func PackRows(images []models.ImageSlot) []GalleryRow {
	var rows []GalleryRow
	var current GalleryRow

	for _, img := range images {
		if len(current.Images) > 0 && current.Width+img.Width > RowWidthBudget {
			rows = append(rows, current)
			current = GalleryRow{}
		}
		current.Images = append(current.Images, img)
		current.Width += img.Width
		if img.Height > current.Height {
			current.Height = img.Height
		}
	}

	if len(current.Images) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// GalleryPage is one paginated gallery page ready for rendering
type GalleryPage struct {
	Index      int                `json:"index"`
	PageNumber int                `json:"pageNumber"`
	Images     []models.ImageSlot `json:"images"`
}

// LayoutGallery runs Paginate and labels the pages with their printed numbers
func LayoutGallery(images []models.ImageSlot, maxPageHeight float64) []GalleryPage {
	groups := Paginate(images, maxPageHeight)
	pages := make([]GalleryPage, len(groups))
	for i, group := range groups {
		pages[i] = GalleryPage{
			Index:      i,
			PageNumber: GalleryPageOffset + i,
			Images:     group,
		}
	}
	return pages
}
