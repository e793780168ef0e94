package models

// Theme constants
const (
	ThemeSharp   ThemeType = "sharp"
	ThemeAngle   ThemeType = "angle"
	ThemeMinimal ThemeType = "minimal"
)

// Brand color constants
const (
	ColorForest BrandColor = "forest"
	ColorYellow BrandColor = "yellow"
	ColorSteel  BrandColor = "steel"
)

// HeroSlotID is the identity of the single page-one image
const HeroSlotID = "hero"

// ThemeType selects the page decoration style
type ThemeType string

// BrandColor selects the accent palette
type BrandColor string

// Palette holds the two CSS custom property values for a brand color
type Palette struct {
	Base string // --brand-color
	Dark string // --brand-color-dark
}

var palettes = map[BrandColor]Palette{
	ColorForest: {Base: "#1b4d3e", Dark: "#123329"},
	ColorYellow: {Base: "#eab308", Dark: "#a16207"},
	ColorSteel:  {Base: "#475569", Dark: "#1e293b"},
}

// Palette returns the CSS values for the color, falling back to forest for unknown values
func (c BrandColor) Palette() Palette {
	if p, ok := palettes[c]; ok {
		return p
	}
	return palettes[ColorForest]
}

// IsValidTheme checks if the theme is one of the known themes
func IsValidTheme(theme ThemeType) bool {
	return theme == ThemeSharp || theme == ThemeAngle || theme == ThemeMinimal
}

// IsValidColor checks if the color is one of the known brand colors
func IsValidColor(color BrandColor) bool {
	_, ok := palettes[color]
	return ok
}

// ImageSlot is an image placeholder with its crop and size geometry.
// Width is a percentage of the container, Height is in pixels.
type ImageSlot struct {
	ID     string  `json:"id"`
	Image  *string `json:"image"` // data URI, nil shows the placeholder
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	PosX   float64 `json:"posX"`
	PosY   float64 `json:"posY"`
	Scale  float64 `json:"scale"`
}

// HasImage reports whether the slot carries image data
func (s ImageSlot) HasImage() bool {
	return s.Image != nil && *s.Image != ""
}

// SlotBounds is the legal width/height range of a slot kind
type SlotBounds struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Geometry bounds shared by every slot
const (
	MinPos   = 0.0
	MaxPos   = 100.0
	MinScale = 1.0
	MaxScale = 3.0
)

var (
	// GalleryBounds applies to every gallery slot
	GalleryBounds = SlotBounds{MinWidth: 20, MaxWidth: 100, MinHeight: 150, MaxHeight: 800}
	// HeroBounds applies to the page-one hero image
	HeroBounds = SlotBounds{MinWidth: 50, MaxWidth: 100, MinHeight: 200, MaxHeight: 600}
)

// BoundsFor returns the bounds of the slot with the given identity
func BoundsFor(slotID string) SlotBounds {
	if slotID == HeroSlotID {
		return HeroBounds
	}
	return GalleryBounds
}

// SpecRow is one labeled line of a spec section
type SpecRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SpecSection is a titled group of spec rows
type SpecSection struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Rows  []SpecRow `json:"rows"`
}

// Row field names accepted by UpdateRow
const (
	RowFieldLabel = "label"
	RowFieldValue = "value"
)

// PageOneText holds the editable copy of the cover page
type PageOneText struct {
	SeriesTitle   string `json:"seriesTitle"`
	MainTitle     string `json:"mainTitle"`
	ModelYear     string `json:"modelYear"`
	IntroHeading  string `json:"introHeading"`
	IntroText     string `json:"introText"`
	Feature1Title string `json:"feature1Title"`
	Feature1Text  string `json:"feature1Text"`
	Feature2Title string `json:"feature2Title"`
	Feature2Text  string `json:"feature2Text"`
	Feature3Title string `json:"feature3Title"`
	Feature3Text  string `json:"feature3Text"`
}

// Field returns a pointer to the field with the given JSON key, or nil
func (t *PageOneText) Field(key string) *string {
	switch key {
	case "seriesTitle":
		return &t.SeriesTitle
	case "mainTitle":
		return &t.MainTitle
	case "modelYear":
		return &t.ModelYear
	case "introHeading":
		return &t.IntroHeading
	case "introText":
		return &t.IntroText
	case "feature1Title":
		return &t.Feature1Title
	case "feature1Text":
		return &t.Feature1Text
	case "feature2Title":
		return &t.Feature2Title
	case "feature2Text":
		return &t.Feature2Text
	case "feature3Title":
		return &t.Feature3Title
	case "feature3Text":
		return &t.Feature3Text
	}
	return nil
}

// PageTwoText holds the editable copy of the spec page
type PageTwoText struct {
	Datasheet string `json:"datasheet"`
}

// Field returns a pointer to the field with the given JSON key, or nil
func (t *PageTwoText) Field(key string) *string {
	if key == "datasheet" {
		return &t.Datasheet
	}
	return nil
}

// Document is the whole editable datasheet
type Document struct {
	Theme         ThemeType     `json:"theme"`
	Color         BrandColor    `json:"color"`
	HeroImage     ImageSlot     `json:"heroImage"`
	GalleryImages []ImageSlot   `json:"galleryImages"`
	Specs         []SpecSection `json:"specs"`
	PageOneText   PageOneText   `json:"pageOneText"`
	PageTwoText   PageTwoText   `json:"pageTwoText"`
}

// Clone returns a deep copy that shares no slices or pointers with d
func (d Document) Clone() Document {
	out := d
	out.HeroImage = d.HeroImage.Clone()

	if d.GalleryImages != nil {
		out.GalleryImages = make([]ImageSlot, len(d.GalleryImages))
		for i, img := range d.GalleryImages {
			out.GalleryImages[i] = img.Clone()
		}
	}

	out.Specs = CloneSections(d.Specs)
	return out
}

// CloneSections deep-copies a list of sections
func CloneSections(sections []SpecSection) []SpecSection {
	if sections == nil {
		return nil
	}
	out := make([]SpecSection, len(sections))
	for i, s := range sections {
		out[i] = s
		if s.Rows != nil {
			out[i].Rows = make([]SpecRow, len(s.Rows))
			copy(out[i].Rows, s.Rows)
		}
	}
	return out
}

// Clone returns a copy of the slot that does not share its image data pointer
func (s ImageSlot) Clone() ImageSlot {
	if s.Image != nil {
		img := *s.Image
		s.Image = &img
	}
	return s
}
