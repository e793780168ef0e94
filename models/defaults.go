package models

import "fmt"

// DefaultGalleryCount is the number of gallery slots in a fresh document
const DefaultGalleryCount = 4

// Default slot geometry
const (
	DefaultSlotWidth  = 50.0
	DefaultSlotHeight = 300.0
	DefaultHeroWidth  = 100.0
	DefaultHeroHeight = 400.0
	DefaultPos        = 50.0
	DefaultScale      = 1.0
)

// Labels used for freshly added sections and rows
const (
	NewSectionTitle = "Нова Секція"
	NewSectionLabel = "Параметр"
	NewSectionValue = "Значення"
	NewRowLabel     = "Новий"
	NewRowValue     = "-"
)

// NewGallerySlot returns a gallery slot with default geometry and no image
func NewGallerySlot(id string) ImageSlot {
	return ImageSlot{
		ID:     id,
		Width:  DefaultSlotWidth,
		Height: DefaultSlotHeight,
		PosX:   DefaultPos,
		PosY:   DefaultPos,
		Scale:  DefaultScale,
	}
}

// DefaultHeroImage returns the hero slot of a fresh document
func DefaultHeroImage() ImageSlot {
	return ImageSlot{
		ID:     HeroSlotID,
		Width:  DefaultHeroWidth,
		Height: DefaultHeroHeight,
		PosX:   DefaultPos,
		PosY:   DefaultPos,
		Scale:  DefaultScale,
	}
}

// DefaultGalleryImages returns the gallery of a fresh document (img-0 .. img-3)
func DefaultGalleryImages() []ImageSlot {
	images := make([]ImageSlot, DefaultGalleryCount)
	for i := range images {
		images[i] = NewGallerySlot(fmt.Sprintf("img-%d", i))
	}
	return images
}

// DefaultPageOneText returns the cover copy of a fresh document
func DefaultPageOneText() PageOneText {
	return PageOneText{
		SeriesTitle:   "X-2000 SERIES",
		MainTitle:     "INDUSTRIAL HARVESTER",
		ModelYear:     "MODEL YEAR 2025",
		IntroHeading:  "Вступ",
		IntroText:     "Ця машина являє собою вершину інженерної думки в галузі лісозаготівлі. Розроблена для забезпечення максимальної ефективності та надійності, вона поєднує в собі потужність передових технологій та ергономіку нового покоління. Ідеальне рішення для найскладніших завдань.",
		Feature1Title: "ЕФЕКТИВНІСТЬ",
		Feature1Text:  "Зниження витрат палива на 15% завдяки новій гідравліці.",
		Feature2Title: "НАДІЙНІСТЬ",
		Feature2Text:  "Посилена рама та компоненти для роботи 24/7.",
		Feature3Title: "КОМФОРТ",
		Feature3Text:  "Кабіна з оглядом 360° та системою клімат-контролю.",
	}
}

// DefaultPageTwoText returns the spec page copy of a fresh document
func DefaultPageTwoText() PageTwoText {
	return PageTwoText{Datasheet: "DATASHEET 2.0"}
}

// DefaultSpecs returns the spec sections of a fresh document
func DefaultSpecs() []SpecSection {
	return []SpecSection{
		{
			ID:    "dims",
			Title: "Габарити",
			Rows: []SpecRow{
				{Label: "Ширина", Value: "2980 мм"},
				{Label: "Висота", Value: "3850 мм"},
				{Label: "Довжина", Value: "8200 мм"},
				{Label: "Вага", Value: "18500 кг"},
			},
		},
		{
			ID:    "engine",
			Title: "Двигун",
			Rows: []SpecRow{
				{Label: "Модель", Value: "AgroPower X6"},
				{Label: "Потужність", Value: "280 к.с."},
				{Label: "Крутний момент", Value: "1200 Нм"},
				{Label: "Екологічний клас", Value: "Stage V"},
				{Label: "Об'єм баку", Value: "400 л"},
			},
		},
		{
			ID:    "crane",
			Title: "Кран",
			Rows: []SpecRow{
				{Label: "Виліт стріли", Value: "10.5 м"},
				{Label: "Вантажопідйомність", Value: "180 kNm"},
				{Label: "Кут повороту", Value: "280°"},
			},
		},
		{
			ID:    "head",
			Title: "Головка",
			Rows: []SpecRow{
				{Label: "Модель", Value: "CutMaster 5000"},
				{Label: "Діаметр зрізу", Value: "750 мм"},
				{Label: "Швидкість", Value: "6 м/с"},
				{Label: "Пильна шина", Value: "900 мм"},
			},
		},
		{
			ID:    "other",
			Title: "Шасі",
			Rows: []SpecRow{
				{Label: "Кліренс", Value: "700 мм"},
				{Label: "Тягове зусилля", Value: "195 кН"},
				{Label: "Колеса", Value: "26.5-20"},
			},
		},
	}
}

// DefaultDocument returns a fresh datasheet
func DefaultDocument() Document {
	return Document{
		Theme:         ThemeSharp,
		Color:         ColorForest,
		HeroImage:     DefaultHeroImage(),
		GalleryImages: DefaultGalleryImages(),
		Specs:         DefaultSpecs(),
		PageOneText:   DefaultPageOneText(),
		PageTwoText:   DefaultPageTwoText(),
	}
}
