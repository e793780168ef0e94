package pages

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"datasheet_studio_go/models"
	"datasheet_studio_go/services"

	"github.com/a-h/templ"
)

// ContainerID is the element the export client captures
const ContainerID = "datasheet-container"

const (
	heroPlaceholder    = "Завантажити фото (Широкий формат)"
	galleryPlaceholder = "Фото"
	specsHeading       = "Технічні Характеристики"
	galleryHeading     = "Галерея"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func write(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

// Surface renders every page of the document inside the export container
func Surface(doc models.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<div id="`, ContainerID, `">`); err != nil {
			return err
		}
		if err := PageOne(doc).Render(ctx, w); err != nil {
			return err
		}
		if err := PageTwo(doc).Render(ctx, w); err != nil {
			return err
		}
		for _, page := range services.LayoutGallery(doc.GalleryImages, services.MaxPageHeight) {
			if err := GalleryPage(doc.Theme, page).Render(ctx, w); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}

// Preview is a standalone print document: the print shell around the branded surface
func Preview(doc models.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		surface, err := RenderSurface(ctx, doc)
		if err != nil {
			return err
		}
		return write(w, services.WrapDatasheetHTML(services.BrandStyleWrapper(surface, doc.Color)))
	})
}

// RenderSurface renders Surface to a string
func RenderSurface(ctx context.Context, doc models.Document) (string, error) {
	var buf bytes.Buffer
	if err := Surface(doc).Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("failed to render datasheet: %w", err)
	}
	return buf.String(), nil
}

// SurfaceRenderer adapts RenderSurface to services.SurfaceRenderer
type SurfaceRenderer struct{}

func (SurfaceRenderer) RenderSurface(ctx context.Context, doc models.Document) (string, error) {
	return RenderSurface(ctx, doc)
}

func pageOpen(w io.Writer, theme models.ThemeType, extra string) error {
	return write(w, `<div class="a4-page relative flex flex-col theme-`, templ.EscapeString(string(theme)), extra, `">`)
}

func text(w io.Writer, class, value string) error {
	return write(w, `<div class="`, class, `">`, templ.EscapeString(value), `</div>`)
}

// PageOne renders the hero page
func PageOne(doc models.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := doc.PageOneText
		if err := pageOpen(w, doc.Theme, ""); err != nil {
			return err
		}

		// Header
		if err := write(w, `<div class="px-12 pt-12 pb-6 flex justify-between items-end border-b border-gray-100"><div>`); err != nil {
			return err
		}
		if err := text(w, "text-sm font-mono tracking-[0.3em] text-gray-400 uppercase mb-1", t.SeriesTitle); err != nil {
			return err
		}
		if err := write(w, `<h1 class="text-4xl font-black tracking-tight uppercase font-sans leading-none text-gray-900">`, templ.EscapeString(t.MainTitle), `</h1></div>`); err != nil {
			return err
		}
		if err := write(w, `<div class="flex flex-col items-end"><div class="h-2 w-12 bg-brand mb-2"></div>`); err != nil {
			return err
		}
		if err := text(w, "text-xs font-bold text-gray-900", t.ModelYear); err != nil {
			return err
		}
		if err := write(w, `</div></div>`); err != nil {
			return err
		}

		// Hero and intro
		if err := write(w, `<div class="flex-1 flex flex-col justify-center px-12 py-8 gap-8">`); err != nil {
			return err
		}
		hero := doc.HeroImage
		if err := write(w, `<div class="relative shadow-sm overflow-hidden mx-auto" style="width: `, num(hero.Width), `%; height: `, num(hero.Height), `px;">`); err != nil {
			return err
		}
		if err := ImageSurface(hero, heroPlaceholder).Render(ctx, w); err != nil {
			return err
		}
		if err := write(w, `</div>`); err != nil {
			return err
		}

		if err := write(w, `<div class="max-w-2xl mx-auto text-center"><h2 class="text-xl font-bold text-gray-900 mb-4 uppercase tracking-wide border-b-2 border-brand inline-block pb-1">`, templ.EscapeString(t.IntroHeading), `</h2>`); err != nil {
			return err
		}
		if err := text(w, "text-lg text-gray-600 leading-relaxed font-light", t.IntroText); err != nil {
			return err
		}

		features := [][2]string{
			{t.Feature1Title, t.Feature1Text},
			{t.Feature2Title, t.Feature2Text},
			{t.Feature3Title, t.Feature3Text},
		}
		if err := write(w, `<div class="grid grid-cols-3 gap-8 mt-10 text-left border-t border-gray-100 pt-6">`); err != nil {
			return err
		}
		for _, f := range features {
			if err := write(w, `<div>`); err != nil {
				return err
			}
			if err := text(w, "font-bold text-xs text-brand mb-2 uppercase", f[0]); err != nil {
				return err
			}
			if err := text(w, "text-sm text-gray-500", f[1]); err != nil {
				return err
			}
			if err := write(w, `</div>`); err != nil {
				return err
			}
		}
		return write(w, `</div></div></div></div>`)
	})
}

// PageTwo renders the spec table; a section's title cell spans all of its rows
func PageTwo(doc models.Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := pageOpen(w, doc.Theme, " p-10"); err != nil {
			return err
		}
		if err := write(w,
			`<div class="mb-10 flex items-center justify-between"><div><h2 class="text-2xl font-black text-gray-900 uppercase tracking-tight mb-1">`, specsHeading, `</h2><div class="w-16 h-1 bg-brand"></div></div>`,
			`<div class="text-right"><span class="text-xs font-mono text-gray-400">`, templ.EscapeString(doc.PageTwoText.Datasheet), `</span></div></div>`,
			`<div class="flex-1 flex flex-col justify-center"><div class="w-full border-t-2 border-black"><table class="w-full border-collapse"><tbody>`,
		); err != nil {
			return err
		}

		for _, section := range doc.Specs {
			for i, row := range section.Rows {
				if err := write(w, `<tr class="border-b border-gray-300">`); err != nil {
					return err
				}
				if i == 0 {
					if err := write(w, `<td class="py-4 px-4 font-bold text-black align-top w-[25%] border-r border-gray-300 uppercase tracking-wide text-xs bg-gray-100" rowspan="`, strconv.Itoa(len(section.Rows)), `">`, templ.EscapeString(section.Title), `</td>`); err != nil {
						return err
					}
				}
				if err := write(w,
					`<td class="py-3 px-6 text-gray-600 font-medium w-[40%] border-r border-gray-200 text-sm">`, templ.EscapeString(row.Label), `</td>`,
					`<td class="py-3 px-6 text-black font-mono font-semibold text-sm">`, templ.EscapeString(row.Value), `</td></tr>`,
				); err != nil {
					return err
				}
			}
		}
		return write(w, `</tbody></table></div></div></div>`)
	})
}

// GalleryPage renders one paginated group of gallery slots
func GalleryPage(theme models.ThemeType, page services.GalleryPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := pageOpen(w, theme, ""); err != nil {
			return err
		}
		if err := write(w,
			`<div class="px-8 pt-10 pb-6 flex items-center justify-between"><div><h2 class="text-2xl font-black text-gray-900 uppercase tracking-tight mb-1">`, galleryHeading, `</h2><div class="w-16 h-1 bg-brand"></div></div>`,
			`<div class="text-right"><span class="text-xs font-mono text-gray-400">PAGE `, strconv.Itoa(page.PageNumber), `</span></div></div>`,
			`<div class="flex flex-wrap content-start gap-y-4 px-6 py-4 flex-1">`,
		); err != nil {
			return err
		}
		for _, img := range page.Images {
			if err := write(w, `<div class="relative px-2" style="width: `, num(img.Width), `%; height: `, num(img.Height), `px;">`,
				`<div class="w-full h-full relative bg-gray-50 border border-gray-100 overflow-hidden shadow-sm">`); err != nil {
				return err
			}
			if err := ImageSurface(img, galleryPlaceholder).Render(ctx, w); err != nil {
				return err
			}
			if err := write(w,
				`<div class="absolute top-0 right-0 p-2 no-print" data-slot-id="`, templ.EscapeString(img.ID), `" data-target="`, string(services.TargetReorderHandle), `"></div>`,
				`<div class="absolute bottom-0 right-0 w-6 h-6 bg-brand no-print" data-slot-id="`, templ.EscapeString(img.ID), `" data-target="`, string(services.TargetResizeHandle), `"></div>`,
				`</div></div>`,
			); err != nil {
				return err
			}
		}
		return write(w, `</div></div>`)
	})
}

// ImageSurface renders a slot's image with its pan and zoom, or a placeholder when empty
func ImageSurface(slot models.ImageSlot, placeholder string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<div class="relative overflow-hidden bg-gray-50 w-full h-full" data-slot-id="`, templ.EscapeString(slot.ID), `" data-target="`, string(services.TargetSurface), `">`); err != nil {
			return err
		}
		if slot.HasImage() {
			if err := write(w,
				`<img src="`, templ.EscapeString(*slot.Image), `" alt="" class="object-cover h-full w-full" style="object-position: `,
				num(slot.PosX), `% `, num(slot.PosY), `%; transform: scale(`, num(slot.Scale), `); transform-origin: center center;">`,
			); err != nil {
				return err
			}
		} else {
			if err := write(w, `<div class="flex flex-col items-center justify-center h-full text-gray-400"><span class="text-[10px] font-medium uppercase tracking-wider text-gray-300">`, templ.EscapeString(placeholder), `</span></div>`); err != nil {
				return err
			}
		}
		return write(w, `</div>`)
	})
}
