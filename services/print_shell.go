package services

import (
	"fmt"
	"strings"

	"datasheet_studio_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// exportPolicy keeps the layout-bearing attributes of the editor markup and the
// embedded data-URI images, and drops scripts and event handlers.
var exportPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style", "class", "id").Globally()
	p.AllowDataURIImages()
	p.AllowElements("div", "span", "section", "header", "footer", "svg", "path")
	p.AllowAttrs("viewBox", "fill", "d", "width", "height", "xmlns").OnElements("svg", "path")
	return p
}()

// SanitizeExportHTML strips active content from markup posted for rasterizing
func SanitizeExportHTML(content string) string {
	return exportPolicy.Sanitize(content)
}

// BrandStyleWrapper wraps markup in an element that defines the brand CSS variables
func BrandStyleWrapper(content string, color models.BrandColor) string {
	palette := color.Palette()
	return fmt.Sprintf(`<div style="--brand-color: %s; --brand-color-dark: %s;">%s</div>`, palette.Base, palette.Dark, content)
}

// WrapDatasheetHTML embeds page markup in the print document shell: fixed A4 pages,
// zero margins, one page break after each .a4-page.
func WrapDatasheetHTML(content string) string {
	var b strings.Builder
	b.WriteString(printShellHead)
	b.WriteString(content)
	b.WriteString(printShellTail)
	return b.String()
}

const printShellHead = `<!DOCTYPE html>
<html lang="uk">
<head>
    <meta charset="UTF-8">
    <script src="https://cdn.tailwindcss.com"></script>
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@400;600;800&family=Roboto+Mono:wght@400;500;700&display=swap" rel="stylesheet">
    <script>
        tailwind.config = {
            theme: {
                extend: {
                    fontFamily: {
                        sans: ['Inter', 'sans-serif'],
                        mono: ['Roboto Mono', 'monospace'],
                    },
                    colors: {
                        brand: 'var(--brand-color)',
                        'brand-dark': 'var(--brand-color-dark)',
                    }
                }
            }
        }
    </script>
    <style>
        :root {
            --brand-color: #1b4d3e;
            --brand-color-dark: #123329;
        }
        body {
            margin: 0;
            padding: 0;
            background: white;
        }
        .a4-page {
            width: 210mm;
            height: 297mm;
            background: white;
            overflow: hidden;
            position: relative;
            page-break-after: always;
            page-break-inside: avoid;
        }
        .text-brand {
            color: var(--brand-color) !important;
        }
        .bg-brand {
            background-color: var(--brand-color) !important;
        }
        .border-brand {
            border-color: var(--brand-color) !important;
        }
        .no-print {
            display: none !important;
        }
        @page {
            size: A4 portrait;
            margin: 0;
        }
    </style>
</head>
<body>
`

const printShellTail = `
</body>
</html>`
