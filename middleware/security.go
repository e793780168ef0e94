package middleware

import (
	"github.com/labstack/echo/v4"
)

// PreviewCSP is the policy for the print preview: the Tailwind CDN script, Google Fonts,
// inline style attributes and embedded data URI images. Nothing else may load.
const PreviewCSP = "default-src 'none'; script-src https://cdn.tailwindcss.com; style-src 'unsafe-inline' https://fonts.googleapis.com; img-src data:; font-src https://fonts.gstatic.com; base-uri 'none'; form-action 'none'"

// PreviewSecurityHeaders locks down pages that render user-edited document markup
func PreviewSecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Content-Security-Policy", PreviewCSP)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			return next(c)
		}
	}
}
