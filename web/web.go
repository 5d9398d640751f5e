// Package web embeds the HTML templates and static assets of the raffle page.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed all:assets
var assetsFS embed.FS

// ParseTemplates parses every page and partial template.
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Assets returns the static files rooted at the assets directory.
func Assets() (fs.FS, error) {
	return fs.Sub(assetsFS, "assets")
}
