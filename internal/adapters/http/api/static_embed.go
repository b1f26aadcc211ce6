package api

import (
	"embed"
	"html/template"
)

//go:embed static/*.html
var apiStaticFS embed.FS

// pages holds the dashboard and admin templates.
var pages = template.Must(template.New("pages").ParseFS(apiStaticFS, "static/*.html")) //nolint:gochecknoglobals // parsed once
