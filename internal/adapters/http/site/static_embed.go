package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*.css
var staticFS embed.FS

// FS returns an http.FileSystem rooted at the embedded static directory.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static is a fixed embed path; fall back to the raw FS.
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
