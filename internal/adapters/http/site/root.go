// Package site serves the embedded static assets shared by the dashboard
// and admin pages.
package site

import (
	"context"
	"net/http"
)

// Prefix is the URL path the assets are served under.
const Prefix = "/static/"

// Register attaches the static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(Prefix, NewAssetHandler())
}

// AssetHandler serves files from the embedded static directory.
type AssetHandler struct {
	files http.Handler
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler() *AssetHandler {
	return &AssetHandler{files: http.StripPrefix(Prefix, http.FileServer(FS()))}
}

// ServeHTTP handles GET and HEAD requests for embedded assets. Directory
// listings are not served.
func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path == Prefix {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.files.ServeHTTP(w, r)
}
