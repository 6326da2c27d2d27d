// Package site serves the embedded patient input form.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded form routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded form at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}
