package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/**
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded form page.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Should never happen if the static files are present at build
		// time. Expose the raw FS on error.
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
