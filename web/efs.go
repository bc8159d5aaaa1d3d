package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed static/*
var staticFS embed.FS

// GetFileSystem returns the viewer assets to serve.
func GetFileSystem() (fs.FS, error) {
	// Dev mode: serve from disk so the page can be edited without a rebuild
	if dir := os.Getenv("VIEWER_DIR"); dir != "" {
		return os.DirFS(dir), nil
	}

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return sub, nil
}
