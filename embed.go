package portfolio

import (
	"embed"
	"io/fs"
)

// EmbeddedAssets contains static assets shipped with the app:
// theme.js and site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// EmbeddedAssetNames lists the files in EmbeddedAssets.
func EmbeddedAssetNames() []string {
	entries, err := fs.ReadDir(EmbeddedAssets, "embedded")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
