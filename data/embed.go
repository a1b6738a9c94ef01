// Package data embeds the seed payloads for the shared report templates.
package data

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.json
var templateFS embed.FS

// Templates returns the raw JSON of every embedded seed template.
func Templates() ([][]byte, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	files := make([][]byte, 0, len(entries))
	for _, entry := range entries {
		raw, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, raw)
	}
	return files, nil
}
