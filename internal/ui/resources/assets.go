// Package resources serves the stylesheet and scripts shared by the viewer
// and the generated static site.
package resources

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed static/*
var staticFS embed.FS

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path of a static asset.
func StaticPath(name string) string {
	return "/static/" + name
}

// Assets returns the embedded static files keyed by name.
// The static site generator copies these next to the rendered pages.
func Assets() (map[string][]byte, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte)
	err = fs.WalkDir(sub, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(sub, path)
		if err != nil {
			return err
		}
		out[path] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AssetNames returns the embedded asset names in sorted order.
func AssetNames() []string {
	assets, err := Assets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(assets))
	for name := range assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
