package docs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Minify shrinks a CSS or JavaScript asset with esbuild. Other files are
// returned unchanged.
func Minify(name string, content []byte) ([]byte, error) {
	var loader api.Loader
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css":
		loader = api.LoaderCSS
	case ".js":
		loader = api.LoaderJS
	default:
		return content, nil
	}

	result := api.Transform(string(content), api.TransformOptions{
		Loader:            loader,
		Target:            api.ES2020,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Sourcefile:        name,
		LogLevel:          api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		var msg strings.Builder
		for _, e := range result.Errors {
			if e.Location != nil {
				fmt.Fprintf(&msg, "%s:%d:%d: %s\n", e.Location.File, e.Location.Line, e.Location.Column, e.Text)
			} else {
				fmt.Fprintf(&msg, "%s: %s\n", name, e.Text)
			}
		}
		return nil, fmt.Errorf("esbuild errors:\n%s", msg.String())
	}
	return result.Code, nil
}
