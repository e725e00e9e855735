// Package frontend embeds the built web UI.
package frontend

import (
	"embed"
	"io/fs"
)

//go:embed all:dist
var dist embed.FS

// Assets returns the built UI rooted at its index.html.
func Assets() (fs.FS, error) {
	return fs.Sub(dist, "dist")
}
