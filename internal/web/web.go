// Package web carries the HTML templates compiled into the binary.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded view templates for the gin HTML renderer.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}
