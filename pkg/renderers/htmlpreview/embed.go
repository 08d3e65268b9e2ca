package htmlpreview

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded preview template bundle for consumers that
// want the built-in page layout out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
