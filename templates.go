package entityforms

import (
	"io/fs"

	"github.com/goliatone/go-entityforms/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML preview templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
