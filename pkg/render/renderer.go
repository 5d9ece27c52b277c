package render

import (
	"context"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// Renderer converts an entity into a byte representation (JSON, YAML,
// OpenAPI, an HTML preview).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, entity model.Entity, options RenderOptions) ([]byte, error)
}
