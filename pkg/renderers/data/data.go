// Package data renders entities as plain JSON or YAML documents, the same
// shape entityfile reads back.
package data

import (
	"context"
	"fmt"

	"github.com/goliatone/go-entityforms/pkg/entityfile"
	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/render"
)

// Renderer encodes an entity with a fixed entityfile format.
type Renderer struct {
	format entityfile.Format
}

var _ render.Renderer = (*Renderer)(nil)

// NewJSON returns the "json" renderer.
func NewJSON() *Renderer {
	return &Renderer{format: entityfile.FormatJSON}
}

// NewYAML returns the "yaml" renderer.
func NewYAML() *Renderer {
	return &Renderer{format: entityfile.FormatYAML}
}

func (r *Renderer) Name() string {
	return string(r.format)
}

func (r *Renderer) ContentType() string {
	if r.format == entityfile.FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Render ignores options; the output is the entity itself.
func (r *Renderer) Render(ctx context.Context, entity model.Entity, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := entityfile.Encode(entity, r.format)
	if err != nil {
		return nil, fmt.Errorf("%s renderer: %w", r.format, err)
	}
	return out, nil
}
