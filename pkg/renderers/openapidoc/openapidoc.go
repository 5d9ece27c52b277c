// Package openapidoc renders an entity's record API as an OpenAPI 3 document.
package openapidoc

import (
	"context"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/openapi"
	"github.com/goliatone/go-entityforms/pkg/render"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithYAML switches the output to YAML and the name to "openapi-yaml".
func WithYAML() Option {
	return func(r *Renderer) {
		r.yaml = true
	}
}

// WithExportOptions sets the defaults passed to openapi.Export. A DatabaseID
// in RenderOptions takes precedence.
func WithExportOptions(opts openapi.ExportOptions) Option {
	return func(r *Renderer) {
		r.export = opts
	}
}

// Renderer wraps openapi.Export.
type Renderer struct {
	yaml   bool
	export openapi.ExportOptions
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	if r.yaml {
		return "openapi-yaml"
	}
	return "openapi"
}

func (r *Renderer) ContentType() string {
	if r.yaml {
		return "application/yaml"
	}
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, entity model.Entity, options render.RenderOptions) ([]byte, error) {
	export := r.export
	if options.DatabaseID != "" {
		export.DatabaseID = options.DatabaseID
	}

	doc, err := openapi.Export(ctx, entity, export)
	if err != nil {
		return nil, err
	}
	if r.yaml {
		return openapi.EncodeYAML(doc)
	}
	return openapi.EncodeJSON(doc)
}
