// Package entityforms turns TypeScript interfaces into collection field
// schemas and renders the resulting entities as data files, OpenAPI
// contracts or HTML previews.
package entityforms

import (
	"context"
	"fmt"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/render"
	"github.com/goliatone/go-entityforms/pkg/renderers/data"
	"github.com/goliatone/go-entityforms/pkg/renderers/html"
	"github.com/goliatone/go-entityforms/pkg/renderers/openapidoc"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

// Entity aliases model.Entity for callers that only import the root package.
type Entity = model.Entity

// FieldDescriptor aliases model.FieldDescriptor.
type FieldDescriptor = model.FieldDescriptor

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Mode aliases tsiface.Mode.
type Mode = tsiface.Mode

const (
	ModeBasic    = tsiface.ModeBasic
	ModeComments = tsiface.ModeComments
)

// ParseBasic extracts field descriptors from the first interface block in
// source. See tsiface.Parser.ParseBasic.
func ParseBasic(source string) ([]FieldDescriptor, error) {
	return tsiface.ParseBasic(source)
}

// ParseWithComments extracts field descriptors keeping `//` comments as
// descriptions. See tsiface.Parser.ParseWithComments.
func ParseWithComments(source string) ([]FieldDescriptor, error) {
	return tsiface.ParseWithComments(source)
}

// NewEntity parses source with the given mode and wraps the fields in an
// entity carrying the default collection settings. The entity is returned
// together with its validation error when it cannot be saved as is.
func NewEntity(name, displayName string, mode Mode, source string) (Entity, error) {
	fields, err := tsiface.New().Generate(mode, source)
	if err != nil {
		return Entity{}, err
	}
	if displayName == "" {
		displayName = tsiface.FormatLabel(name)
	}
	entity := model.NewEntity(name, displayName)
	entity.Fields = fields
	if err := entity.Validate(); err != nil {
		return entity, err
	}
	return entity, nil
}

// DefaultRegistry returns a registry holding the built-in renderers: json,
// yaml, openapi, openapi-yaml and html.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	preview, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("entityforms: html renderer: %w", err)
	}
	for _, renderer := range []render.Renderer{
		data.NewJSON(),
		data.NewYAML(),
		openapidoc.New(),
		openapidoc.New(openapidoc.WithYAML()),
		preview,
	} {
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Render renders entity with the named built-in renderer.
func Render(ctx context.Context, entity Entity, rendererName string, options RenderOptions) ([]byte, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	out, _, err := registry.Render(ctx, rendererName, entity, options)
	return out, err
}
