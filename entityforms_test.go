package entityforms

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/render"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

const userInterface = `interface User {
  // Display name
  name: string;
  email: string;
  age?: number;
}`

func TestDefaultRegistry(t *testing.T) {
	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	want := []string{"html", "json", "openapi", "openapi-yaml", "yaml"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEntity(t *testing.T) {
	entity, err := NewEntity("users", "", ModeComments, userInterface)
	if err != nil {
		t.Fatalf("new entity: %v", err)
	}
	if entity.DisplayName != "Users" || !entity.Timestamps || !entity.EnableAPI {
		t.Fatalf("unexpected defaults: %+v", entity)
	}
	if len(entity.Fields) != 3 || entity.Fields[0].Description != "Display name" {
		t.Fatalf("unexpected fields: %+v", entity.Fields)
	}

	if _, err := NewEntity("users", "Users", ModeBasic, "type User = {}"); !errors.Is(err, tsiface.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}

	_, err = NewEntity("Users", "Users", ModeBasic, userInterface)
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	entity, err := NewEntity("users", "Users", ModeBasic, userInterface)
	if err != nil {
		t.Fatalf("new entity: %v", err)
	}

	out, err := Render(context.Background(), entity, "openapi-yaml", RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "openapi: 3.0.3\n") {
		t.Fatalf("unexpected openapi output:\n%s", out)
	}

	out, err = Render(context.Background(), entity, "html", RenderOptions{})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(string(out), `name="email"`) {
		t.Fatalf("html output missing email control")
	}

	if _, err := Render(context.Background(), entity, "pdf", RenderOptions{}); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestParseFacade(t *testing.T) {
	basic, err := ParseBasic(userInterface)
	if err != nil {
		t.Fatalf("basic: %v", err)
	}
	commented, err := ParseWithComments(userInterface)
	if err != nil {
		t.Fatalf("comments: %v", err)
	}
	if basic[0].Description != "" || commented[0].Description != "Display name" {
		t.Fatalf("modes not distinct: %q %q", basic[0].Description, commented[0].Description)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "form.tpl"); err != nil {
		t.Fatalf("form template missing: %v", err)
	}
}
