package data

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-entityforms/pkg/entityfile"
	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/render"
)

func sampleEntity() model.Entity {
	entity := model.NewEntity("notes", "Notes")
	entity.Fields = []model.FieldDescriptor{
		{Name: "body", Label: "Body", Type: model.FieldTypeTextarea, ShowInForm: true, Validation: model.FieldValidation{Required: true}},
	}
	return entity
}

func TestRenderersRoundTrip(t *testing.T) {
	for _, renderer := range []*Renderer{NewJSON(), NewYAML()} {
		out, err := renderer.Render(context.Background(), sampleEntity(), render.RenderOptions{})
		if err != nil {
			t.Fatalf("%s: render: %v", renderer.Name(), err)
		}
		decoded, err := entityfile.Parse(out, renderer.Name())
		if err != nil {
			t.Fatalf("%s: parse: %v", renderer.Name(), err)
		}
		if diff := cmp.Diff(sampleEntity(), decoded); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", renderer.Name(), diff)
		}
	}
}

func TestRendererMetadata(t *testing.T) {
	if NewJSON().Name() != "json" || NewJSON().ContentType() != "application/json" {
		t.Fatalf("unexpected json metadata")
	}
	if NewYAML().Name() != "yaml" || NewYAML().ContentType() != "application/yaml" {
		t.Fatalf("unexpected yaml metadata")
	}
	out, err := NewYAML().Render(context.Background(), sampleEntity(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "displayName: Notes\n") {
		t.Fatalf("expected yaml keys, got:\n%s", out)
	}
}

func TestRenderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewJSON().Render(ctx, sampleEntity(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}
