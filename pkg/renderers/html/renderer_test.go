package html

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/render"
	"github.com/goliatone/go-entityforms/pkg/testsupport"
)

func previewEntity() model.Entity {
	maxTitle := 120
	entity := model.NewEntity("blog_posts", "Blog Posts")
	entity.APIPath = "posts"
	entity.Fields = []model.FieldDescriptor{
		{Name: "title", Label: "Title", Type: model.FieldTypeString, ShowInForm: true, ShowInList: true, Sortable: true, Validation: model.FieldValidation{Required: true, MaxLength: &maxTitle}},
		{Name: "status", Label: "Status", Type: model.FieldTypeSelect, ShowInForm: true, DefaultValue: "draft", Options: []model.Option{{Label: "Draft", Value: "draft"}, {Label: "Published", Value: "published"}}, Order: 1},
		{Name: "published", Label: "Published", Type: model.FieldTypeBoolean, ShowInForm: true, Order: 2},
		{Name: "body", Label: "Body", Type: model.FieldTypeTextarea, ShowInForm: true, Description: "<b>Markdown</b> body<script>alert(1)</script>", Order: 3},
		{Name: "views", Label: "Views", Type: model.FieldTypeNumber, ShowInList: true, Sortable: true, Order: 4},
	}
	return entity
}

func TestRenderFormControls(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.Render(testsupport.Context(), previewEntity(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<form class="entity-form" method="post" action="/posts">`,
		`<input type="text" id="field-title" name="title" maxlength="120" required>`,
		`<option value="draft" selected>Draft</option>`,
		`<option value="published">Published</option>`,
		`<input type="checkbox" id="field-published" name="published" value="true"> Published</label>`,
		`<textarea id="field-body" name="body"></textarea>`,
		`<p class="help"><b>Markdown</b> body</p>`,
		`<th data-sortable="true">Title</th><th data-sortable="true">Views</th>`,
		`data-theme="entityforms"`,
		`--brand: #2563eb;`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("script tag leaked into output")
	}
	if strings.Contains(html, `name="views"`) {
		t.Fatalf("list-only field rendered in form")
	}
	if strings.Index(html, `name="title"`) > strings.Index(html, `name="body"`) {
		t.Fatalf("fields rendered out of order")
	}
}

func TestRenderPrefilledValues(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.Render(context.Background(), previewEntity(), render.RenderOptions{
		DatabaseID: "db1",
		Values:     map[string]any{"title": "Hello", "status": "published", "published": true},
		Errors:     map[string][]string{"title": {"Title is taken"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`action="/db1/posts"`,
		`name="title" value="Hello"`,
		`<option value="published" selected>Published</option>`,
		`name="published" value="true" checked>`,
		`<p class="error">Title is taken</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRenderShowsValidationIssues(t *testing.T) {
	renderer := newRenderer(t)
	entity := previewEntity()
	entity.DisplayName = ""
	entity.Fields = append(entity.Fields, model.FieldDescriptor{
		Name: "author", Label: "Author", Type: model.FieldTypeReference, ShowInForm: true, ReferenceConfig: &model.ReferenceConfig{}, Order: 5,
	})

	out, err := renderer.Render(context.Background(), entity, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<li>Display name is required</li>") {
		t.Fatalf("form-level issue missing:\n%s", html)
	}
	if !strings.Contains(html, `<p class="error">reference fields require a collection</p>`) {
		t.Fatalf("field issue missing:\n%s", html)
	}
}

func TestRenderThemeVariants(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.Render(context.Background(), previewEntity(), render.RenderOptions{Variant: "dark"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "--surface: #111827;") || !strings.Contains(string(out), `data-variant="dark"`) {
		t.Fatalf("dark variant not applied:\n%s", out)
	}

	if _, err := renderer.Render(context.Background(), previewEntity(), render.RenderOptions{Theme: "missing"}); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := renderer.Render(context.Background(), previewEntity(), render.RenderOptions{Variant: "sepia"}); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

func TestRenderCustomSelector(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Assets: theme.Assets{
			Prefix: "/assets/acme",
			Files:  map[string]string{StylesheetAsset: "acme.css"},
		},
	}
	renderer, err := New(WithThemeSelector(NewManifestSelector(manifest)))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := renderer.Render(context.Background(), previewEntity(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<link rel="stylesheet" href="/assets/acme/acme.css">`) {
		t.Fatalf("stylesheet missing:\n%s", html)
	}
	if !strings.Contains(html, "--brand: #123456;") {
		t.Fatalf("manifest tokens missing:\n%s", html)
	}
}

func TestRendererConfigMergesVariant(t *testing.T) {
	manifest := &theme.Manifest{
		Name:      "acme",
		Tokens:    map[string]string{"brand": "#123456", "text": "#000"},
		Templates: map[string]string{"forms.input": "input.tpl"},
		Assets:    theme.Assets{Prefix: "/t", Files: map[string]string{"a": "a.css"}},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{Files: map[string]string{"b": "https://cdn.example.com/b.css"}},
			},
		},
	}

	cfg := rendererConfig(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest})
	if cfg.CSSVars["--brand"] != "#654321" || cfg.CSSVars["--text"] != "#000" {
		t.Fatalf("unexpected css vars: %+v", cfg.CSSVars)
	}
	if cfg.Partials["forms.input"] != "input.tpl" {
		t.Fatalf("partials not copied: %+v", cfg.Partials)
	}
	if got := cfg.AssetURL("a"); got != "/t/a.css" {
		t.Fatalf("asset a: %q", got)
	}
	if got := cfg.AssetURL("b"); got != "https://cdn.example.com/b.css" {
		t.Fatalf("asset b: %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset: %q", got)
	}
	if rendererConfig(nil) != nil {
		t.Fatalf("nil selection should yield nil config")
	}
}

func TestRendererMetadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "html" || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected metadata")
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}
