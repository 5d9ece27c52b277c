// Package html renders an entity as a standalone HTML preview: the record
// form in field order followed by the list table header. Styling comes from a
// go-theme selection exposed as CSS variables.
package html

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-entityforms/internal/sanitize"
	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/render"
	rendertemplate "github.com/goliatone/go-entityforms/pkg/render/template"
	"github.com/goliatone/go-entityforms/pkg/render/template/pongo"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

const formTemplate = "form"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	templates  rendertemplate.TemplateRenderer
	selector   theme.ThemeSelector
}

// WithTemplatesFS replaces the embedded bundle. The bundle must provide
// form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithThemeSelector resolves RenderOptions.Theme and Variant. Without it the
// built-in DefaultManifest is used.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.selector = selector
		}
	}
}

// Renderer is the "html" renderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	selector  theme.ThemeSelector
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.selector == nil {
		cfg.selector = NewManifestSelector(DefaultManifest())
	}

	templates := cfg.templates
	if templates == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	return &Renderer{templates: templates, selector: cfg.selector}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render builds the preview. An invalid entity is still rendered; its
// validation issues are shown inline unless options.Errors is supplied.
func (r *Renderer) Render(ctx context.Context, entity model.Entity, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}

	selection, err := r.selector.Select(options.Theme, options.Variant)
	if err != nil {
		return nil, err
	}

	view := buildView(entity, options, rendererConfig(selection))
	out, err := r.templates.RenderTemplate(formTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(out), nil
}

type formView struct {
	Entity     entityView    `json:"entity"`
	Action     string        `json:"action"`
	Fields     []controlView `json:"fields"`
	Columns    []columnView  `json:"columns"`
	FormErrors []string      `json:"formErrors,omitempty"`
	Theme      themeView     `json:"theme"`
}

type entityView struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
}

type controlView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	Control     string       `json:"control"`
	InputType   string       `json:"inputType,omitempty"`
	Value       string       `json:"value,omitempty"`
	Checked     bool         `json:"checked,omitempty"`
	Required    bool         `json:"required,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Help        string       `json:"help,omitempty"`
	Attrs       []attrView   `json:"attrs,omitempty"`
	Options     []optionView `json:"options,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

type attrView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type optionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected,omitempty"`
}

type columnView struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable,omitempty"`
}

type themeView struct {
	Name       string `json:"name"`
	Variant    string `json:"variant"`
	CSSVars    string `json:"cssVars"`
	Stylesheet string `json:"stylesheet,omitempty"`
}

func buildView(entity model.Entity, options render.RenderOptions, cfg *theme.RendererConfig) formView {
	view := formView{
		Entity: entityView{
			Name:        entity.Name,
			DisplayName: entity.DisplayName,
			Description: entity.Description,
		},
		Action: actionPath(entity, options.DatabaseID),
	}

	fieldErrors := options.Errors
	if fieldErrors == nil {
		var verr *model.ValidationError
		if err := entity.Validate(); errors.As(err, &verr) {
			mapping := render.MapIssues(entity, verr.Issues)
			fieldErrors = mapping.Fields
			view.FormErrors = mapping.Form
		}
	}

	for _, field := range entity.Fields {
		if field.ShowInForm {
			value, ok := options.Values[field.Name]
			if !ok {
				value = model.DefaultValue(field)
			}
			control := buildControl(field, value)
			control.Errors = fieldErrors[field.Name]
			view.Fields = append(view.Fields, control)
		}
		if field.ShowInList {
			view.Columns = append(view.Columns, columnView{
				Name:     field.Name,
				Label:    field.DisplayLabel(),
				Sortable: field.Sortable,
			})
		}
	}

	if cfg != nil {
		view.Theme = themeView{
			Name:    cfg.Theme,
			Variant: cfg.Variant,
			CSSVars: cssDeclarations(cfg.CSSVars),
		}
		if cfg.AssetURL != nil {
			view.Theme.Stylesheet = cfg.AssetURL(StylesheetAsset)
		}
	}
	return view
}

func buildControl(field model.FieldDescriptor, value any) controlView {
	control := controlView{
		Name:        field.Name,
		Label:       field.DisplayLabel(),
		Type:        string(field.Type),
		Control:     "input",
		InputType:   "text",
		Required:    field.Validation.Required,
		Placeholder: field.Placeholder,
		Help:        helpText(field),
	}

	switch field.Type {
	case model.FieldTypeTextarea:
		control.Control = "textarea"
	case model.FieldTypeJSON:
		control.Control = "textarea"
		if control.Placeholder == "" {
			control.Placeholder = "{}"
		}
	case model.FieldTypeBoolean, model.FieldTypeCheckbox:
		control.Control = "checkbox"
		control.InputType = ""
		checked, _ := value.(bool)
		control.Checked = checked
		return control
	case model.FieldTypeSelect, model.FieldTypeRadio:
		control.Control = string(field.Type)
		control.InputType = ""
		selected := formatValue(value)
		for _, option := range field.Options {
			control.Options = append(control.Options, optionView{
				Label:    option.Label,
				Value:    option.Value,
				Selected: option.Value == selected && selected != "",
			})
		}
		return control
	case model.FieldTypeNumber:
		control.InputType = "number"
		if field.Validation.Min != nil {
			control.Attrs = append(control.Attrs, attrView{"min", formatFloat(*field.Validation.Min)})
		}
		if field.Validation.Max != nil {
			control.Attrs = append(control.Attrs, attrView{"max", formatFloat(*field.Validation.Max)})
		}
	case model.FieldTypeEmail:
		control.InputType = "email"
	case model.FieldTypePassword:
		control.InputType = "password"
		value = nil
	case model.FieldTypeDate:
		control.InputType = "date"
	case model.FieldTypeDatetime:
		control.InputType = "datetime-local"
	case model.FieldTypeFile:
		control.InputType = "file"
		value = nil
	case model.FieldTypeImage:
		control.InputType = "file"
		control.Attrs = append(control.Attrs, attrView{"accept", "image/*"})
		value = nil
	case model.FieldTypeReference:
		if ref := field.ReferenceConfig; ref != nil {
			control.Attrs = append(control.Attrs, attrView{"data-collection", ref.Collection})
			if ref.DisplayField != "" {
				control.Attrs = append(control.Attrs, attrView{"data-display-field", ref.DisplayField})
			}
		}
	case model.FieldTypeArray:
		control.Attrs = append(control.Attrs, attrView{"data-array", "true"})
		if control.Placeholder == "" {
			control.Placeholder = "Comma separated values"
		}
	}

	if field.Type != model.FieldTypeNumber && field.Type != model.FieldTypeArray && field.Type != model.FieldTypeJSON {
		if field.Validation.MinLength != nil {
			control.Attrs = append(control.Attrs, attrView{"minlength", strconv.Itoa(*field.Validation.MinLength)})
		}
		if field.Validation.MaxLength != nil {
			control.Attrs = append(control.Attrs, attrView{"maxlength", strconv.Itoa(*field.Validation.MaxLength)})
		}
		if field.Validation.Pattern != "" && control.Control == "input" {
			control.Attrs = append(control.Attrs, attrView{"pattern", field.Validation.Pattern})
		}
	}

	control.Value = formatValue(value)
	return control
}

// helpText prefers the explicit help text and falls back to the description.
// Only inline formatting survives sanitising.
func helpText(field model.FieldDescriptor) string {
	text := field.HelpText
	if strings.TrimSpace(text) == "" {
		text = field.Description
	}
	return sanitize.InlineHTML(text)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func actionPath(entity model.Entity, databaseID string) string {
	path := "/" + entity.CollectionPath()
	if db := strings.Trim(databaseID, "/"); db != "" {
		path = "/" + db + path
	}
	return path
}
