package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

var (
	// ErrEmptyDocument is returned when ImportSchema receives no payload.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrSchemaNotFound is returned when the named component is missing.
	ErrSchemaNotFound = errors.New("openapi: component schema not found")
)

// ImportSchema loads an OpenAPI document (JSON or YAML) and converts the
// properties of components.schemas[schemaName] into field descriptors, sorted
// by property name. Backend-owned properties such as `_id` and `createdAt`
// are skipped.
func ImportSchema(ctx context.Context, raw []byte, schemaName string) ([]model.FieldDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, schemaName)
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, schemaName)
	}

	return convertProperties(ref.Value), nil
}

// SchemaNames lists the component schema names a document declares, sorted.
func SchemaNames(ctx context.Context, raw []byte) ([]string, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return nil, nil
	}
	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func convertProperties(schema *openapi3.Schema) []model.FieldDescriptor {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if model.IsSystemField(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	fields := make([]model.FieldDescriptor, 0, len(names))
	for _, name := range names {
		property := schema.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		field := convertProperty(name, property.Value)
		field.Validation.Required = required[name]
		field.Order = len(fields)
		fields = append(fields, field)
	}
	return fields
}

func convertProperty(name string, src *openapi3.Schema) model.FieldDescriptor {
	fieldType := propertyType(src)

	label := strings.TrimSpace(src.Title)
	if label == "" {
		label = tsiface.FormatLabel(name)
	}

	field := model.FieldDescriptor{
		Name:         name,
		Label:        label,
		Type:         fieldType,
		Description:  src.Description,
		DefaultValue: src.Default,
		ShowInList:   true,
		ShowInForm:   true,
		Sortable:     fieldType.Sortable(),
		Searchable:   fieldType.Searchable(),
	}

	if src.Min != nil {
		value := *src.Min
		field.Validation.Min = &value
	}
	if src.Max != nil {
		value := *src.Max
		field.Validation.Max = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		field.Validation.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		field.Validation.MaxLength = &value
	}
	field.Validation.Pattern = src.Pattern

	enum := stringEnum(src)
	if src.Items != nil && src.Items.Value != nil && len(enum) == 0 {
		enum = stringEnum(src.Items.Value)
	}
	switch {
	case len(enum) == 0:
	case fieldType == model.FieldTypeSelect || fieldType == model.FieldTypeRadio:
		for _, value := range enum {
			field.Options = append(field.Options, model.Option{Label: tsiface.FormatLabel(value), Value: value})
		}
	default:
		field.Validation.Enum = enum
	}

	if fieldType == model.FieldTypeReference {
		field.ReferenceConfig = referenceConfig(src)
	}
	return field
}

// propertyType honours the x-field-type extension written by Export and
// otherwise infers the kind from the schema type and format.
func propertyType(src *openapi3.Schema) model.FieldType {
	if raw, ok := src.Extensions[fieldTypeExtension].(string); ok {
		if fieldType, err := model.ParseFieldType(raw); err == nil {
			return fieldType
		}
	}

	switch firstSchemaType(src.Type) {
	case openapi3.TypeString:
		if len(src.Enum) > 0 {
			return model.FieldTypeSelect
		}
		switch src.Format {
		case "email":
			return model.FieldTypeEmail
		case "date":
			return model.FieldTypeDate
		case "date-time":
			return model.FieldTypeDatetime
		case "password":
			return model.FieldTypePassword
		case "uri", "binary":
			return model.FieldTypeFile
		}
		return model.FieldTypeString
	case openapi3.TypeNumber, openapi3.TypeInteger:
		return model.FieldTypeNumber
	case openapi3.TypeBoolean:
		return model.FieldTypeBoolean
	case openapi3.TypeArray:
		return model.FieldTypeArray
	case openapi3.TypeObject:
		return model.FieldTypeJSON
	default:
		return model.FieldTypeText
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringEnum(src *openapi3.Schema) []string {
	if len(src.Enum) == 0 {
		return nil
	}
	out := make([]string, 0, len(src.Enum))
	for _, value := range src.Enum {
		out = append(out, fmt.Sprint(value))
	}
	return out
}

func referenceConfig(src *openapi3.Schema) *model.ReferenceConfig {
	raw, ok := src.Extensions[referenceExtension].(map[string]any)
	if !ok {
		return nil
	}
	config := &model.ReferenceConfig{}
	config.Collection, _ = raw["collection"].(string)
	config.DisplayField, _ = raw["displayField"].(string)
	config.Multiple, _ = raw["multiple"].(bool)
	return config
}
