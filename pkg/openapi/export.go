package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// ErrAPIDisabled is returned when exporting an entity whose API is switched off.
var ErrAPIDisabled = errors.New("openapi: entity API is disabled")

const documentVersion = "3.0.3"

// ExportOptions tunes the generated document.
type ExportOptions struct {
	// DatabaseID fixes the first path segment. When empty the segment is
	// emitted as a `{databaseId}` path parameter.
	DatabaseID string
	// Title defaults to "<DisplayName> API".
	Title string
	// Version defaults to "1.0.0".
	Version string
	// ServerURL adds a single server entry when set.
	ServerURL string
}

// Export builds and validates the OpenAPI document describing the record API
// for entity.
func Export(ctx context.Context, entity model.Entity, opts ExportOptions) (*openapi3.T, error) {
	if err := entity.Validate(); err != nil {
		return nil, fmt.Errorf("openapi: export %s: %w", entity.Name, err)
	}
	if !entity.EnableAPI {
		return nil, fmt.Errorf("%w: %s", ErrAPIDisabled, entity.Name)
	}

	title := opts.Title
	if title == "" {
		title = entity.DisplayName + " API"
	}
	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: documentVersion,
		Info: &openapi3.Info{
			Title:       title,
			Version:     version,
			Description: entity.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}
	if opts.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: opts.ServerURL}}
	}

	recordName := SchemaName(entity.Name)
	inputName := InputSchemaName(entity.Name)
	record := recordSchema(entity)
	input := inputSchema(entity)
	doc.Components.Schemas[recordName] = openapi3.NewSchemaRef("", record)
	doc.Components.Schemas[inputName] = openapi3.NewSchemaRef("", input)

	b := operationBuilder{
		entity:   entity,
		schema:   recordName,
		tag:      entity.DisplayName,
		record:   openapi3.NewSchemaRef(schemaRefPrefix+recordName, record),
		input:    openapi3.NewSchemaRef(schemaRefPrefix+inputName, input),
		database: opts.DatabaseID,
	}
	base := b.basePath()
	byID := base + "/{id}"

	doc.Paths.Set(base, &openapi3.PathItem{
		Post: b.create(),
		Get:  b.list(),
	})
	doc.Paths.Set(byID, &openapi3.PathItem{
		Get:    b.get(),
		Patch:  b.update("update", "Update fields of a record"),
		Put:    b.update("replace", "Replace a record"),
		Delete: b.delete(),
	})
	doc.Paths.Set(byID+"/hard", &openapi3.PathItem{
		Delete: b.hardDelete(),
	})
	if entity.SoftDelete {
		doc.Paths.Set(byID+"/restore", &openapi3.PathItem{
			Post: b.restore(),
		})
	}
	doc.Paths.Set(base+"/query", &openapi3.PathItem{
		Post: b.query(),
	})

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate export: %w", err)
	}
	return doc, nil
}

// recordSchema describes a stored record: every field plus the backend-owned
// identifier and timestamps.
func recordSchema(entity model.Entity) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = entity.DisplayName
	schema.Description = entity.Description

	id := openapi3.NewStringSchema()
	id.ReadOnly = true
	schema.WithProperty("_id", id)

	for _, field := range entity.Fields {
		schema.WithProperty(field.Name, fieldSchema(field))
	}

	if entity.Timestamps {
		for _, name := range []string{"createdAt", "updatedAt"} {
			stamp := openapi3.NewDateTimeSchema()
			stamp.ReadOnly = true
			schema.WithProperty(name, stamp)
		}
	}
	if entity.SoftDelete {
		deleted := openapi3.NewDateTimeSchema()
		deleted.ReadOnly = true
		deleted.Nullable = true
		schema.WithProperty("deletedAt", deleted)
	}
	return schema
}

// inputSchema describes the writable payload for create and replace calls.
func inputSchema(entity model.Entity) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = entity.DisplayName + " input"

	var required []string
	for _, field := range entity.Fields {
		if model.IsSystemField(field.Name) {
			continue
		}
		schema.WithProperty(field.Name, fieldSchema(field))
		if field.Validation.Required {
			required = append(required, field.Name)
		}
	}
	if len(required) > 0 {
		sort.Strings(required)
		schema.Required = required
	}
	return schema
}

// fieldSchema maps a field descriptor onto a JSON schema. The field kind is
// kept in an extension so ImportSchema can restore it exactly.
func fieldSchema(field model.FieldDescriptor) *openapi3.Schema {
	var schema *openapi3.Schema

	switch field.Type {
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
	case model.FieldTypeBoolean, model.FieldTypeCheckbox:
		schema = openapi3.NewBoolSchema()
	case model.FieldTypeEmail:
		schema = openapi3.NewStringSchema().WithFormat("email")
	case model.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
	case model.FieldTypeDatetime:
		schema = openapi3.NewDateTimeSchema()
	case model.FieldTypeFile, model.FieldTypeImage:
		schema = openapi3.NewStringSchema().WithFormat("uri")
	case model.FieldTypeArray:
		schema = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	case model.FieldTypeJSON:
		schema = openapi3.NewObjectSchema()
	case model.FieldTypeReference:
		schema = openapi3.NewStringSchema()
		if field.ReferenceConfig != nil && field.ReferenceConfig.Multiple {
			schema = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
		}
	case model.FieldTypePassword:
		schema = openapi3.NewStringSchema().WithFormat("password")
		schema.WriteOnly = true
	default:
		schema = openapi3.NewStringSchema()
	}

	schema.Title = field.DisplayLabel()
	schema.Description = field.Description
	applyValidation(schema, field)
	if field.DefaultValue != nil {
		schema.Default = field.DefaultValue
	}

	schema.Extensions = map[string]any{fieldTypeExtension: string(field.Type)}
	if ref := field.ReferenceConfig; ref != nil && ref.Collection != "" {
		schema.Extensions[referenceExtension] = map[string]any{
			"collection":   ref.Collection,
			"displayField": ref.DisplayField,
			"multiple":     ref.Multiple,
		}
	}
	return schema
}

func applyValidation(schema *openapi3.Schema, field model.FieldDescriptor) {
	rules := field.Validation

	if field.Type == model.FieldTypeNumber {
		if rules.Min != nil {
			schema.WithMin(*rules.Min)
		}
		if rules.Max != nil {
			schema.WithMax(*rules.Max)
		}
	}
	if schema.Type.Is(openapi3.TypeString) {
		if rules.MinLength != nil && *rules.MinLength > 0 {
			schema.WithMinLength(int64(*rules.MinLength))
		}
		if rules.MaxLength != nil {
			schema.WithMaxLength(int64(*rules.MaxLength))
		}
		if rules.Pattern != "" {
			schema.WithPattern(rules.Pattern)
		}
	}

	values := enumValues(field)
	if len(values) == 0 {
		return
	}
	target := schema
	if schema.Items != nil && schema.Items.Value != nil {
		target = schema.Items.Value
	}
	if !target.Type.Is(openapi3.TypeString) {
		return
	}
	enum := make([]any, 0, len(values))
	for _, value := range values {
		enum = append(enum, value)
	}
	target.WithEnum(enum...)
}

// enumValues prefers explicit validation enums over select options.
func enumValues(field model.FieldDescriptor) []string {
	if len(field.Validation.Enum) > 0 {
		return field.Validation.Enum
	}
	switch field.Type {
	case model.FieldTypeSelect, model.FieldTypeRadio, model.FieldTypeArray:
	default:
		return nil
	}
	var out []string
	for _, option := range field.Options {
		out = append(out, option.Value)
	}
	return out
}

type operationBuilder struct {
	entity   model.Entity
	schema   string
	tag      string
	record   *openapi3.SchemaRef
	input    *openapi3.SchemaRef
	database string
}

func (b operationBuilder) basePath() string {
	database := strings.Trim(b.database, "/")
	if database == "" {
		database = "{databaseId}"
	}
	return "/" + database + "/" + b.entity.CollectionPath()
}

func (b operationBuilder) operation(verb, summary string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = verb + b.schema
	op.Summary = summary
	op.Tags = []string{b.tag}
	if b.database == "" {
		op.AddParameter(openapi3.NewPathParameter("databaseId").WithSchema(openapi3.NewStringSchema()))
	}
	return op
}

func (b operationBuilder) withID(op *openapi3.Operation) *openapi3.Operation {
	op.AddParameter(openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema()))
	return op
}

func (b operationBuilder) create() *openapi3.Operation {
	op := b.operation("create", "Create a new record in the collection")
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(b.input),
	}
	op.Responses = responses(http.StatusCreated, "Created", b.record)
	return op
}

func (b operationBuilder) list() *openapi3.Operation {
	op := b.operation("list", "List records with pagination and search")
	op.AddParameter(openapi3.NewQueryParameter("page").
		WithDescription("Current page number (default: 1)").
		WithSchema(openapi3.NewIntegerSchema().WithMin(1)))
	op.AddParameter(openapi3.NewQueryParameter("limit").
		WithDescription("Items per page (default: 10)").
		WithSchema(openapi3.NewIntegerSchema().WithMin(1)))
	op.AddParameter(openapi3.NewQueryParameter("search").
		WithDescription("Search across searchable fields").
		WithSchema(openapi3.NewStringSchema()))

	page := openapi3.NewObjectSchema().
		WithProperty("total", openapi3.NewIntegerSchema()).
		WithProperty("page", openapi3.NewIntegerSchema()).
		WithProperty("limit", openapi3.NewIntegerSchema())
	page.WithPropertyRef("data", &openapi3.SchemaRef{
		Value: &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeArray}, Items: b.record},
	})
	op.Responses = responses(http.StatusOK, "A page of records", openapi3.NewSchemaRef("", page))
	return op
}

func (b operationBuilder) get() *openapi3.Operation {
	op := b.withID(b.operation("get", "Get a record by ID"))
	op.Responses = responses(http.StatusOK, "The record", b.record)
	op.Responses.Set("404", notFound())
	return op
}

func (b operationBuilder) update(verb, summary string) *openapi3.Operation {
	op := b.withID(b.operation(verb, summary))
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(b.input),
	}
	op.Responses = responses(http.StatusOK, "The updated record", b.record)
	op.Responses.Set("404", notFound())
	return op
}

func (b operationBuilder) delete() *openapi3.Operation {
	summary := "Delete a record"
	if b.entity.SoftDelete {
		summary = "Soft delete a record"
	}
	op := b.withID(b.operation("delete", summary))
	op.Responses = responses(http.StatusOK, "Deleted", nil)
	op.Responses.Set("404", notFound())
	return op
}

func (b operationBuilder) hardDelete() *openapi3.Operation {
	op := b.withID(b.operation("hardDelete", "Permanently delete a record"))
	op.Responses = responses(http.StatusOK, "Deleted", nil)
	op.Responses.Set("404", notFound())
	return op
}

func (b operationBuilder) restore() *openapi3.Operation {
	op := b.withID(b.operation("restore", "Restore a soft deleted record"))
	op.Responses = responses(http.StatusOK, "The restored record", b.record)
	op.Responses.Set("404", notFound())
	return op
}

func (b operationBuilder) query() *openapi3.Operation {
	op := b.operation("query", "Advanced search with filters, sorting and pagination")
	filter := openapi3.NewObjectSchema()
	filter.Description = "Query operators such as $gte, $lte and $in"
	body := openapi3.NewObjectSchema().
		WithProperty("filter", filter).
		WithProperty("sort", openapi3.NewObjectSchema()).
		WithProperty("limit", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("skip", openapi3.NewIntegerSchema().WithMin(0))
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(body),
	}
	list := &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeArray}, Items: b.record}
	op.Responses = responses(http.StatusOK, "Matching records", openapi3.NewSchemaRef("", list))
	return op
}

func responses(status int, description string, schema *openapi3.SchemaRef) *openapi3.Responses {
	response := openapi3.NewResponse().WithDescription(description)
	if schema != nil {
		response = response.WithJSONSchemaRef(schema)
	}
	return openapi3.NewResponses(openapi3.WithStatus(status, &openapi3.ResponseRef{Value: response}))
}

func notFound() *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Record not found")}
}
