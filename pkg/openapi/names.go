package openapi

import (
	"strings"

	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

const (
	fieldTypeExtension = "x-field-type"
	referenceExtension = "x-reference"
	schemaRefPrefix    = "#/components/schemas/"
)

// SchemaName returns the component name used for an entity's records
// ("blog_posts" becomes "BlogPosts").
func SchemaName(entityName string) string {
	return strings.ReplaceAll(tsiface.FormatLabel(entityName), " ", "")
}

// InputSchemaName returns the component name of the writable payload.
func InputSchemaName(entityName string) string {
	return SchemaName(entityName) + "Input"
}
