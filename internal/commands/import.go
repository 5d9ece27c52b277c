package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/openapi"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

type importOptions struct {
	schema      string
	name        string
	displayName string
	format      string
	output      string
}

func newImportCmd() *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import <openapi file>",
		Short: "Build an entity from an OpenAPI component schema",
		Long: `Convert the properties of components.schemas.<schema> into entity fields.
--schema may be omitted when the document declares a single schema.`,
		Example: `  entityforms import bookstore.yaml --schema Book --name books --format yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(cmd)
			if err != nil {
				return err
			}
			return runImport(cmd, s, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.schema, "schema", "", "component schema name")
	f.StringVar(&opts.name, "name", "", "entity name (default: lowercased schema name)")
	f.StringVar(&opts.displayName, "display-name", "", "display name (default: derived from --name)")
	f.StringVar(&opts.format, "format", "", "output renderer (default: output.format setting)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func runImport(cmd *cobra.Command, s *session, opts *importOptions, path string) error {
	raw, _, err := readSource(s, path)
	if err != nil {
		return err
	}

	schema := opts.schema
	if schema == "" {
		names, err := openapi.SchemaNames(cmd.Context(), raw)
		if err != nil {
			return err
		}
		if len(names) != 1 {
			return fmt.Errorf("--schema is required, document declares: %s", strings.Join(names, ", "))
		}
		schema = names[0]
	}

	fields, err := openapi.ImportSchema(cmd.Context(), raw, schema)
	if err != nil {
		return err
	}

	name := opts.name
	if name == "" {
		name = strings.ToLower(schema)
	}
	displayName := opts.displayName
	if displayName == "" {
		displayName = tsiface.FormatLabel(name)
	}
	entity := model.NewEntity(name, displayName)
	entity.Fields = fields
	if err := entity.Validate(); err != nil {
		return err
	}

	out, err := renderEntity(cmd, s, entity, opts.format)
	if err != nil {
		return err
	}
	if err := writeOutput(s, opts.output, out); err != nil {
		return err
	}
	s.reporter.Success("Imported %d field(s) from %s", len(fields), schema)
	return nil
}
