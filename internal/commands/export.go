package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms/pkg/entityfile"
	"github.com/goliatone/go-entityforms/pkg/openapi"
)

type exportOptions struct {
	databaseID string
	title      string
	version    string
	serverURL  string
	yaml       bool
	output     string
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <entity file>",
		Short: "Export the data API of an entity as an OpenAPI document",
		Long: `Describe the REST endpoints the data API exposes for an entity
(create, list, get, update, replace, delete, hard delete, restore, query)
as an OpenAPI 3.0.3 document.`,
		Example: `  entityforms export users.yaml --yaml
  entityforms export users.json --database-id main -o users.openapi.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(cmd)
			if err != nil {
				return err
			}
			entity, err := entityfile.LoadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := openapi.Export(cmd.Context(), entity, openapi.ExportOptions{
				DatabaseID: opts.databaseID,
				Title:      opts.title,
				Version:    opts.version,
				ServerURL:  opts.serverURL,
			})
			if err != nil {
				return err
			}

			encode := openapi.EncodeJSON
			if opts.yaml || entityfile.FormatFromPath(opts.output) == entityfile.FormatYAML {
				encode = openapi.EncodeYAML
			}
			out, err := encode(doc)
			if err != nil {
				return err
			}
			if err := writeOutput(s, opts.output, out); err != nil {
				return err
			}
			s.reporter.Success("Exported %d path(s) for %s", doc.Paths.Len(), entity.Name)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.databaseID, "database-id", "", "fixed database segment (default: {databaseId} parameter)")
	f.StringVar(&opts.title, "title", "", "document title")
	f.StringVar(&opts.version, "api-version", "", "document version")
	f.StringVar(&opts.serverURL, "server-url", "", "server URL")
	f.BoolVar(&opts.yaml, "yaml", false, "emit YAML instead of JSON")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
