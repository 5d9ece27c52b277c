package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms"
	"github.com/goliatone/go-entityforms/pkg/entityfile"
)

type renderOptions struct {
	renderer   string
	theme      string
	variant    string
	databaseID string
	output     string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <entity file>",
		Short: "Render an entity with a built-in renderer",
		Example: `  entityforms render posts.yaml --renderer html --variant dark -o posts.html
  entityforms render posts.yaml --renderer openapi-yaml`,
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
			registry, err := entityforms.DefaultRegistry()
			if err != nil {
				return err
			}
			name := opts.renderer
			if name == "" {
				name = s.config.Output.Format
			}
			out, _, err := registry.Render(cmd.Context(), name, entity, entityforms.RenderOptions{
				Theme:      opts.theme,
				Variant:    opts.variant,
				DatabaseID: opts.databaseID,
			})
			if err != nil {
				return err
			}
			return writeOutput(s, opts.output, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.renderer, "renderer", "", "renderer name: json, yaml, openapi, openapi-yaml, html")
	f.StringVar(&opts.theme, "theme", "", "html theme name")
	f.StringVar(&opts.variant, "variant", "", "html theme variant")
	f.StringVar(&opts.databaseID, "database-id", "", "database segment used in paths and form actions")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
