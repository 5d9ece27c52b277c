package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms"
	"github.com/goliatone/go-entityforms/pkg/entityfile"
	"github.com/goliatone/go-entityforms/pkg/model"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

type generateOptions struct {
	name        string
	displayName string
	comments    bool
	sanitize    bool
	format      string
	output      string
	merge       string
	timestamps  bool
	softDelete  bool
	noAPI       bool
	apiPath     string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate [interface.ts]",
		Short: "Generate an entity from a TypeScript interface",
		Long: `Parse a TypeScript interface and emit an entity definition.
The interface is read from the file argument, or from stdin when it is
omitted or "-". With --merge, generated fields are appended to an existing
entity file; fields whose names already exist are left untouched.`,
		Example: `  # Generate a products entity as YAML
  entityforms generate product.ts --name products --format yaml

  # Keep // comments as field descriptions
  cat user.ts | entityforms generate --name users --comments

  # Add new members to an existing definition
  entityforms generate user.ts --merge users.yaml --output users.yaml --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(cmd)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runGenerate(cmd, s, opts, path)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "entity name (lowercase, digits, underscores)")
	f.StringVar(&opts.displayName, "display-name", "", "display name (default: derived from --name)")
	f.BoolVar(&opts.comments, "comments", false, "keep // comments as field descriptions")
	f.BoolVar(&opts.sanitize, "sanitize", false, "strip markup from comment descriptions")
	f.StringVar(&opts.format, "format", "", "output renderer (default: output.format setting)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	f.StringVar(&opts.merge, "merge", "", "existing entity file to merge the generated fields into")
	f.BoolVar(&opts.timestamps, "timestamps", true, "add createdAt/updatedAt timestamps")
	f.BoolVar(&opts.softDelete, "soft-delete", false, "enable soft delete")
	f.BoolVar(&opts.noAPI, "no-api", false, "disable the data API for the entity")
	f.StringVar(&opts.apiPath, "api-path", "", "collection path used by the data API")
	return cmd
}

func runGenerate(cmd *cobra.Command, s *session, opts *generateOptions, path string) error {
	mode, err := tsiface.ParseMode(s.config.Parser.Mode)
	if err != nil {
		return err
	}
	if opts.comments {
		mode = tsiface.ModeComments
	}

	source, origin, err := readSource(s, path)
	if err != nil {
		return err
	}
	fields, err := s.newParser(opts.sanitize).Generate(mode, string(source))
	if err != nil {
		return err
	}
	s.logger.Debug("interface parsed", "source", origin, "mode", mode, "fields", len(fields))

	var entity model.Entity
	if opts.merge != "" {
		entity, err = entityfile.LoadFile(opts.merge)
		if err != nil {
			return err
		}
		before := len(entity.Fields)
		entity.Fields = model.Renumber(model.MergeFields(entity.Fields, fields))
		if skipped := len(fields) - (len(entity.Fields) - before); skipped > 0 {
			s.reporter.Warn("%d field(s) already present in %s were kept as is", skipped, opts.merge)
		}
	} else {
		if err := model.ValidateName(opts.name); err != nil {
			return fmt.Errorf("--name: %w", err)
		}
		displayName := opts.displayName
		if displayName == "" {
			displayName = tsiface.FormatLabel(opts.name)
		}
		entity = model.NewEntity(opts.name, displayName)
		entity.Fields = fields
		entity.Timestamps = opts.timestamps
		entity.SoftDelete = opts.softDelete
		entity.EnableAPI = !opts.noAPI
		entity.APIPath = opts.apiPath
	}

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
	s.reporter.Success("Generated %d field(s) successfully", len(fields))
	return nil
}

// renderEntity renders with the named built-in renderer, defaulting to the
// output.format setting.
func renderEntity(cmd *cobra.Command, s *session, entity model.Entity, format string) ([]byte, error) {
	if format == "" {
		format = s.config.Output.Format
	}
	registry, err := entityforms.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	out, _, err := registry.Render(cmd.Context(), format, entity, entityforms.RenderOptions{})
	return out, err
}
