package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms/pkg/entityfile"
	"github.com/goliatone/go-entityforms/pkg/model"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <entity file or directory>...",
		Short: "Check entity definitions",
		Long: `Load entity definitions (JSON or YAML) and report every rule they break.
A directory argument is scanned recursively for .json, .yaml and .yml files;
duplicate entity names across files are rejected.`,
		Example: `  entityforms validate users.yaml
  entityforms validate ./entities`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := requireSession(cmd)
			if err != nil {
				return err
			}
			return runValidate(s, args)
		},
	}
}

type namedEntity struct {
	source string
	entity model.Entity
}

func runValidate(s *session, paths []string) error {
	var entities []namedEntity
	for _, path := range paths {
		loaded, err := loadEntities(path)
		if err != nil {
			return err
		}
		entities = append(entities, loaded...)
	}

	invalid := 0
	for _, item := range entities {
		err := item.entity.Validate()
		var verr *model.ValidationError
		switch {
		case err == nil:
			s.reporter.Success("%s (%s): %d field(s)", item.entity.Name, item.source, len(item.entity.Fields))
		case errors.As(err, &verr):
			invalid++
			s.reporter.Warn("%s (%s)", displayEntityName(item.entity), item.source)
			s.reporter.Error(err)
		default:
			return err
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d entity definition(s) are invalid", invalid, len(entities))
	}
	return nil
}

func loadEntities(path string) ([]namedEntity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		entity, err := entityfile.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []namedEntity{{source: path, entity: entity}}, nil
	}

	store, err := entityfile.LoadFS(os.DirFS(path))
	if err != nil {
		return nil, err
	}
	out := make([]namedEntity, 0, store.Len())
	for _, name := range store.Names() {
		entity, _ := store.Entity(name)
		out = append(out, namedEntity{source: store.Source(name), entity: entity})
	}
	return out, nil
}

func displayEntityName(entity model.Entity) string {
	if entity.Name == "" {
		return "<unnamed>"
	}
	return entity.Name
}
