package commands

import (
	"errors"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms/pkg/entityfile"
	"github.com/goliatone/go-entityforms/pkg/prompt"
)

type interactiveOptions struct {
	merge  string
	format string
	output string
}

func newInteractiveCmd() *cobra.Command {
	opts := &interactiveOptions{}
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Build an entity by answering prompts",
		Long: `Ask for the entity name, display name and parser mode, then read a
pasted TypeScript interface and generate its fields. With --merge the naming
questions are skipped and the fields are added to the existing definition.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := requireSession(cmd)
			if err != nil {
				return err
			}
			driver, err := promptDriver(s)
			if err != nil {
				return err
			}

			sessionOpts := []prompt.SessionOption{prompt.WithParser(s.newParser(false))}
			if opts.merge != "" {
				existing, err := entityfile.LoadFile(opts.merge)
				if err != nil {
					return err
				}
				sessionOpts = append(sessionOpts, prompt.WithExisting(existing))
			}

			entity, err := prompt.NewSession(driver, sessionOpts...).Run(cmd.Context())
			if err != nil {
				return err
			}
			out, err := renderEntity(cmd, s, entity, opts.format)
			if err != nil {
				return err
			}
			if err := writeOutput(s, opts.output, out); err != nil {
				return err
			}
			s.reporter.Success("Entity %s ready with %d field(s)", entity.Name, len(entity.Fields))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.merge, "merge", "", "existing entity file to merge the generated fields into")
	f.StringVar(&opts.format, "format", "", "output renderer (default: output.format setting)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func promptDriver(s *session) (prompt.Driver, error) {
	if s.env.Driver != nil {
		return s.env.Driver, nil
	}
	in, inOK := s.env.Stdin.(terminal.FileReader)
	out, outOK := s.env.Stdout.(terminal.FileWriter)
	if !inOK || !outOK {
		return nil, errors.New("interactive mode requires a terminal")
	}
	return prompt.NewSurveyDriver(in, out, s.env.Stderr), nil
}
