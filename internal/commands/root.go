// Package commands contains all CLI command definitions.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms/internal/config"
	"github.com/goliatone/go-entityforms/internal/logging"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(env Env) *cobra.Command {
	env = normaliseEnv(env)
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "entityforms",
		Short:         "Generate collection field schemas from TypeScript interfaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSession(cmd, env, flags)
			if err != nil {
				return err
			}
			cmd.SetContext(withSession(cmd.Context(), s))
			return nil
		},
	}
	rootCmd.SetIn(env.Stdin)
	rootCmd.SetOut(env.Stdout)
	rootCmd.SetErr(env.Stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.FileName, "path to the settings file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format (text, json)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(
		newInitCmd(),
		newGenerateCmd(),
		newValidateCmd(),
		newExportCmd(),
		newImportCmd(),
		newRenderCmd(),
		newServeCmd(),
		newInteractiveCmd(),
	)
	return rootCmd
}

// ReportError prints err the way commands report failures.
func ReportError(w io.Writer, err error) {
	newReporter(w, false).Error(err)
}

func normaliseEnv(env Env) Env {
	if env.Getenv == nil {
		env.Getenv = os.Getenv
	}
	if env.Stdin == nil {
		env.Stdin = os.Stdin
	}
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Stderr == nil {
		env.Stderr = os.Stderr
	}
	return env
}

// loadSession resolves settings in order: file (or defaults), environment,
// then flags.
func loadSession(cmd *cobra.Command, env Env, flags *rootFlags) (*session, error) {
	cfg, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(env.Getenv)
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", flags.configPath, err)
	}

	logger, err := logging.New(env.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger.Debug("settings loaded", "command", cmd.Name(), "config", flags.configPath)

	return &session{
		env:      env,
		config:   cfg,
		logger:   logger,
		reporter: newReporter(env.Stderr, flags.noColor),
	}, nil
}

// readSource returns the contents of path, or stdin when path is empty or "-".
func readSource(s *session, path string) ([]byte, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(s.env.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, "", err
	}
	return data, path, nil
}

// writeOutput writes data to path, or stdout when path is empty or "-".
func writeOutput(s *session, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := s.env.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // generated files are meant to be shared
		return err
	}
	s.logger.Debug("output written", "path", path, "bytes", len(data))
	return nil
}
