package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms/internal/config"
	"github.com/goliatone/go-entityforms/internal/sanitize"
	"github.com/goliatone/go-entityforms/pkg/prompt"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

// Env carries the process dependencies commands use. Tests substitute
// buffers and a scripted prompt driver.
type Env struct {
	Getenv func(string) string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Driver overrides the survey terminal driver used by `interactive`.
	Driver prompt.Driver
}

// session is the per-invocation state loaded by the root PersistentPreRunE.
type session struct {
	env      Env
	config   *config.Config
	logger   *slog.Logger
	reporter *reporter
}

type sessionKey struct{}

func withSession(ctx context.Context, s *session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// requireSession extracts the session from a cobra.Command's context.
func requireSession(cmd *cobra.Command) (*session, error) {
	s, _ := cmd.Context().Value(sessionKey{}).(*session)
	if s == nil {
		return nil, errors.New("commands: session not loaded")
	}
	return s, nil
}

// newParser builds the interface parser for this invocation. Comment text is
// reduced to plain text when the parser.sanitize setting or plainText is set.
func (s *session) newParser(plainText bool) *tsiface.Parser {
	options := []tsiface.Option{tsiface.WithLogger(s.logger)}
	if plainText || s.config.Parser.Sanitize {
		options = append(options, tsiface.WithSanitizer(sanitize.PlainText))
	}
	return tsiface.New(options...)
}
