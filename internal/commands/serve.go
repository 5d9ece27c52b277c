package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-entityforms"
	"github.com/goliatone/go-entityforms/internal/server"
	"github.com/goliatone/go-entityforms/pkg/tsiface"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser and renderers over HTTP",
		Long: `Start the HTTP service:

  POST /v1/fields/parse             {"source": "...", "mode": "basic|comments"}
  POST /v1/entities/validate        entity definition (JSON or YAML)
  POST /v1/entities/render/:name    entity definition, ?theme=&variant=&databaseId=
  POST /v1/records/validate         {"entity": {...}, "record": {...}}
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := requireSession(cmd)
			if err != nil {
				return err
			}
			mode, err := tsiface.ParseMode(s.config.Parser.Mode)
			if err != nil {
				return err
			}
			registry, err := entityforms.DefaultRegistry()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = s.config.Server.Addr
			}

			srv := server.New(
				server.WithParser(s.newParser(false)),
				server.WithRegistry(registry),
				server.WithLogger(s.logger),
				server.WithDefaultMode(mode),
			)
			return srv.Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr setting)")
	return cmd
}
