package serve

import (
	"context"
	"fmt"

	"github.com/homeport/responder/internal/config"
	"github.com/homeport/responder/internal/responder"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

func NewServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the greeting on port 8080",
		Long:  `Serve the greeting on port 8080, one connection at a time, until the process is killed`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context())
		},
	}

	return serveCmd
}

// Run binds the fixed listen address and serves until the listener goes
// away. A bind failure is returned; nothing was served in that case.
func Run(ctx context.Context) error {
	slog.Info("Server is starting...", "addr", config.ListenAddr)

	r, err := responder.Listen(config.ListenAddr)
	if err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	defer r.Close()

	return r.Serve(ctx)
}
