package cli

import (
	"os"

	"github.com/homeport/responder/cmd/serve"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var rootCmd = &cobra.Command{
	Use:   "responder",
	Short: "A minimal HTTP responder that greets GET requests",
	Long: `Listens on TCP port 8080 and answers every request starting with GET
with "Hello, Homeport!". Anything else gets a 400 Bad Request.
Connections are served one at a time. Without a sub-command, it serves.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve.Run(cmd.Context())
	},
}

func Execute() {
	AddCommands(rootCmd)
	err := rootCmd.Execute()
	if err != nil {
		slog.Error("Command failed", "err", err)
		os.Exit(1)
	}
}
