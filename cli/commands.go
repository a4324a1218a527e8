package cli

import (
	"github.com/homeport/responder/cmd/probe"
	"github.com/homeport/responder/cmd/serve"
	"github.com/spf13/cobra"
)

func AddCommands(cmd *cobra.Command) {
	cmd.AddCommand(serve.NewServeCommand())
	cmd.AddCommand(probe.NewProbeCommand())
}
