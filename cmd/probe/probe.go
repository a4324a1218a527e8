package probe

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/homeport/responder/internal/config"
	"github.com/homeport/responder/internal/probe"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

func NewProbeCommand() *cobra.Command {
	probeCmd := &cobra.Command{
		Use:   "probe [address]",
		Short: "Check that a running responder answers correctly",
		Long: fmt.Sprintf(`Check that a running responder answers correctly.

Sends a GET, a DELETE and an empty connection to the responder and verifies
the answers. The address defaults to %s.`, config.DefaultProbeAddr),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := config.DefaultProbeAddr
			if len(args) == 1 {
				addr = args[0]
			}
			return runProbe(cmd, addr)
		},
	}

	return probeCmd
}

type Table struct {
	header []string
	rows   [][]string
}

func (t *Table) SetHeader(header []string) {
	t.header = header
}

func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

func (t *Table) Print(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.header, "\t"))

	for _, row := range t.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

func runProbe(cmd *cobra.Command, addr string) error {
	slog.Debug("Probing responder", "addr", addr)

	results, err := probe.Run(cmd.Context(), addr)
	if err != nil {
		return err
	}

	table := &Table{}
	table.SetHeader([]string{"CHECK", "STATUS", "DETAIL"})

	failed := 0
	for _, result := range results {
		status := "ok"
		if !result.Passed {
			status = "failed"
			failed++
		}
		table.AddRow([]string{string(result.Check), status, result.Detail})
	}

	if err := table.Print(cmd.OutOrStdout()); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed against %s", failed, len(results), addr)
	}

	return nil
}
